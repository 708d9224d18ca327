package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MIBbrandon/Athena/pkg/domain"
	"github.com/MIBbrandon/Athena/pkg/ports"
)

type nopStore struct{}

func (nopStore) Save(context.Context, *domain.Session) error { return nil }
func (nopStore) Load(_ context.Context, id string) (*domain.Session, error) {
	return domain.NewSession(id), nil
}
func (nopStore) Delete(context.Context, string) error   { return nil }
func (nopStore) List(context.Context) ([]string, error) { return nil, nil }

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(nopStore{})
	ctx := context.Background()

	for i := 0; i < 10000; i++ {
		sid := fmt.Sprintf("session-%d", i)
		_ = mgr.Save(ctx, domain.NewSession(sid))
		_ = mgr.Delete(ctx, sid)
	}

	assert.Empty(t, mgr.locks, "lock entries must be released once unused")
}

type fakeLocker struct {
	mu       sync.Mutex
	ttls     []time.Duration
	unlocked []string
	fail     error
}

func (f *fakeLocker) Lock(_ context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.mu.Lock()
	f.ttls = append(f.ttls, ttl)
	f.mu.Unlock()
	return func(context.Context) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.unlocked = append(f.unlocked, key)
		return errors.New("already expired")
	}, nil
}

func TestManager_DistributedLocker(t *testing.T) {
	ctx := context.Background()

	t.Run("Wraps Every Access", func(t *testing.T) {
		locker := &fakeLocker{}
		mgr := NewManager(nopStore{}, WithLocker(locker), WithLockTTL(time.Second))

		_, err := mgr.Load(ctx, "a")
		require.NoError(t, err, "unlock failures are only logged")
		require.NoError(t, mgr.Delete(ctx, "a"))

		assert.Equal(t, []time.Duration{time.Second, time.Second}, locker.ttls)
		assert.Equal(t, []string{"a", "a"}, locker.unlocked)
	})

	t.Run("Lock Failure", func(t *testing.T) {
		mgr := NewManager(nopStore{}, WithLocker(&fakeLocker{fail: context.DeadlineExceeded}))
		called := false
		err := mgr.WithLock(ctx, "a", func(context.Context) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.False(t, called)
	})
}
