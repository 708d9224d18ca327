package ports

import (
	"context"
	"testing"
	"time"

	"github.com/MIBbrandon/Athena/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore
// implementation adheres to the interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		sess := domain.NewSession(sessionID)
		sess.Status = domain.StatusReady
		sess.Solution = &domain.Solution{
			TotalSwaps: 1,
			Steps:      domain.StepSequence{domain.Swap("1", "2"), domain.InteractionAlreadyEstablished()},
			IDs:        []domain.Label{"1", "2"},
		}
		sess.Soddi = domain.SoddiList{{Source: "2", Target: "1"}}
		sess.Labels = []domain.Label{"2", "1"}
		sess.Cursor = &domain.Cursor{StepIndex: 0, SoddiIndex: 0}

		require.NoError(t, store.Save(ctx, sess), "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, domain.StatusReady, loaded.Status)
		assert.Equal(t, sess.Solution.Steps, loaded.Solution.Steps)
		assert.Equal(t, sess.Labels, loaded.Labels)
		require.NotNil(t, loaded.Cursor)
		assert.Equal(t, *sess.Cursor, *loaded.Cursor)
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.Labels[0] = "mutated"

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.NotEqual(t, domain.Label("mutated"), again.Labels[0])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.NewSession(sessionID)))
		require.NoError(t, store.Delete(ctx, sessionID), "Delete should not return error")

		_, err := store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, domain.NewSession(id1))
		_ = store.Save(ctx, domain.NewSession(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
