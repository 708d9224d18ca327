package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/MIBbrandon/Athena/internal/logging"
	"github.com/MIBbrandon/Athena/pkg/domain"
	"github.com/MIBbrandon/Athena/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed lock outlives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// DefaultSolveTimeout bounds how long a session may stay in the solving state.
const DefaultSolveTimeout = 2 * time.Minute

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager serializes access to sessions. Every read-modify-write of one
// session runs under that session's lock, so two step calls never interleave.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.SessionStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker       ports.DistributedLocker // Optional distributed locker
	lockTTL      time.Duration
	solveTimeout time.Duration
	logger       *slog.Logger
	now          func() time.Time
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithSolveTimeout overrides DefaultSolveTimeout. It should not be shorter
// than the solver's own request timeout.
func WithSolveTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.solveTimeout = d
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a new Session Manager with the given persistence store.
func NewManager(store ports.SessionStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL:      DefaultLockTTL,
		solveTimeout: DefaultSolveTimeout,
		logger:       logging.NewNop(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Load retrieves an existing session from the store.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	var sess *domain.Session
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		sess, err = m.store.Load(ctx, sessionID)
		return err
	})
	return sess, err
}

// LoadOrCreate loads a session, creating and persisting an idle one if it does not exist.
func (m *Manager) LoadOrCreate(ctx context.Context, sessionID string) (*domain.Session, error) {
	var sess *domain.Session
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		sess, err = m.loadOrCreate(ctx, sessionID)
		return err
	})
	return sess, err
}

func (m *Manager) loadOrCreate(ctx context.Context, sessionID string) (*domain.Session, error) {
	sess, err := m.store.Load(ctx, sessionID)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to check session existence: %w", err)
	}

	sess = domain.NewSession(sessionID)
	if err := m.save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	m.logger.DebugContext(ctx, "session created", "session_id", sessionID)
	return sess, nil
}

// Save persists the session.
func (m *Manager) Save(ctx context.Context, sess *domain.Session) error {
	return m.WithLock(ctx, sess.ID, func(ctx context.Context) error {
		return m.save(ctx, sess)
	})
}

func (m *Manager) save(ctx context.Context, sess *domain.Session) error {
	sess.UpdatedAt = m.now().UTC()
	return m.store.Save(ctx, sess)
}

// Update loads a session, applies fn and saves the result, all under the session lock.
// Nothing is saved when fn fails, unless fn returns a *domain.InvariantError:
// a halted session is persisted so later calls see the halt.
func (m *Manager) Update(ctx context.Context, sessionID string, fn func(context.Context, *domain.Session) error) (*domain.Session, error) {
	var out *domain.Session
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		sess, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		fnErr := fn(ctx, sess)
		var inv *domain.InvariantError
		if fnErr != nil && !errors.As(fnErr, &inv) {
			return fnErr
		}
		if err := m.save(ctx, sess); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		out = sess
		return fnErr
	})
	return out, err
}

// BeginSolve marks a session as waiting for the solver, creating it if needed.
// The previous status is kept so AbortSolve can put it back.
// A second BeginSolve before the first finishes returns domain.ErrSolveInFlight.
func (m *Manager) BeginSolve(ctx context.Context, sessionID string) (*domain.Session, error) {
	var out *domain.Session
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		sess, err := m.loadOrCreate(ctx, sessionID)
		if err != nil {
			return err
		}
		if err := m.CheckSolve(ctx, sess); err != nil {
			return err
		}
		started := m.now().UTC()
		sess.PreviousStatus = sess.Status
		sess.Status = domain.StatusSolving
		sess.SolveStartedAt = &started
		if err := m.save(ctx, sess); err != nil {
			return err
		}
		out = sess
		return nil
	})
	return out, err
}

// CheckSolve returns domain.ErrSolveInFlight while a solve for sess is outstanding.
// A solving status older than the solve timeout is left over from a request
// that can no longer finish; it is rolled back on sess and nil is returned.
// Callers persist sess if they go on to modify it.
func (m *Manager) CheckSolve(ctx context.Context, sess *domain.Session) error {
	if sess.Status != domain.StatusSolving {
		return nil
	}
	if sess.SolveStartedAt != nil && m.now().Sub(*sess.SolveStartedAt) < m.solveTimeout {
		return domain.ErrSolveInFlight
	}
	m.logger.WarnContext(ctx, "expiring stale solve",
		"session_id", sess.ID,
		"started_at", sess.SolveStartedAt,
	)
	rollbackSolve(sess)
	return nil
}

// FinishSolve applies fn to a session that is waiting for the solver and saves it.
// fn is expected to install the new solution and set the final status.
func (m *Manager) FinishSolve(ctx context.Context, sessionID string, fn func(context.Context, *domain.Session) error) (*domain.Session, error) {
	return m.Update(ctx, sessionID, func(ctx context.Context, sess *domain.Session) error {
		if err := fn(ctx, sess); err != nil {
			return err
		}
		sess.PreviousStatus = ""
		sess.SolveStartedAt = nil
		return nil
	})
}

// AbortSolve restores the status a session had before BeginSolve.
// The previous solution, if any, stays installed.
func (m *Manager) AbortSolve(ctx context.Context, sessionID string) error {
	_, err := m.Update(ctx, sessionID, func(_ context.Context, sess *domain.Session) error {
		if sess.Status == domain.StatusSolving {
			rollbackSolve(sess)
		}
		return nil
	})
	return err
}

func rollbackSolve(sess *domain.Session) {
	sess.Status = sess.PreviousStatus
	if sess.Status == "" {
		sess.Status = domain.StatusIdle
	}
	sess.PreviousStatus = ""
	sess.SolveStartedAt = nil
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying session store.
func (m *Manager) Store() ports.SessionStore {
	return m.store
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
