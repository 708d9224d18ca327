package athena

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MIBbrandon/Athena/internal/logging"
	"github.com/MIBbrandon/Athena/internal/runtime"
	"github.com/MIBbrandon/Athena/pkg/adapters/memory"
	"github.com/MIBbrandon/Athena/pkg/domain"
	"github.com/MIBbrandon/Athena/pkg/ports"
	"github.com/MIBbrandon/Athena/pkg/session"
)

// ErrNoSolver is returned by Submit and Random when the Player has no solver.
var ErrNoSolver = errors.New("no solver configured")

// Player is the high-level entry point of the library.
// It stores one playback per session and applies steps under the session lock,
// so the same Player can serve a terminal, HTTP clients and MCP agents at once.
type Player struct {
	manager *session.Manager
	store   ports.SessionStore
	locker  ports.DistributedLocker
	solver  ports.Solver
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	newID   func() string

	solveTimeout time.Duration
}

// Option defines a functional option for configuring the Player.
type Option func(*Player)

// WithSolver sets the solver used by Submit and Random.
func WithSolver(s ports.Solver) Option {
	return func(p *Player) {
		p.solver = s
	}
}

// WithStore sets the session store. The default keeps sessions in memory.
func WithStore(s ports.SessionStore) Option {
	return func(p *Player) {
		p.store = s
	}
}

// WithLocker enables distributed locking across replicas sharing a store.
func WithLocker(l ports.DistributedLocker) Option {
	return func(p *Player) {
		p.locker = l
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Player) {
		p.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Player) {
		p.logger = logger
	}
}

// WithSolveTimeout sets how long a session may wait for the solver before
// a leftover solving status is treated as aborted.
func WithSolveTimeout(d time.Duration) Option {
	return func(p *Player) {
		p.solveTimeout = d
	}
}

// WithIDGenerator replaces the random session ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(p *Player) {
		if fn != nil {
			p.newID = fn
		}
	}
}

// New creates a Player.
func New(opts ...Option) *Player {
	p := &Player{
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logging.NewNop()
	}
	if p.store == nil {
		p.store = memory.NewStore()
	}

	mopts := []session.Option{
		session.WithLogger(p.logger),
		session.WithSolveTimeout(p.solveTimeout),
	}
	if p.locker != nil {
		mopts = append(mopts, session.WithLocker(p.locker))
	}
	p.manager = session.NewManager(p.store, mopts...)
	return p
}

// Sessions returns the session manager.
func (p *Player) Sessions() *session.Manager {
	return p.manager
}

func (p *Player) engine(id string, r ports.Renderer) *runtime.Engine {
	return runtime.NewEngine(r,
		runtime.WithLogger(p.logger),
		runtime.WithLifecycleHooks(p.hooks),
		runtime.WithSessionID(id),
	)
}

// Create starts an idle session with a fresh ID.
func (p *Player) Create(ctx context.Context) (*domain.Session, error) {
	return p.Open(ctx, p.newID())
}

// Open loads the session with the given ID, creating it if needed.
func (p *Player) Open(ctx context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return nil, fmt.Errorf("session id cannot be empty")
	}
	return p.manager.LoadOrCreate(ctx, id)
}

// Inspect returns the stored session.
func (p *Player) Inspect(ctx context.Context, id string) (*domain.Session, error) {
	return p.manager.Load(ctx, id)
}

// Delete removes a session.
func (p *Player) Delete(ctx context.Context, id string) error {
	return p.manager.Delete(ctx, id)
}

// List returns the stored session IDs.
func (p *Player) List(ctx context.Context) ([]string, error) {
	return p.manager.List(ctx)
}

// Submit solves a puzzle and installs the solution into the session, creating
// the session if needed. Steps on the session are refused with
// domain.ErrSolveInFlight until the solver answers. On failure the previous
// solution, if any, stays in place.
func (p *Player) Submit(ctx context.Context, id string, puzzle domain.Puzzle, r ports.Renderer) (*domain.Session, error) {
	if p.solver == nil {
		return nil, ErrNoSolver
	}
	soddi, err := domain.ParseSoddi(puzzle.Soddi)
	if err != nil {
		return nil, err
	}

	if _, err := p.manager.BeginSolve(ctx, id); err != nil {
		return nil, err
	}

	sol, err := p.solve(ctx, puzzle, soddi)
	if err != nil {
		p.abortSolve(ctx, id, err)
		return nil, err
	}

	// The answer is already paid for; a caller that went away must not
	// leave the session in the solving state.
	sess, err := p.manager.FinishSolve(context.WithoutCancel(ctx), id, func(ctx context.Context, sess *domain.Session) error {
		initial, err := domain.NewPermutation(sol.IDs)
		if err != nil {
			return err
		}
		eng := p.engine(id, r)
		eng.Reset(ctx, runtime.Input{
			Steps:   sol.Steps,
			Soddi:   soddi,
			Initial: initial,
			Style:   sol.Style(),
		})

		sess.Puzzle = puzzle
		sess.Solution = sol
		sess.Soddi = soddi
		sess.LastMessage = nil
		eng.Capture(sess)
		return nil
	})
	if err != nil {
		p.abortSolve(ctx, id, err)
		return nil, err
	}
	return sess, nil
}

// abortSolve puts back the status a session had before BeginSolve.
// It ignores ctx cancellation, which may be the reason the solve failed.
func (p *Player) abortSolve(ctx context.Context, id string, cause error) {
	if err := p.manager.AbortSolve(context.WithoutCancel(ctx), id); err != nil {
		p.logger.WarnContext(ctx, "failed to restore session after solve error",
			"session_id", id,
			"cause", cause,
			"err", err,
		)
	}
}

func (p *Player) solve(ctx context.Context, puzzle domain.Puzzle, soddi domain.SoddiList) (*domain.Solution, error) {
	sol, err := p.solver.Solve(ctx, puzzle)
	if err != nil {
		return nil, fmt.Errorf("solve failed: %w", err)
	}
	if err := sol.Validate(soddi); err != nil {
		return nil, fmt.Errorf("%w: inconsistent solution: %v", domain.ErrSolverRejected, err)
	}
	return sol, nil
}

// Random asks the solver for a random valid puzzle and replaces the session
// with an idle one holding it. Any installed solution is discarded.
func (p *Player) Random(ctx context.Context, id string, req domain.RandomRequest) (*domain.Session, error) {
	if p.solver == nil {
		return nil, ErrNoSolver
	}
	puzzle, err := p.solver.Random(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("random puzzle failed: %w", err)
	}

	if _, err := p.manager.LoadOrCreate(ctx, id); err != nil {
		return nil, err
	}
	return p.manager.Update(ctx, id, func(ctx context.Context, sess *domain.Session) error {
		if err := p.manager.CheckSolve(ctx, sess); err != nil {
			return err
		}
		fresh := domain.NewSession(id)
		fresh.Puzzle = *puzzle
		*sess = *fresh
		return nil
	})
}

// StepForward advances the session's playback by one step and draws the
// change through r. Guarded no-ops return their status message and a nil error.
func (p *Player) StepForward(ctx context.Context, id string, r ports.Renderer) (*domain.Session, domain.Message, error) {
	return p.step(ctx, id, r, domain.Forward)
}

// StepBackward moves the session's playback one step back.
func (p *Player) StepBackward(ctx context.Context, id string, r ports.Renderer) (*domain.Session, domain.Message, error) {
	return p.step(ctx, id, r, domain.Backward)
}

func (p *Player) step(ctx context.Context, id string, r ports.Renderer, dir domain.Direction) (*domain.Session, domain.Message, error) {
	var msg domain.Message
	sess, err := p.manager.Update(ctx, id, func(ctx context.Context, sess *domain.Session) error {
		if err := p.manager.CheckSolve(ctx, sess); err != nil {
			return err
		}
		eng := p.engine(id, r)
		if err := eng.Restore(sess); err != nil {
			return err
		}

		var err error
		if dir == domain.Backward {
			msg, err = eng.StepBackward(ctx)
		} else {
			msg, err = eng.StepForward(ctx)
		}
		eng.Capture(sess)
		if err != nil {
			return err
		}
		sess.LastMessage = &msg
		return nil
	})
	return sess, msg, err
}

// Redraw draws the full current state of a session through r.
func (p *Player) Redraw(ctx context.Context, id string, r ports.Renderer) (*domain.Session, error) {
	sess, err := p.manager.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	eng := p.engine(id, r)
	if err := eng.Restore(sess); err != nil {
		return nil, err
	}
	eng.Redraw()
	if r != nil && sess.LastMessage != nil {
		r.Notify(*sess.LastMessage)
	}
	return sess, nil
}
