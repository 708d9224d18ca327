package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/MIBbrandon/Athena/internal/logging"
	"github.com/MIBbrandon/Athena/pkg/domain"
	"github.com/MIBbrandon/Athena/pkg/ports"
)

// Engine plays back a solution one step at a time.
//
// It owns the step sequence, the desired interactions, the evolving permutation
// and the cursor. Backward motion rewinds two positions and replays one, which
// is only correct because every step that moves labels is a self-inverse swap.
type Engine struct {
	renderer  ports.Renderer
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
	sessionID string

	steps    domain.StepSequence
	soddi    domain.SoddiList
	style    domain.Style
	perm     *domain.Permutation
	cursor   *domain.Cursor // nil until the first Reset
	enlarged []int
	halted   bool

	busy atomic.Bool
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithSessionID tags events and logs with the owning session.
func WithSessionID(id string) EngineOption {
	return func(e *Engine) {
		e.sessionID = id
	}
}

// NewEngine creates an uninitialized engine drawing through renderer.
// A nil renderer discards all effects.
func NewEngine(renderer ports.Renderer, opts ...EngineOption) *Engine {
	if renderer == nil {
		renderer = nopRenderer{}
	}
	e := &Engine{
		renderer: renderer,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Input is everything a reset installs at once.
type Input struct {
	Steps   domain.StepSequence
	Soddi   domain.SoddiList
	Initial *domain.Permutation
	Style   domain.Style
}

// Reset installs a new solution and rewinds the cursor to before the first step.
// Any previous state, including a halt, is discarded.
func (e *Engine) Reset(ctx context.Context, in Input) {
	e.clearTransient()

	e.steps = in.Steps
	e.soddi = in.Soddi
	e.style = in.Style
	if in.Initial != nil {
		e.perm = in.Initial.Clone()
	} else {
		e.perm, _ = domain.NewPermutation(nil)
	}
	start := domain.StartCursor()
	e.cursor = &start
	e.halted = false

	e.renderer.Configure(in.Style)
	for slot, label := range e.perm.Labels() {
		e.renderer.Relabel(slot, label)
	}
	e.emitControls()

	e.logger.DebugContext(ctx, "playback reset",
		"session_id", e.sessionID,
		"steps", e.steps.Len(),
		"interactions", len(e.soddi),
		"slots", e.perm.Len(),
	)
	e.emitReset(ctx)
}

// StepForward advances one step.
// Guard conditions report a status message and change nothing. The returned
// error is non-nil only for overlapping calls, a halted engine, or an
// invariant violation (which halts the engine).
func (e *Engine) StepForward(ctx context.Context) (domain.Message, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return domain.Message{}, domain.ErrStepInProgress
	}
	defer e.busy.Store(false)

	return e.forward(ctx, domain.Forward)
}

// StepBackward moves one step back by undoing the two latest positions and
// replaying the earlier one.
func (e *Engine) StepBackward(ctx context.Context) (domain.Message, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return domain.Message{}, domain.ErrStepInProgress
	}
	defer e.busy.Store(false)

	return e.backward(ctx)
}

// CanStepForward reports whether StepForward would move.
func (e *Engine) CanStepForward() bool {
	if !e.playable() {
		return false
	}
	return e.cursor.StepIndex < e.steps.Len()-1
}

// CanStepBackward reports whether StepBackward would move.
func (e *Engine) CanStepBackward() bool {
	if !e.playable() {
		return false
	}
	return e.cursor.StepIndex > 0
}

// Cursor returns the current position; ok is false before the first Reset.
func (e *Engine) Cursor() (domain.Cursor, bool) {
	if e.cursor == nil {
		return domain.Cursor{}, false
	}
	return *e.cursor, true
}

// Labels returns the current slot -> label array.
func (e *Engine) Labels() []domain.Label {
	if e.perm == nil {
		return nil
	}
	return e.perm.Labels()
}

// Halted reports whether playback stopped on an invariant violation.
func (e *Engine) Halted() bool {
	return e.halted
}

func (e *Engine) playable() bool {
	return !e.halted && e.cursor != nil && len(e.soddi) > 0
}

// Restore rebuilds the engine from a persisted session without emitting effects.
func (e *Engine) Restore(sess *domain.Session) error {
	e.steps, e.soddi, e.perm, e.cursor, e.enlarged = nil, nil, nil, nil, nil
	e.style = domain.Style{}
	e.halted = false
	if sess.ID != "" {
		e.sessionID = sess.ID
	}
	if sess.Solution == nil || sess.Cursor == nil {
		return nil
	}

	labels := sess.Labels
	if len(labels) == 0 {
		labels = sess.Solution.IDs
	}
	perm, err := domain.NewPermutation(labels)
	if err != nil {
		return fmt.Errorf("failed to restore permutation: %w", err)
	}

	e.steps = sess.Solution.Steps
	e.soddi = sess.Soddi
	e.style = sess.Solution.Style()
	e.perm = perm
	cur := *sess.Cursor
	e.cursor = &cur
	e.enlarged = append([]int(nil), sess.Enlarged...)
	e.halted = sess.Status == domain.StatusHalted
	return nil
}

// Redraw emits a full frame of the current state for a renderer that has
// seen nothing yet. The transient edges of the latest step are not redrawn.
func (e *Engine) Redraw() {
	if e.perm == nil {
		e.renderer.Controls(domain.Controls{})
		return
	}
	e.renderer.Configure(e.style)
	for slot, label := range e.perm.Labels() {
		e.renderer.Relabel(slot, label)
	}
	if len(e.enlarged) > 0 {
		e.renderer.Resize(domain.SizeEnlarged, e.enlarged...)
		e.renderer.Select(e.enlarged...)
	}
	if e.halted {
		e.renderer.Notify(domain.Message{Kind: domain.MessageError, Text: domain.TextInternalError})
	}
	e.emitControls()
}

// Capture writes the mutable playback state into sess.
func (e *Engine) Capture(sess *domain.Session) {
	sess.Labels = e.Labels()
	sess.Enlarged = append([]int(nil), e.enlarged...)
	if e.cursor != nil {
		cur := *e.cursor
		sess.Cursor = &cur
	} else {
		sess.Cursor = nil
	}
	switch {
	case e.halted:
		sess.Status = domain.StatusHalted
	case e.cursor != nil:
		sess.Status = domain.StatusReady
	}
}
