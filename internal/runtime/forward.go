package runtime

import (
	"context"

	"github.com/MIBbrandon/Athena/pkg/domain"
)

// guard evaluates the preconditions shared by both directions.
// It returns a status message when the call must be a no-op.
func (e *Engine) guard() (domain.Message, bool) {
	if e.cursor == nil {
		return domain.StatusMessage(domain.TextSubmitFirst), true
	}
	if len(e.soddi) == 0 {
		return domain.StatusMessage(domain.TextNoStepsRequired), true
	}
	return domain.Message{}, false
}

func (e *Engine) forward(ctx context.Context, dir domain.Direction) (domain.Message, error) {
	if e.halted {
		return domain.Message{}, domain.ErrPlaybackHalted
	}
	if msg, stop := e.guard(); stop {
		e.renderer.Notify(msg)
		return msg, nil
	}
	last := e.steps.Len() - 1
	if e.cursor.StepIndex >= last {
		msg := domain.StatusMessage(domain.TextAllCompleted)
		e.renderer.Notify(msg)
		return msg, nil
	}

	e.clearTransient()

	next := *e.cursor
	next.StepIndex++
	step := e.steps[next.StepIndex]
	if step.IsSentinel() {
		next.SoddiIndex++
	}
	terminal := next.StepIndex == last

	interaction := e.activeInteraction(next, step)
	src, err := e.slotOf(ctx, next.StepIndex, interaction.Source)
	if err != nil {
		return domain.Message{}, err
	}
	dst, err := e.slotOf(ctx, next.StepIndex, interaction.Target)
	if err != nil {
		return domain.Message{}, err
	}

	var msg domain.Message
	switch step.Kind {
	case domain.StepInteractionCompleted, domain.StepInteractionAlreadyEstablished:
		// Both sentinel kinds are drawn the same way.
		*e.cursor = next
		e.renderer.AddEdges(domain.Edge{ID: domain.EdgePrimary, From: src, To: dst, Kind: domain.EdgeDone})
		e.enlarge(src, dst)
		e.renderer.Select(src, dst)
		msg = domain.AllowedMessage(interaction)

	case domain.StepSwap:
		a, err := e.slotOf(ctx, next.StepIndex, step.A)
		if err != nil {
			return domain.Message{}, err
		}
		b, err := e.slotOf(ctx, next.StepIndex, step.B)
		if err != nil {
			return domain.Message{}, err
		}
		*e.cursor = next
		e.enlarge(a, b)
		e.renderer.AddEdges(
			domain.Edge{ID: domain.EdgePrimary, From: a, To: b, Kind: domain.EdgeSwap},
			domain.Edge{ID: domain.EdgeSecondary, From: b, To: a, Kind: domain.EdgeSwap},
		)
		if err := e.swapSlots(a, b); err != nil {
			return domain.Message{}, e.halt(ctx, next.StepIndex, step.A, err)
		}
		e.renderer.Select(a, b)
		msg = domain.SwappedMessage(step.A, step.B)
	}

	if terminal {
		e.renderer.Notify(domain.StatusMessage(domain.TextAllCompleted))
	}
	e.renderer.Notify(msg)
	e.emitControls()

	e.logger.DebugContext(ctx, "step applied",
		"session_id", e.sessionID,
		"direction", dir,
		"step_index", e.cursor.StepIndex,
		"soddi_index", e.cursor.SoddiIndex,
		"kind", step.Kind.String(),
	)
	e.emitStep(ctx, dir, step.Kind, terminal)
	return msg, nil
}

// activeInteraction resolves the desired interaction a step belongs to.
// A sentinel closes the interaction it was counted for; a swap works toward the next one.
func (e *Engine) activeInteraction(cur domain.Cursor, step domain.Step) domain.DesiredInteraction {
	idx := cur.SoddiIndex
	if step.IsSentinel() {
		idx--
	}
	if idx >= len(e.soddi) {
		idx = len(e.soddi) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return e.soddi[idx]
}
