package runtime

import (
	"context"

	"github.com/MIBbrandon/Athena/pkg/domain"
)

func (e *Engine) backward(ctx context.Context) (domain.Message, error) {
	if e.halted {
		return domain.Message{}, domain.ErrPlaybackHalted
	}
	if msg, stop := e.guard(); stop {
		e.renderer.Notify(msg)
		return msg, nil
	}
	if e.cursor.StepIndex <= 0 {
		msg := domain.StatusMessage(domain.TextNoPreviousStep)
		e.renderer.Notify(msg)
		return msg, nil
	}

	e.renderer.RemoveEdges(domain.TransientEdges...)

	// Undo the current and the previous position, latest first. Sentinels
	// carry no permutation effect and only give back their interaction count.
	k := e.cursor.StepIndex
	for _, pos := range []int{k, k - 1} {
		step := e.steps[pos]
		if step.IsSentinel() {
			e.cursor.SoddiIndex--
			continue
		}
		a, err := e.slotOf(ctx, pos, step.A)
		if err != nil {
			return domain.Message{}, err
		}
		b, err := e.slotOf(ctx, pos, step.B)
		if err != nil {
			return domain.Message{}, err
		}
		if err := e.swapSlots(a, b); err != nil {
			return domain.Message{}, e.halt(ctx, pos, step.A, err)
		}
	}
	e.cursor.StepIndex -= 2

	// Replaying the earlier position redraws it through the forward path.
	return e.forward(ctx, domain.Backward)
}
