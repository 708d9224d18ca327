package runtime

import (
	"context"

	"github.com/MIBbrandon/Athena/pkg/domain"
)

// clearTransient removes the reserved edges and shrinks the nodes enlarged by the previous step.
func (e *Engine) clearTransient() {
	e.renderer.RemoveEdges(domain.TransientEdges...)
	if len(e.enlarged) > 0 {
		e.renderer.Resize(domain.SizeNormal, e.enlarged...)
		e.enlarged = nil
	}
}

func (e *Engine) enlarge(slots ...int) {
	e.renderer.Resize(domain.SizeEnlarged, slots...)
	e.enlarged = append(e.enlarged[:0], slots...)
}

// swapSlots applies the swap to the permutation and relabels both nodes.
func (e *Engine) swapSlots(a, b int) error {
	if err := e.perm.Swap(a, b); err != nil {
		return err
	}
	for _, slot := range []int{a, b} {
		label, err := e.perm.LabelAt(slot)
		if err != nil {
			return err
		}
		e.renderer.Relabel(slot, label)
	}
	return nil
}

func (e *Engine) emitControls() {
	e.renderer.Controls(domain.Controls{
		Forward:  e.CanStepForward(),
		Backward: e.CanStepBackward(),
	})
}

// slotOf looks a label up and halts playback when it is missing.
func (e *Engine) slotOf(ctx context.Context, stepIndex int, label domain.Label) (int, error) {
	slot, err := e.perm.SlotOf(label)
	if err != nil {
		return -1, e.halt(ctx, stepIndex, label, err)
	}
	return slot, nil
}

// halt stops playback for the session after an invariant violation.
func (e *Engine) halt(ctx context.Context, stepIndex int, label domain.Label, cause error) error {
	e.halted = true
	err := &domain.InvariantError{StepIndex: stepIndex, Label: label, Err: cause}

	e.logger.ErrorContext(ctx, "playback halted",
		"session_id", e.sessionID,
		"step_index", stepIndex,
		"label", label,
		"err", cause,
	)
	e.renderer.Notify(domain.Message{Kind: domain.MessageError, Text: domain.TextInternalError})
	e.renderer.Controls(domain.Controls{})
	e.emitHalt(ctx, err)
	return err
}

// nopRenderer discards all effects.
type nopRenderer struct{}

func (nopRenderer) Configure(domain.Style) {}
func (nopRenderer) Resize(domain.NodeSize, ...int) {}
func (nopRenderer) AddEdges(...domain.Edge) {}
func (nopRenderer) RemoveEdges(...domain.EdgeID) {}
func (nopRenderer) Relabel(int, domain.Label) {}
func (nopRenderer) Select(...int) {}
func (nopRenderer) Notify(domain.Message) {}
func (nopRenderer) Controls(domain.Controls) {}
