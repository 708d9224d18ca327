package runtime

import (
	"context"
	"time"

	"github.com/MIBbrandon/Athena/pkg/domain"
)

func (e *Engine) base() domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), SessionID: e.sessionID}
}

func (e *Engine) emitReset(ctx context.Context) {
	if e.hooks.OnReset == nil {
		return
	}
	e.hooks.OnReset(ctx, &domain.ResetEvent{
		EventBase:    e.base(),
		Steps:        e.steps.Len(),
		Interactions: len(e.soddi),
		Slots:        e.perm.Len(),
	})
}

func (e *Engine) emitStep(ctx context.Context, dir domain.Direction, kind domain.StepKind, terminal bool) {
	if e.hooks.OnStep == nil {
		return
	}
	e.hooks.OnStep(ctx, &domain.StepEvent{
		EventBase: e.base(),
		Direction: dir,
		Cursor:    *e.cursor,
		Kind:      kind,
		Terminal:  terminal,
	})
}

func (e *Engine) emitHalt(ctx context.Context, err error) {
	if e.hooks.OnHalt == nil {
		return
	}
	e.hooks.OnHalt(ctx, &domain.HaltEvent{EventBase: e.base(), Err: err})
}
