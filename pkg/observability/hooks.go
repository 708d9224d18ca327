package observability

import (
	"context"
	"log/slog"

	"github.com/MIBbrandon/Athena/pkg/domain"
)

// ComposeHooks returns hooks that call each of the given hooks in order.
func ComposeHooks(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range all {
		h := h
		if h.OnReset != nil {
			prev := out.OnReset
			out.OnReset = func(ctx context.Context, e *domain.ResetEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnReset(ctx, e)
			}
		}
		if h.OnStep != nil {
			prev := out.OnStep
			out.OnStep = func(ctx context.Context, e *domain.StepEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnStep(ctx, e)
			}
		}
		if h.OnHalt != nil {
			prev := out.OnHalt
			out.OnHalt = func(ctx context.Context, e *domain.HaltEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnHalt(ctx, e)
			}
		}
	}
	return out
}

// LoggingHooks logs every lifecycle event.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnReset: func(ctx context.Context, e *domain.ResetEvent) {
			logger.InfoContext(ctx, "solution_installed",
				"session_id", e.SessionID,
				"steps", e.Steps,
				"interactions", e.Interactions,
				"slots", e.Slots,
			)
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.InfoContext(ctx, "step",
				"session_id", e.SessionID,
				"direction", e.Direction,
				"kind", e.Kind.String(),
				"step_index", e.Cursor.StepIndex,
				"soddi_index", e.Cursor.SoddiIndex,
				"terminal", e.Terminal,
			)
		},
		OnHalt: func(ctx context.Context, e *domain.HaltEvent) {
			logger.ErrorContext(ctx, "playback_halted",
				"session_id", e.SessionID,
				"err", e.Err,
			)
		},
	}
}
