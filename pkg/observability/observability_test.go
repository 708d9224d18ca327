package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MIBbrandon/Athena/internal/logging"
	"github.com/MIBbrandon/Athena/pkg/domain"
	"github.com/MIBbrandon/Athena/pkg/observability"
)

func counterValue(t *testing.T, c prometheus.Collector) float64 {
	t.Helper()
	ch := make(chan prometheus.Metric, 1)
	c.Collect(ch)
	var pb dto.Metric
	require.NoError(t, (<-ch).Write(&pb))
	return pb.GetCounter().GetValue()
}

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	ctx := context.Background()
	hooks := m.Hooks()
	hooks.OnReset(ctx, &domain.ResetEvent{})
	hooks.OnStep(ctx, &domain.StepEvent{Direction: domain.Forward, Kind: domain.StepSwap})
	hooks.OnStep(ctx, &domain.StepEvent{Direction: domain.Forward, Kind: domain.StepInteractionCompleted, Terminal: true})
	hooks.OnStep(ctx, &domain.StepEvent{Direction: domain.Backward, Kind: domain.StepSwap, Terminal: true})
	hooks.OnHalt(ctx, &domain.HaltEvent{})

	assert.Equal(t, 1.0, counterValue(t, m.Resets))
	assert.Equal(t, 1.0, counterValue(t, m.Halts))
	assert.Equal(t, 1.0, counterValue(t, m.Completed))
	assert.Equal(t, 1.0, counterValue(t, m.Steps.WithLabelValues("forward", "swap")))
	assert.Equal(t, 1.0, counterValue(t, m.Steps.WithLabelValues("backward", "swap")))

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err, "registering twice fails")
}

func TestComposeHooks(t *testing.T) {
	var order []string
	a := domain.LifecycleHooks{
		OnStep: func(context.Context, *domain.StepEvent) { order = append(order, "a") },
	}
	b := domain.LifecycleHooks{
		OnStep:  func(context.Context, *domain.StepEvent) { order = append(order, "b") },
		OnReset: func(context.Context, *domain.ResetEvent) { order = append(order, "reset") },
	}

	hooks := observability.ComposeHooks(a, domain.LifecycleHooks{}, b)
	hooks.OnStep(context.Background(), &domain.StepEvent{})
	hooks.OnReset(context.Background(), &domain.ResetEvent{})

	assert.Equal(t, []string{"a", "b", "reset"}, order)
	assert.Nil(t, hooks.OnHalt)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	hooks := observability.LoggingHooks(logging.NewWithWriter(&buf, slog.LevelInfo, logging.FormatText))

	hooks.OnHalt(context.Background(), &domain.HaltEvent{
		EventBase: domain.EventBase{SessionID: "s1"},
		Err:       errors.New("label not found"),
	})
	assert.Contains(t, buf.String(), "playback_halted")
	assert.Contains(t, buf.String(), "session_id=s1")
	assert.Contains(t, buf.String(), `err="label not found"`)
}
