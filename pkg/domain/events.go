package domain

import (
	"context"
	"time"
)

// Direction of a playback step.
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id,omitempty"`
}

// ResetEvent is emitted when a new solution is installed.
type ResetEvent struct {
	EventBase
	Steps        int `json:"steps"`
	Interactions int `json:"interactions"`
	Slots        int `json:"slots"`
}

// StepEvent is emitted after an accepted transition.
type StepEvent struct {
	EventBase
	Direction Direction `json:"direction"`
	Cursor    Cursor    `json:"cursor"`
	Kind      StepKind  `json:"kind"`
	Terminal  bool      `json:"terminal"`
}

// HaltEvent is emitted when playback stops on an invariant violation.
type HaltEvent struct {
	EventBase
	Err error `json:"-"`
}

// LifecycleHooks defines callbacks for playback observability.
type LifecycleHooks struct {
	OnReset func(context.Context, *ResetEvent)
	OnStep  func(context.Context, *StepEvent)
	OnHalt  func(context.Context, *HaltEvent)
}
