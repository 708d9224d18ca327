package domain

import (
	"maps"
	"time"
)

// SessionStatus describes what a session can currently accept.
type SessionStatus string

const (
	StatusIdle    SessionStatus = "idle"    // No solution installed yet
	StatusSolving SessionStatus = "solving" // A solve request is outstanding; steps are refused
	StatusReady   SessionStatus = "ready"   // Playback available
	StatusHalted  SessionStatus = "halted"  // Playback stopped after an invariant violation
)

// Session is the persisted snapshot of one player.
// Solution, Soddi and the initial permutation are replaced together, never partially.
type Session struct {
	ID       string        `json:"id"`
	Status   SessionStatus `json:"status"`
	Puzzle   Puzzle        `json:"puzzle"`
	Solution *Solution     `json:"solution,omitempty"`
	Soddi    SoddiList     `json:"soddi,omitempty"`

	// Labels is the current slot -> label array.
	Labels []Label `json:"labels,omitempty"`

	// Cursor is nil until a solution has been submitted.
	Cursor *Cursor `json:"cursor,omitempty"`

	// Enlarged lists the slots drawn at enlarged size by the last step.
	Enlarged []int `json:"enlarged,omitempty"`

	// PreviousStatus is restored when a solve attempt fails.
	PreviousStatus SessionStatus `json:"previous_status,omitempty"`

	// SolveStartedAt is set while Status is solving.
	SolveStartedAt *time.Time `json:"solve_started_at,omitempty"`

	LastMessage *Message  `json:"last_message,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Sealed carries the encrypted session when a store encrypts at rest.
	// Only ID, Status and UpdatedAt are stored alongside it in the clear.
	Sealed []byte `json:"sealed,omitempty"`
}

// NewSession creates an idle session.
func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		Status:    StatusIdle,
		UpdatedAt: time.Now().UTC(),
	}
}

// Snapshot returns a deep copy safe to hand to another goroutine or store.
func (s *Session) Snapshot() *Session {
	if s == nil {
		return nil
	}
	c := *s
	if s.Solution != nil {
		sol := *s.Solution
		sol.Steps = append(StepSequence(nil), s.Solution.Steps...)
		sol.IDs = append([]Label(nil), s.Solution.IDs...)
		sol.NodeAttrs = maps.Clone(s.Solution.NodeAttrs)
		sol.EdgeAttrs = maps.Clone(s.Solution.EdgeAttrs)
		c.Solution = &sol
	}
	c.Soddi = append(SoddiList(nil), s.Soddi...)
	c.Labels = append([]Label(nil), s.Labels...)
	c.Enlarged = append([]int(nil), s.Enlarged...)
	c.Sealed = append([]byte(nil), s.Sealed...)
	if s.Cursor != nil {
		cur := *s.Cursor
		c.Cursor = &cur
	}
	if s.SolveStartedAt != nil {
		at := *s.SolveStartedAt
		c.SolveStartedAt = &at
	}
	if s.LastMessage != nil {
		msg := *s.LastMessage
		c.LastMessage = &msg
	}
	return &c
}

// Controls reports which step directions the stored playback allows.
func (s *Session) Controls() Controls {
	if s.Status != StatusReady || s.Solution == nil || s.Cursor == nil || len(s.Soddi) == 0 {
		return Controls{}
	}
	return Controls{
		Forward:  s.Cursor.StepIndex < s.Solution.Steps.Len()-1,
		Backward: s.Cursor.StepIndex > 0,
	}
}
