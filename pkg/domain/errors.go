package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

var (
	// ErrLabelNotFound means a step or interaction names a label absent from the permutation.
	ErrLabelNotFound = errors.New("label not found")
	// ErrDuplicateLabel means the initial ids are not a bijection.
	ErrDuplicateLabel = errors.New("duplicate label")
	// ErrInvalidStep is returned for solver elements that are neither a pair nor a sentinel.
	ErrInvalidStep = errors.New("invalid step")
	// ErrInvalidSoddi is returned when the desired-interaction text cannot be decoded.
	ErrInvalidSoddi = errors.New("invalid soddi")
	// ErrSolverRejected is returned when the solver refuses the submitted puzzle.
	ErrSolverRejected = errors.New("solver rejected input")
	// ErrInputTooLarge is returned for puzzle texts above the size limit.
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	// ErrInvalidUTF8 is returned for puzzle texts that are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("input contains invalid UTF-8 sequences")
)

var (
	// ErrPlaybackHalted is returned by every step call after an invariant violation.
	ErrPlaybackHalted = errors.New("playback halted")
	// ErrStepInProgress is returned when a step call overlaps another one.
	ErrStepInProgress = errors.New("step already in progress")
	// ErrSolveInFlight is returned for step calls while a solve request is outstanding.
	ErrSolveInFlight = errors.New("solve request in flight")
)

// InvariantError reports a failed label lookup during playback.
type InvariantError struct {
	StepIndex int
	Label     Label
	Err       error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated at step %d (label %q): %v", e.StepIndex, e.Label, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}
