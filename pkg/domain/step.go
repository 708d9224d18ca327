package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Raw sentinel values emitted by the solver in place of a swap pair.
const (
	SentinelInteractionCompleted          = "#"
	SentinelInteractionAlreadyEstablished = "Done already"
)

// StepKind tags a Step.
type StepKind int

const (
	StepSwap StepKind = iota
	StepInteractionCompleted
	StepInteractionAlreadyEstablished
)

func (k StepKind) String() string {
	switch k {
	case StepSwap:
		return "swap"
	case StepInteractionCompleted:
		return "interaction_completed"
	case StepInteractionAlreadyEstablished:
		return "interaction_already_established"
	default:
		return fmt.Sprintf("step_kind(%d)", int(k))
	}
}

// Step is one elementary operation of a solution.
// A and B are only meaningful when Kind is StepSwap.
type Step struct {
	Kind StepKind
	A    Label
	B    Label
}

// Swap builds a swap step.
func Swap(a, b Label) Step {
	return Step{Kind: StepSwap, A: a, B: b}
}

// InteractionCompleted builds the sentinel marking a newly satisfied interaction.
func InteractionCompleted() Step {
	return Step{Kind: StepInteractionCompleted}
}

// InteractionAlreadyEstablished builds the sentinel marking an interaction that already held.
func InteractionAlreadyEstablished() Step {
	return Step{Kind: StepInteractionAlreadyEstablished}
}

// IsSentinel reports whether the step marks a desired interaction rather than moving labels.
// Both sentinel kinds advance the interaction tracker identically.
func (s Step) IsSentinel() bool {
	return s.Kind == StepInteractionCompleted || s.Kind == StepInteractionAlreadyEstablished
}

func (s Step) String() string {
	switch s.Kind {
	case StepSwap:
		return fmt.Sprintf("(%s, %s)", s.A, s.B)
	case StepInteractionCompleted:
		return SentinelInteractionCompleted
	case StepInteractionAlreadyEstablished:
		return SentinelInteractionAlreadyEstablished
	default:
		return s.Kind.String()
	}
}

// MarshalJSON writes the solver wire form: a two-label array or a sentinel string.
func (s Step) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case StepSwap:
		return json.Marshal([2]Label{s.A, s.B})
	case StepInteractionCompleted:
		return json.Marshal(SentinelInteractionCompleted)
	case StepInteractionAlreadyEstablished:
		return json.Marshal(SentinelInteractionAlreadyEstablished)
	default:
		return nil, fmt.Errorf("%w: unknown kind %d", ErrInvalidStep, s.Kind)
	}
}

// UnmarshalJSON parses the solver wire form once, so playback only matches on Kind.
func (s *Step) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("%w: empty element", ErrInvalidStep)
	}

	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidStep, err)
		}
		switch raw {
		case SentinelInteractionCompleted:
			*s = InteractionCompleted()
		case SentinelInteractionAlreadyEstablished:
			*s = InteractionAlreadyEstablished()
		default:
			return fmt.Errorf("%w: unknown sentinel %q", ErrInvalidStep, raw)
		}
		return nil
	}

	var pair []Label
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("%w: %s is neither a sentinel nor a label pair", ErrInvalidStep, data)
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: swap needs 2 labels, got %d", ErrInvalidStep, len(pair))
	}
	*s = Swap(pair[0], pair[1])
	return nil
}

// StepSequence is the ordered, immutable list of steps of one solution.
type StepSequence []Step

// Len returns L.
func (q StepSequence) Len() int {
	return len(q)
}

// At returns the step at i and whether i is in range.
func (q StepSequence) At(i int) (Step, bool) {
	if i < 0 || i >= len(q) {
		return Step{}, false
	}
	return q[i], true
}

// SentinelsThrough counts sentinel steps at positions <= i.
func (q StepSequence) SentinelsThrough(i int) int {
	n := 0
	for j := 0; j <= i && j < len(q); j++ {
		if q[j].IsSentinel() {
			n++
		}
	}
	return n
}

// Swaps counts swap steps.
func (q StepSequence) Swaps() int {
	n := 0
	for _, st := range q {
		if st.Kind == StepSwap {
			n++
		}
	}
	return n
}
