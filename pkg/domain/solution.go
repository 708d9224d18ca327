package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Puzzle holds the three texts a user submits. Field names follow the solver's wire format.
type Puzzle struct {
	SwapGraph        string `json:"gSwapsInputted" yaml:"swaps"`
	InteractionGraph string `json:"gInteractionsInputted" yaml:"interactions"`
	Soddi            string `json:"SODDIInputted" yaml:"soddi"`
}

// RandomRequest asks the solver for a random valid puzzle instance.
type RandomRequest struct {
	NumNodes                      int     `json:"numNodes"`
	SoddiLength                   int     `json:"soddiLength"`
	SwapEdgeCreationChance        float64 `json:"swapEdgeCreationChance"`
	InteractionEdgeCreationChance float64 `json:"interactionEdgeCreationChance"`
}

// DefaultRandomRequest returns the parameters used when a caller sends none.
func DefaultRandomRequest() RandomRequest {
	return RandomRequest{
		NumNodes:                      10,
		SoddiLength:                   5,
		SwapEdgeCreationChance:        0.5,
		InteractionEdgeCreationChance: 0.3,
	}
}

// Style carries renderer parameters. Playback forwards it without interpreting it.
type Style struct {
	Node map[string]any `json:"node_attributes,omitempty"`
	Edge map[string]any `json:"edge_attributes,omitempty"`
}

// Solution is a decoded solve result.
type Solution struct {
	TotalSwaps int            `json:"totalSwaps"`
	Steps      StepSequence   `json:"swapSteps"`
	IDs        []Label        `json:"ids"`
	NodeAttrs  map[string]any `json:"node_attributes,omitempty"`
	EdgeAttrs  map[string]any `json:"edge_attributes,omitempty"`
}

// Style returns the opaque renderer style of the solution.
func (s *Solution) Style() Style {
	return Style{Node: s.NodeAttrs, Edge: s.EdgeAttrs}
}

// DecodeSolution parses a solver response body.
// The solver answers {"ERROR": "..."} for inputs it refuses; that surfaces as ErrSolverRejected.
func DecodeSolution(data []byte) (*Solution, error) {
	var probe struct {
		Error string `json:"ERROR"`
	}
	if err := json.Unmarshal(data, &probe); err == nil && probe.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrSolverRejected, probe.Error)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var sol Solution
	if err := dec.Decode(&sol); err != nil {
		return nil, fmt.Errorf("failed to decode solution: %w", err)
	}
	return &sol, nil
}

// Validate checks the correspondence playback relies on: the initial ids form a
// bijection and every label named by a step or an interaction exists.
func (s *Solution) Validate(soddi SoddiList) error {
	perm, err := NewPermutation(s.IDs)
	if err != nil {
		return err
	}
	for i, st := range s.Steps {
		if st.Kind != StepSwap {
			continue
		}
		for _, l := range []Label{st.A, st.B} {
			if _, err := perm.SlotOf(l); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		}
	}
	for i, d := range soddi {
		for _, l := range []Label{d.Source, d.Target} {
			if _, err := perm.SlotOf(l); err != nil {
				return fmt.Errorf("interaction %d: %w", i, err)
			}
		}
	}
	return nil
}
