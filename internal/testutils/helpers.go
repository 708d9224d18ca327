// Package testutils holds fixtures shared by tests across packages.
package testutils

import (
	"github.com/MIBbrandon/Athena/pkg/domain"
)

// FourNodePuzzle is a chain of four nodes where 2->1 and 4->3 must interact.
func FourNodePuzzle() domain.Puzzle {
	return domain.Puzzle{
		SwapGraph:        "[(1,2),(2,3),(3,4)]",
		InteractionGraph: "[(2,1),(4,3)]",
		Soddi:            "[(2,1),(4,3)]",
	}
}

// FourNodeSolution solves FourNodePuzzle: one swap per interaction, the
// second closed by an already-established sentinel.
func FourNodeSolution() *domain.Solution {
	return &domain.Solution{
		TotalSwaps: 2,
		Steps: domain.StepSequence{
			domain.Swap("1", "2"),
			domain.InteractionCompleted(),
			domain.Swap("3", "4"),
			domain.InteractionAlreadyEstablished(),
		},
		IDs: []domain.Label{"1", "2", "3", "4"},
	}
}

// FourNodeSoddi is the parsed desired-interaction list of FourNodePuzzle.
func FourNodeSoddi() domain.SoddiList {
	return domain.SoddiList{{Source: "2", Target: "1"}, {Source: "4", Target: "3"}}
}
