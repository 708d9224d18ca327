package ports

import (
	"context"

	"github.com/MIBbrandon/Athena/pkg/domain"
)

// Solver computes swap sequences. It is remote in production.
type Solver interface {
	// Solve returns the solution for a puzzle.
	Solve(ctx context.Context, puzzle domain.Puzzle) (*domain.Solution, error)

	// Random returns a random valid puzzle instance.
	Random(ctx context.Context, req domain.RandomRequest) (*domain.Puzzle, error)
}
