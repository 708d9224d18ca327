package solver

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/MIBbrandon/Athena/pkg/domain"
	"github.com/MIBbrandon/Athena/pkg/ports"
)

var _ ports.Solver = (*Static)(nil)

// ErrNoRandomPuzzle is returned by Static when it was built without a puzzle.
var ErrNoRandomPuzzle = errors.New("no random puzzle available")

// Static answers every solve with a fixed solution.
// It serves offline play from a saved solver response and tests.
type Static struct {
	Solution *domain.Solution
	Puzzle   *domain.Puzzle
}

// NewStatic returns a solver that always answers sol.
func NewStatic(sol *domain.Solution) *Static {
	return &Static{Solution: sol}
}

// LoadStatic reads a saved solver response from path.
func LoadStatic(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read solution file: %w", err)
	}
	if err := rejected(data); err != nil {
		return nil, err
	}
	if err := validate(solutionSchema, data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	sol, err := domain.DecodeSolution(data)
	if err != nil {
		return nil, err
	}
	return NewStatic(sol), nil
}

// Solve returns a copy of the fixed solution.
func (s *Static) Solve(ctx context.Context, _ domain.Puzzle) (*domain.Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Solution == nil {
		return nil, fmt.Errorf("%w: no solution configured", domain.ErrSolverRejected)
	}
	sol := *s.Solution
	sol.Steps = append(domain.StepSequence(nil), s.Solution.Steps...)
	sol.IDs = append([]domain.Label(nil), s.Solution.IDs...)
	return &sol, nil
}

// Random returns the fixed puzzle, if any.
func (s *Static) Random(ctx context.Context, _ domain.RandomRequest) (*domain.Puzzle, error) {
	if s.Puzzle == nil {
		return nil, ErrNoRandomPuzzle
	}
	p := *s.Puzzle
	return &p, nil
}
