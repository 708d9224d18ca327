package athena_test

import (
	"context"
	"fmt"
	"log"

	"github.com/MIBbrandon/Athena"
	"github.com/MIBbrandon/Athena/pkg/adapters/solver"
	"github.com/MIBbrandon/Athena/pkg/domain"
	"github.com/MIBbrandon/Athena/pkg/render"
)

// ExampleNew_static plays a fixed solution without a solver service.
// This is useful for tests, offline demos, or replaying a saved solver response.
func ExampleNew_static() {
	sol := &domain.Solution{
		TotalSwaps: 2,
		Steps: domain.StepSequence{
			domain.Swap("1", "2"),
			domain.InteractionCompleted(),
			domain.Swap("3", "4"),
			domain.InteractionAlreadyEstablished(),
		},
		IDs: []domain.Label{"1", "2", "3", "4"},
	}
	player := athena.New(athena.WithSolver(solver.NewStatic(sol)))

	ctx := context.Background()
	board := render.NewBoard()
	_, err := player.Submit(ctx, "example", domain.Puzzle{
		SwapGraph:        "[(1,2),(2,3),(3,4)]",
		InteractionGraph: "[(2,1),(4,3)]",
		Soddi:            "[(2,1),(4,3)]",
	}, board)
	if err != nil {
		log.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		_, msg, err := player.StepForward(ctx, "example", board)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(msg.Text, board.Labels())
	}

	_, msg, err := player.StepBackward(ctx, "example", board)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(msg.Text, board.Labels())
	// Output:
	// swapped (1, 2) [2 1 3 4]
	// allowed interaction 2->1 [2 1 3 4]
	// swapped (3, 4) [2 1 4 3]
	// allowed interaction 2->1 [2 1 3 4]
}
