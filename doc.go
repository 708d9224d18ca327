/*
Package athena plays back solutions to the swap puzzle one step at a time.

A puzzle is a swap graph, an interaction graph and an ordered list of desired
interactions (source -> target). An external solver answers with a sequence of
steps: pairs of labels to swap, interleaved with sentinels marking that the
next desired interaction is now allowed. The Player walks that sequence forward
and backward, keeping the label permutation, a cursor and the highlight of the
latest step in a persisted session.

# Usage

	player := athena.New(
		athena.WithSolver(solver.NewClient("http://localhost:5000")),
	)

	ctx := context.Background()
	sess, err := player.Create(ctx)
	if err != nil {
		log.Fatal(err)
	}

	rec := render.NewRecorder()
	_, err = player.Submit(ctx, sess.ID, domain.Puzzle{
		SwapGraph:        "[(1,2),(2,3),(3,4)]",
		InteractionGraph: "[(2,1),(4,3)]",
		Soddi:            "[(2,1),(4,3)]",
	}, rec)
	if err != nil {
		log.Fatal(err)
	}

	_, msg, err := player.StepForward(ctx, sess.ID, rec)
	fmt.Println(msg) // swapped (1, 2)

Drawing goes through a ports.Renderer. The render package records effects as
data for remote clients; the terminal player draws them with ANSI colours.

# Architecture

  - pkg/domain: steps, labels, permutations, cursor and sessions.
  - internal/runtime: the playback engine.
  - pkg/session: per-session locking over a ports.SessionStore.
  - pkg/adapters: memory, Redis and solver adapters, the HTTP API and the MCP server.
*/
package athena
