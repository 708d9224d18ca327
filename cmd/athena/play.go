package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MIBbrandon/Athena/internal/cli"
	"github.com/MIBbrandon/Athena/internal/presentation/tui"
	"github.com/MIBbrandon/Athena/pkg/domain"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Step through a solution in the terminal",
	Long: `Submits a puzzle and plays back the solution interactively.
Keys: n or right arrow steps forward, p or left arrow steps back, r redraws, q quits.

With --solution the saved solver response is played instead of calling the solver.
Without --soddi the stored session given by --session is resumed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		solutionPath, _ := cmd.Flags().GetString("solution")
		sessionID, _ := cmd.Flags().GetString("session")
		showSteps, _ := cmd.Flags().GetBool("steps")

		var puzzle *domain.Puzzle
		if cmd.Flags().Changed("soddi") {
			puzzle = &domain.Puzzle{}
			puzzle.SwapGraph, _ = cmd.Flags().GetString("swaps")
			puzzle.InteractionGraph, _ = cmd.Flags().GetString("interactions")
			puzzle.Soddi, _ = cmd.Flags().GetString("soddi")
		} else if sessionID == "" {
			return errors.New("either --soddi or --session is required")
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		player, backend, err := cli.NewPlayer(cfg, logger, cli.PlayerOptions{SolutionPath: solutionPath})
		if err != nil {
			return err
		}
		defer backend.Close()

		profile := cli.Profile(os.Stdout)
		term := cli.Terminal{
			In:       os.Stdin,
			Out:      os.Stdout,
			View:     tui.NewView(profile),
			Markdown: tui.NewRenderer(cli.Width(os.Stdout, 80)),
		}

		if cli.IsTerminal(os.Stdin) {
			tui.PrintBanner(os.Stdout, profile)
			restore, err := cli.MakeRaw(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to enter raw mode: %w", err)
			}
			defer restore()
			term.Raw = true
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		logger.Debug("playing session", "session_id", sessionID, "submit", puzzle != nil)
		err = cli.Play(sigCtx, player, cli.PlayOptions{
			SessionID: sessionID,
			Puzzle:    puzzle,
			Steps:     showSteps,
		}, term)
		if sigCtx.Signal() != nil {
			return nil
		}
		if err == nil && !term.Raw {
			fmt.Fprintf(os.Stdout, "session %s\n", sessionID)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().String("solution", "", "Saved solver response to play instead of calling the solver")
	playCmd.Flags().String("swaps", "", "Swap graph edges, e.g. [(1,2),(2,3)]")
	playCmd.Flags().String("interactions", "", "Interaction graph edges, e.g. [(2,1)]")
	playCmd.Flags().String("soddi", "", "Ordered desired interactions, e.g. [(2,1)]")
	playCmd.Flags().String("session", "", "Session ID to create or resume (default: new uuid)")
	playCmd.Flags().Bool("steps", false, "Print the step listing before playing")
}
