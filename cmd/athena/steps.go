package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MIBbrandon/Athena/internal/cli"
	"github.com/MIBbrandon/Athena/internal/presentation/tui"
	"github.com/MIBbrandon/Athena/pkg/adapters/solver"
	"github.com/MIBbrandon/Athena/pkg/domain"
)

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "Print the swap steps of a saved solution",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("solution")
		soddiText, _ := cmd.Flags().GetString("soddi")

		static, err := solver.LoadStatic(path)
		if err != nil {
			return err
		}
		var soddi domain.SoddiList
		if soddiText != "" {
			if soddi, err = domain.ParseSoddi(soddiText); err != nil {
				return err
			}
		}

		out, err := tui.NewRenderer(cli.Width(os.Stdout, 80))(tui.StepsMarkdown(static.Solution, soddi))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stepsCmd)
	stepsCmd.Flags().String("solution", "", "Saved solver response")
	stepsCmd.Flags().String("soddi", "", "Desired interactions, to label each step")
	_ = stepsCmd.MarkFlagRequired("solution")
}
