package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MIBbrandon/Athena"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of athena",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "athena version %s\n", strings.TrimSpace(athena.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
