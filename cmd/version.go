package cmd

import (
	"fmt"
	"strings"

	"github.com/forkops/tagsync/pkg/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			v := valueOr(version.Version, "dev")
			if short {
				fmt.Fprintln(out, v)
				return
			}
			fmt.Fprintf(out, "tagsync %s (commit %s, built %s)\n",
				v,
				valueOr(version.CommitHash, "unknown"),
				valueOr(version.BuildDate, "unknown"),
			)
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}

func valueOr(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
