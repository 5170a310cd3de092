package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tagsync",
	Short: "A CLI tool for syncing upstream tags into fork branches",
	Long: `tagsync keeps a fork's branch set synchronized with the tags of its
upstream repository: every new upstream tag is materialized as a branch in
the fork, optionally rewritten with a patch before being pushed.`,
}

func Execute() error {
	return rootCmd.Execute()
}
