package main

import (
	"fmt"
	"os"

	"github.com/forkops/tagsync/cmd"
)

func main() {
	if err := cmd.InitCommands(); err != nil {
		fmt.Fprintf(os.Stderr, "tagsync: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tagsync: %v\n", err)
		os.Exit(1)
	}
}
