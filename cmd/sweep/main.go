package main

import (
	"os"

	"github.com/grovetools/sweep/cli"
	"github.com/grovetools/sweep/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		handler := cli.NewErrorHandler(os.Stderr, false)
		handler.Handle(err)
		os.Exit(1)
	}
}
