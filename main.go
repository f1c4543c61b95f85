// Package main is the entry point for the lightship CLI.
package main

import (
	"os"

	"github.com/Kikobeats/lightship/cmd"
	"github.com/Kikobeats/lightship/cmd/serve"
)

func main() {
	rootCmd := cmd.NewRootCommand()
	rootCmd.AddCommand(serve.ServeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
