// Package cmd provides the root command for the lightship CLI.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const programName = "lightship"

// NewRootCommand builds the root cobra command. Subcommands are added by
// the caller (see main.go).
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   programName,
		Short: "A process lifecycle manager for Kubernetes-style orchestrators",
		Long:  "lightship mediates between an orchestrator and a long-running process: HTTP health/liveness/readiness probes plus a graceful-shutdown coordinator.",
	}

	cobra.OnInitialize(func() {
		viper.SetEnvPrefix("LIGHTSHIP")
		viper.AutomaticEnv()
	})

	return root
}
