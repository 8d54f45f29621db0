// Package main is the entry point for the Cascade CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "cascade",
		Short:        "Cascade: nested menu interaction engine",
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "path to cascade.toml (default: search up from the working directory)")

	root.AddCommand(
		demoCmd(),
		replayCmd(),
		keysCmd(),
		parseCmd(),
		initCmd(),
		schemaCmd(),
	)

	return root
}

// signalContext returns a context that is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
