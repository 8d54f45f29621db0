package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/LISSConsulting/LISSTech.Cascade/internal/config"
)

func demoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive menu bar demo",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			record, _ := cmd.Flags().GetString("record")
			watch, _ := cmd.Flags().GetBool("watch")

			cfg, path, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()
			registerQuitHandler()

			return runDemo(ctx, cfg, demoOptions{
				configPath: path,
				recordDir:  record,
				watch:      watch,
			})
		},
	}
	cmd.Flags().String("record", "", "directory to record the input journal into")
	cmd.Flags().Bool("watch", false, "reload cascade.toml when it changes")
	return cmd
}

func replayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <journal.jsonl>",
		Short: "Replay a recorded input journal on a virtual clock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, _, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			logger, closeLog, err := newLogger(cfg.Log, os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()
			return runReplay(cmd.OutOrStdout(), args[0], cfg, cfg.Platform(runtime.GOOS, true), logger)
		},
	}
}

func keysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List demo commands and their shortcuts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, _, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatKeys(cfg, cfg.Platform(runtime.GOOS, true)))
			return nil
		},
	}
}

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <shortcut>...",
		Short: "Parse shortcut text and show how it matches",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatParsed(args))
			return nil
		},
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create cascade.toml in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			path, err := config.InitFile(dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
}

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of cascade.toml",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Schema()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
