package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/LISSConsulting/LISSTech.Cascade/internal/config"
	"github.com/LISSConsulting/LISSTech.Cascade/internal/store"
	"github.com/LISSConsulting/LISSTech.Cascade/internal/tui"
)

// keepJournals is how many recorded sessions a --record directory keeps.
const keepJournals = 20

// loadConfig loads and validates cascade.toml. An empty path searches up
// from the working directory; when nothing is found the defaults apply and
// the returned path is empty.
func loadConfig(path string) (*config.Config, string, error) {
	if path == "" {
		found, ok := config.Find()
		if !ok {
			d := config.Defaults()
			return &d, "", nil
		}
		path = found
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, path, nil
}

// newLogger builds the zerolog logger for [log]. With no file configured it
// writes human-readable lines to fallback, or discards when fallback is nil.
// The returned func closes the log file.
func newLogger(cfg config.LogConfig, fallback io.Writer) (zerolog.Logger, func(), error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	if cfg.File == "" {
		if fallback == nil {
			return zerolog.Nop(), func() {}, nil
		}
		out := zerolog.ConsoleWriter{Out: fallback, TimeFormat: time.RFC3339}
		return zerolog.New(out).Level(level).With().Timestamp().Logger(), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("log: mkdir %s: %w", filepath.Dir(cfg.File), err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("log: open %s: %w", cfg.File, err)
	}
	logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return logger, func() { _ = f.Close() }, nil
}

type demoOptions struct {
	configPath string
	recordDir  string
	watch      bool
}

// openJournal starts a new recording in dir and prunes old ones.
func openJournal(dir string) (*store.JSONL, error) {
	j, err := store.NewJSONL(dir)
	if err != nil {
		return nil, err
	}
	if err := store.EnforceRetention(dir, keepJournals); err != nil {
		_ = j.Close()
		return nil, err
	}
	return j, nil
}

// runDemo runs the bubbletea demo until the user quits or ctx is cancelled.
// With watch set, config changes are pushed into the running program.
func runDemo(ctx context.Context, cfg *config.Config, opts demoOptions) error {
	// The TUI owns the terminal, so logs go to the configured file or nowhere.
	logger, closeLog, err := newLogger(cfg.Log, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	model := tui.Options{
		Config:   cfg,
		Platform: cfg.Platform(runtime.GOOS, true),
		Logger:   logger,
	}
	if opts.recordDir != "" {
		j, err := openJournal(opts.recordDir)
		if err != nil {
			return err
		}
		defer j.Close()
		model.Journal = j
		model.JournalPath = j.Path()
		logger.Info().Str("journal", j.Path()).Msg("recording input")
	}

	progOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	}
	if cfg.TUI.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(tui.New(model), progOpts...)

	g, gctx := errgroup.WithContext(ctx)
	watchCtx, stopWatch := context.WithCancel(gctx)
	defer stopWatch()

	g.Go(func() error {
		defer stopWatch()
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		return nil
	})

	if opts.watch && opts.configPath != "" {
		g.Go(func() error {
			return config.Watch(watchCtx, opts.configPath,
				func(c *config.Config) {
					logger.Info().Str("path", opts.configPath).Msg("configuration reloaded")
					program.Send(tui.ConfigMsg{Config: c})
				},
				func(err error) {
					logger.Warn().Err(err).Msg("configuration reload failed")
				})
		})
	}

	return g.Wait()
}
