package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/LISSConsulting/LISSTech.Cascade/internal/config"
	"github.com/LISSConsulting/LISSTech.Cascade/internal/menu"
	"github.com/LISSConsulting/LISSTech.Cascade/internal/shortcut"
	"github.com/LISSConsulting/LISSTech.Cascade/internal/store"
	"github.com/LISSConsulting/LISSTech.Cascade/internal/tui"
)

// runReplay feeds a recorded journal through a fresh host on a virtual
// clock and writes one line per event with the resulting menu path.
func runReplay(w io.Writer, path string, cfg *config.Config, p shortcut.Platform, logger zerolog.Logger) error {
	// store.Open creates missing files; replay only reads existing ones.
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	j, err := store.Open(path)
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.Entries()
	if err != nil {
		return err
	}
	sum, err := j.Summary()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "session %s: %d events over %s\n",
		sum.SessionID, sum.Entries, sum.Duration.Truncate(time.Millisecond))

	sched := menu.NewManualScheduler()
	h := tui.NewHost(tui.HostOptions{
		Platform:       p,
		IntentDelay:    cfg.IntentDelay(),
		KeepOpenOnBlur: cfg.Menu.KeepOpenOnBlur,
		Keys:           cfg.Binding,
		Scheduler:      sched,
		Clock:          sched.Now,
		Logger:         logger,
	})
	defer h.Teardown()

	for _, e := range entries {
		if d := e.At() - sched.Now(); d > 0 {
			sched.Advance(d)
			writeActivity(w, h)
		}
		res := h.Apply(e)
		sched.Flush()

		line := fmt.Sprintf("%s  %-6s %s", replayOffset(e.At()), e.Kind, describeEntry(e))
		if e.Kind == store.KindKey {
			line += " (" + res.String() + ")"
		}
		fmt.Fprintf(w, "%s → %s\n", line, h.Stack())
		writeActivity(w, h)
	}

	// Let a trailing hover timer settle so the final path is the one a user
	// would have seen.
	if sched.Pending() > 0 {
		sched.Advance(cfg.IntentDelay())
		fmt.Fprintf(w, "%s  settle → %s\n", replayOffset(sched.Now()), h.Stack())
		writeActivity(w, h)
	}
	return nil
}

func writeActivity(w io.Writer, h *tui.Host) {
	for _, a := range h.TakeActivity() {
		if a.Command == "" {
			fmt.Fprintf(w, "           ! %s\n", a.Text)
			continue
		}
		fmt.Fprintf(w, "           %s (%s)\n", a.Text, a.Command)
	}
}

func replayOffset(d time.Duration) string {
	return fmt.Sprintf("%8.3fs", d.Seconds())
}

// describeEntry renders the payload of a journal entry.
func describeEntry(e store.Entry) string {
	switch e.Kind {
	case store.KindKey:
		ev := shortcut.Event{Key: e.Key, Mods: shortcut.ParseModifiers(e.Mods)}
		return ev.String()
	case store.KindMove, store.KindDown, store.KindClick:
		return fmt.Sprintf("%d,%d", e.X, e.Y)
	case store.KindResize:
		return fmt.Sprintf("%dx%d", e.Width, e.Height)
	default:
		return ""
	}
}

// formatKeys lists every bound command of the demo, one shortcut per line,
// with config overrides applied.
func formatKeys(cfg *config.Config, p shortcut.Platform) string {
	h := tui.NewHost(tui.HostOptions{
		Platform:  p,
		Keys:      cfg.Binding,
		Scheduler: menu.NewManualScheduler(),
	})
	defer h.Teardown()

	entries := h.Keymap().Entries()
	idWidth := 0
	for _, e := range entries {
		idWidth = max(idWidth, len(e.Command.ID))
	}

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%-*s  %-20s  %s\n", idWidth, e.Command.ID, e.Command.Label, e.Shortcut.Format(p))
	}
	if len(entries) == 0 {
		b.WriteString("no bound commands\n")
	}
	return b.String()
}

// formatParsed explains how each shortcut text parses and renders on both
// platforms.
func formatParsed(args []string) string {
	var b strings.Builder
	for _, text := range args {
		s := shortcut.Parse(text)
		fmt.Fprintf(&b, "%q\n", text)
		if !s.Bound() {
			b.WriteString("  unbound\n")
			continue
		}
		fmt.Fprintf(&b, "  keys:  %s\n", strings.Join(s.Keys(), " "))
		fmt.Fprintf(&b, "  accel: %s\n", s.Accel())
		fmt.Fprintf(&b, "  shift: %t  alt: %t\n", s.Shift(), s.Alt())
		fmt.Fprintf(&b, "  pc:    %s\n", s.Format(shortcut.PlatformPC))
		fmt.Fprintf(&b, "  mac:   %s\n", s.Format(shortcut.PlatformMac))
	}
	return b.String()
}
