package tui

import (
	"time"

	"github.com/LISSConsulting/LISSTech.Cascade/internal/config"
)

// ConfigMsg delivers a reloaded configuration. Shortcut overrides, the
// intent delay and the blur override apply at once.
type ConfigMsg struct{ Config *config.Config }

// tickMsg is sent every second for the status clock.
type tickMsg time.Time
