package config

import (
	"github.com/LISSConsulting/LISSTech.Cascade/internal/shortcut"
)

// DetectPrimaryModifier returns the platform's canonical accelerator:
// Cmd (Meta) on macOS, Ctrl everywhere else.
func DetectPrimaryModifier(goos string) shortcut.Modifier {
	if goos == "darwin" || goos == "ios" {
		return shortcut.ModMeta
	}
	return shortcut.ModCtrl
}

// Platform resolves menu.primary_modifier for goos. Terminals never deliver
// the Cmd key, so in a terminal "auto" always resolves to Ctrl.
func (c *Config) Platform(goos string, terminal bool) shortcut.Platform {
	switch c.Menu.PrimaryModifier {
	case ModifierCtrl:
		return shortcut.PlatformPC
	case ModifierMeta:
		return shortcut.PlatformMac
	}
	if terminal {
		return shortcut.PlatformPC
	}
	return shortcut.Platform{Primary: DetectPrimaryModifier(goos)}
}
