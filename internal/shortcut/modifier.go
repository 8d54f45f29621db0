package shortcut

import "strings"

// Modifier is a set of held modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key (Cmd on macOS, Win elsewhere).
	ModMeta
)

// Has reports whether m contains mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns m with mod added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns m with mod removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// String returns a representation like "Ctrl+Alt".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	if m.Has(ModMeta) {
		parts = append(parts, "Meta")
	}
	return strings.Join(parts, "+")
}

// ParseModifiers is the inverse of Modifier.String. Unknown names are
// ignored and matching is case-insensitive.
func ParseModifiers(text string) Modifier {
	var m Modifier
	for _, part := range strings.Split(text, "+") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "ctrl", "control":
			m |= ModCtrl
		case "alt", "option":
			m |= ModAlt
		case "shift":
			m |= ModShift
		case "meta", "cmd", "super":
			m |= ModMeta
		}
	}
	return m
}

// Accel selects which accelerator modifier a Shortcut requires.
type Accel uint8

const (
	AccelNone      Accel = iota // neither accelerator may be held
	AccelPrimary                // the platform's canonical accelerator
	AccelSecondary              // the other one, forced
)

// String returns the grammar token for a.
func (a Accel) String() string {
	switch a {
	case AccelPrimary:
		return "Primary"
	case AccelSecondary:
		return "Secondary"
	default:
		return "None"
	}
}

// Platform resolves the abstract Primary/Secondary accelerators to physical
// modifiers. It is chosen once at startup by the caller.
type Platform struct {
	// Primary is ModCtrl or ModMeta.
	Primary Modifier
}

var (
	// PlatformPC uses Ctrl as the primary accelerator.
	PlatformPC = Platform{Primary: ModCtrl}

	// PlatformMac uses Cmd (Meta) as the primary accelerator.
	PlatformMac = Platform{Primary: ModMeta}
)

// Secondary returns the non-canonical accelerator.
func (p Platform) Secondary() Modifier {
	if p.primary() == ModMeta {
		return ModCtrl
	}
	return ModMeta
}

// IsPrimary reports whether e holds the primary accelerator.
func (p Platform) IsPrimary(e Event) bool {
	return e.Mods.Has(p.primary())
}

// IsSecondary reports whether e holds the secondary accelerator.
func (p Platform) IsSecondary(e Event) bool {
	return e.Mods.Has(p.Secondary())
}

// Resolve returns the physical modifier for a.
func (p Platform) Resolve(a Accel) Modifier {
	switch a {
	case AccelPrimary:
		return p.primary()
	case AccelSecondary:
		return p.Secondary()
	default:
		return ModNone
	}
}

// IsMac reports whether p follows macOS display conventions.
func (p Platform) IsMac() bool {
	return p.primary() == ModMeta
}

func (p Platform) primary() Modifier {
	if p.Primary == ModMeta {
		return ModMeta
	}
	return ModCtrl
}
