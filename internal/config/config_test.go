package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"menu.intent_delay_ms", cfg.Menu.IntentDelayMS, 400},
		{"menu.primary_modifier", cfg.Menu.PrimaryModifier, "auto"},
		{"menu.keep_open_on_blur", cfg.Menu.KeepOpenOnBlur, false},
		{"tui.accent_color", cfg.TUI.AccentColor, DefaultAccentColor},
		{"tui.mouse", cfg.TUI.Mouse, true},
		{"log.level", cfg.Log.Level, "info"},
		{"log.file", cfg.Log.File, ""},
		{"keys", len(cfg.Keys), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
	if cfg.IntentDelay() != 400*time.Millisecond {
		t.Errorf("IntentDelay: got %v, want 400ms", cfg.IntentDelay())
	}
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), `
[menu]
intent_delay_ms = 250
primary_modifier = "meta"
keep_open_on_blur = true

[keys]
"file.save" = ["Primary+S"]
"edit.delete" = ["Delete", "Shift+Delete"]

[tui]
accent_color = "#FF8800"
mouse = false

[log]
level = "debug"
file = "cascade.log"
`)

		cfg, err := Load(path)
		if err != nil {
			t.Fatal(err)
		}

		tests := []struct {
			name string
			got  any
			want any
		}{
			{"menu.intent_delay_ms", cfg.Menu.IntentDelayMS, 250},
			{"menu.primary_modifier", cfg.Menu.PrimaryModifier, "meta"},
			{"menu.keep_open_on_blur", cfg.Menu.KeepOpenOnBlur, true},
			{"tui.accent_color", cfg.TUI.AccentColor, "#FF8800"},
			{"tui.mouse", cfg.TUI.Mouse, false},
			{"log.level", cfg.Log.Level, "debug"},
			{"log.file", cfg.Log.File, "cascade.log"},
			{"keys count", len(cfg.Keys), 2},
			{"keys.edit.delete", strings.Join(cfg.Keys["edit.delete"], "|"), "Delete|Shift+Delete"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if tt.got != tt.want {
					t.Errorf("got %v, want %v", tt.got, tt.want)
				}
			})
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected validation error: %v", err)
		}
	})

	t.Run("partial config uses defaults", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), `
[menu]
intent_delay_ms = 100
`)

		cfg, err := Load(path)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Menu.IntentDelayMS != 100 {
			t.Errorf("menu.intent_delay_ms: got %d, want %d", cfg.Menu.IntentDelayMS, 100)
		}
		if cfg.Menu.PrimaryModifier != "auto" {
			t.Errorf("menu.primary_modifier: got %q, want %q (default)", cfg.Menu.PrimaryModifier, "auto")
		}
		if !cfg.TUI.Mouse {
			t.Error("tui.mouse: got false, want true (default)")
		}
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), `
[menu]
intent_dealy_ms = 100
`)
		_, err := Load(path)
		if err == nil || !strings.Contains(err.Error(), "menu.intent_dealy_ms") {
			t.Errorf("expected unknown key error naming menu.intent_dealy_ms, got %v", err)
		}
	})

	t.Run("missing file returns error", func(t *testing.T) {
		_, err := Load("/nonexistent/cascade.toml")
		if err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("invalid toml returns error", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "not valid [[[ toml")
		_, err := Load(path)
		if err == nil {
			t.Error("expected error for invalid TOML")
		}
	})
}

func TestLoadAutoDiscovery(t *testing.T) {
	t.Run("finds cascade.toml in parent directory", func(t *testing.T) {
		root := t.TempDir()
		child := filepath.Join(root, "sub", "dir")
		if err := os.MkdirAll(child, 0755); err != nil {
			t.Fatal(err)
		}
		writeConfig(t, root, "[menu]\nintent_delay_ms = 123\n")

		origDir, _ := os.Getwd()
		t.Cleanup(func() { os.Chdir(origDir) })
		if err := os.Chdir(child); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load("")
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Menu.IntentDelayMS != 123 {
			t.Errorf("menu.intent_delay_ms: got %d, want %d", cfg.Menu.IntentDelayMS, 123)
		}
		if _, ok := Find(); !ok {
			t.Error("Find: expected to locate cascade.toml")
		}
	})

	t.Run("returns error when cascade.toml not found anywhere", func(t *testing.T) {
		dir := t.TempDir()
		origDir, _ := os.Getwd()
		t.Cleanup(func() { os.Chdir(origDir) })
		if err := os.Chdir(dir); err != nil {
			t.Fatal(err)
		}

		if _, err := Load(""); err == nil {
			t.Error("expected error when cascade.toml not found")
		}
		if _, ok := Find(); ok {
			t.Error("Find: expected no cascade.toml")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero intent delay", func(c *Config) { c.Menu.IntentDelayMS = 0 }, "menu.intent_delay_ms"},
		{"bad modifier", func(c *Config) { c.Menu.PrimaryModifier = "hyper" }, "menu.primary_modifier"},
		{"bad shortcut", func(c *Config) { c.Keys = map[string][]string{"file.save": {"Ctrl+S"}} }, `keys.file.save: "Ctrl+S"`},
		{"empty shortcut list", func(c *Config) { c.Keys = map[string][]string{"file.save": {}} }, "at least one shortcut"},
		{"bad accent", func(c *Config) { c.TUI.AccentColor = "indigo" }, "tui.accent_color"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"empty level", func(c *Config) { c.Log.Level = "" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}

	t.Run("joins every issue", func(t *testing.T) {
		cfg := Defaults()
		cfg.Menu.IntentDelayMS = -1
		cfg.TUI.AccentColor = "red"
		err := cfg.Validate()
		if err == nil {
			t.Fatal("expected error")
		}
		if got := strings.Count(err.Error(), "\n") + 1; got != 2 {
			t.Errorf("got %d issues, want 2: %v", got, err)
		}
	})
}

func TestBinding(t *testing.T) {
	cfg := Defaults()
	cfg.Keys = map[string][]string{
		"edit.delete": {"Delete", "Shift+Delete"},
		"file.save":   {"Primary+S"},
	}

	if b := cfg.Binding("missing"); b != nil {
		t.Errorf("Binding(missing): got %v, want nil", b)
	}
	b := cfg.Binding("edit.delete")
	if b == nil || len(b.Shortcuts()) != 2 {
		t.Fatalf("Binding(edit.delete): got %v, want 2 shortcuts", b)
	}
	if got := strings.Join(cfg.KeyIDs(), ","); got != "edit.delete,file.save" {
		t.Errorf("KeyIDs: got %q", got)
	}
}

func TestInitFile(t *testing.T) {
	t.Run("creates cascade.toml", func(t *testing.T) {
		dir := t.TempDir()
		path, err := InitFile(dir)
		if err != nil {
			t.Fatal(err)
		}

		if filepath.Base(path) != FileName {
			t.Errorf("expected %s, got %s", FileName, filepath.Base(path))
		}

		// Verify it's valid TOML by loading it
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("generated file is not valid: %v", err)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("generated file does not validate: %v", err)
		}
		if cfg.Menu.IntentDelayMS != DefaultIntentDelayMS {
			t.Errorf("intent delay: got %d, want %d", cfg.Menu.IntentDelayMS, DefaultIntentDelayMS)
		}
	})

	t.Run("refuses to overwrite existing", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "existing")

		if _, err := InitFile(dir); err == nil {
			t.Error("expected error when cascade.toml already exists")
		}
	})
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	if err != nil {
		t.Fatal(err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	props, ok := doc["properties"].(map[string]any)
	if !ok {
		t.Fatalf("schema has no properties: %s", data)
	}
	for _, key := range []string{"menu", "keys", "tui", "log"} {
		if _, ok := props[key]; !ok {
			t.Errorf("schema is missing property %q", key)
		}
	}
	if !strings.Contains(string(data), "intent_delay_ms") {
		t.Error("schema does not describe menu.intent_delay_ms")
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "[menu]\nintent_delay_ms = 400\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 4)
	errs := make(chan error, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c *Config) { changes <- c }, func(err error) { errs <- err })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)

	writeConfig(t, dir, "[menu]\nintent_delay_ms = 900\n")

	// A truncating write may be observed half-done; wait for the final state.
	timeout := time.After(5 * time.Second)
	for reloaded := false; !reloaded; {
		select {
		case cfg := <-changes:
			reloaded = cfg.Menu.IntentDelayMS == 900
		case <-errs:
			// A half-written file may fail to parse; the next event fixes it.
		case <-timeout:
			t.Fatal("timed out waiting for reload")
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not stop after cancel")
	}
}
