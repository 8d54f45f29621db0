package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/LISSConsulting/LISSTech.Cascade/internal/config"
	"github.com/LISSConsulting/LISSTech.Cascade/internal/store"
)

func TestLoadConfig_DefaultsWhenMissing(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, path, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty", path)
	}
	if cfg.Menu.IntentDelayMS != config.DefaultIntentDelayMS {
		t.Errorf("IntentDelayMS = %d, want default", cfg.Menu.IntentDelayMS)
	}
}

func TestLoadConfig_Found(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte("[menu]\nintent_delay_ms = 250\n"), 0644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	chdir(t, sub)

	cfg, path, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if filepath.Base(path) != config.FileName {
		t.Errorf("path = %q, want the found config", path)
	}
	if cfg.Menu.IntentDelayMS != 250 {
		t.Errorf("IntentDelayMS = %d, want 250", cfg.Menu.IntentDelayMS)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "[menu]\nintent_dealy_ms = 10\n"},
		{"invalid value", "[tui]\naccent_color = \"purple\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, _, err := loadConfig(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestNewLogger_Fallback(t *testing.T) {
	var buf bytes.Buffer
	logger, closeLog, err := newLogger(config.LogConfig{Level: "debug"}, &buf)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	defer closeLog()

	if logger.GetLevel() != zerolog.DebugLevel {
		t.Errorf("level = %v, want debug", logger.GetLevel())
	}
	logger.Debug().Msg("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("fallback writer should receive logs, got %q", buf.String())
	}
}

func TestNewLogger_NoFallbackDiscards(t *testing.T) {
	logger, closeLog, err := newLogger(config.LogConfig{Level: "info"}, nil)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	defer closeLog()
	if logger.GetLevel() != zerolog.Disabled {
		t.Errorf("level = %v, want disabled", logger.GetLevel())
	}
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "cascade.log")
	logger, closeLog, err := newLogger(config.LogConfig{Level: "info", File: path}, nil)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Info().Str("k", "v").Msg("written")
	logger.Debug().Msg("filtered")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, `"message":"written"`) || !strings.Contains(got, `"k":"v"`) {
		t.Errorf("log file missing entry: %s", got)
	}
	if strings.Contains(got, "filtered") {
		t.Error("debug entries should be filtered at info level")
	}
}

func TestNewLogger_BadLevelFallsBackToInfo(t *testing.T) {
	logger, closeLog, err := newLogger(config.LogConfig{Level: "loud"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	defer closeLog()
	if logger.GetLevel() != zerolog.InfoLevel {
		t.Errorf("level = %v, want info", logger.GetLevel())
	}
}

func TestOpenJournal_EnforcesRetention(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < keepJournals+5; i++ {
		name := filepath.Join(dir, strings.Repeat("0", 3)+string(rune('a'+i))+".jsonl")
		if err := os.WriteFile(name, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	j, err := openJournal(dir)
	if err != nil {
		t.Fatalf("openJournal: %v", err)
	}
	defer j.Close()

	if err := j.Append(store.Entry{Kind: store.KindBlur}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) > keepJournals {
		t.Errorf("%d journals kept, want at most %d", len(files), keepJournals)
	}
	if _, err := os.Stat(j.Path()); err != nil {
		t.Errorf("the new journal must survive retention: %v", err)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
