package store_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/LISSConsulting/LISSTech.Cascade/internal/store"
)

// Compile-time check: *JSONL implements Store.
var _ store.Store = (*store.JSONL)(nil)

func sampleEntries() []store.Entry {
	return []store.Entry{
		{AtMS: 0, Kind: store.KindResize, Width: 80, Height: 24},
		{AtMS: 120, Kind: store.KindKey, Key: "f10"},
		{AtMS: 300, Kind: store.KindMove, X: 4, Y: 2},
		{AtMS: 900, Kind: store.KindKey, Key: "s", Mods: "Ctrl"},
		{AtMS: 1500, Kind: store.KindClick, X: 4, Y: 3},
	}
}

func TestNewJSONL_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	s, err := store.NewJSONL(dir)
	if err != nil {
		t.Fatalf("NewJSONL: %v", err)
	}
	defer func() { _ = s.Close() }()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 file in dir, got %d", len(entries))
	}
	if ext := filepath.Ext(entries[0].Name()); ext != ".jsonl" {
		t.Errorf("expected .jsonl extension, got %q", ext)
	}
	if filepath.Dir(s.Path()) != dir {
		t.Errorf("Path: got %q, want a file in %q", s.Path(), dir)
	}
}

func TestNewJSONL_CreatesDir(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "subdir", "journals")
	s, err := store.NewJSONL(dir)
	if err != nil {
		t.Fatalf("NewJSONL on non-existent dir: %v", err)
	}
	defer func() { _ = s.Close() }()

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("expected dir to exist after NewJSONL: %v", err)
	}
}

func TestNewJSONL_DirIsFile(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "file")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.NewJSONL(path); err == nil {
		t.Error("expected error when dir is a regular file")
	}
}

func TestAppendAndEntry(t *testing.T) {
	s, err := store.NewJSONL(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = s.Close() }()

	want := sampleEntries()
	for _, e := range want {
		if err := s.Append(e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	if s.Len() != len(want) {
		t.Fatalf("Len: got %d, want %d", s.Len(), len(want))
	}
	for i, w := range want {
		got, err := s.Entry(i)
		if err != nil {
			t.Fatalf("Entry(%d): %v", i, err)
		}
		if got != w {
			t.Errorf("Entry(%d): got %+v, want %+v", i, got, w)
		}
	}

	all, err := s.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != len(want) || all[3].Key != "s" {
		t.Errorf("Entries: got %+v", all)
	}
}

func TestEntry_NotFound(t *testing.T) {
	s, err := store.NewJSONL(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = s.Close() }()

	for _, n := range []int{-1, 0, 5} {
		if _, err := s.Entry(n); err == nil {
			t.Errorf("Entry(%d): expected error on empty journal", n)
		}
	}
}

func TestOpen_IndexesExistingEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.jsonl")
	s, err := store.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range sampleEntries() {
		if err := s.Append(e); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := store.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	if reopened.Len() != 5 {
		t.Fatalf("Len after reopen: got %d, want 5", reopened.Len())
	}
	last, err := reopened.Entry(4)
	if err != nil {
		t.Fatal(err)
	}
	if last.Kind != store.KindClick || last.Y != 3 {
		t.Errorf("Entry(4): got %+v", last)
	}

	// Appends continue after the existing lines.
	if err := reopened.Append(store.Entry{AtMS: 2000, Kind: store.KindBlur}); err != nil {
		t.Fatal(err)
	}
	got, err := reopened.Entry(5)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != store.KindBlur {
		t.Errorf("Entry(5): got %+v", got)
	}
}

func TestOpen_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hand.jsonl")
	content := `{"at_ms":0,"kind":"key","key":"f10"}

{"at_ms":10,"kind":"key","key":"down"}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := store.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = s.Close() }()

	if s.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", s.Len())
	}
	e, err := s.Entry(1)
	if err != nil {
		t.Fatal(err)
	}
	if e.Key != "down" {
		t.Errorf("Entry(1).Key: got %q, want %q", e.Key, "down")
	}
}

func TestOpen_MalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	content := "{\"at_ms\":0,\"kind\":\"key\"}\nnot json\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := store.Open(path)
	if err == nil {
		t.Fatal("expected error for malformed line")
	}
	if want := "line 2"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q should name %q", err, want)
	}
}

func TestSummary(t *testing.T) {
	s, err := store.NewJSONL(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = s.Close() }()

	empty, err := s.Summary()
	if err != nil {
		t.Fatal(err)
	}
	if empty.Entries != 0 || empty.Duration != 0 {
		t.Errorf("empty summary: got %+v", empty)
	}
	if empty.SessionID == "" {
		t.Error("expected non-empty session id")
	}

	for _, e := range sampleEntries() {
		if err := s.Append(e); err != nil {
			t.Fatal(err)
		}
	}
	sum, err := s.Summary()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"entries", sum.Entries, 5},
		{"keys", sum.Counts[store.KindKey], 2},
		{"moves", sum.Counts[store.KindMove], 1},
		{"blurs", sum.Counts[store.KindBlur], 0},
		{"duration", sum.Duration, 1500 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	// Summary counts are a copy.
	sum.Counts[store.KindKey] = 99
	again, _ := s.Summary()
	if again.Counts[store.KindKey] != 2 {
		t.Error("Summary must return a copy of the counts")
	}
}

func TestAppend_AfterClose(t *testing.T) {
	s, err := store.NewJSONL(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Append(store.Entry{Kind: store.KindKey}); err == nil {
		t.Error("expected error appending after Close")
	}
}

func TestEntry_At(t *testing.T) {
	e := store.Entry{AtMS: 1250}
	if e.At() != 1250*time.Millisecond {
		t.Errorf("At: got %v", e.At())
	}
}

func TestEnforceRetention(t *testing.T) {
	// createFiles creates n fake .jsonl files named 0000000000-N.jsonl
	// (stable lexicographic = chronological order) and returns the dir.
	createFiles := func(t *testing.T, n int) string {
		t.Helper()
		dir := t.TempDir()
		for i := 0; i < n; i++ {
			name := fmt.Sprintf("%010d-%d.jsonl", i, i)
			if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
				t.Fatal(err)
			}
		}
		return dir
	}

	countFiles := func(t *testing.T, dir string) int {
		t.Helper()
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		count := 0
		for _, e := range entries {
			if filepath.Ext(e.Name()) == ".jsonl" {
				count++
			}
		}
		return count
	}

	tests := []struct {
		name      string
		nFiles    int
		maxKeep   int
		wantFiles int
	}{
		{"zero files, keep 20", 0, 20, 0},
		{"fewer than limit", 5, 20, 5},
		{"one over limit", 21, 20, 20},
		{"keep 0 means unlimited", 50, 0, 50},
		{"keep 1 keeps newest", 5, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := createFiles(t, tt.nFiles)
			if err := store.EnforceRetention(dir, tt.maxKeep); err != nil {
				t.Fatalf("EnforceRetention: %v", err)
			}
			if got := countFiles(t, dir); got != tt.wantFiles {
				t.Errorf("want %d files remaining, got %d", tt.wantFiles, got)
			}
		})
	}

	t.Run("non-existent dir returns nil", func(t *testing.T) {
		if err := store.EnforceRetention(filepath.Join(t.TempDir(), "no-such-dir"), 5); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})
}
