package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// JSONL is a Store backed by an append-only JSONL file. Each line is a
// JSON-serialized Entry. The file is synced after every Append so a crash
// mid-session still leaves a replayable journal.
//
// Session identity: "<unix-timestamp>-<pid>.jsonl".
type JSONL struct {
	file      *os.File
	mu        sync.Mutex
	idx       *fileIndex
	sessionID string
	startedAt time.Time
	pos       int64 // current write position in the file
}

// NewJSONL creates the session journal in dir. dir is created with
// os.MkdirAll if it does not exist.
func NewJSONL(dir string) (*JSONL, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("store: mkdir %q: %w", dir, err)
	}
	now := time.Now()
	sessionID := fmt.Sprintf("%d-%d", now.Unix(), os.Getpid())
	j, err := Open(filepath.Join(dir, sessionID+".jsonl"))
	if err != nil {
		return nil, err
	}
	j.startedAt = now
	return j, nil
}

// Open opens (or creates) the journal at path and indexes any entries it
// already holds. New entries are appended after them.
func Open(path string) (*JSONL, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", path, err)
	}
	j := &JSONL{
		file:      f,
		idx:       newFileIndex(),
		sessionID: strings.TrimSuffix(filepath.Base(path), ".jsonl"),
	}
	if info, statErr := f.Stat(); statErr == nil {
		j.startedAt = info.ModTime()
	}
	if err := j.scan(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return j, nil
}

// scan indexes existing lines and positions the writer at the end.
func (j *JSONL) scan() error {
	if _, err := j.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("store: seek: %w", err)
	}
	r := bufio.NewReader(j.file)
	var pos int64
	for n := 1; ; n++ {
		line, err := r.ReadBytes('\n')
		if len(line) > 0 {
			if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
				var e Entry
				if uerr := json.Unmarshal(trimmed, &e); uerr != nil {
					return fmt.Errorf("store: %s line %d: %w", j.file.Name(), n, uerr)
				}
				j.idx.onAppend(e, pos, int64(len(line)))
			}
			pos += int64(len(line))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("store: read %s: %w", j.file.Name(), err)
		}
	}
	if _, err := j.file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("store: seek: %w", err)
	}
	j.pos = pos
	return nil
}

// Path returns the journal's file path.
func (j *JSONL) Path() string {
	return j.file.Name()
}

// Append serializes entry as a JSON line, writes it to the file, and syncs.
// It is safe to call from multiple goroutines.
func (j *JSONL) Append(entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("store: marshal: %w", err)
	}
	data = append(data, '\n')

	j.mu.Lock()
	defer j.mu.Unlock()

	lineOffset := j.pos
	if _, err := j.file.Write(data); err != nil {
		return fmt.Errorf("store: write: %w", err)
	}
	if err := j.file.Sync(); err != nil {
		return fmt.Errorf("store: sync: %w", err)
	}
	lineLen := int64(len(data))
	j.pos += lineLen
	j.idx.onAppend(entry, lineOffset, lineLen)
	return nil
}

// Close closes the underlying file.
func (j *JSONL) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}

// Len returns the number of entries in the journal.
func (j *JSONL) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.idx.lines)
}

// Entry returns entry n (0-based), read from the file through the
// in-memory byte-offset index.
func (j *JSONL) Entry(n int) (Entry, error) {
	j.mu.Lock()
	if n < 0 || n >= len(j.idx.lines) {
		j.mu.Unlock()
		return Entry{}, fmt.Errorf("store: entry %d not found", n)
	}
	r := j.idx.lines[n]
	j.mu.Unlock()

	buf := make([]byte, r.end-r.start)
	if _, err := j.file.ReadAt(buf, r.start); err != nil {
		return Entry{}, fmt.Errorf("store: read entry %d: %w", n, err)
	}
	var e Entry
	if err := json.Unmarshal(bytes.TrimSpace(buf), &e); err != nil {
		return Entry{}, fmt.Errorf("store: decode entry %d: %w", n, err)
	}
	return e, nil
}

// Entries returns every entry in order.
func (j *JSONL) Entries() ([]Entry, error) {
	n := j.Len()
	out := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		e, err := j.Entry(i)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Summary returns metadata about the journal derived from the index.
func (j *JSONL) Summary() (Summary, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return Summary{
		SessionID: j.sessionID,
		StartedAt: j.startedAt,
		Entries:   len(j.idx.lines),
		Counts:    j.idx.countsCopy(),
		Duration:  time.Duration(j.idx.lastAt) * time.Millisecond,
	}, nil
}

// EnforceRetention removes the oldest .jsonl files in dir, keeping at most
// maxKeep files. Files are sorted by name (timestamp prefix ensures
// chronological order). A maxKeep of 0 or less is a no-op.
func EnforceRetention(dir string, maxKeep int) error {
	if maxKeep <= 0 {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("store: read dir %q: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".jsonl") {
			files = append(files, e.Name())
		}
	}

	sort.Strings(files) // timestamp-prefixed names sort chronologically

	toDelete := len(files) - maxKeep
	for i := 0; i < toDelete; i++ {
		path := filepath.Join(dir, files[i])
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("store: remove %q: %w", path, err)
		}
	}
	return nil
}
