// Package store records host input events to an append-only JSONL journal
// and reads them back for replay. One journal is written per `cascade demo
// --record` session; `cascade replay` reads it on a virtual clock.
package store

import "time"

// Kind identifies a journaled input event.
type Kind string

const (
	KindKey    Kind = "key"
	KindMove   Kind = "move"
	KindDown   Kind = "down"
	KindClick  Kind = "click"
	KindBlur   Kind = "blur"
	KindResize Kind = "resize"
)

// Entry is one input event. AtMS is milliseconds since the session started.
type Entry struct {
	AtMS   int64  `json:"at_ms"`
	Kind   Kind   `json:"kind"`
	Key    string `json:"key,omitempty"`
	Mods   string `json:"mods,omitempty"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// At returns the entry's offset from the session start.
func (e Entry) At() time.Duration {
	return time.Duration(e.AtMS) * time.Millisecond
}

// Writer persists input events to durable storage.
type Writer interface {
	Append(entry Entry) error
	Close() error
}

// Reader retrieves recorded input events.
type Reader interface {
	Len() int
	Entry(n int) (Entry, error)
	Summary() (Summary, error)
}

// Store combines Writer and Reader into a single session-scoped handle.
type Store interface {
	Writer
	Reader
}

// Summary summarises a journal.
type Summary struct {
	SessionID string
	StartedAt time.Time
	Entries   int
	Counts    map[Kind]int
	Duration  time.Duration
}
