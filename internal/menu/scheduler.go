package menu

import (
	"slices"
	"sync"
	"time"
)

// Timer is a pending scheduled callback.
type Timer interface {
	// Stop cancels the callback. It reports false if the callback already
	// ran or was stopped.
	Stop() bool
}

// Scheduler runs the manager's intent timers and deferred activations.
type Scheduler interface {
	// AfterFunc runs f once after d.
	AfterFunc(d time.Duration, f func()) Timer

	// Defer runs f on the next tick, after the current event is handled.
	Defer(f func())
}

// TimerScheduler schedules on the runtime's timers. Callbacks run on their
// own goroutines.
type TimerScheduler struct{}

// AfterFunc implements Scheduler.
func (TimerScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Defer implements Scheduler.
func (TimerScheduler) Defer(f func()) {
	time.AfterFunc(0, f)
}

// ManualScheduler is a virtual clock. Nothing runs until Advance or Flush
// is called, and callbacks run on the caller's goroutine in due order.
type ManualScheduler struct {
	mu       sync.Mutex
	now      time.Duration
	seq      uint64
	timers   []*manualTimer
	deferred []func()
}

type manualTimer struct {
	s   *ManualScheduler
	due time.Duration
	seq uint64
	f   func()
}

// NewManualScheduler returns a virtual clock at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc implements Scheduler.
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTimer{s: s, due: s.now + max(d, 0), seq: s.seq, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Defer implements Scheduler.
func (s *ManualScheduler) Defer(f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deferred = append(s.deferred, f)
}

// Stop implements Timer.
func (t *manualTimer) Stop() bool {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.Index(s.timers, t)
	if i < 0 {
		return false
	}
	s.timers = slices.Delete(s.timers, i, i+1)
	return true
}

// Now returns the virtual time elapsed since creation.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of armed timers plus queued deferred calls.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers) + len(s.deferred)
}

// Flush runs deferred callbacks, including any they queue, until none are
// left. It returns how many ran.
func (s *ManualScheduler) Flush() int {
	n := 0
	for {
		s.mu.Lock()
		if len(s.deferred) == 0 {
			s.mu.Unlock()
			return n
		}
		f := s.deferred[0]
		s.deferred = s.deferred[1:]
		s.mu.Unlock()
		f()
		n++
	}
}

// Advance flushes deferred callbacks, then moves the clock forward by d,
// firing every timer that falls due in due order. Deferred callbacks queued
// by a timer run before the next timer fires.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.Flush()
	s.mu.Lock()
	target := s.now + max(d, 0)
	s.mu.Unlock()
	for {
		s.mu.Lock()
		t := s.nextDue(target)
		if t == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.timers = slices.DeleteFunc(s.timers, func(x *manualTimer) bool { return x == t })
		s.now = t.due
		s.mu.Unlock()
		t.f()
		s.Flush()
	}
}

func (s *ManualScheduler) nextDue(target time.Duration) *manualTimer {
	var next *manualTimer
	for _, t := range s.timers {
		if t.due > target {
			continue
		}
		if next == nil || t.due < next.due || (t.due == next.due && t.seq < next.seq) {
			next = t
		}
	}
	return next
}
