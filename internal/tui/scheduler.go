package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/LISSTech.Cascade/internal/menu"
)

// callbackMsg fires a scheduled callback on the update goroutine.
type callbackMsg struct{ id uint64 }

// TeaScheduler implements menu.Scheduler on bubbletea commands: timers
// become tea.Tick commands and deferred calls become immediate commands.
// Callbacks run from Model.Update, so they never race the host.
type TeaScheduler struct {
	mu      sync.Mutex
	next    uint64
	pending map[uint64]func()
	cmds    []tea.Cmd
}

// NewTeaScheduler returns an empty scheduler.
func NewTeaScheduler() *TeaScheduler {
	return &TeaScheduler{pending: make(map[uint64]func())}
}

type teaTimer struct {
	s  *TeaScheduler
	id uint64
}

// Stop implements menu.Timer. The tick still arrives but finds nothing.
func (t teaTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	_, ok := t.s.pending[t.id]
	delete(t.s.pending, t.id)
	return ok
}

func (s *TeaScheduler) add(f func(), cmd func(id uint64) tea.Cmd) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	id := s.next
	s.pending[id] = f
	s.cmds = append(s.cmds, cmd(id))
	return id
}

// AfterFunc implements menu.Scheduler.
func (s *TeaScheduler) AfterFunc(d time.Duration, f func()) menu.Timer {
	id := s.add(f, func(id uint64) tea.Cmd {
		return tea.Tick(d, func(time.Time) tea.Msg { return callbackMsg{id} })
	})
	return teaTimer{s: s, id: id}
}

// Defer implements menu.Scheduler.
func (s *TeaScheduler) Defer(f func()) {
	s.add(f, func(id uint64) tea.Cmd {
		return func() tea.Msg { return callbackMsg{id} }
	})
}

// Enqueue adds cmd to the next Cmds batch.
func (s *TeaScheduler) Enqueue(cmd tea.Cmd) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cmds = append(s.cmds, cmd)
}

// Cmds drains the commands queued since the last call.
func (s *TeaScheduler) Cmds() tea.Cmd {
	s.mu.Lock()
	cmds := s.cmds
	s.cmds = nil
	s.mu.Unlock()
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Pending returns the number of callbacks not yet run or stopped.
func (s *TeaScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// fire runs the callback for msg, if it is still pending.
func (s *TeaScheduler) fire(msg callbackMsg) bool {
	s.mu.Lock()
	f, ok := s.pending[msg.id]
	delete(s.pending, msg.id)
	s.mu.Unlock()
	if ok {
		f()
	}
	return ok
}

// mouseListeners switches the terminal to all-motion mouse reporting while
// menus are open so hover works, and back to cell motion afterwards.
type mouseListeners struct {
	s *TeaScheduler
}

func (l mouseListeners) Attach() { l.s.Enqueue(tea.EnableMouseAllMotion) }
func (l mouseListeners) Detach() { l.s.Enqueue(tea.EnableMouseCellMotion) }
