// Package menu drives nested popup menus: an immutable Stack of open menus
// with pure transitions, and a Manager that turns pointer, keyboard and
// window events into Stack transitions.
//
// The package renders nothing. The host registers Items with Menus, supplies
// a descendant.Geometry for ordering and hit-testing, and redraws from the
// Stack passed to Options.OnChange.
package menu

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/LISSConsulting/LISSTech.Cascade/internal/descendant"
	"github.com/LISSConsulting/LISSTech.Cascade/internal/shortcut"
)

// DefaultIntentDelay is how long the pointer must rest before a hover
// opens or closes submenus.
const DefaultIntentDelay = 400 * time.Millisecond

// Listeners is the host's global input subscription (pointer motion,
// presses, keys, window focus). It is attached while any menu is open.
type Listeners interface {
	Attach()
	Detach()
}

// ListenerFuncs adapts a pair of functions to Listeners.
type ListenerFuncs struct {
	OnAttach func()
	OnDetach func()
}

// Attach implements Listeners.
func (l ListenerFuncs) Attach() {
	if l.OnAttach != nil {
		l.OnAttach()
	}
}

// Detach implements Listeners.
func (l ListenerFuncs) Detach() {
	if l.OnDetach != nil {
		l.OnDetach()
	}
}

// Options configures a Manager. The zero value is usable.
type Options struct {
	// IntentDelay defaults to DefaultIntentDelay.
	IntentDelay time.Duration

	// KeepOpenOnBlur stops WindowBlur from closing menus, for debugging.
	KeepOpenOnBlur bool

	// Platform resolves Primary/Secondary for the navigation keys.
	Platform shortcut.Platform

	// Scheduler defaults to TimerScheduler.
	Scheduler Scheduler

	Listeners Listeners

	// OnClose runs when the last menu closes, so the host can restore focus
	// to the trigger.
	OnClose func()

	// OnChange runs after every state change with the new stack.
	OnChange func(*Stack)

	// Logger receives protocol violations and transitions. The zero value
	// discards.
	Logger zerolog.Logger
}

// Manager owns the current Stack. It is safe for concurrent use; host
// callbacks run after the internal lock is released.
type Manager struct {
	mu    sync.Mutex
	opts  Options
	keys  *shortcut.Map[keyCommand]
	stack *Stack

	intent    Timer
	intentGen uint64

	// lastInside is the open menu the pointer was last seen over.
	lastInside *OpenMenu

	// firstNeedsFocus asks the next chain change to focus the first item of
	// the new deepest menu.
	firstNeedsFocus bool

	attached bool
	torn     bool
	queue    []func()
}

// NewManager returns a closed manager.
func NewManager(opts Options) *Manager {
	if opts.IntentDelay <= 0 {
		opts.IntentDelay = DefaultIntentDelay
	}
	if opts.Scheduler == nil {
		opts.Scheduler = TimerScheduler{}
	}
	return &Manager{
		opts:  opts,
		keys:  shortcut.NewMap(keyCommands, keyCommandBinding, opts.Platform),
		stack: NewStack(opts.Logger, opts.Scheduler.Defer),
	}
}

// SetIntentDelay changes the hover delay for timers armed from now on.
func (m *Manager) SetIntentDelay(d time.Duration) {
	if d <= 0 {
		d = DefaultIntentDelay
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opts.IntentDelay = d
}

// SetKeepOpenOnBlur toggles the blur debug override.
func (m *Manager) SetKeepOpenOnBlur(keep bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opts.KeepOpenOnBlur = keep
}

// Stack returns the current snapshot.
func (m *Manager) Stack() *Stack {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stack
}

// IsOpen reports whether any menu is open.
func (m *Manager) IsOpen() bool {
	return m.Stack().IsOpen()
}

// do runs fn under the lock, then the host callbacks it queued.
func (m *Manager) do(fn func()) {
	m.mu.Lock()
	fn()
	queued := m.queue
	m.queue = nil
	m.mu.Unlock()
	for _, f := range queued {
		f()
	}
}

func (m *Manager) enqueue(f func()) {
	if f != nil {
		m.queue = append(m.queue, f)
	}
}

// Open opens root as the only menu. It returns false, changing nothing,
// while a menu is already open or after Teardown. With focusFirst the first
// enabled item is focused.
func (m *Manager) Open(root *Menu, focusFirst bool) bool {
	if root == nil {
		return false
	}
	opened := false
	m.do(func() {
		if m.torn {
			return
		}
		if m.stack.IsOpen() {
			m.opts.Logger.Debug().Str("menu", root.Label).Msg("menu: open rejected, already open")
			return
		}
		m.firstNeedsFocus = focusFirst
		m.set(m.stack.OpenRoot(root))
		opened = true
	})
	return opened
}

// set commits next and reacts to chain changes.
func (m *Manager) set(next *Stack) {
	prev := m.stack
	if next == prev {
		return
	}
	m.stack = next

	if !sameChain(prev, next) {
		if next.IsOpen() {
			if !m.attached {
				m.attached = true
				if l := m.opts.Listeners; l != nil {
					m.enqueue(l.Attach)
				}
			}
			if m.firstNeedsFocus {
				m.firstNeedsFocus = false
				m.stack = m.stack.MoveFocus(func(items *descendant.Collection[*Item], cur *Item) *Item {
					return orKeep(cur)(items.GetFirstEnabled())
				})
			}
			if m.lastInside != nil && m.stack.IndexOf(m.lastInside) < 0 {
				m.lastInside = nil
			}
		} else {
			m.cancelIntent()
			m.lastInside = nil
			m.firstNeedsFocus = false
			if m.attached {
				m.attached = false
				if l := m.opts.Listeners; l != nil {
					m.enqueue(l.Detach)
				}
			}
			m.enqueue(m.opts.OnClose)
		}
	}

	if m.opts.OnChange != nil {
		s := m.stack
		m.enqueue(func() { m.opts.OnChange(s) })
	}
}

func (m *Manager) cancelIntent() {
	m.intentGen++
	if m.intent != nil {
		m.intent.Stop()
		m.intent = nil
	}
}

// armIntent replaces any pending intent with apply, run after the delay.
func (m *Manager) armIntent(apply func(*Stack) *Stack) {
	m.cancelIntent()
	gen := m.intentGen
	m.intent = m.opts.Scheduler.AfterFunc(m.opts.IntentDelay, func() {
		m.do(func() {
			if gen != m.intentGen {
				return
			}
			m.intent = nil
			m.set(apply(m.stack))
		})
	})
}

// settle is the delayed effect of resting the pointer over target in om:
// close deeper menus, focus target, and open its submenu.
func settle(om *OpenMenu, target *Item) func(*Stack) *Stack {
	return func(s *Stack) *Stack {
		if s.IndexOf(om) < 0 {
			return s
		}
		next := s.CloseUpTo(om)
		if target == nil || target.Disabled || !om.Menu.Items.Has(target) {
			return next
		}
		next = next.MoveFocus(FocusItem(target))
		if target.HasSubmenu() {
			next = next.OpenSubmenu(target)
		}
		return next
	}
}

// collapseTo closes every menu deeper than the open submenu of parent. The
// submenu itself stays, so its OpenMenu keeps its identity.
func collapseTo(parent *Item) func(*Stack) *Stack {
	return func(s *Stack) *Stack {
		for _, om := range s.open[min(1, len(s.open)):] {
			if om.Parent == parent {
				return s.CloseUpTo(om)
			}
		}
		return s
	}
}

// menuAt returns the deepest open menu containing target.
func (m *Manager) menuAt(target descendant.Element) *OpenMenu {
	open := m.stack.open
	for i := len(open) - 1; i >= 0; i-- {
		if open[i].Menu.Contains(target) {
			return open[i]
		}
	}
	return nil
}

// itemAt returns the enabled item of om at target, or nil.
func itemAt(om *OpenMenu, target descendant.Element) *Item {
	it, ok := om.Menu.Items.FindManagedRef(target)
	if !ok || it.Disabled {
		return nil
	}
	return it
}

// PointerMove handles pointer motion over target.
func (m *Manager) PointerMove(target descendant.Element) {
	m.do(func() {
		if !m.stack.IsOpen() {
			return
		}
		om := m.menuAt(target)
		if om == nil {
			// Left the chain: fold back to the menu last hovered.
			if anchor := m.lastInside; anchor != nil {
				m.armIntent(settle(anchor, nil))
			}
			return
		}
		m.lastInside = om
		it := itemAt(om, target)
		deepest := om == m.stack.Deepest()

		if it != nil && deepest && it != m.stack.Focus() {
			m.set(m.stack.MoveFocus(FocusItem(it)))
		}
		switch {
		case it != nil && it.HasSubmenu() && m.stack.IsSubmenuOpen(it):
			if m.stack.Deepest().Parent == it {
				// Already showing its submenu; drop any pending close.
				m.cancelIntent()
			} else {
				m.armIntent(collapseTo(it))
			}
		case it != nil && it.HasSubmenu():
			m.armIntent(settle(om, it))
		case deepest:
			m.cancelIntent()
		default:
			m.armIntent(settle(om, it))
		}
	})
}

// PointerDown handles a press at target. A press outside every open menu
// closes them all at once.
func (m *Manager) PointerDown(target descendant.Element) {
	m.do(func() {
		if !m.stack.IsOpen() || m.menuAt(target) != nil {
			return
		}
		m.cancelIntent()
		m.set(m.stack.CloseAll())
	})
}

// Click handles a completed click at target. A click on an enabled item
// focuses it first; anywhere else the current focus is activated as is.
// Clicking an item whose submenu is already showing closes what lies below
// that submenu, which is what opening it again would leave.
func (m *Manager) Click(target descendant.Element) {
	m.do(func() {
		if !m.stack.IsOpen() {
			return
		}
		m.cancelIntent()
		if om := m.menuAt(target); om != nil {
			if it := itemAt(om, target); it != nil {
				if m.stack.IsSubmenuOpen(it) {
					m.set(collapseTo(it)(m.stack))
					return
				}
				m.set(m.stack.CloseUpTo(om).MoveFocus(FocusItem(it)))
			}
		}
		m.set(m.stack.ActivateCurrent())
	})
}

// Key handles a key press and reports whether the host should also see it.
func (m *Manager) Key(e shortcut.Event) KeyResult {
	result := KeyNotBound
	m.do(func() {
		if !m.stack.IsOpen() {
			return
		}
		prev := m.stack
		if cmd, ok := m.keys.Get(e); ok {
			next, accepted := cmd.run(m, prev)
			if !accepted {
				result = KeyDeclined
				return
			}
			m.set(next)
		} else if r, ok := e.Printable(); ok {
			m.set(m.typeAhead(prev, r))
		} else {
			return
		}

		if sameChain(prev, m.stack) {
			m.firstNeedsFocus = false
		}
		if m.stack == prev {
			result = KeyCaptured
		} else {
			result = KeyHandled
		}
	})
	return result
}

// WindowBlur closes every menu unless KeepOpenOnBlur is set.
func (m *Manager) WindowBlur() {
	m.do(func() {
		if !m.stack.IsOpen() {
			return
		}
		if m.opts.KeepOpenOnBlur {
			m.opts.Logger.Debug().Msg("menu: window blur ignored, keep_open_on_blur set")
			return
		}
		m.cancelIntent()
		m.set(m.stack.CloseAll())
	})
}

// Close closes every menu.
func (m *Manager) Close() {
	m.do(func() {
		m.cancelIntent()
		m.set(m.stack.CloseAll())
	})
}

// Teardown cancels the intent timer, detaches listeners and drops the
// stack without running OnClose. The manager rejects Open afterwards.
func (m *Manager) Teardown() {
	m.do(func() {
		m.torn = true
		m.cancelIntent()
		m.firstNeedsFocus = false
		m.lastInside = nil
		m.stack = m.stack.CloseAll()
		if m.attached {
			m.attached = false
			if l := m.opts.Listeners; l != nil {
				m.enqueue(l.Detach)
			}
		}
	})
}
