package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/LISSConsulting/LISSTech.Cascade/internal/menu"
	"github.com/LISSConsulting/LISSTech.Cascade/internal/shortcut"
	"github.com/LISSConsulting/LISSTech.Cascade/internal/store"
	"github.com/LISSConsulting/LISSTech.Cascade/internal/tui/components"
)

// HostOptions configures a Host. The zero value runs the demo menus on a
// real-time scheduler without recording.
type HostOptions struct {
	Platform       shortcut.Platform
	IntentDelay    time.Duration
	KeepOpenOnBlur bool

	// Keys returns the configured shortcut for a command ID, or nil to keep
	// the default.
	Keys func(id string) shortcut.Binding

	Scheduler menu.Scheduler
	Listeners menu.Listeners

	// Journal, when set, receives every input event.
	Journal store.Writer

	// Clock returns the session time used for journal and activity stamps.
	// Defaults to time elapsed since NewHost.
	Clock func() time.Duration

	Logger zerolog.Logger

	Menus    []Title   // defaults to DemoMenus()
	Commands []Command // defaults to DemoCommands()
}

// Activity is one line of the host's activity log.
type Activity struct {
	At      time.Duration
	Command string // empty for notices
	Text    string
}

// barMenu ties a bar title to its root menu.
type barMenu struct {
	label string
	node  *Node
	menu  *menu.Menu
}

// Host owns the demo's menus and translates terminal input into
// menu.Manager calls. It is not safe for concurrent use: every method and
// every scheduler callback must run on one goroutine.
type Host struct {
	opts HostOptions
	log  zerolog.Logger

	surface *Surface
	barNode *Node
	body    *Node
	popups  *Node
	layout  Layout
	width   int
	height  int

	titles   []*barMenu
	rootOf   map[*menu.Menu]int
	rowCmd   map[*menu.Item]string
	commands []Command
	byID     map[string]int
	disabled map[string]bool
	keymap   *shortcut.Map[Command]

	mgr    *menu.Manager
	stack  *menu.Stack
	active int // highlighted bar title, -1 for none
	focus  FocusTarget

	activity []Activity
	last     string
	quit     bool
}

// NewHost builds the menu tree and a closed menu.Manager.
func NewHost(opts HostOptions) *Host {
	if opts.Menus == nil {
		opts.Menus = DemoMenus()
	}
	if opts.Commands == nil {
		opts.Commands = DemoCommands()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = menu.TimerScheduler{}
	}
	if opts.Clock == nil {
		start := time.Now()
		opts.Clock = func() time.Duration { return time.Since(start) }
	}

	h := &Host{
		opts:     opts,
		log:      opts.Logger.With().Str("component", "host").Logger(),
		surface:  NewSurface(),
		rootOf:   make(map[*menu.Menu]int),
		rowCmd:   make(map[*menu.Item]string),
		byID:     make(map[string]int),
		disabled: make(map[string]bool),
		active:   -1,
		focus:    FocusBar,
	}
	root := h.surface.Root()
	h.barNode = root.Add("bar")
	h.body = root.Add("body")
	h.popups = root.Add("popups")

	for i, c := range opts.Commands {
		h.byID[c.ID] = i
	}
	h.SetKeys(opts.Keys)

	for i, t := range opts.Menus {
		bm := &barMenu{label: t.Label, node: h.barNode.Add("title:" + t.Label)}
		bm.menu = h.buildMenu(t.Label, t.Entries)
		h.titles = append(h.titles, bm)
		h.rootOf[bm.menu] = i
	}

	h.mgr = menu.NewManager(menu.Options{
		IntentDelay:    opts.IntentDelay,
		KeepOpenOnBlur: opts.KeepOpenOnBlur,
		Platform:       opts.Platform,
		Scheduler:      opts.Scheduler,
		Listeners:      opts.Listeners,
		OnClose:        h.onClose,
		OnChange:       h.onChange,
		Logger:         opts.Logger,
	})
	h.stack = h.mgr.Stack()
	h.Resize(80, 24)
	return h
}

// buildMenu creates a popup box node with one row node per entry.
func (h *Host) buildMenu(label string, entries []Entry) *menu.Menu {
	box := h.popups.Add("menu:" + label)
	box.SetShown(false)
	m := menu.NewMenu(box, label, h.surface)
	for _, e := range entries {
		it := &menu.Item{
			Element:  box.Add(e.Label),
			Label:    e.Label,
			Disabled: e.Disabled,
		}
		if len(e.Children) > 0 {
			it.Submenu = h.buildMenu(e.Label, e.Children)
		} else {
			id := e.Command
			h.rowCmd[it] = id
			if e.Disabled {
				h.disabled[id] = true
			}
			it.OnActivate = func() { h.run(id) }
		}
		m.Add(it)
	}
	return m
}

// SetKeys applies command shortcut overrides and rebuilds the global
// keymap. A nil keys restores the defaults.
func (h *Host) SetKeys(keys func(id string) shortcut.Binding) {
	h.opts.Keys = keys
	cmds := make([]Command, len(h.opts.Commands))
	for i, c := range h.opts.Commands {
		if keys != nil {
			if b := keys(c.ID); b != nil {
				c.Shortcut = b
			}
		}
		cmds[i] = c
	}
	h.commands = cmds
	h.keymap = shortcut.NewMap(cmds, func(c Command) shortcut.Binding { return c.Shortcut }, h.opts.Platform)
}

// SetIntentDelay forwards to the manager.
func (h *Host) SetIntentDelay(d time.Duration) { h.mgr.SetIntentDelay(d) }

// SetKeepOpenOnBlur forwards to the manager.
func (h *Host) SetKeepOpenOnBlur(keep bool) { h.mgr.SetKeepOpenOnBlur(keep) }

// Manager exposes the underlying menu manager.
func (h *Host) Manager() *menu.Manager { return h.mgr }

// Stack returns the latest menu stack.
func (h *Host) Stack() *menu.Stack { return h.stack }

// Surface returns the host geometry.
func (h *Host) Surface() *Surface { return h.surface }

// Layout returns the current screen layout.
func (h *Host) Layout() Layout { return h.layout }

// Focus returns which region owns the keyboard while menus are closed.
func (h *Host) Focus() FocusTarget { return h.focus }

// Active returns the highlighted bar title, -1 for none.
func (h *Host) Active() int { return h.active }

// Titles returns the bar labels.
func (h *Host) Titles() []string {
	out := make([]string, len(h.titles))
	for i, t := range h.titles {
		out[i] = t.label
	}
	return out
}

// TitleMenu returns the root menu of bar title i.
func (h *Host) TitleMenu(i int) *menu.Menu { return h.titles[i].menu }

// Commands returns the command table with overrides applied.
func (h *Host) Commands() []Command { return append([]Command(nil), h.commands...) }

// Keymap returns the global command keymap.
func (h *Host) Keymap() *shortcut.Map[Command] { return h.keymap }

// Quit reports whether the quit command ran.
func (h *Host) Quit() bool { return h.quit }

// Last describes the most recent input and its outcome.
func (h *Host) Last() string { return h.last }

// TakeActivity returns and clears the activity recorded since the last call.
func (h *Host) TakeActivity() []Activity {
	out := h.activity
	h.activity = nil
	return out
}

// Teardown releases the manager. The host must not be used afterwards.
func (h *Host) Teardown() {
	h.mgr.Teardown()
}

func (h *Host) onChange(s *menu.Stack) {
	h.stack = s
	if root := s.Root(); root != nil {
		h.active = h.rootOf[root.Menu]
		h.focus = FocusBar
	}
	h.place()
	h.log.Debug().Str("stack", s.String()).Msg("menu stack changed")
}

// onClose returns the keyboard to the bar title that opened the menu.
func (h *Host) onClose() {
	h.focus = FocusBar
}

func (h *Host) run(id string) {
	label := id
	if i, ok := h.byID[id]; ok {
		label = h.commands[i].Label
	}
	h.note(id, "▶ "+label)
	if id == QuitCommand {
		h.quit = true
	}
}

func (h *Host) note(command, text string) {
	h.activity = append(h.activity, Activity{At: h.opts.Clock(), Command: command, Text: text})
}

// Apply journals e and dispatches it. Key events report their result;
// everything else reports KeyNotBound.
func (h *Host) Apply(e store.Entry) menu.KeyResult {
	h.record(e)
	switch e.Kind {
	case store.KindKey:
		ev := shortcut.Event{Key: e.Key, Mods: shortcut.ParseModifiers(e.Mods)}
		res := h.Key(ev)
		h.last = fmt.Sprintf("%s → %s", ev, res)
		return res
	case store.KindMove:
		h.Move(e.X, e.Y)
	case store.KindDown:
		h.Down(e.X, e.Y)
	case store.KindClick:
		h.Click(e.X, e.Y)
	case store.KindBlur:
		h.Blur()
	case store.KindResize:
		h.Resize(e.Width, e.Height)
	default:
		h.log.Warn().Str("kind", string(e.Kind)).Msg("unknown input kind")
	}
	return menu.KeyNotBound
}

func (h *Host) record(e store.Entry) {
	if h.opts.Journal == nil {
		return
	}
	e.AtMS = h.opts.Clock().Milliseconds()
	if err := h.opts.Journal.Append(e); err != nil {
		h.log.Error().Err(err).Msg("journal append failed; recording stopped")
		h.note("", "recording stopped: "+err.Error())
		h.opts.Journal = nil
	}
}

// Key handles a key press. While a menu is open the manager sees it first;
// keys it does not consume drive the bar. While closed, bar navigation and
// global command shortcuts apply.
func (h *Host) Key(e shortcut.Event) menu.KeyResult {
	if h.mgr.IsOpen() {
		res := h.mgr.Key(e)
		if !res.Propagate() {
			return res
		}
		if e.Mods == shortcut.ModNone {
			switch shortcut.NormalizeKey(e.Key) {
			case "arrowleft":
				h.switchTitle(-1)
				return menu.KeyHandled
			case "arrowright":
				h.switchTitle(1)
				return menu.KeyHandled
			case "f10":
				h.mgr.Close()
				return menu.KeyHandled
			}
		}
		if i, ok := h.mnemonic(e); ok {
			h.openTitle(i, true)
			return menu.KeyHandled
		}
		return res
	}

	if i, ok := h.mnemonic(e); ok {
		h.openTitle(i, true)
		return menu.KeyHandled
	}
	if e.Mods == shortcut.ModNone {
		switch shortcut.NormalizeKey(e.Key) {
		case "f10":
			h.openTitle(max(h.active, 0), true)
			return menu.KeyHandled
		case "tab":
			h.focus = h.focus.Next()
			return menu.KeyHandled
		}
		if h.focus == FocusBar && h.active >= 0 {
			switch shortcut.NormalizeKey(e.Key) {
			case "arrowleft":
				h.active = (h.active + len(h.titles) - 1) % len(h.titles)
				return menu.KeyHandled
			case "arrowright":
				h.active = (h.active + 1) % len(h.titles)
				return menu.KeyHandled
			case "arrowdown", "enter", "space":
				h.openTitle(h.active, true)
				return menu.KeyHandled
			case "escape":
				h.active = -1
				return menu.KeyHandled
			}
		}
	}
	if c, ok := h.keymap.Get(e); ok {
		if h.disabled[c.ID] {
			return menu.KeyCaptured
		}
		h.run(c.ID)
		return menu.KeyHandled
	}
	return menu.KeyNotBound
}

// mnemonic matches Alt+<first letter of a bar title>.
func (h *Host) mnemonic(e shortcut.Event) (int, bool) {
	if e.Mods.Without(shortcut.ModShift) != shortcut.ModAlt {
		return 0, false
	}
	for i, t := range h.titles {
		r := []rune(t.label)
		if len(r) > 0 && strings.EqualFold(string(r[0]), e.Key) {
			return i, true
		}
	}
	return 0, false
}

func (h *Host) openIndex() int {
	if root := h.stack.Root(); root != nil {
		return h.rootOf[root.Menu]
	}
	return -1
}

func (h *Host) switchTitle(delta int) {
	cur := h.openIndex()
	if cur < 0 || len(h.titles) == 0 {
		return
	}
	h.openTitle((cur+delta+len(h.titles))%len(h.titles), true)
}

// openTitle replaces whatever is open with bar menu i.
func (h *Host) openTitle(i int, focusFirst bool) {
	if h.mgr.IsOpen() {
		h.mgr.Close()
	}
	h.active = i
	h.mgr.Open(h.titles[i].menu, focusFirst)
}

func (h *Host) titleAt(n *Node) (int, bool) {
	for i, t := range h.titles {
		if n.Within(t.node) {
			return i, true
		}
	}
	return 0, false
}

// Move handles pointer motion. Hovering another bar title while a menu is
// open switches to it.
func (h *Host) Move(x, y int) {
	if !h.mgr.IsOpen() {
		return
	}
	n := h.surface.HitTest(x, y)
	if i, ok := h.titleAt(n); ok {
		if i != h.openIndex() {
			h.openTitle(i, false)
		}
		return
	}
	h.mgr.PointerMove(n)
}

// Down handles a pointer press. Pressing a bar title opens its menu, or
// closes it when it is already open.
func (h *Host) Down(x, y int) {
	n := h.surface.HitTest(x, y)
	if i, ok := h.titleAt(n); ok {
		if i == h.openIndex() {
			h.mgr.Close()
			return
		}
		h.openTitle(i, false)
		return
	}
	if h.mgr.IsOpen() {
		h.mgr.PointerDown(n)
		return
	}
	if n.Within(h.body) {
		h.focus = FocusLog
	}
}

// Click handles a pointer release.
func (h *Host) Click(x, y int) {
	if !h.mgr.IsOpen() {
		return
	}
	n := h.surface.HitTest(x, y)
	if _, ok := h.titleAt(n); ok {
		return
	}
	h.mgr.Click(n)
}

// Blur handles the terminal losing focus.
func (h *Host) Blur() {
	h.mgr.WindowBlur()
}

// Resize lays the screen out again.
func (h *Host) Resize(width, height int) {
	h.width, h.height = width, height
	h.layout = Calculate(width, height)
	h.place()
}

// Rows describes the rows of m for rendering against the current stack.
func (h *Host) Rows(m *menu.Menu) []components.MenuRow {
	items := m.Items.Items()
	rows := make([]components.MenuRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, components.MenuRow{
			Label:    it.Label,
			Hint:     h.hint(it),
			Disabled: it.Disabled,
			Submenu:  it.HasSubmenu(),
			Focused:  h.stack.Focus() == it,
			Expanded: h.stack.IsSubmenuOpen(it),
		})
	}
	return rows
}

func (h *Host) hint(it *menu.Item) string {
	id, ok := h.rowCmd[it]
	if !ok {
		return ""
	}
	i, ok := h.byID[id]
	if !ok {
		return ""
	}
	return shortcut.FormatBinding(h.commands[i].Shortcut, h.opts.Platform)
}

// Box returns where open menu m is drawn. ok is false when m is not open.
func (h *Host) Box(m *menu.Menu) (Rect, bool) {
	n, _ := m.Element.(*Node)
	if n == nil || !n.Shown() {
		return Rect{}, false
	}
	return n.Rect, true
}

// place positions bar titles and the open chain's popups. The root popup
// hangs under its title; each submenu opens beside its parent row,
// flipping left when it would leave the screen.
func (h *Host) place() {
	h.barNode.Rect = h.layout.Bar
	h.body.Rect = h.layout.Body
	bar := components.NewMenuBar(h.Titles(), components.BarStyles{})
	for i, sp := range bar.Spans() {
		h.titles[i].node.Rect = Rect{X: sp.X, Y: h.layout.Bar.Y, Width: sp.Width, Height: 1}
	}

	for _, box := range h.popups.Children() {
		box.SetShown(false)
	}
	for i, om := range h.stack.Open() {
		box := om.Menu.Element.(*Node)
		mb := components.MenuBox{Rows: h.Rows(om.Menu)}
		w, ht := mb.Width(), mb.Height()

		var x, y int
		if i == 0 {
			x, y = h.titles[h.rootOf[om.Menu]].node.Rect.X, h.layout.Bar.Y+1
		} else {
			row := om.Parent.Element.(*Node)
			parent := row.Parent().Rect
			x, y = parent.X+parent.Width, row.Rect.Y-1
			if x+w > h.width {
				x = parent.X - w
			}
		}
		x = max(min(x, h.width-w), 0)
		y = max(min(y, h.height-ht), 0)

		box.Rect = Rect{X: x, Y: y, Width: w, Height: ht}
		for k, it := range om.Menu.Items.Items() {
			row := it.Element.(*Node)
			row.Rect = Rect{X: x + 1, Y: y + 1 + k, Width: w - 2, Height: 1}
		}
		box.SetShown(true)
	}
}
