// Package tui is the terminal front end of the cascade menu engine: a menu
// bar with nested popup menus over a scrolling activity log, built on
// bubbletea and lipgloss.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/LISSConsulting/LISSTech.Cascade/internal/config"
	"github.com/LISSConsulting/LISSTech.Cascade/internal/menu"
	"github.com/LISSConsulting/LISSTech.Cascade/internal/shortcut"
	"github.com/LISSConsulting/LISSTech.Cascade/internal/store"
	"github.com/LISSConsulting/LISSTech.Cascade/internal/tui/components"
	"github.com/LISSConsulting/LISSTech.Cascade/internal/tui/panels"
)

// Options configures the TUI Model.
type Options struct {
	// Config may be nil; defaults apply.
	Config   *config.Config
	Platform shortcut.Platform

	// Journal, when set, records every input event. JournalPath is shown
	// in the status line.
	Journal     store.Writer
	JournalPath string

	Logger zerolog.Logger
}

// Model is the root bubbletea model. The Host it wraps is shared between
// copies; bubbletea drives every copy from the one update goroutine.
type Model struct {
	host     *Host
	sched    *TeaScheduler
	log      components.LogView
	footer   panels.Footer
	theme    Theme
	layout   Layout
	platform shortcut.Platform
	journal  string

	width  int
	height int

	startedAt time.Time
	now       time.Time
}

// New creates the TUI Model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		d := config.Defaults()
		cfg = &d
	}
	sched := NewTeaScheduler()
	var listeners menu.Listeners
	if cfg.TUI.Mouse {
		listeners = mouseListeners{s: sched}
	}
	host := NewHost(HostOptions{
		Platform:       opts.Platform,
		IntentDelay:    cfg.IntentDelay(),
		KeepOpenOnBlur: cfg.Menu.KeepOpenOnBlur,
		Keys:           cfg.Binding,
		Scheduler:      sched,
		Listeners:      listeners,
		Journal:        opts.Journal,
		Logger:         opts.Logger,
	})

	now := time.Now()
	m := Model{
		host:      host,
		sched:     sched,
		log:       components.NewLogView(80, 1, components.DefaultLogLimit),
		footer:    panels.NewFooter(footerStyle),
		theme:     NewTheme(cfg.TUI.AccentColor),
		platform:  opts.Platform,
		journal:   opts.JournalPath,
		startedAt: now,
		now:       now,
	}
	return m.resize(80, 24)
}

// Host returns the menu host behind the model.
func (m Model) Host() *Host { return m.host }

// Init starts the status clock.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// tickCmd schedules the next one-second clock tick.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles all incoming bubbletea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.host.Teardown()
			return m, tea.Quit
		}
		m, cmd = m.handleKey(msg)
	case tea.MouseMsg:
		m, cmd = m.handleMouse(msg)
	case tea.BlurMsg:
		m.host.Apply(store.Entry{Kind: store.KindBlur})
	case tea.WindowSizeMsg:
		m.host.Apply(store.Entry{Kind: store.KindResize, Width: msg.Width, Height: msg.Height})
		m = m.resize(msg.Width, msg.Height)
	case callbackMsg:
		m.sched.fire(msg)
	case ConfigMsg:
		m = m.applyConfig(msg.Config)
	case tickMsg:
		m.now = time.Time(msg)
		cmd = tickCmd()
	}

	m = m.drainActivity()
	if m.host.Quit() {
		m.host.Teardown()
		return m, tea.Batch(m.sched.Cmds(), tea.Quit)
	}
	return m, tea.Batch(cmd, m.sched.Cmds())
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	open := m.host.Stack().IsOpen()
	if !open && msg.String() == "?" {
		m.footer.ToggleAll()
		return m, nil
	}
	e, ok := EventFromKey(msg)
	if !ok {
		return m, nil
	}
	res := m.host.Apply(KeyEntry(e))
	if res.Propagate() && !open && m.host.Focus() == FocusLog {
		var cmd tea.Cmd
		m.log, cmd = m.log.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if tea.MouseEvent(msg).IsWheel() {
		if m.host.Stack().IsOpen() {
			return m, nil
		}
		var cmd tea.Cmd
		m.log, cmd = m.log.Update(msg)
		return m, cmd
	}
	if e, ok := MouseEntry(msg); ok {
		m.host.Apply(e)
	}
	return m, nil
}

func (m Model) applyConfig(cfg *config.Config) Model {
	if cfg == nil {
		return m
	}
	m.host.SetKeys(cfg.Binding)
	m.host.SetIntentDelay(cfg.IntentDelay())
	m.host.SetKeepOpenOnBlur(cfg.Menu.KeepOpenOnBlur)
	m.theme = NewTheme(cfg.TUI.AccentColor)
	m.host.note("", "configuration reloaded")
	return m
}

// drainActivity applies view commands and appends the host's activity to
// the log.
func (m Model) drainActivity() Model {
	for _, a := range m.host.TakeActivity() {
		switch a.Command {
		case "view.follow":
			m.log = m.log.ToggleFollow()
		case "view.clear":
			m.log = m.log.Clear()
		case "help.keys":
			m.footer.ToggleAll()
		}
		m.log = m.log.Append(m.theme.RenderActivity(a, m.width))
	}
	return m
}

func (m Model) resize(width, height int) Model {
	m.width, m.height = width, height
	m.layout = Calculate(width, height)
	if !m.layout.TooSmall {
		m.log = m.log.SetSize(m.layout.Body.Width, m.layout.Body.Height)
		m.footer.SetWidth(m.layout.Footer.Width)
	}
	return m
}

// View renders the bar, the log, the status line and the key help, then
// draws every open menu over them.
func (m Model) View() string {
	if m.layout.TooSmall {
		msg := fmt.Sprintf("Terminal too small (%dx%d).\nPlease resize to at least %dx%d.",
			m.width, m.height, MinWidth, MinHeight)
		return tooSmallStyle.
			Width(m.width).
			Align(lipgloss.Center).
			Render(msg)
	}

	stack := m.host.Stack()
	active, open := m.host.Active(), false
	if root := stack.Root(); root != nil {
		open = true
	}
	bar := components.NewMenuBar(m.host.Titles(), m.theme.Bar).
		SetActive(active, open).
		SetWidth(m.width).
		View()

	body := lipgloss.NewStyle().
		Width(m.layout.Body.Width).
		Height(m.layout.Body.Height).
		MaxHeight(m.layout.Body.Height).
		Render(m.log.View())

	status := panels.RenderStatus(panels.StatusProps{
		Path:      stack.String(),
		LastInput: m.host.Last(),
		Focus:     m.host.Focus().String(),
		Pending:   m.sched.Pending(),
		Journal:   m.journal,
		Elapsed:   m.now.Sub(m.startedAt),
	}, m.layout.Status.Width, m.theme.Status)

	footer := m.footer.View(keysFor(m.host, m.platform))

	screen := lipgloss.JoinVertical(lipgloss.Left, bar, body, status, "")
	screen = components.Overlay(screen, footer, 0, m.height-lipgloss.Height(footer))

	for _, om := range stack.Open() {
		r, ok := m.host.Box(om.Menu)
		if !ok {
			continue
		}
		box := components.MenuBox{Rows: m.host.Rows(om.Menu), Styles: m.theme.Menu}
		screen = components.Overlay(screen, box.View(), r.X, r.Y)
	}
	return screen
}
