package tui

import (
	"github.com/LISSConsulting/LISSTech.Cascade/internal/shortcut"
)

// Command is a host action reachable from a menu row or, when bound, from
// the keyboard while no menu is open.
type Command struct {
	ID       string
	Label    string
	Shortcut shortcut.Binding
}

// Entry describes one row of a menu. Leaves name a command; an Entry with
// Children opens a submenu instead.
type Entry struct {
	Label    string
	Command  string
	Disabled bool
	Children []Entry
}

// Title is a top-level menu on the bar. Its first letter is the Alt
// mnemonic.
type Title struct {
	Label   string
	Entries []Entry
}

// QuitCommand ends the demo.
const QuitCommand = "app.quit"

func bind(texts ...string) shortcut.Binding {
	if g := shortcut.ParseGroup(texts...); g != nil {
		return g
	}
	return nil
}

// DemoCommands returns the demo's command table with its default
// shortcuts. Config [keys] entries override these by ID.
func DemoCommands() []Command {
	return []Command{
		{ID: "file.new", Label: "New", Shortcut: bind("Primary+N")},
		{ID: "file.open", Label: "Open…", Shortcut: bind("Primary+O")},
		{ID: "file.recent.notes", Label: "notes.md"},
		{ID: "file.recent.todo", Label: "todo.txt"},
		{ID: "file.recent.archive.2023", Label: "2023.tar"},
		{ID: "file.recent.archive.2024", Label: "2024.tar"},
		{ID: "file.recent.clear", Label: "Clear Recent"},
		{ID: "file.save", Label: "Save", Shortcut: bind("Primary+S")},
		{ID: "file.save_as", Label: "Save As…", Shortcut: bind("Primary+Shift+S")},
		{ID: "file.export.pdf", Label: "PDF"},
		{ID: "file.export.html", Label: "HTML"},
		{ID: "file.export.markdown", Label: "Markdown"},
		{ID: "file.print", Label: "Print…", Shortcut: bind("Primary+P")},
		{ID: QuitCommand, Label: "Quit", Shortcut: bind("Primary+Q")},
		{ID: "edit.undo", Label: "Undo", Shortcut: bind("Primary+Z")},
		{ID: "edit.redo", Label: "Redo", Shortcut: bind("Primary+Y", "Primary+Shift+Z")},
		{ID: "edit.cut", Label: "Cut", Shortcut: bind("Primary+X", "Shift+Delete")},
		{ID: "edit.copy", Label: "Copy", Shortcut: bind("Primary+Insert")},
		{ID: "edit.paste", Label: "Paste", Shortcut: bind("Primary+V", "Shift+Insert")},
		{ID: "edit.delete", Label: "Delete", Shortcut: bind("Delete")},
		{ID: "edit.select_all", Label: "Select All", Shortcut: bind("Primary+A")},
		{ID: "edit.find", Label: "Find…", Shortcut: bind("Primary+F")},
		{ID: "edit.replace", Label: "Replace…", Shortcut: bind("Primary+H")},
		{ID: "view.zoom.in", Label: "Zoom In", Shortcut: bind("Primary+Plus")},
		{ID: "view.zoom.out", Label: "Zoom Out", Shortcut: bind("Primary+Minus")},
		{ID: "view.zoom.reset", Label: "Actual Size", Shortcut: bind("Primary+0")},
		{ID: "view.follow", Label: "Follow Log", Shortcut: bind("F")},
		{ID: "view.clear", Label: "Clear Log", Shortcut: bind("Primary+L")},
		{ID: "help.keys", Label: "Keyboard Shortcuts", Shortcut: bind("F1")},
		{ID: "help.about", Label: "About Cascade"},
	}
}

// DemoMenus returns the demo's menu bar.
func DemoMenus() []Title {
	return []Title{
		{Label: "File", Entries: []Entry{
			{Label: "New", Command: "file.new"},
			{Label: "Open…", Command: "file.open"},
			{Label: "Open Recent", Children: []Entry{
				{Label: "notes.md", Command: "file.recent.notes"},
				{Label: "todo.txt", Command: "file.recent.todo"},
				{Label: "Archive", Children: []Entry{
					{Label: "2023.tar", Command: "file.recent.archive.2023"},
					{Label: "2024.tar", Command: "file.recent.archive.2024"},
				}},
				{Label: "Clear Recent", Command: "file.recent.clear"},
			}},
			{Label: "Save", Command: "file.save"},
			{Label: "Save As…", Command: "file.save_as"},
			{Label: "Export", Children: []Entry{
				{Label: "PDF", Command: "file.export.pdf"},
				{Label: "HTML", Command: "file.export.html"},
				{Label: "Markdown", Command: "file.export.markdown", Disabled: true},
			}},
			{Label: "Print…", Command: "file.print", Disabled: true},
			{Label: "Quit", Command: QuitCommand},
		}},
		{Label: "Edit", Entries: []Entry{
			{Label: "Undo", Command: "edit.undo"},
			{Label: "Redo", Command: "edit.redo", Disabled: true},
			{Label: "Cut", Command: "edit.cut"},
			{Label: "Copy", Command: "edit.copy"},
			{Label: "Paste", Command: "edit.paste"},
			{Label: "Delete", Command: "edit.delete"},
			{Label: "Select All", Command: "edit.select_all"},
			{Label: "Find", Children: []Entry{
				{Label: "Find…", Command: "edit.find"},
				{Label: "Replace…", Command: "edit.replace"},
			}},
		}},
		{Label: "View", Entries: []Entry{
			{Label: "Zoom", Children: []Entry{
				{Label: "Zoom In", Command: "view.zoom.in"},
				{Label: "Zoom Out", Command: "view.zoom.out"},
				{Label: "Actual Size", Command: "view.zoom.reset"},
			}},
			{Label: "Follow Log", Command: "view.follow"},
			{Label: "Clear Log", Command: "view.clear"},
		}},
		{Label: "Help", Entries: []Entry{
			{Label: "Keyboard Shortcuts", Command: "help.keys"},
			{Label: "About Cascade", Command: "help.about"},
		}},
	}
}
