package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up            key.Binding
	Down          key.Binding
	Preview       key.Binding
	ToggleSelect  key.Binding
	Accept        key.Binding
	BatchAccept   key.Binding
	Reject        key.Binding
	BatchReject   key.Binding
	SelectAll     key.Binding
	Search        key.Binding
	ClearFilters  key.Binding
	CycleSort     key.Binding
	ToggleOrder   key.Binding
	Generate      key.Binding
	Notifications key.Binding
	MarkAllRead   key.Binding
	RawJSON       key.Binding
	Help          key.Binding
	Escape        key.Binding
	Quit          key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Preview: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "preview"),
	),
	ToggleSelect: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "select"),
	),
	Accept: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "accept focused"),
	),
	BatchAccept: key.NewBinding(
		key.WithKeys("A"),
		key.WithHelp("A", "accept selection"),
	),
	Reject: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reject focused"),
	),
	BatchReject: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "reject selection"),
	),
	SelectAll: key.NewBinding(
		key.WithKeys("ctrl+a"),
		key.WithHelp("ctrl+a", "select all"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	ClearFilters: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear filters"),
	),
	CycleSort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort field"),
	),
	ToggleOrder: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "sort order"),
	),
	Generate: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "generate"),
	),
	Notifications: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "notifications"),
	),
	MarkAllRead: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "mark all read"),
	),
	RawJSON: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "raw json"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close/clear"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
