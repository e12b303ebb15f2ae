package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	tab      key.Binding
	create   key.Binding
	rename   key.Binding
	delete   key.Binding
	export   key.Binding
	songs    key.Binding
	moveUp   key.Binding
	moveDown key.Binding
	remove   key.Binding
	add      key.Binding
	mode     key.Binding
	query    key.Binding
	refresh  key.Binding
	logout   key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		tab:      key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		create:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		rename:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		export:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		songs:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "songs")),
		moveUp:   key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		moveDown: key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		remove:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
		add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to playlist")),
		mode:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mode")),
		query:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "query")),
		refresh:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
		logout:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.create, k.rename, k.delete, k.export},
		{k.moveUp, k.moveDown, k.remove, k.add},
		{k.songs, k.mode, k.query, k.refresh},
		{k.logout, k.quit},
	}
}
