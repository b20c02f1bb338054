package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextFocus key.Binding
	PrevFocus key.Binding
	PrevValue key.Binding
	NextValue key.Binding
	Clear     key.Binding
	Open      key.Binding
	Close     key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextFocus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next control")),
		PrevFocus: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev control")),
		PrevValue: key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev value")),
		NextValue: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next value")),
		Clear:     key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear all filters")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextFocus, k.PrevValue, k.NextValue, k.Clear, k.Open, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextFocus, k.PrevFocus, k.PrevValue, k.NextValue},
		{k.Clear, k.Open, k.Close, k.Quit},
	}
}
