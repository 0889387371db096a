package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"photogrid/internal/ui/input/types"
)

// keyMap documents the bindings handled by the input modes. It only feeds the
// help line; dispatch happens in input/modes.
type keyMap struct {
	Navigate key.Binding
	Search   key.Binding
	Open     key.Binding
	Select   key.Binding
	Move     key.Binding
	Drop     key.Binding
	Share    key.Binding
	Cancel   key.Binding
	Submit   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Navigate: key.NewBinding(key.WithKeys("up", "down", "left", "right", "h", "j", "k", "l"), key.WithHelp("←↓↑→", "move")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "expand")),
		Select:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		Move:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move photo")),
		Drop:     key.NewBinding(key.WithKeys("enter", "m"), key.WithHelp("enter", "drop")),
		Share:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "share")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown for the current mode
func (k keyMap) ShortHelp(mode types.Mode, sharing bool) []key.Binding {
	switch mode {
	case types.ModeSearch:
		return []key.Binding{k.Submit, k.Cancel}
	case types.ModeDrag:
		return []key.Binding{k.Navigate, k.Drop, k.Cancel}
	}
	if sharing {
		return []key.Binding{k.Navigate, k.Select, k.Share, k.Cancel, k.Help}
	}
	return []key.Binding{k.Search, k.Navigate, k.Open, k.Move, k.Share, k.Help, k.Quit}
}

// FullHelp groups every binding, used when the pager is unavailable
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Navigate, k.Open, k.Search},
		{k.Share, k.Select, k.Cancel},
		{k.Move, k.Drop},
		{k.Help, k.Quit},
	}
}
