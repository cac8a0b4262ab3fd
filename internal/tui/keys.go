package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/matheuskafuri/readq/internal/triage"
)

// actionKey binds a key to the action kind it emits. The selected row
// supplies the article id.
type actionKey struct {
	binding key.Binding
	kind    triage.Kind
}

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Open    key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding

	actions []actionKey
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		NextTab: key.NewBinding(key.WithKeys("tab", "l", "right"), key.WithHelp("tab", "next view")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab", "h", "left"), key.WithHelp("shift+tab", "prev view")),
		Open:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open link")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		actions: []actionKey{
			{key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")), triage.KindFavorite},
			{key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "archive")), triage.KindArchive},
			{key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "trash")), triage.KindTrash},
			{key.NewBinding(key.WithKeys("enter", " ", "space"), key.WithHelp("enter", "expand")), triage.KindToggleExpand},
		},
	}
}

func (k keyMap) actionBindings() []key.Binding {
	out := make([]key.Binding, len(k.actions))
	for i, a := range k.actions {
		out[i] = a.binding
	}
	return out
}

func (k keyMap) ShortHelp() []key.Binding {
	return append(k.actionBindings(), k.Help, k.Quit)
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.actionBindings(),
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Open, k.Refresh, k.Help, k.Quit},
	}
}
