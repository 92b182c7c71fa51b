package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Search        key.Binding
	ReplaceAll    key.Binding
	Preview       key.Binding
	Up            key.Binding
	Down          key.Binding
	Open          key.Binding
	Workspaces    key.Binding
	Focus         key.Binding
	CaseSensitive key.Binding
	WholeWord     key.Binding
	Regex         key.Binding
	ReplaceMode   key.Binding
	Parent        key.Binding
	Cancel        key.Binding
	Quit          key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Search:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search / select")),
		ReplaceAll:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "replace all")),
		Preview:       key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "preview replace")),
		Up:            key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous match")),
		Down:          key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next match")),
		Open:          key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open match")),
		Workspaces:    key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "switch workspace")),
		Focus:         key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		CaseSensitive: key.NewBinding(key.WithKeys("alt+c"), key.WithHelp("alt+c", "match case")),
		WholeWord:     key.NewBinding(key.WithKeys("alt+w"), key.WithHelp("alt+w", "whole word")),
		Regex:         key.NewBinding(key.WithKeys("alt+r"), key.WithHelp("alt+r", "regular expression")),
		ReplaceMode:   key.NewBinding(key.WithKeys("ctrl+h"), key.WithHelp("ctrl+h", "replace mode")),
		Parent:        key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "parent directory (explorer)")),
		Cancel:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close popup")),
		Quit:          key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// help lists key/description pairs for the help popup.
func (k keyMap) help() [][2]string {
	bindings := []key.Binding{
		k.Search, k.ReplaceAll, k.Preview, k.Up, k.Down, k.Open, k.Workspaces, k.Focus,
		k.CaseSensitive, k.WholeWord, k.Regex, k.ReplaceMode, k.Parent, k.Cancel, k.Quit,
	}
	out := make([][2]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, [2]string{h.Key, h.Desc})
	}
	return out
}
