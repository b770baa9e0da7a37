package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Reverse  key.Binding
	Restart  key.Binding
	Complete key.Binding
	Back     key.Binding
	Forward  key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "play/pause")),
		Reverse:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reverse")),
		Restart:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "restart")),
		Complete: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end")),
		Back:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "-10%")),
		Forward:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "+10%")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Reverse, k.Restart, k.Complete, k.Back, k.Forward, k.Quit}
}

// helpLine renders "key desc" pairs for the footer.
func (k keyMap) helpLine() string {
	parts := make([]string, 0, len(k.bindings()))
	for _, b := range k.bindings() {
		h := b.Help()
		parts = append(parts, h.Key+" "+dimStyle.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}
