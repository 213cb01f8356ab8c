package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up        key.Binding
	down      key.Binding
	prevPage  key.Binding
	nextPage  key.Binding
	enter     key.Binding
	esc       key.Binding
	tab       key.Binding
	refresh   key.Binding
	search    key.Binding
	filter    key.Binding
	sort      key.Binding
	sortFlip  key.Binding
	selectOne key.Binding
	selectAll key.Binding
	copy      key.Binding
	approve   key.Binding
	reject    key.Binding
	yes       key.Binding
	no        key.Binding
	register  key.Binding
	forgot    key.Binding
}

var keys = keyMap{
	up:        key.NewBinding(key.WithKeys("up", "k")),
	down:      key.NewBinding(key.WithKeys("down", "j")),
	prevPage:  key.NewBinding(key.WithKeys("left", "pgup")),
	nextPage:  key.NewBinding(key.WithKeys("right", "pgdown")),
	enter:     key.NewBinding(key.WithKeys("enter")),
	esc:       key.NewBinding(key.WithKeys("esc")),
	tab:       key.NewBinding(key.WithKeys("tab")),
	refresh:   key.NewBinding(key.WithKeys("r")),
	search:    key.NewBinding(key.WithKeys("/")),
	filter:    key.NewBinding(key.WithKeys("f")),
	sort:      key.NewBinding(key.WithKeys("o")),
	sortFlip:  key.NewBinding(key.WithKeys("O")),
	selectOne: key.NewBinding(key.WithKeys(" ")),
	selectAll: key.NewBinding(key.WithKeys("A")),
	copy:      key.NewBinding(key.WithKeys("y")),
	approve:   key.NewBinding(key.WithKeys("a")),
	reject:    key.NewBinding(key.WithKeys("x")),
	yes:       key.NewBinding(key.WithKeys("y")),
	no:        key.NewBinding(key.WithKeys("n", "esc")),
	register:  key.NewBinding(key.WithKeys("ctrl+r")),
	forgot:    key.NewBinding(key.WithKeys("ctrl+f")),
}
