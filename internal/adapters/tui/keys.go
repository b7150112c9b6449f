package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// keyMap is the keyboard layout of the timeline.
type keyMap struct {
	Quit         key.Binding
	Add          key.Binding
	Delete       key.Binding
	Next         key.Binding
	Prev         key.Binding
	EditStart    key.Binding
	EditEnd      key.Binding
	EditName     key.Binding
	EditDuration key.Binding
	PanEarlier   key.Binding
	PanLater     key.Binding
}

// editKeyMap is active while a field is being edited.
type editKeyMap struct {
	Commit    key.Binding
	Cancel    key.Binding
	NextField key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Add: key.NewBinding(
			key.WithKeys("a", "+"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down", "j"),
			key.WithHelp("tab", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up", "k"),
			key.WithHelp("shift+tab", "prev"),
		),
		EditStart: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start"),
		),
		EditEnd: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "end"),
		),
		EditName: key.NewBinding(
			key.WithKeys("n", "r"),
			key.WithHelp("n", "name"),
		),
		EditDuration: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "duration"),
		),
		PanEarlier: key.NewBinding(
			key.WithKeys("[", "left", "h"),
			key.WithHelp("[", "earlier"),
		),
		PanLater: key.NewBinding(
			key.WithKeys("]", "right", "l"),
			key.WithHelp("]", "later"),
		),
	}
}

func defaultEditKeyMap() editKeyMap {
	return editKeyMap{
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
	}
}

// helpLine renders bindings as "a add · x delete".
func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}

func (k keyMap) help() string {
	return helpLine(k.Add, k.Next, k.EditStart, k.EditEnd, k.EditName, k.EditDuration, k.Delete, k.PanEarlier, k.PanLater, k.Quit)
}

func (k editKeyMap) help() string {
	return helpLine(k.Commit, k.NextField, k.Cancel)
}
