package listbox

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	lb "listbox/internal/listbox"
)

// KeyMap defines the listbox key bindings. Letters and digits are not bound;
// they go to type-ahead.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Home   key.Binding
	End    key.Binding
	Select key.Binding
}

// DefaultKeyMap returns the default listbox bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "last"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "select"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Home, k.End},
		{k.Select},
	}
}

// translate maps a terminal key to the listbox key it stands for
func (k KeyMap) translate(msg tea.KeyMsg) (lb.Key, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return lb.KeyArrowUp, true
	case key.Matches(msg, k.Down):
		return lb.KeyArrowDown, true
	case key.Matches(msg, k.Home):
		return lb.KeyHome, true
	case key.Matches(msg, k.End):
		return lb.KeyEnd, true
	case key.Matches(msg, k.Select):
		if msg.String() == " " {
			return lb.KeySpace, true
		}
		return lb.KeyEnter, true
	}

	if msg.Type == tea.KeyRunes && !msg.Alt && len(msg.Runes) == 1 {
		return lb.Key(string(msg.Runes)), true
	}
	return "", false
}
