package listbox

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the style definitions for a listbox
type Styles struct {
	Option         lipgloss.Style
	Active         lipgloss.Style
	Selected       lipgloss.Style
	ActiveSelected lipgloss.Style
	Blurred        lipgloss.Style
	Empty          lipgloss.Style
	Attr           lipgloss.Style
	AttrKey        lipgloss.Style
}

// DefaultStyles returns the default listbox styles
func DefaultStyles() Styles {
	return Styles{
		Option:         lipgloss.NewStyle(),
		Active:         lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Selected:       lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true), // green
		ActiveSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true).Background(lipgloss.Color("238")),
		Blurred:        lipgloss.NewStyle().Faint(true),
		Empty:          lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Attr:           lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		AttrKey:        lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	}
}
