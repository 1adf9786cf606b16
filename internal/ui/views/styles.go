package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Header        lipgloss.Style
	HeaderFocused lipgloss.Style
	Value         lipgloss.Style
	Dim           lipgloss.Style
	Help          lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Header:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		HeaderFocused: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Value:         lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Dim:           lipgloss.NewStyle().Faint(true),
		Help:          lipgloss.NewStyle().Faint(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}
