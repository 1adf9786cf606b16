package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ReadyMarker is drawn under the help line when the app runs under e2e tests
const ReadyMarker = "__READY__"

// Section is one titled listbox on screen
type Section struct {
	Title   string
	Value   string
	Body    string
	Focused bool
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Sections      []Section
	StatusMessage string
	StatusIsError bool
	HelpLine      string
	Ready         bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Render produces the complete view and the screen row each section body
// starts on
func (r *Renderer) Render(state ViewState) (string, []int) {
	content := &strings.Builder{}
	tops := make([]int, len(state.Sections))

	content.WriteString(r.styles.Title.Render("listbox"))
	content.WriteString("\n\n")
	row := 2

	for i, section := range state.Sections {
		content.WriteString(r.renderHeader(section))
		content.WriteString("\n")
		row++

		tops[i] = row
		content.WriteString(section.Body)
		content.WriteString("\n\n")
		row += lipgloss.Height(section.Body) + 1
	}

	if state.StatusMessage != "" {
		style := r.styles.StatusSuccess
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		content.WriteString(style.Render(state.StatusMessage))
		content.WriteString("\n")
	}

	// Push the help line to the bottom
	footer := r.styles.Help.Render(state.HelpLine)
	if state.Ready {
		footer += "\n" + ReadyMarker
	}
	currentLines := strings.Count(content.String(), "\n")
	paddingNeeded := state.Height - currentLines - lipgloss.Height(footer)
	if paddingNeeded > 0 {
		content.WriteString(strings.Repeat("\n", paddingNeeded))
	}
	content.WriteString(footer)

	return content.String(), tops
}

func (r *Renderer) renderHeader(section Section) string {
	title := r.styles.Header.Render("  " + section.Title)
	if section.Focused {
		title = r.styles.HeaderFocused.Render("▸ " + section.Title)
	}
	return fmt.Sprintf("%s  %s", title, r.styles.Value.Render("value: "+section.Value))
}
