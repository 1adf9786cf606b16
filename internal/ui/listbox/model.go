// Package listbox renders a listbox engine as a bubbletea component.
//
// Input runs in two phases. Update applies a key or click to the engine,
// which moves the active option at once, and returns a command. Its message
// comes back after the moved cursor was drawn; Update then settles the engine
// and turns every committed value into a ChangeMsg for the parent.
package listbox

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	lb "listbox/internal/listbox"
)

// Template renders one option. Its output with escape codes stripped is the
// option's text label for type-ahead.
type Template[T any] func(option T) string

// ChangeMsg carries a committed value to the parent model
type ChangeMsg[T any] struct {
	ID    string
	Value lb.Value[T]
}

type settleMsg struct {
	id string
}

// outbox collects committed values between a settle and the parent update.
// Shared by copies of a Model.
type outbox[T any] struct {
	changes []lb.Value[T]
}

// Model is a listbox component
type Model[T any] struct {
	id       string
	engine   *lb.Engine[T]
	template Template[T]
	out      *outbox[T]

	keys      KeyMap
	styles    Styles
	focused   bool
	width     int
	top       int
	showAttrs bool
}

// New wraps engine in a component identified by id. A nil template renders
// options with fmt.Sprint.
func New[T any](id string, engine *lb.Engine[T], template Template[T]) Model[T] {
	if template == nil {
		template = func(option T) string { return fmt.Sprint(option) }
	}

	out := &outbox[T]{}
	engine.SetLabel(func(option T) string {
		return strings.TrimSpace(ansi.Strip(template(option)))
	})
	engine.OnChange(func(v lb.Value[T]) {
		out.changes = append(out.changes, v)
	})

	return Model[T]{
		id:       id,
		engine:   engine,
		template: template,
		out:      out,
		keys:     DefaultKeyMap(),
		styles:   DefaultStyles(),
	}
}

// ID returns the component id
func (m Model[T]) ID() string {
	return m.id
}

// Engine returns the underlying engine for host setters
func (m Model[T]) Engine() *lb.Engine[T] {
	return m.engine
}

// Value returns the engine value
func (m Model[T]) Value() lb.Value[T] {
	return m.engine.Value()
}

// KeyMap returns the key bindings for help rendering
func (m Model[T]) KeyMap() KeyMap {
	return m.keys
}

// Focus gives the component keyboard input
func (m *Model[T]) Focus() {
	m.focused = true
}

// Blur takes keyboard input away
func (m *Model[T]) Blur() {
	m.focused = false
}

// Focused reports whether the component receives keys
func (m Model[T]) Focused() bool {
	return m.focused
}

// SetWidth limits rows to width cells; zero means unlimited
func (m *Model[T]) SetWidth(width int) {
	m.width = width
}

// SetTop sets the screen row of the first option, for mouse hit testing
func (m *Model[T]) SetTop(top int) {
	m.top = top
}

// SetShowAttributes toggles the attribute readout under the rows
func (m *Model[T]) SetShowAttributes(show bool) {
	m.showAttrs = show
}

// RowAt returns the option index drawn at screen row y, or -1
func (m Model[T]) RowAt(y int) int {
	i := y - m.top
	if i < 0 || i >= m.engine.Len() {
		return lb.NoActive
	}
	return i
}

// Update handles key, mouse and settle messages
func (m Model[T]) Update(msg tea.Msg) (Model[T], tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		k, ok := m.keys.translate(msg)
		if !ok {
			return m, nil
		}
		if res := m.engine.KeyDown(k); !res.Handled {
			return m, nil
		}
		return m, m.settle()

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		i := m.RowAt(msg.Y)
		if i == lb.NoActive || !m.engine.ActivateIndex(i) {
			return m, nil
		}
		return m, m.settle()

	case settleMsg:
		if msg.id != m.id {
			return m, nil
		}
		m.engine.Settle()
		return m, m.flush()
	}

	return m, nil
}

func (m Model[T]) settle() tea.Cmd {
	id := m.id
	return func() tea.Msg {
		return settleMsg{id: id}
	}
}

// flush turns collected values into change messages, oldest first
func (m Model[T]) flush() tea.Cmd {
	if len(m.out.changes) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(m.out.changes))
	for _, v := range m.out.changes {
		change := ChangeMsg[T]{ID: m.id, Value: v}
		cmds = append(cmds, func() tea.Msg { return change })
	}
	m.out.changes = nil
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Sequence(cmds...)
}

// View renders the options and, when enabled, the attribute readout
func (m Model[T]) View() string {
	attrs := m.engine.Attrs()
	options := m.engine.Options()

	var b strings.Builder
	if len(options) == 0 {
		b.WriteString(m.styles.Empty.Render("(no options)"))
	}
	for i, option := range options {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderRow(option, attrs.Options[i]))
	}

	if m.showAttrs {
		b.WriteString("\n\n")
		b.WriteString(m.renderAttrs(attrs))
	}
	return b.String()
}

func (m Model[T]) renderRow(option T, attrs lb.OptionAttrs) string {
	active := m.focused && slices.Contains(attrs.Parts, lb.PartOptionActive)
	selected := slices.Contains(attrs.Parts, lb.PartOptionSelected)

	cursor := "  "
	if active {
		cursor = "> "
	}
	mark := ""
	if m.engine.Multiple() {
		mark = "[ ] "
		if selected {
			mark = "[x] "
		}
	}

	text := m.template(option)
	if m.width > 0 {
		avail := m.width - len(cursor) - len(mark)
		if avail < 1 {
			avail = 1
		}
		text = ansi.Truncate(text, avail, "…")
	}

	style := m.styles.Option
	switch {
	case active && selected:
		style = m.styles.ActiveSelected
	case active:
		style = m.styles.Active
	case selected:
		style = m.styles.Selected
	case !m.focused:
		style = m.styles.Blurred
	}
	return cursor + style.Render(mark+text)
}

// renderAttrs writes the listbox attributes and one line per option
func (m Model[T]) renderAttrs(attrs lb.Attrs) string {
	lines := []string{
		m.styles.AttrKey.Render(runewidth.FillRight(attrs.Part, m.idWidth(attrs))) + " " +
			m.styles.Attr.Render(formatAttrs(attrs.Map(), "part")),
	}
	for _, o := range attrs.Options {
		lines = append(lines,
			m.styles.AttrKey.Render(runewidth.FillRight(o.ID, m.idWidth(attrs)))+" "+
				m.styles.Attr.Render(formatAttrs(o.Map(), "id")))
	}
	return strings.Join(lines, "\n")
}

func (m Model[T]) idWidth(attrs lb.Attrs) int {
	w := runewidth.StringWidth(attrs.Part)
	for _, o := range attrs.Options {
		w = max(w, runewidth.StringWidth(o.ID))
	}
	return w
}

// formatAttrs renders attributes as sorted key=value pairs without skip
func formatAttrs(attrs map[string]string, skip string) string {
	pairs := make([]string, 0, len(attrs))
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		if k == skip {
			continue
		}
		pairs = append(pairs, fmt.Sprintf("%s=%q", k, attrs[k]))
	}
	return strings.Join(pairs, " ")
}
