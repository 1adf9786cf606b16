package ui

import (
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"listbox/internal/config"
	"listbox/internal/domain"
	"listbox/internal/eventbus"
	lb "listbox/internal/listbox"
	"listbox/internal/ui/listbox"
	"listbox/internal/ui/views"
)

// List ids, also used as option id prefixes
const (
	SingleID   = "single"
	MultipleID = "multiple"
)

const (
	focusSingle = iota
	focusMultiple
	focusCount
)

type keyMap struct {
	Next  key.Binding
	Prev  key.Binding
	Attrs key.Binding
	Help  key.Binding
	Quit  key.Binding
	list  listbox.KeyMap
}

func newKeyMap(list listbox.KeyMap) keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next list"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous list"),
		),
		Attrs: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "attributes"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		list: list,
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return append(k.list.ShortHelp(), k.Next, k.Attrs, k.Help, k.Quit)
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return append(k.list.FullHelp(), []key.Binding{k.Next, k.Prev, k.Attrs, k.Help, k.Quit})
}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config

	single   listbox.Model[string]
	multiple listbox.Model[domain.Member]
	focus    int

	keys         keyMap
	help         help.Model
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	helpOps      *HelpOps

	width         int
	height        int
	status        string
	statusIsError bool
	showAttrs     bool
	ready         bool
}

// NewModel creates the demo host with a single-select and a multiple-select list
func NewModel(cfg *config.Config, bus eventbus.EventBus) *Model {
	timeout := cfg.TypeAhead.Timeout.Duration

	singleValue := lb.None[string]()
	if cfg.Single.Value != "" {
		singleValue = lb.Single(cfg.Single.Value)
	}
	singleEngine := lb.New(
		lb.WithOptions(cfg.Single.Options),
		lb.WithValue(singleValue),
		lb.WithIDPrefix[string](SingleID+"-"),
		lb.WithTypeAheadTimeout[string](timeout),
		lb.WithBus[string](bus),
	)

	multipleEngine := lb.NewFunc(
		func(a, b domain.Member) bool { return a.Name == b.Name },
		lb.WithOptions(cfg.Multiple.Options),
		lb.WithValue(lb.Multi(cfg.SelectedMembers()...)),
		lb.WithMultiple[domain.Member](true),
		lb.WithIDPrefix[domain.Member](MultipleID+"-"),
		lb.WithTypeAheadTimeout[domain.Member](timeout),
		lb.WithBus[domain.Member](bus),
	)

	m := &Model{
		bus:          bus,
		config:       cfg,
		single:       listbox.New(SingleID, singleEngine, nil),
		multiple:     listbox.New(MultipleID, multipleEngine, func(o domain.Member) string { return o.Name }),
		help:         help.New(),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		helpOps:      NewHelpOps(),
	}
	m.keys = newKeyMap(m.single.KeyMap())
	m.setShowAttributes(cfg.UISettings.ShowAttributes)
	m.applyFocus()
	return m
}

// SetProgram gives the help pager access to the terminal
func (m *Model) SetProgram(p *tea.Program) {
	m.helpOps.SetProgram(p)
}

// SetReadyMarker draws the e2e ready marker
func (m *Model) SetReadyMarker(ready bool) {
	m.ready = ready
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.single.SetWidth(msg.Width - 2)
		m.multiple.SetWidth(msg.Width - 2)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			switch {
			case m.single.RowAt(msg.Y) != lb.NoActive:
				m.focus = focusSingle
			case m.multiple.RowAt(msg.Y) != lb.NoActive:
				m.focus = focusMultiple
			}
			m.applyFocus()
		}
		return m, m.forward(msg)

	case listbox.ChangeMsg[string]:
		first, _ := msg.Value.First()
		m.config.Single.Value = first
		m.setStatus(fmt.Sprintf("%s: %s", msg.ID, msg.Value), false)
		return m, nil

	case listbox.ChangeMsg[domain.Member]:
		names := make([]string, 0, msg.Value.Len())
		for _, member := range msg.Value.Items() {
			names = append(names, member.Name)
		}
		m.config.Multiple.Values = names
		m.setStatus(fmt.Sprintf("%s: %s", msg.ID, msg.Value), false)
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			log.Printf("Help pager failed: %v", msg.err)
			m.setStatus(fmt.Sprintf("Help unavailable: %v", msg.err), true)
		}
		return m, nil

	case EventMsg:
		switch event := msg.Event.(type) {
		case eventbus.ErrorEvent:
			m.setStatus(event.Message, true)
		case eventbus.ConfigSavedEvent:
			m.setStatus("Config saved to "+event.Path, false)
		}
		return m, nil

	case quitMsg:
		if msg.saveConfig && m.bus != nil {
			m.bus.Publish(eventbus.ConfigChangedEvent{
				SingleValue:    m.config.Single.Value,
				MultipleValues: m.config.Multiple.Values,
			})
		}
		return m, tea.Quit
	}

	return m, m.forward(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		save := m.config.UISettings.AutosaveOnExit
		return m, func() tea.Msg { return quitMsg{saveConfig: save} }

	case key.Matches(msg, m.keys.Next):
		m.focus = (m.focus + 1) % focusCount
		m.applyFocus()
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.focus = (m.focus + focusCount - 1) % focusCount
		m.applyFocus()
		return m, nil

	case key.Matches(msg, m.keys.Attrs):
		m.setShowAttributes(!m.showAttrs)
		return m, nil

	case key.Matches(msg, m.keys.Help):
		content := m.helpRenderer.RenderHelpContent()
		helpOps := m.helpOps
		return m, func() tea.Msg {
			return helpPagerMsg{err: helpOps.ShowHelpInPager(content)}
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusSingle:
		m.single, cmd = m.single.Update(msg)
	case focusMultiple:
		m.multiple, cmd = m.multiple.Update(msg)
	}
	return m, cmd
}

// forward hands msg to both lists; each ignores what is not addressed to it
func (m *Model) forward(msg tea.Msg) tea.Cmd {
	var singleCmd, multipleCmd tea.Cmd
	m.single, singleCmd = m.single.Update(msg)
	m.multiple, multipleCmd = m.multiple.Update(msg)
	return tea.Batch(singleCmd, multipleCmd)
}

func (m *Model) applyFocus() {
	m.single.Blur()
	m.multiple.Blur()
	switch m.focus {
	case focusSingle:
		m.single.Focus()
	case focusMultiple:
		m.multiple.Focus()
	}
}

func (m *Model) setShowAttributes(show bool) {
	m.showAttrs = show
	m.single.SetShowAttributes(show)
	m.multiple.SetShowAttributes(show)
}

func (m *Model) setStatus(status string, isError bool) {
	m.status = status
	m.statusIsError = isError
}

// View renders the UI. It also records where each list landed on screen so
// the next mouse message can be hit tested.
func (m *Model) View() string {
	state := views.ViewState{
		Width:  m.width,
		Height: m.height,
		Sections: []views.Section{
			{
				Title:   "Single select",
				Value:   m.single.Value().String(),
				Body:    m.single.View(),
				Focused: m.single.Focused(),
			},
			{
				Title:   "Multiple select",
				Value:   m.multiple.Value().String(),
				Body:    m.multiple.View(),
				Focused: m.multiple.Focused(),
			},
		},
		StatusMessage: m.status,
		StatusIsError: m.statusIsError,
		HelpLine:      m.help.View(m.keys),
		Ready:         m.ready,
	}

	content, tops := m.renderer.Render(state)
	m.single.SetTop(tops[0])
	m.multiple.SetTop(tops[1])
	return content
}
