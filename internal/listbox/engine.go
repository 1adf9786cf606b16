// Package listbox implements the selection and interaction state of an
// accessible listbox: the active option, single or multiple selection,
// keyboard navigation, type-ahead and pointer activation.
//
// Input is handled in two phases. KeyDown and Activate move the active
// option right away and queue a finalize step; Settle runs the queued steps,
// which update the value and notify change listeners. A renderer settles after
// it has drawn the moved cursor. Press and Click do both phases at once.
package listbox

import (
	"fmt"
	"slices"
	"time"

	"listbox/internal/eventbus"
	"listbox/internal/typeahead"
)

// EngineOption configures an Engine
type EngineOption[T any] func(*Engine[T])

// WithOptions sets the initial options
func WithOptions[T any](options []T) EngineOption[T] {
	return func(e *Engine[T]) {
		e.options = slices.Clone(options)
	}
}

// WithValue sets the initial value
func WithValue[T any](v Value[T]) EngineOption[T] {
	return func(e *Engine[T]) {
		e.value = v
	}
}

// WithMultiple selects multiple-selection mode
func WithMultiple[T any](multiple bool) EngineOption[T] {
	return func(e *Engine[T]) {
		e.multiple = multiple
	}
}

// WithLabel sets how an option is turned into text for type-ahead.
// The default is fmt.Sprint.
func WithLabel[T any](label func(T) string) EngineOption[T] {
	return func(e *Engine[T]) {
		if label != nil {
			e.label = label
		}
	}
}

// WithIDPrefix prefixes option ids so several listboxes can share a screen
func WithIDPrefix[T any](prefix string) EngineOption[T] {
	return func(e *Engine[T]) {
		e.idPrefix = prefix
	}
}

// WithTypeAheadTimeout sets the type-ahead query reset window
func WithTypeAheadTimeout[T any](d time.Duration) EngineOption[T] {
	return func(e *Engine[T]) {
		e.matcherOpts = append(e.matcherOpts, typeahead.WithTimeout(d))
	}
}

// WithClock sets the clock used by type-ahead
func WithClock[T any](c typeahead.Clock) EngineOption[T] {
	return func(e *Engine[T]) {
		e.matcherOpts = append(e.matcherOpts, typeahead.WithClock(c))
	}
}

// WithBus publishes change, active and options events on bus
func WithBus[T any](bus eventbus.EventBus) EngineOption[T] {
	return func(e *Engine[T]) {
		e.bus = bus
	}
}

type listener[T any] struct {
	id int
	fn func(Value[T])
}

// Engine holds listbox state. It is not safe for concurrent use; the host
// serializes input.
type Engine[T any] struct {
	options  []T
	value    Value[T]
	active   int
	multiple bool

	equal    func(a, b T) bool
	label    func(T) string
	idPrefix string

	// built lazily from the labels, dropped when options change
	matcher     *typeahead.Matcher
	matcherOpts []typeahead.Option

	pending   []func()
	listeners []listener[T]
	nextID    int
	bus       eventbus.EventBus
}

// New creates an engine for options compared with ==
func New[T comparable](opts ...EngineOption[T]) *Engine[T] {
	return NewFunc(func(a, b T) bool { return a == b }, opts...)
}

// NewFunc creates an engine for options compared with equal
func NewFunc[T any](equal func(a, b T) bool, opts ...EngineOption[T]) *Engine[T] {
	e := &Engine[T]{
		active: NoActive,
		equal:  equal,
		label:  func(option T) string { return fmt.Sprint(option) },
	}
	for _, opt := range opts {
		opt(e)
	}
	e.sync()
	return e
}

// SetOptions replaces the options and recomputes the active index
func (e *Engine[T]) SetOptions(options []T) {
	e.Settle()
	e.options = slices.Clone(options)
	e.matcher = nil
	e.sync()

	if e.bus != nil {
		e.bus.Publish(eventbus.OptionsReplacedEvent{
			Source:      e.idPrefix,
			Count:       len(e.options),
			ActiveIndex: e.active,
		})
	}
}

// SetValue replaces the value and recomputes the active index
func (e *Engine[T]) SetValue(v Value[T]) {
	e.Settle()
	e.value = v
	e.sync()
}

// SetMultiple switches the selection mode. Leaving multiple mode keeps the
// first selected option.
func (e *Engine[T]) SetMultiple(multiple bool) {
	e.Settle()
	if e.multiple == multiple {
		return
	}
	e.multiple = multiple
	if !multiple {
		e.value = e.value.AsSingle()
	}
	e.sync()
}

// SetLabel replaces the label function; type-ahead is rebuilt on next use
func (e *Engine[T]) SetLabel(label func(T) string) {
	if label == nil {
		return
	}
	e.label = label
	e.matcher = nil
}

// sync re-derives the active index from the value
func (e *Engine[T]) sync() {
	if e.multiple {
		e.value = e.value.AsList()
	}
	e.active = NoActive
	if first, ok := e.value.First(); ok {
		e.active = e.indexOf(first)
	}
}

// Options returns a copy of the options
func (e *Engine[T]) Options() []T {
	return slices.Clone(e.options)
}

// Len returns the number of options
func (e *Engine[T]) Len() int {
	return len(e.options)
}

// Value returns the current value
func (e *Engine[T]) Value() Value[T] {
	return e.value
}

// Multiple reports whether the engine is in multiple-selection mode
func (e *Engine[T]) Multiple() bool {
	return e.multiple
}

// ActiveIndex returns the active option's position or NoActive
func (e *Engine[T]) ActiveIndex() int {
	return e.active
}

// IDPrefix returns the option id prefix
func (e *Engine[T]) IDPrefix() string {
	return e.idPrefix
}

// Selected returns the active option
func (e *Engine[T]) Selected() (T, bool) {
	if e.active < 0 || e.active >= len(e.options) {
		var zero T
		return zero, false
	}
	return e.options[e.active], true
}

// IsActive reports whether i is the active position
func (e *Engine[T]) IsActive(i int) bool {
	return i == e.active
}

// IsSelected reports whether option, at position i, is selected. In single
// mode that is the active option; in multiple mode it is membership in the value.
func (e *Engine[T]) IsSelected(option T, i int) bool {
	if !e.multiple {
		return e.IsActive(i)
	}
	return !e.value.IsZero() && e.value.contains(option, e.equal)
}

// Label returns the text label of option
func (e *Engine[T]) Label(option T) string {
	return e.label(option)
}

// Attrs derives the accessibility attributes from the current state
func (e *Engine[T]) Attrs() Attrs {
	a := Attrs{
		Role:            "listbox",
		TabIndex:        0,
		Part:            PartListbox,
		MultiSelectable: e.multiple,
		Options:         make([]OptionAttrs, len(e.options)),
	}
	if e.active >= 0 {
		a.ActiveDescendant = OptionID(e.idPrefix, e.active)
	}

	for i, option := range e.options {
		o := OptionAttrs{
			ID:       OptionID(e.idPrefix, i),
			Role:     "option",
			Active:   e.IsActive(i),
			Selected: e.IsSelected(option, i),
			Parts:    []string{PartOption},
		}
		if o.Active {
			o.Parts = append(o.Parts, PartOptionActive)
		}
		if o.Selected {
			o.Parts = append(o.Parts, PartOptionSelected)
		}
		a.Options[i] = o
	}
	return a
}

// OnChange registers fn to receive every committed value. The returned
// function removes it.
func (e *Engine[T]) OnChange(fn func(Value[T])) func() {
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, listener[T]{id: id, fn: fn})

	return func() {
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

// KeyDown applies key to the active index and queues the value update.
// Pending steps from the previous input are settled first.
func (e *Engine[T]) KeyDown(key Key) KeyResult {
	e.Settle()

	n := len(e.options)
	old := e.active
	var res KeyResult

	switch {
	case key == KeyTab:
		return res

	case key.IsNavigation():
		res.Handled = true
		res.PreventDefault = true
		if n == 0 {
			return res
		}
		switch key {
		case KeyArrowDown:
			e.active = NextIndex(e.active, n)
		case KeyArrowUp:
			e.active = PreviousIndex(e.active, n)
		case KeyHome:
			e.active = 0
		case KeyEnd:
			e.active = n - 1
		}
		if !e.multiple {
			e.schedule(e.commitSelected)
		}

	case key.IsCommit():
		res.Handled = true
		if e.multiple {
			e.schedule(e.toggleSelected)
		} else {
			e.schedule(e.commitSelected)
		}

	case typeahead.IsSearchKey(string(key)):
		res.Handled = true
		if index := e.typeAhead().FindIndex(string(key), e.active); index != NoActive {
			e.active = index
		}
		if !e.multiple {
			e.schedule(e.commitSelected)
		}

	default:
		return res
	}

	res.Moved = e.active != old
	if res.Moved {
		e.publishActive(old)
	}
	return res
}

// Activate makes option active and queues the value update: single mode
// selects it, multiple mode toggles it. It returns false when option is not
// among the options.
func (e *Engine[T]) Activate(option T) bool {
	e.Settle()

	index := e.indexOf(option)
	if index == NoActive {
		return false
	}

	old := e.active
	e.active = index
	if old != index {
		e.publishActive(old)
	}

	if e.multiple {
		e.schedule(e.toggleSelected)
	} else {
		e.schedule(e.commitSelected)
	}
	return true
}

// ActivateIndex activates the option at position i
func (e *Engine[T]) ActivateIndex(i int) bool {
	if i < 0 || i >= len(e.options) {
		return false
	}
	return e.Activate(e.options[i])
}

// Settle runs queued finalize steps. It reports whether any ran.
func (e *Engine[T]) Settle() bool {
	if len(e.pending) == 0 {
		return false
	}
	steps := e.pending
	e.pending = nil
	for _, step := range steps {
		step()
	}
	return true
}

// Pending reports whether finalize steps are waiting for Settle
func (e *Engine[T]) Pending() bool {
	return len(e.pending) > 0
}

// Press is KeyDown followed by Settle
func (e *Engine[T]) Press(key Key) KeyResult {
	res := e.KeyDown(key)
	e.Settle()
	return res
}

// Click is Activate followed by Settle
func (e *Engine[T]) Click(option T) bool {
	ok := e.Activate(option)
	e.Settle()
	return ok
}

func (e *Engine[T]) schedule(step func()) {
	e.pending = append(e.pending, step)
}

func (e *Engine[T]) commitSelected() {
	selected, ok := e.Selected()
	if !ok {
		return
	}
	e.value = Single(selected)
	e.notify()
}

func (e *Engine[T]) toggleSelected() {
	selected, ok := e.Selected()
	if !ok {
		return
	}
	e.value = e.value.AsList().toggle(selected, e.equal)
	e.notify()
}

func (e *Engine[T]) notify() {
	for _, l := range slices.Clone(e.listeners) {
		l.fn(e.value)
	}

	if e.bus != nil {
		e.bus.Publish(eventbus.ChangeEvent{
			Source:   e.idPrefix,
			Multiple: e.multiple,
			Value:    e.value,
		})
	}
}

func (e *Engine[T]) publishActive(old int) {
	if e.bus == nil {
		return
	}
	e.bus.Publish(eventbus.ActiveChangedEvent{
		Source:   e.idPrefix,
		OldIndex: old,
		NewIndex: e.active,
	})
}

func (e *Engine[T]) typeAhead() *typeahead.Matcher {
	if e.matcher == nil {
		labels := make([]string, len(e.options))
		for i, option := range e.options {
			labels[i] = e.label(option)
		}
		e.matcher = typeahead.MustNew(labels, e.matcherOpts...)
	}
	return e.matcher
}

func (e *Engine[T]) indexOf(target T) int {
	for i, option := range e.options {
		if e.equal(option, target) {
			return i
		}
	}
	return NoActive
}
