package listbox

import "fmt"

// Value is a listbox value: absent, a single option, or an ordered sequence
// of options in selection order.
type Value[T any] struct {
	items []T
	list  bool
}

// None returns the absent value
func None[T any]() Value[T] {
	return Value[T]{}
}

// Single returns a scalar value
func Single[T any](v T) Value[T] {
	return Value[T]{items: []T{v}}
}

// Multi returns a sequence value. With no arguments it is the empty sequence.
func Multi[T any](vs ...T) Value[T] {
	items := make([]T, len(vs))
	copy(items, vs)
	return Value[T]{items: items, list: true}
}

// IsList reports whether v is a sequence
func (v Value[T]) IsList() bool {
	return v.list
}

// IsZero reports whether v is absent or an empty sequence
func (v Value[T]) IsZero() bool {
	return len(v.items) == 0
}

// Len returns the number of options in v
func (v Value[T]) Len() int {
	return len(v.items)
}

// First returns the scalar, or the first element of a sequence
func (v Value[T]) First() (T, bool) {
	if len(v.items) == 0 {
		var zero T
		return zero, false
	}
	return v.items[0], true
}

// Items returns a copy of the options in v
func (v Value[T]) Items() []T {
	out := make([]T, len(v.items))
	copy(out, v.items)
	return out
}

// AsList converts a scalar into a one-element sequence and an absent value
// into the empty sequence
func (v Value[T]) AsList() Value[T] {
	if v.list {
		return v
	}
	return Multi(v.items...)
}

// AsSingle converts a sequence into its first element
func (v Value[T]) AsSingle() Value[T] {
	if first, ok := v.First(); ok {
		return Single(first)
	}
	return None[T]()
}

func (v Value[T]) contains(option T, equal func(a, b T) bool) bool {
	for _, item := range v.items {
		if equal(item, option) {
			return true
		}
	}
	return false
}

// toggle appends option when absent, otherwise drops every equal element
func (v Value[T]) toggle(option T, equal func(a, b T) bool) Value[T] {
	if !v.contains(option, equal) {
		items := make([]T, len(v.items), len(v.items)+1)
		copy(items, v.items)
		return Value[T]{items: append(items, option), list: true}
	}

	items := make([]T, 0, len(v.items))
	for _, item := range v.items {
		if !equal(item, option) {
			items = append(items, item)
		}
	}
	return Value[T]{items: items, list: true}
}

// String formats v for logs
func (v Value[T]) String() string {
	switch {
	case v.list:
		return fmt.Sprint(v.items)
	case len(v.items) == 0:
		return "<none>"
	default:
		return fmt.Sprint(v.items[0])
	}
}
