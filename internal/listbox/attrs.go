package listbox

import (
	"strconv"
	"strings"
)

// Part names exposed for styling
const (
	PartListbox        = "listbox"
	PartOption         = "option"
	PartOptionActive   = "option-active"
	PartOptionSelected = "option-selected"
)

// Attrs is the accessibility view of a listbox. Renderers attach it as is
// and must not derive any of it themselves.
type Attrs struct {
	Role     string
	TabIndex int
	Part     string
	// ActiveDescendant is the id of the active option, empty when none is active
	ActiveDescendant string
	// MultiSelectable is only exposed when true
	MultiSelectable bool
	Options         []OptionAttrs
}

// OptionAttrs is the accessibility view of one option
type OptionAttrs struct {
	ID       string
	Role     string
	Selected bool
	Active   bool
	Parts    []string
}

// Map returns the listbox attributes; absent attributes have no key
func (a Attrs) Map() map[string]string {
	m := map[string]string{
		"role":     a.Role,
		"tabindex": strconv.Itoa(a.TabIndex),
		"part":     a.Part,
	}
	if a.ActiveDescendant != "" {
		m["aria-activedescendant"] = a.ActiveDescendant
	}
	if a.MultiSelectable {
		m["aria-multiselectable"] = "true"
	}
	return m
}

// Map returns the option attributes
func (o OptionAttrs) Map() map[string]string {
	return map[string]string{
		"id":            o.ID,
		"role":          o.Role,
		"aria-selected": strconv.FormatBool(o.Selected),
		"part":          strings.Join(o.Parts, " "),
	}
}

// OptionID returns the element id of the option at index i
func OptionID(prefix string, i int) string {
	return prefix + "option-" + strconv.Itoa(i)
}
