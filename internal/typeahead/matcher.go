// Package typeahead resolves typed characters to an option position.
//
// A Matcher accumulates a lowercased query from successive keystrokes and
// forgets it once no key arrived within the timeout window. Each keystroke
// scans the option labels circularly, starting just after the active option,
// and returns the first label that starts with the query.
package typeahead

import (
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultTimeout is the window after which an idle query is discarded
const DefaultTimeout = 400 * time.Millisecond

// ErrNilOptions is returned when a Matcher is built without an option source
var ErrNilOptions = errors.New("typeahead: options must not be nil")

// Clock returns the current time
type Clock func() time.Time

// Option configures a Matcher
type Option func(*Matcher)

// WithTimeout sets the query reset window. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(m *Matcher) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithClock replaces time.Now
func WithClock(c Clock) Option {
	return func(m *Matcher) {
		if c != nil {
			m.now = c
		}
	}
}

// Matcher finds option positions from typed characters. It is not safe for
// concurrent use.
type Matcher struct {
	options []string
	query   string
	lastKey time.Time
	timeout time.Duration
	now     Clock
	lower   cases.Caser
}

// New builds a Matcher over the given option labels. A nil slice is a
// configuration error; an empty one is valid and never matches.
func New(options []string, opts ...Option) (*Matcher, error) {
	if options == nil {
		return nil, ErrNilOptions
	}

	m := &Matcher{
		timeout: DefaultTimeout,
		now:     time.Now,
		lower:   cases.Lower(language.Und),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.options = make([]string, len(options))
	for i, o := range options {
		m.options[i] = m.lower.String(strings.TrimSpace(o))
	}
	return m, nil
}

// MustNew is like New but panics on error
func MustNew(options []string, opts ...Option) *Matcher {
	m, err := New(options, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// IsSearchKey reports whether key is a single letter or digit
func IsSearchKey(key string) bool {
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError || size != len(key) {
		return false
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// FindIndex appends key to the query and returns the position of the first
// option, after active and wrapping around, whose label starts with the query.
// When nothing matches it returns active unchanged. Keys that are not a single
// letter or digit return -1 and leave the query alone.
func (m *Matcher) FindIndex(key string, active int) int {
	if !IsSearchKey(key) {
		return -1
	}

	now := m.now()
	if !m.lastKey.IsZero() && now.Sub(m.lastKey) >= m.timeout {
		m.query = ""
	}
	m.lastKey = now
	m.query += m.lower.String(key)

	n := len(m.options)
	for i := 0; i < n; i++ {
		index := ((active+i+1)%n + n) % n
		if strings.HasPrefix(m.options[index], m.query) {
			return index
		}
	}

	return active
}

// Query returns the query as it stands now, accounting for an elapsed window
func (m *Matcher) Query() string {
	if !m.lastKey.IsZero() && m.now().Sub(m.lastKey) >= m.timeout {
		return ""
	}
	return m.query
}

// Reset discards the accumulated query
func (m *Matcher) Reset() {
	m.query = ""
	m.lastKey = time.Time{}
}

// Len returns the number of options the matcher was built over
func (m *Matcher) Len() int {
	return len(m.options)
}
