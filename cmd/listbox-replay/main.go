// Command listbox-replay runs a key script against a listbox engine without a
// terminal and prints the state after every step.
//
//	listbox-replay -script down,down,enter,p
//	listbox-replay -multiple -value John,George -script "down,space,wait,r,enter"
//
// Steps are key names (down, up, home, end, enter, space, tab), single
// characters for type-ahead, click:<index>, or wait, which lets the type-ahead
// window expire.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	lb "listbox/internal/listbox"
	"listbox/internal/typeahead"
)

var keyNames = map[string]lb.Key{
	"down":  lb.KeyArrowDown,
	"up":    lb.KeyArrowUp,
	"home":  lb.KeyHome,
	"end":   lb.KeyEnd,
	"enter": lb.KeyEnter,
	"space": lb.KeySpace,
	"tab":   lb.KeyTab,
}

var errEmptyScript = errors.New("empty script")

type step struct {
	raw   string
	key   lb.Key
	click int
	wait  bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("listbox-replay", flag.ContinueOnError)
	fs.SetOutput(out)
	options := fs.String("options", "John,Paul,George,Ringo,Cam", "Comma separated options")
	value := fs.String("value", "", "Initial value; comma separated in multiple mode")
	multiple := fs.Bool("multiple", false, "Multiple selection")
	script := fs.String("script", "", "Comma separated steps")
	attrs := fs.Bool("attrs", false, "Print option attributes after every step")
	if err := fs.Parse(args); err != nil {
		return err
	}

	steps, err := parseScript(*script)
	if err != nil {
		return err
	}

	now := time.Unix(0, 0)
	clock := func() time.Time { return now }

	e := lb.New(
		lb.WithOptions(splitList(*options)),
		lb.WithValue(initialValue(*value, *multiple)),
		lb.WithMultiple[string](*multiple),
		lb.WithClock[string](clock),
	)
	e.OnChange(func(v lb.Value[string]) {
		fmt.Fprintf(out, "  change: %s\n", v)
	})

	fmt.Fprintf(out, "start: active=%d value=%s\n", e.ActiveIndex(), e.Value())
	for i, s := range steps {
		switch {
		case s.wait:
			now = now.Add(typeahead.DefaultTimeout)
		case s.click >= 0:
			if !e.ActivateIndex(s.click) {
				fmt.Fprintf(out, "  click %d: no such option\n", s.click)
			}
			e.Settle()
		default:
			res := e.Press(s.key)
			if !res.Handled {
				fmt.Fprintf(out, "  %s: not handled\n", s.raw)
			}
		}

		fmt.Fprintf(out, "%d %s: active=%d value=%s\n", i+1, s.raw, e.ActiveIndex(), e.Value())
		if *attrs {
			printAttrs(out, e.Attrs())
		}
	}
	return nil
}

func parseScript(script string) ([]step, error) {
	var steps []step
	for _, raw := range strings.Split(script, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		s := step{raw: raw, click: -1}
		switch {
		case raw == "wait":
			s.wait = true
		case strings.HasPrefix(raw, "click:"):
			i, err := strconv.Atoi(strings.TrimPrefix(raw, "click:"))
			if err != nil || i < 0 {
				return nil, fmt.Errorf("invalid click step %q", raw)
			}
			s.click = i
		default:
			k, ok := keyNames[strings.ToLower(raw)]
			if !ok {
				if len([]rune(raw)) != 1 {
					return nil, fmt.Errorf("unknown step %q", raw)
				}
				k = lb.Key(raw)
			}
			s.key = k
		}
		steps = append(steps, s)
	}

	if len(steps) == 0 {
		return nil, errEmptyScript
	}
	return steps, nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func initialValue(s string, multiple bool) lb.Value[string] {
	items := splitList(s)
	switch {
	case multiple:
		return lb.Multi(items...)
	case len(items) == 0:
		return lb.None[string]()
	default:
		return lb.Single(items[0])
	}
}

func printAttrs(out io.Writer, a lb.Attrs) {
	fmt.Fprintf(out, "  %s %s\n", a.Part, formatMap(a.Map()))
	for _, o := range a.Options {
		fmt.Fprintf(out, "  %s %s\n", o.ID, formatMap(o.Map()))
	}
}

func formatMap(m map[string]string) string {
	pairs := make([]string, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		pairs = append(pairs, fmt.Sprintf("%s=%q", k, m[k]))
	}
	return strings.Join(pairs, " ")
}
