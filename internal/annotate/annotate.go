// Package annotate parses user-supplied point annotations of the form
// "<index>,<label>" and tracks whether the overlay is enabled.
package annotate

import (
	"strconv"
	"strings"
)

// Delimiter separates the index field from the label.
const Delimiter = ","

type Annotation struct {
	Index int    `yaml:"index" json:"index"`
	Label string `yaml:"label" json:"label"`
}

// Parse keeps every line whose index is a non-negative integer and whose
// label is non-empty, in input order. Everything else is dropped.
func Parse(text string) []Annotation {
	var out []Annotation
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		idxField, label, ok := strings.Cut(line, Delimiter)
		if !ok {
			continue
		}
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimSpace(idxField))
		if err != nil || idx < 0 {
			continue
		}
		out = append(out, Annotation{Index: idx, Label: label})
	}
	return out
}

// Format renders annotations back into the text form accepted by Parse.
func Format(items []Annotation) string {
	var b strings.Builder
	for i, a := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strconv.Itoa(a.Index))
		b.WriteString(Delimiter)
		b.WriteString(a.Label)
	}
	return b.String()
}

// State is the annotation half of a session: the raw text, the parsed
// items and the overlay switch.
type State struct {
	Enabled bool
	text    string
	items   []Annotation
}

func NewState(text string, enabled bool) State {
	s := State{Enabled: enabled}
	s.SetText(text)
	return s
}

// SetText replaces the raw text and reparses it.
func (s *State) SetText(text string) {
	s.text = text
	s.items = Parse(text)
}

func (s *State) SetEnabled(on bool) { s.Enabled = on }

func (s State) Text() string { return s.text }

// Items returns every parsed annotation regardless of the switch.
func (s State) Items() []Annotation { return s.items }

// Active returns the annotations to draw, nil when the overlay is off.
func (s State) Active() []Annotation {
	if !s.Enabled {
		return nil
	}
	return s.items
}
