package keynav

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

// typeaheadTimeout is the longest pause between two characters of one search.
const typeaheadTimeout = 500 * time.Millisecond

// typeahead moves focus to the item whose label starts with the characters
// typed in quick succession. Timing comes from event timestamps.
type typeahead struct {
	buf  string
	last time.Time
}

func (t *typeahead) handle(e *Engine, from int, key string, at time.Time) bool {
	r, size := utf8.DecodeRuneInString(key)
	if size != len(key) || r == utf8.RuneError || !unicode.IsPrint(r) || unicode.IsSpace(r) {
		return false
	}
	if at.IsZero() {
		at = time.Now()
	}
	if t.last.IsZero() || at.Before(t.last) || at.Sub(t.last) > typeaheadTimeout {
		t.buf = ""
	}
	t.last = at
	t.buf += strings.ToLower(key)

	labels := e.labels()
	i := matchPrefix(labels, from, t.buf)
	if i < 0 {
		i = matchFuzzy(labels, t.buf)
	}
	if i < 0 {
		return false
	}
	if i != from {
		e.focusIndex(i)
	}
	return true
}

// labels returns the lower-cased label of every item; items without a label
// yield "".
func (e *Engine) labels() []string {
	out := make([]string, len(e.items))
	for i, it := range e.items {
		if l, ok := it.(Labeler); ok {
			out[i] = strings.ToLower(strings.TrimSpace(l.Label()))
		}
	}
	return out
}

// matchPrefix searches forward from the focused item, wrapping once. A single
// character starts after the focused item so repeated presses cycle through
// items sharing an initial; longer buffers may keep the current item.
func matchPrefix(labels []string, from int, prefix string) int {
	n := len(labels)
	if n == 0 {
		return NoSelection
	}
	start := from
	if utf8.RuneCountInString(prefix) == 1 || isRepeat(prefix) {
		start = from + 1
		prefix = prefix[:len(prefix)/utf8.RuneCountInString(prefix)]
	}
	for k := 0; k < n; k++ {
		i := ((start+k)%n + n) % n
		if labels[i] != "" && strings.HasPrefix(labels[i], prefix) {
			return i
		}
	}
	return NoSelection
}

// isRepeat reports whether s is one character typed several times.
func isRepeat(s string) bool {
	first, _ := utf8.DecodeRuneInString(s)
	for _, r := range s {
		if r != first {
			return false
		}
	}
	return true
}

func matchFuzzy(labels []string, pattern string) int {
	matches := fuzzy.Find(pattern, labels)
	for _, m := range matches {
		if labels[m.Index] != "" {
			return m.Index
		}
	}
	return NoSelection
}
