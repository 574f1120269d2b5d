package keynav

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Action names an engine operation that a key can trigger.
type Action string

const (
	ActionFocusFirst     Action = "focusFirst"
	ActionFocusLast      Action = "focusLast"
	ActionFocusNext      Action = "focusNext"
	ActionFocusPrevious  Action = "focusPrevious"
	ActionSelectFocused  Action = "selectFocussed"
	ActionSelectNext     Action = "selectNext"
	ActionSelectPrevious Action = "selectPrevious"
	ActionToggle         Action = "toggle"
	ActionToggleClosed   Action = "toggleClosed"
)

var knownActions = []Action{
	ActionFocusFirst,
	ActionFocusLast,
	ActionFocusNext,
	ActionFocusPrevious,
	ActionSelectFocused,
	ActionSelectNext,
	ActionSelectPrevious,
	ActionToggle,
	ActionToggleClosed,
}

// Valid reports whether a is one of the engine's actions.
func (a Action) Valid() bool {
	return slices.Contains(knownActions, a)
}

// Key identifiers consumed by the engine.
const (
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyHome       = "Home"
	KeyEnd        = "End"
	KeyEnter      = "Enter"
	KeySpace      = " "
	KeyEscape     = "Escape"
	KeyTab        = "Tab"
)

// legacyKeys maps identifiers reported by older user agents to the modern set.
var legacyKeys = map[string]string{
	"Up":       KeyArrowUp,
	"Down":     KeyArrowDown,
	"Left":     KeyArrowLeft,
	"Right":    KeyArrowRight,
	"Spacebar": KeySpace,
	"Esc":      KeyEscape,
}

// NormalizeKey converts a legacy key identifier to its modern equivalent.
// Any other identifier is returned unchanged.
func NormalizeKey(k string) string {
	if n, ok := legacyKeys[k]; ok {
		return n
	}
	return k
}

// Binding maps one action to the keys that trigger it.
type Binding struct {
	Action Action
	Keys   []string
}

// Matches reports whether the normalized key triggers this binding.
func (b Binding) Matches(key string) bool {
	return slices.Contains(b.Keys, key)
}

// Bindings is an ordered list of bindings. Order decides the sequence in
// which actions run when one key triggers several of them.
type Bindings []Binding

// Match returns every action bound to key, in binding order.
func (bs Bindings) Match(key string) []Action {
	var out []Action
	for _, b := range bs {
		if b.Matches(key) {
			out = append(out, b.Action)
		}
	}
	return out
}

// KeyBindingTable holds the two independent key maps of a widget.
// Navigation keys apply while an item is the event target; Toggle keys apply
// while the widget root is the target.
type KeyBindingTable struct {
	Navigation Bindings
	Toggle     Bindings
}

// ErrUnknownAction is returned by Validate for an action the engine cannot run.
var ErrUnknownAction = errors.New("unknown action")

// Validate checks that every binding names a known action.
func (t KeyBindingTable) Validate() error {
	for _, bs := range []Bindings{t.Navigation, t.Toggle} {
		for _, b := range bs {
			if !b.Action.Valid() {
				return fmt.Errorf("%w: %q", ErrUnknownAction, b.Action)
			}
		}
	}
	return nil
}

// normalized returns a deep copy of the table with every key normalized and
// duplicate keys within a binding removed.
func (t KeyBindingTable) normalized() KeyBindingTable {
	return KeyBindingTable{
		Navigation: normalizeBindings(t.Navigation),
		Toggle:     normalizeBindings(t.Toggle),
	}
}

func normalizeBindings(bs Bindings) Bindings {
	if len(bs) == 0 {
		return nil
	}
	out := make(Bindings, 0, len(bs))
	for _, b := range bs {
		keys := make([]string, 0, len(b.Keys))
		for _, k := range b.Keys {
			n := NormalizeKey(k)
			if n == "" || slices.Contains(keys, n) {
				continue
			}
			keys = append(keys, n)
		}
		out = append(out, Binding{Action: b.Action, Keys: keys})
	}
	return out
}

// ListboxBindings returns the key map of a single-select listbox: options
// move vertically and are chosen with Enter or Space; the collapsed widget
// opens on the arrows, Enter or Space and closes on Escape.
func ListboxBindings() KeyBindingTable {
	return KeyBindingTable{
		Navigation: Bindings{
			{Action: ActionFocusFirst, Keys: []string{KeyHome}},
			{Action: ActionFocusLast, Keys: []string{KeyEnd}},
			{Action: ActionFocusNext, Keys: []string{KeyArrowDown}},
			{Action: ActionFocusPrevious, Keys: []string{KeyArrowUp}},
			{Action: ActionSelectFocused, Keys: []string{KeyEnter, KeySpace}},
		},
		Toggle: Bindings{
			{Action: ActionToggle, Keys: []string{KeyArrowUp, KeyArrowDown, KeyEnter, KeySpace}},
			{Action: ActionToggleClosed, Keys: []string{KeyEnter, KeySpace, KeyEscape}},
		},
	}
}

// TabListBindings returns the key map of a horizontal tab list. Only the
// horizontal arrows move focus; ArrowUp and ArrowDown are left to the page.
func TabListBindings() KeyBindingTable {
	return KeyBindingTable{
		Navigation: Bindings{
			{Action: ActionFocusFirst, Keys: []string{KeyHome}},
			{Action: ActionFocusLast, Keys: []string{KeyEnd}},
			{Action: ActionFocusNext, Keys: []string{KeyArrowRight}},
			{Action: ActionFocusPrevious, Keys: []string{KeyArrowLeft}},
			{Action: ActionSelectFocused, Keys: []string{KeySpace, KeyEnter}},
		},
	}
}

// Preset returns the named binding table ("listbox" or "tabs").
func Preset(name string) (KeyBindingTable, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "listbox":
		return ListboxBindings(), true
	case "tabs", "tablist", "carousel":
		return TabListBindings(), true
	default:
		return KeyBindingTable{}, false
	}
}
