// Package scenario loads declarative interaction scenarios and replays them
// against a headless element tree. A scenario arranges one widget, acts on it
// with focus changes, key presses and clicks, and asserts the resulting
// focus, selection, tab stop and modality.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/marcus/navkit/pkg/keynav"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid scenario")

// Target names used by steps besides item labels.
const (
	TargetRoot   = "root"
	TargetToggle = "toggle"
	// None is used in expectations for "no item".
	None = "none"
)

// Scenario is one arrange/act/assert script.
type Scenario struct {
	Name             string   `yaml:"name"`
	Preset           string   `yaml:"preset,omitempty"`
	Bindings         *Table   `yaml:"bindings,omitempty"`
	Items            []string `yaml:"items"`
	Toggle           bool     `yaml:"toggle,omitempty"`
	Options          Options  `yaml:"options,omitempty"`
	SelectedAttr     *Attr    `yaml:"selected_attr,omitempty"`
	UnselectedAttr   *Attr    `yaml:"unselected_attr,omitempty"`
	InitialSelection string   `yaml:"initial_selection,omitempty"`
	Steps            []Step   `yaml:"steps"`

	// Path is the file the scenario was loaded from, if any.
	Path string `yaml:"-"`
}

// Options mirrors the engine's behaviour flags.
type Options struct {
	InfiniteNavigation    bool `yaml:"infinite_navigation,omitempty"`
	SelectionFollowsFocus bool `yaml:"selection_follows_focus,omitempty"`
	ToggleAfterSelected   bool `yaml:"toggle_after_selected,omitempty"`
	RovingTabIndex        bool `yaml:"roving_tab_index,omitempty"`
	Typeahead             bool `yaml:"typeahead,omitempty"`
}

// Attr is a marker attribute pair.
type Attr struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Table is an explicit key binding table.
type Table struct {
	Navigation []Binding `yaml:"navigation,omitempty"`
	Toggle     []Binding `yaml:"toggle,omitempty"`
}

// Binding binds keys to one action.
type Binding struct {
	Action string   `yaml:"action"`
	Keys   []string `yaml:"keys"`
}

// Step is one action or assertion. Exactly one field other than On is set.
type Step struct {
	Focus          string  `yaml:"focus,omitempty"`
	Press          string  `yaml:"press,omitempty"`
	On             string  `yaml:"on,omitempty"`
	Click          string  `yaml:"click,omitempty"`
	Pointer        bool    `yaml:"pointer,omitempty"`
	SelectNext     bool    `yaml:"select_next,omitempty"`
	SelectPrevious bool    `yaml:"select_previous,omitempty"`
	Expect         *Expect `yaml:"expect,omitempty"`
}

// Expect lists assertions; unset fields are not checked.
type Expect struct {
	Focused  *string                      `yaml:"focused,omitempty"`
	Selected *string                      `yaml:"selected,omitempty"`
	TabStop  *string                      `yaml:"tabstop,omitempty"`
	Toggles  *int                         `yaml:"toggles,omitempty"`
	Modality *string                      `yaml:"modality,omitempty"`
	Consumed *bool                        `yaml:"consumed,omitempty"`
	Attrs    map[string]map[string]string `yaml:"attrs,omitempty"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Path = path
	return s, nil
}

// Parse decodes and validates a scenario document.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that the scenario is self-consistent.
func (s *Scenario) Validate() error {
	if len(s.Items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalid)
	}
	for i, it := range s.Items {
		if it == "" {
			return fmt.Errorf("%w: item %d has no label", ErrInvalid, i)
		}
		if it == TargetRoot || it == TargetToggle || it == None {
			return fmt.Errorf("%w: item label %q is reserved", ErrInvalid, it)
		}
		if slices.Index(s.Items, it) != i {
			return fmt.Errorf("%w: duplicate item %q", ErrInvalid, it)
		}
	}
	table, err := s.Table()
	if err != nil {
		return err
	}
	if err := table.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if s.InitialSelection != "" && !slices.Contains(s.Items, s.InitialSelection) {
		return fmt.Errorf("%w: initial selection %q is not an item", ErrInvalid, s.InitialSelection)
	}
	for i, st := range s.Steps {
		if err := s.validateStep(st); err != nil {
			return fmt.Errorf("%w: step %d: %w", ErrInvalid, i+1, err)
		}
	}
	return nil
}

// Table returns the scenario's key binding table from its preset or its
// explicit bindings.
func (s *Scenario) Table() (keynav.KeyBindingTable, error) {
	switch {
	case s.Preset != "" && s.Bindings != nil:
		return keynav.KeyBindingTable{}, fmt.Errorf("%w: both preset and bindings set", ErrInvalid)
	case s.Preset != "":
		t, ok := keynav.Preset(s.Preset)
		if !ok {
			return keynav.KeyBindingTable{}, fmt.Errorf("%w: unknown preset %q", ErrInvalid, s.Preset)
		}
		return t, nil
	case s.Bindings != nil:
		return keynav.KeyBindingTable{
			Navigation: convertBindings(s.Bindings.Navigation),
			Toggle:     convertBindings(s.Bindings.Toggle),
		}, nil
	default:
		return keynav.KeyBindingTable{}, fmt.Errorf("%w: no preset or bindings", ErrInvalid)
	}
}

func convertBindings(in []Binding) keynav.Bindings {
	out := make(keynav.Bindings, 0, len(in))
	for _, b := range in {
		out = append(out, keynav.Binding{Action: keynav.Action(b.Action), Keys: slices.Clone(b.Keys)})
	}
	return out
}

func (s *Scenario) validateStep(st Step) error {
	kinds := 0
	for _, set := range []bool{
		st.Focus != "", st.Press != "", st.Click != "", st.Pointer,
		st.SelectNext, st.SelectPrevious, st.Expect != nil,
	} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return errors.New("a step needs exactly one of focus, press, click, pointer, select_next, select_previous, expect")
	}
	if st.On != "" && st.Press == "" {
		return errors.New("on is only valid with press")
	}
	for _, ref := range []string{st.Focus, st.On, st.Click} {
		if ref == "" {
			continue
		}
		if err := s.checkRef(ref, true); err != nil {
			return err
		}
	}
	if ex := st.Expect; ex != nil {
		for _, ref := range []*string{ex.Focused, ex.Selected, ex.TabStop} {
			if ref == nil || *ref == None {
				continue
			}
			if err := s.checkRef(*ref, ref == ex.Focused); err != nil {
				return err
			}
		}
		if ex.Modality != nil {
			switch keynav.Modality(*ex.Modality) {
			case keynav.ModalityMouse, keynav.ModalityKeyboard, "":
			default:
				return fmt.Errorf("unknown modality %q", *ex.Modality)
			}
		}
		for label := range ex.Attrs {
			if err := s.checkRef(label, true); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkRef verifies that ref names an item, or one of the special targets
// when special is true.
func (s *Scenario) checkRef(ref string, special bool) error {
	if slices.Contains(s.Items, ref) {
		return nil
	}
	if special && ref == TargetRoot {
		return nil
	}
	if special && ref == TargetToggle {
		if !s.Toggle {
			return errors.New("toggle referenced but the scenario has no toggle target")
		}
		return nil
	}
	return fmt.Errorf("unknown target %q", ref)
}
