package keynav

import (
	"log/slog"
	"reflect"
	"slices"
)

// Item is one navigable entry: an option, a tab.
// Items are compared by identity: implementations must have a comparable
// dynamic type, in practice a pointer. Items that cannot be compared are
// never matched against event targets.
type Item interface {
	AttributeSetter
	RemoveAttribute(name string)
	Focus()
}

// Labeler is implemented by items that expose a text label. Typeahead only
// considers items implementing it.
type Labeler interface {
	Label() string
}

// ToggleTarget is the control that opens and closes the widget, for example
// a listbox trigger button.
type ToggleTarget interface {
	Focus()
	Click()
}

// FocusTracker reports the element that currently holds input focus.
type FocusTracker interface {
	ActiveElement() any
}

// Attr is an attribute name/value pair used as a selection marker.
type Attr struct {
	Name  string
	Value string
}

// IsZero reports whether the pair is unset.
func (a Attr) IsZero() bool { return a.Name == "" }

// Roving tabindex vocabulary.
const (
	TabIndexAttr = "tabindex"
	TabStop      = "0"
	NotTabStop   = "-1"
)

// NoSelection is the index reported when no item is selected or focused.
const NoSelection = -1

// Config configures one engine. It is read once by New.
type Config struct {
	// Items is the ordered navigable collection.
	Items []Item
	// Root is the widget's outermost element. Toggle bindings apply to key
	// presses targeting it.
	Root any
	// Bindings maps keys to actions.
	Bindings KeyBindingTable
	// Toggle is activated by the toggle actions. May be nil.
	Toggle ToggleTarget
	// Focus reports the focused element. When nil the engine tracks focus
	// from its own focus calls and HandleFocus notifications.
	Focus FocusTracker
	// Modality receives interaction modality changes. May be nil.
	Modality ModalityNotifier

	SelectedAttr   Attr
	UnselectedAttr Attr

	InfiniteNavigation    bool
	SelectionFollowsFocus bool
	ToggleAfterSelected   bool
	UseRovingTabIndex     bool
	Typeahead             bool

	// Selected is the initially selected item. Hosts must set it when they
	// rely on Next, Previous, SelectNext or SelectPrevious.
	Selected Item

	// OnSelect runs after every successful selection.
	OnSelect func(Item)

	Logger *slog.Logger
}

// Engine drives focus, selection and toggling for one widget instance.
// It is not safe for concurrent use; hosts call it from their event loop.
type Engine struct {
	items    []Item
	root     any
	bindings KeyBindingTable
	toggle   ToggleTarget
	tracker  FocusTracker
	modality ModalityNotifier

	selectedAttr   Attr
	unselectedAttr Attr

	infinite            bool
	followFocus         bool
	toggleAfterSelected bool
	roving              bool

	onSelect func(Item)
	log      *slog.Logger

	selected int
	focused  int

	typeahead *typeahead
}

// New builds an engine from cfg. An initial selection in cfg.Selected is
// marked without calling OnSelect.
func New(cfg Config) *Engine {
	e := &Engine{
		items:               slices.Clone(cfg.Items),
		root:                cfg.Root,
		bindings:            cfg.Bindings.normalized(),
		toggle:              cfg.Toggle,
		tracker:             cfg.Focus,
		modality:            cfg.Modality,
		selectedAttr:        cfg.SelectedAttr,
		unselectedAttr:      cfg.UnselectedAttr,
		infinite:            cfg.InfiniteNavigation,
		followFocus:         cfg.SelectionFollowsFocus,
		toggleAfterSelected: cfg.ToggleAfterSelected,
		roving:              cfg.UseRovingTabIndex,
		onSelect:            cfg.OnSelect,
		log:                 cfg.Logger,
		selected:            NoSelection,
		focused:             NoSelection,
	}
	if e.log == nil {
		e.log = slog.New(slog.DiscardHandler)
	}
	if cfg.Typeahead {
		e.typeahead = &typeahead{}
	}
	if cfg.Selected != nil {
		if i := e.IndexOf(cfg.Selected); i >= 0 {
			e.mark(i)
			e.updateRovingTabIndex(i)
		}
	}
	return e
}

// Len returns the number of items.
func (e *Engine) Len() int { return len(e.items) }

// Items returns a copy of the item sequence.
func (e *Engine) Items() []Item { return slices.Clone(e.items) }

// IndexOf returns the position of target in the sequence, or NoSelection.
func (e *Engine) IndexOf(target any) int {
	if !isComparable(target) {
		return NoSelection
	}
	for i, it := range e.items {
		if any(it) == target {
			return i
		}
	}
	return NoSelection
}

// isComparable reports whether v can be used with == without panicking.
func isComparable(v any) bool {
	t := reflect.TypeOf(v)
	return t != nil && t.Comparable()
}

// Selected returns the selected item.
func (e *Engine) Selected() (Item, bool) {
	if e.selected < 0 {
		return nil, false
	}
	return e.items[e.selected], true
}

// SelectedIndex returns the selected position, or NoSelection.
func (e *Engine) SelectedIndex() int { return e.selected }

// FocusedIndex returns the position of the focused item, or NoSelection when
// focus is outside the sequence.
func (e *Engine) FocusedIndex() int {
	if e.tracker != nil {
		return e.IndexOf(e.tracker.ActiveElement())
	}
	return e.focused
}

// FocusFirst moves focus to the first item.
func (e *Engine) FocusFirst() {
	if len(e.items) == 0 {
		return
	}
	e.focusIndex(0)
}

// FocusLast moves focus to the last item.
func (e *Engine) FocusLast() {
	if len(e.items) == 0 {
		return
	}
	e.focusIndex(len(e.items) - 1)
}

// FocusNext moves focus to the item after the focused one.
func (e *Engine) FocusNext() {
	if i := e.adjacent(e.FocusedIndex(), 1); i >= 0 {
		e.focusIndex(i)
	}
}

// FocusPrevious moves focus to the item before the focused one.
func (e *Engine) FocusPrevious() {
	if i := e.adjacent(e.FocusedIndex(), -1); i >= 0 {
		e.focusIndex(i)
	}
}

// Next returns the item after the selected one without moving focus.
// It reports false when nothing is selected or the end was reached without
// infinite navigation.
func (e *Engine) Next() (Item, bool) {
	i := e.adjacent(e.selected, 1)
	if i < 0 {
		return nil, false
	}
	return e.items[i], true
}

// Previous returns the item before the selected one without moving focus.
func (e *Engine) Previous() (Item, bool) {
	i := e.adjacent(e.selected, -1)
	if i < 0 {
		return nil, false
	}
	return e.items[i], true
}

// SelectFocused selects the focused item. It does nothing when focus is not
// on one of the engine's items.
func (e *Engine) SelectFocused() {
	i := e.FocusedIndex()
	if i < 0 {
		return
	}
	e.mark(i)
	e.updateRovingTabIndex(i)
	if e.toggleAfterSelected {
		e.ToggleClosed()
	}
	e.notifySelect(i)
}

// SelectNonFocused selects item without touching focus. Proxy controls such
// as carousel previous/next buttons use it.
func (e *Engine) SelectNonFocused(item Item) {
	i := e.IndexOf(item)
	if i < 0 {
		return
	}
	e.updateRovingTabIndex(i)
	e.mark(i)
	e.notifySelect(i)
}

// SelectNext selects the item after the selected one.
func (e *Engine) SelectNext() {
	if it, ok := e.Next(); ok {
		e.SelectNonFocused(it)
	}
}

// SelectPrevious selects the item before the selected one.
func (e *Engine) SelectPrevious() {
	if it, ok := e.Previous(); ok {
		e.SelectNonFocused(it)
	}
}

// Toggle focuses the toggle target and activates it.
func (e *Engine) Toggle() {
	e.activateToggle()
}

// ToggleClosed is Toggle under a separate action name, so a cancel key can
// be bound to closing without also opening.
func (e *Engine) ToggleClosed() {
	e.activateToggle()
}

// HandleKey dispatches a key press. When the target is an item the
// navigation bindings apply; when it is the root the toggle bindings apply.
// Every matching action runs, and a matched event is marked with
// PreventDefault and StopPropagation. It reports whether the event matched.
func (e *Engine) HandleKey(ev *KeyEvent) bool {
	if ev == nil {
		return false
	}
	key := NormalizeKey(ev.Key)
	if slices.Contains(keyboardModalityKeys, key) {
		e.setModality(ModalityKeyboard)
	}

	if i := e.IndexOf(ev.Target); i >= 0 {
		if e.tracker == nil {
			e.focused = i
		}
		actions := e.bindings.Navigation.Match(key)
		if len(actions) == 0 {
			if e.typeahead != nil && e.typeahead.handle(e, i, key, ev.Time) {
				ev.consume()
				return true
			}
			return false
		}
		ev.consume()
		e.run(key, actions)
		return true
	}

	if e.root != nil && isComparable(ev.Target) && ev.Target == e.root {
		actions := e.bindings.Toggle.Match(key)
		if len(actions) == 0 {
			return false
		}
		ev.consume()
		e.run(key, actions)
		return true
	}
	return false
}

// HandleFocus is called by the host whenever an element gains focus. Focus
// landing on an item selects it when selection follows focus.
func (e *Engine) HandleFocus(target any) {
	i := e.IndexOf(target)
	if e.tracker == nil {
		e.focused = i
	}
	if i >= 0 && e.followFocus {
		e.SelectFocused()
	}
}

// HandlePointerDown records a pointer interaction anywhere on the page.
func (e *Engine) HandlePointerDown() {
	e.setModality(ModalityMouse)
}

// HandleClick selects a clicked item through the focus path, focusing it
// first when needed.
func (e *Engine) HandleClick(target any) {
	i := e.IndexOf(target)
	if i < 0 {
		return
	}
	if e.FocusedIndex() != i {
		e.focusIndex(i)
		if e.followFocus && e.selected == i {
			return
		}
	}
	e.SelectFocused()
}

func (e *Engine) run(key string, actions []Action) {
	for _, a := range actions {
		e.log.Debug("keynav action", "key", key, "action", string(a))
		switch a {
		case ActionFocusFirst:
			e.FocusFirst()
		case ActionFocusLast:
			e.FocusLast()
		case ActionFocusNext:
			e.FocusNext()
		case ActionFocusPrevious:
			e.FocusPrevious()
		case ActionSelectFocused:
			e.SelectFocused()
		case ActionSelectNext:
			e.SelectNext()
		case ActionSelectPrevious:
			e.SelectPrevious()
		case ActionToggle:
			e.Toggle()
		case ActionToggleClosed:
			e.ToggleClosed()
		}
	}
}

// adjacent returns the index next to from in direction dir, wrapping when
// infinite navigation is on. It returns NoSelection when from is outside the
// sequence or there is no neighbour.
func (e *Engine) adjacent(from, dir int) int {
	n := len(e.items)
	if from < 0 || from >= n {
		return NoSelection
	}
	i := from + dir
	if i >= 0 && i < n {
		return i
	}
	if !e.infinite {
		return NoSelection
	}
	if dir > 0 {
		return 0
	}
	return n - 1
}

func (e *Engine) focusIndex(i int) {
	e.updateRovingTabIndex(i)
	if e.tracker == nil {
		e.focused = i
	}
	e.items[i].Focus()
}

func (e *Engine) activateToggle() {
	if e.toggle == nil {
		return
	}
	if e.tracker == nil {
		e.focused = NoSelection
	}
	e.toggle.Focus()
	e.toggle.Click()
}

// mark moves the selection marker to item i.
func (e *Engine) mark(i int) {
	for _, it := range e.items {
		if !e.selectedAttr.IsZero() {
			it.RemoveAttribute(e.selectedAttr.Name)
		}
		if !e.unselectedAttr.IsZero() {
			it.SetAttribute(e.unselectedAttr.Name, e.unselectedAttr.Value)
		}
	}
	if !e.selectedAttr.IsZero() {
		e.items[i].SetAttribute(e.selectedAttr.Name, e.selectedAttr.Value)
	}
	e.selected = i
}

func (e *Engine) updateRovingTabIndex(i int) {
	if !e.roving {
		return
	}
	for j, it := range e.items {
		if j == i {
			it.SetAttribute(TabIndexAttr, TabStop)
		} else {
			it.SetAttribute(TabIndexAttr, NotTabStop)
		}
	}
}

func (e *Engine) notifySelect(i int) {
	e.log.Debug("keynav select", "index", i)
	if e.onSelect != nil {
		e.onSelect(e.items[i])
	}
}

func (e *Engine) setModality(m Modality) {
	if e.modality != nil {
		e.modality.SetModality(m)
	}
}
