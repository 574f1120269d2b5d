// Package dom is a small in-memory element tree for hosting keynav engines
// outside a browser. Elements carry string attributes, the document
// tracks the active element and dispatches keydown, focus, pointer-down and
// click events to registered listeners.
package dom

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/marcus/navkit/pkg/keynav"
)

// Element is one node of the tree. Elements are compared by pointer.
type Element struct {
	ID    string
	Text  string
	doc   *Document
	attrs map[string]string

	parent   *Element
	children []*Element

	onClick []func(*Element)
}

// Document owns a tree of elements and its focus state.
type Document struct {
	Body *Element

	// Clock stamps key events. Defaults to time.Now.
	Clock func() time.Time

	active   *Element
	byID     map[string]*Element
	modality *keynav.ModalityTracker

	keyDown     []func(*KeyDown)
	focus       []func(*Element)
	pointerDown []func(*Element)
	click       []func(*Element)
}

// New returns an empty document with a body element.
func New() *Document {
	d := &Document{Clock: time.Now, byID: make(map[string]*Element)}
	d.Body = d.CreateElement("body", "")
	return d
}

// CreateElement makes a detached element. An empty id is allowed; only
// elements with an id can be found with GetElementByID.
func (d *Document) CreateElement(id, text string) *Element {
	el := &Element{ID: id, Text: text, doc: d, attrs: make(map[string]string)}
	if id != "" {
		d.byID[id] = el
	}
	return el
}

// GetElementByID returns the element with the given id, or nil.
func (d *Document) GetElementByID(id string) *Element {
	return d.byID[id]
}

// Modality returns the document's shared interaction modality tracker,
// which writes keynav.ModalityAttr on the body.
func (d *Document) Modality() *keynav.ModalityTracker {
	if d.modality == nil {
		d.modality = keynav.NewModalityTracker(d.Body)
	}
	return d.modality
}

// ActiveElement returns the focused element as an untyped value, or nil.
// It satisfies keynav.FocusTracker.
func (d *Document) ActiveElement() any {
	if d.active == nil {
		return nil
	}
	return d.active
}

// Active returns the focused element, or nil.
func (d *Document) Active() *Element { return d.active }

// Focus moves focus to el and notifies focus listeners. Focusing the element
// that already has focus does nothing.
func (d *Document) Focus(el *Element) {
	if el == nil || el.doc != d || d.active == el {
		return
	}
	d.active = el
	for _, fn := range slices.Clone(d.focus) {
		fn(el)
	}
}

// Blur clears focus.
func (d *Document) Blur() { d.active = nil }

// OnKeyDown registers a keydown listener. Listeners run in registration
// order until one stops propagation.
func (d *Document) OnKeyDown(fn func(*KeyDown)) { d.keyDown = append(d.keyDown, fn) }

// OnFocus registers a listener called after an element gains focus.
func (d *Document) OnFocus(fn func(*Element)) { d.focus = append(d.focus, fn) }

// OnPointerDown registers a listener for pointer presses anywhere.
func (d *Document) OnPointerDown(fn func(*Element)) { d.pointerDown = append(d.pointerDown, fn) }

// OnClick registers a document-level click listener. It runs after the
// target's own click handlers.
func (d *Document) OnClick(fn func(*Element)) { d.click = append(d.click, fn) }

// KeyDown dispatches a key press to target, or to the active element when
// target is nil. It returns the event so callers can inspect whether it was
// consumed.
func (d *Document) KeyDown(target *Element, key string) *KeyDown {
	if target == nil {
		target = d.active
	}
	ev := &KeyDown{Key: key, Target: target}
	for _, fn := range slices.Clone(d.keyDown) {
		fn(ev)
		if ev.stopped {
			break
		}
	}
	return ev
}

// PointerDown dispatches a pointer press on target (which may be nil for
// presses on empty space).
func (d *Document) PointerDown(target *Element) {
	for _, fn := range slices.Clone(d.pointerDown) {
		fn(target)
	}
}

// Click presses and activates target: pointer-down listeners run first,
// then the element's own click handlers, then document click listeners.
func (d *Document) Click(target *Element) {
	d.PointerDown(target)
	if target != nil {
		target.Click()
	}
}

// KeyDown is a key press travelling through the document's listeners.
type KeyDown struct {
	Key    string
	Target *Element

	prevented bool
	stopped   bool
}

// PreventDefault marks the key's default behaviour as suppressed.
func (k *KeyDown) PreventDefault() { k.prevented = true }

// StopPropagation stops later listeners from seeing the event.
func (k *KeyDown) StopPropagation() { k.stopped = true }

// DefaultPrevented reports whether a listener called PreventDefault.
func (k *KeyDown) DefaultPrevented() bool { return k.prevented }

// Stopped reports whether a listener called StopPropagation.
func (k *KeyDown) Stopped() bool { return k.stopped }

// SetAttribute sets or replaces an attribute.
func (e *Element) SetAttribute(name, value string) {
	e.attrs[name] = value
}

// RemoveAttribute deletes an attribute if present.
func (e *Element) RemoveAttribute(name string) {
	delete(e.attrs, name)
}

// Attribute returns the attribute value and whether it is set.
func (e *Element) Attribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// HasAttribute reports whether the attribute is set.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// Attributes returns a copy of all attributes.
func (e *Element) Attributes() map[string]string {
	out := make(map[string]string, len(e.attrs))
	for k, v := range e.attrs {
		out[k] = v
	}
	return out
}

// Focus makes e the document's active element.
func (e *Element) Focus() { e.doc.Focus(e) }

// Focused reports whether e is the active element.
func (e *Element) Focused() bool { return e.doc.active == e }

// Click activates the element the way a user click would, without a
// pointer press. Toggle targets are driven through it.
func (e *Element) Click() {
	e.activate()
	for _, fn := range slices.Clone(e.doc.click) {
		fn(e)
	}
}

// OnClick registers a handler for this element's primary action.
func (e *Element) OnClick(fn func(*Element)) { e.onClick = append(e.onClick, fn) }

// Label returns the element's text. Typeahead matches against it.
func (e *Element) Label() string { return e.Text }

// AppendChild attaches child as the last child of e.
func (e *Element) AppendChild(child *Element) {
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
}

// Parent returns the parent element, or nil.
func (e *Element) Parent() *Element { return e.parent }

// Children returns a copy of the child list.
func (e *Element) Children() []*Element { return slices.Clone(e.children) }

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// String renders the element as a start tag with sorted attributes, which is
// handy in test failures.
func (e *Element) String() string {
	if e == nil {
		return "<nil>"
	}
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(e.ID)
	names := make([]string, 0, len(e.attrs))
	for k := range e.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		sb.WriteString(" ")
		sb.WriteString(k)
		sb.WriteString(`="`)
		sb.WriteString(e.attrs[k])
		sb.WriteString(`"`)
	}
	sb.WriteString(">")
	return sb.String()
}

func (e *Element) activate() {
	for _, fn := range slices.Clone(e.onClick) {
		fn(e)
	}
}

func (e *Element) removeChild(child *Element) {
	e.children = slices.DeleteFunc(e.children, func(c *Element) bool { return c == child })
	child.parent = nil
}
