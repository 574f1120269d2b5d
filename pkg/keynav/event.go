package keynav

import "time"

// KeyEvent is one key press delivered to the engine.
type KeyEvent struct {
	// Key is the key identifier, legacy aliases included.
	Key string
	// Target is the element the key press was dispatched to. It is compared
	// by identity against the engine's items and root.
	Target any
	// Time is when the key was pressed. Only typeahead looks at it.
	Time time.Time

	defaultPrevented   bool
	propagationStopped bool
}

// PreventDefault marks the key's default behaviour as suppressed.
func (e *KeyEvent) PreventDefault() { e.defaultPrevented = true }

// StopPropagation keeps ancestor handlers from reacting to the same press.
func (e *KeyEvent) StopPropagation() { e.propagationStopped = true }

// DefaultPrevented reports whether a handler called PreventDefault.
func (e *KeyEvent) DefaultPrevented() bool { return e.defaultPrevented }

// PropagationStopped reports whether a handler called StopPropagation.
func (e *KeyEvent) PropagationStopped() bool { return e.propagationStopped }

// consume marks the event as handled by the engine.
func (e *KeyEvent) consume() {
	e.PreventDefault()
	e.StopPropagation()
}
