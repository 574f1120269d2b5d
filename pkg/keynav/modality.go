package keynav

// Modality records whether the most recent input came from a pointer or the
// keyboard.
type Modality string

const (
	ModalityMouse    Modality = "mouse"
	ModalityKeyboard Modality = "keyboard"
)

// ModalityAttr is the attribute written on the shared ancestor element.
const ModalityAttr = "data-accessible-components-modality"

// ModalityNotifier receives interaction modality changes.
type ModalityNotifier interface {
	SetModality(Modality)
}

// AttributeSetter is anything that can carry a string attribute.
type AttributeSetter interface {
	SetAttribute(name, value string)
}

// ModalityTracker publishes the modality as an attribute on one shared
// element, normally the page body. One tracker is shared by every engine on
// the page.
type ModalityTracker struct {
	target  AttributeSetter
	attr    string
	current Modality
}

// NewModalityTracker returns a tracker writing ModalityAttr on target.
func NewModalityTracker(target AttributeSetter) *ModalityTracker {
	return &ModalityTracker{target: target, attr: ModalityAttr}
}

// WithAttr overrides the attribute name.
func (t *ModalityTracker) WithAttr(name string) *ModalityTracker {
	if name != "" {
		t.attr = name
	}
	return t
}

// SetModality records m and writes it to the target element.
func (t *ModalityTracker) SetModality(m Modality) {
	if t == nil {
		return
	}
	t.current = m
	if t.target != nil {
		t.target.SetAttribute(t.attr, string(m))
	}
}

// Current returns the last recorded modality, or "" before any input.
func (t *ModalityTracker) Current() Modality {
	if t == nil {
		return ""
	}
	return t.current
}

// keyboardModalityKeys are the keys that switch the modality to keyboard.
var keyboardModalityKeys = []string{KeyArrowLeft, KeyArrowRight, KeySpace, KeyTab}
