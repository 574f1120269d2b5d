package dom

import (
	"github.com/marcus/navkit/pkg/keynav"
)

// Bind builds an engine for one widget on d and wires the document's
// listeners to it. A nil cfg.Focus becomes the document and a nil
// cfg.Modality becomes the document's shared tracker.
//
// Key presses reach the engine through a document keydown listener; a press
// the engine consumes is stopped there, so later widgets do not react to it.
// Clicks on an item select it.
func Bind(d *Document, cfg keynav.Config) *keynav.Engine {
	if cfg.Focus == nil {
		cfg.Focus = d
	}
	if cfg.Modality == nil {
		cfg.Modality = d.Modality()
	}
	e := keynav.New(cfg)

	d.OnKeyDown(func(k *KeyDown) {
		ev := &keynav.KeyEvent{Key: k.Key, Target: target(k.Target), Time: d.Clock()}
		if e.HandleKey(ev) {
			k.PreventDefault()
			k.StopPropagation()
		}
	})
	d.OnFocus(func(el *Element) {
		e.HandleFocus(el)
	})
	d.OnPointerDown(func(*Element) {
		e.HandlePointerDown()
	})
	d.OnClick(func(el *Element) {
		e.HandleClick(el)
	})
	return e
}

// Items converts elements to engine items.
func Items(els []*Element) []keynav.Item {
	out := make([]keynav.Item, len(els))
	for i, el := range els {
		out[i] = el
	}
	return out
}

// target keeps a nil element from becoming a typed nil interface value.
func target(el *Element) any {
	if el == nil {
		return nil
	}
	return el
}
