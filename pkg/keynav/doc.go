// Package keynav turns a flat, ordered collection of elements into an
// accessible composite widget: a listbox, a tab list, or anything else that
// moves focus with the arrow keys and keeps a single selected entry.
//
// The engine is data driven. A host widget supplies the items, a
// KeyBindingTable, the selection marker attributes, an optional toggle target
// and four behaviour flags; the engine handles focus movement, roving
// tabindex, selection and toggle delegation. It never inspects what an item
// represents.
//
// # Quick Start
//
//	e := keynav.New(keynav.Config{
//	    Items:              options,
//	    Root:               widget,
//	    Bindings:           keynav.ListboxBindings(),
//	    Toggle:             trigger,
//	    SelectedAttr:       keynav.Attr{Name: "aria-selected", Value: "true"},
//	    ToggleAfterSelected: true,
//	    OnSelect: func(it keynav.Item) {
//	        // copy the option text into the trigger
//	    },
//	})
//
//	// From the host's event loop:
//	e.HandleKey(&keynav.KeyEvent{Key: "ArrowDown", Target: focused})
//	e.HandleFocus(focused)
//	e.HandlePointerDown()
//
// # Attribute vocabulary
//
// Selected and unselected items carry the caller's marker pairs. With roving
// tabindex enabled the engine writes tabindex="0" on the active item and
// tabindex="-1" on its siblings. The interaction modality is written to a
// shared element as data-accessible-components-modality="mouse|keyboard".
//
// All operations are synchronous and silently do nothing when they are
// invoked on an empty collection or with a target the engine does not track.
package keynav
