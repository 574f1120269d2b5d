package playground

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/navkit/pkg/keynav"
)

// KeyFromMsg translates a terminal key message into the key identifier the
// engine understands. It returns "" for keys with no equivalent.
func KeyFromMsg(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyUp:
		return keynav.KeyArrowUp
	case tea.KeyDown:
		return keynav.KeyArrowDown
	case tea.KeyLeft:
		return keynav.KeyArrowLeft
	case tea.KeyRight:
		return keynav.KeyArrowRight
	case tea.KeyHome:
		return keynav.KeyHome
	case tea.KeyEnd:
		return keynav.KeyEnd
	case tea.KeyEnter:
		return keynav.KeyEnter
	case tea.KeySpace:
		return keynav.KeySpace
	case tea.KeyEsc:
		return keynav.KeyEscape
	case tea.KeyTab:
		return keynav.KeyTab
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) != 1 {
			return ""
		}
		return string(msg.Runes)
	}
	return ""
}

// teaKeys maps engine key identifiers to bubbles/key names.
var teaKeys = map[string]string{
	keynav.KeyArrowUp:    "up",
	keynav.KeyArrowDown:  "down",
	keynav.KeyArrowLeft:  "left",
	keynav.KeyArrowRight: "right",
	keynav.KeyHome:       "home",
	keynav.KeyEnd:        "end",
	keynav.KeyEnter:      "enter",
	keynav.KeySpace:      " ",
	keynav.KeyEscape:     "esc",
	keynav.KeyTab:        "tab",
}

var keyGlyphs = map[string]string{
	keynav.KeyArrowUp:    "↑",
	keynav.KeyArrowDown:  "↓",
	keynav.KeyArrowLeft:  "←",
	keynav.KeyArrowRight: "→",
	keynav.KeySpace:      "space",
	keynav.KeyEscape:     "esc",
}

// KeyLabel returns a short display form of a key identifier.
func KeyLabel(k string) string {
	k = keynav.NormalizeKey(k)
	if g, ok := keyGlyphs[k]; ok {
		return g
	}
	return strings.ToLower(k)
}

// keyMap is the help view's picture of the active binding table.
type keyMap struct {
	Navigation []key.Binding
	Toggle     []key.Binding
	Tab        key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// newKeyMap builds the help bindings. With typeahead on, letters belong to
// the items, so quitting is left to ctrl+c.
func newKeyMap(t keynav.KeyBindingTable, typeahead bool) keyMap {
	quit := key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
	if typeahead {
		quit = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
	}
	return keyMap{
		Navigation: helpBindings(t.Navigation),
		Toggle:     helpBindings(t.Toggle),
		Tab:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "move focus")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:       quit,
	}
}

func helpBindings(bs keynav.Bindings) []key.Binding {
	out := make([]key.Binding, 0, len(bs))
	for _, b := range bs {
		names := make([]string, 0, len(b.Keys))
		labels := make([]string, 0, len(b.Keys))
		for _, k := range b.Keys {
			k = keynav.NormalizeKey(k)
			if n, ok := teaKeys[k]; ok {
				names = append(names, n)
			} else {
				names = append(names, k)
			}
			labels = append(labels, KeyLabel(k))
		}
		out = append(out, key.NewBinding(
			key.WithKeys(names...),
			key.WithHelp(strings.Join(labels, "/"), string(b.Action)),
		))
	}
	return out
}

func (k keyMap) ShortHelp() []key.Binding {
	short := make([]key.Binding, 0, len(k.Navigation)+3)
	short = append(short, k.Navigation...)
	return append(short, k.Tab, k.Help, k.Quit)
}

func (k keyMap) FullHelp() [][]key.Binding {
	cols := [][]key.Binding{k.Navigation}
	if len(k.Toggle) > 0 {
		cols = append(cols, k.Toggle)
	}
	return append(cols, []key.Binding{k.Tab, k.Help, k.Quit})
}
