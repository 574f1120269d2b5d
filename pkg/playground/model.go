// Package playground hosts a keynav engine in the terminal. It renders a
// trigger button and a list of items on a dom.Document and forwards
// bubbletea key and mouse messages to the document, so the engine sees the
// same event flow it would in a browser.
package playground

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/navkit/pkg/keynav"
	"github.com/marcus/navkit/pkg/keynav/dom"
	"github.com/marcus/navkit/pkg/playground/mouse"
)

// ErrNoItems is returned by New when there is nothing to navigate.
var ErrNoItems = errors.New("playground needs at least one item")

// Layout arranges the items.
type Layout int

const (
	Vertical Layout = iota
	Horizontal
)

const (
	triggerID     = "trigger"
	rootID        = "widget"
	itemIDPrefix  = "item-"
	selectedAttr  = "aria-selected"
	expandedAttr  = "aria-expanded"
	hiddenAttr    = "hidden"
	triggerPrompt = "Choose"
)

// Options configures a playground.
type Options struct {
	Labels   []string
	Bindings keynav.KeyBindingTable
	Layout   Layout
	// Toggle adds a trigger button that shows and hides the items. Without
	// it the items are always visible.
	Toggle bool
	// Selected is the label selected at start, if any.
	Selected string

	InfiniteNavigation    bool
	SelectionFollowsFocus bool
	ToggleAfterSelected   bool
	UseRovingTabIndex     bool
	Typeahead             bool

	Logger *slog.Logger
}

// Model is the bubbletea model of the playground.
type Model struct {
	opts   Options
	doc    *dom.Document
	root   *dom.Element
	button *dom.Element
	items  []*dom.Element
	engine *keynav.Engine

	mouse  *mouse.Handler
	keys   keyMap
	help   help.Model
	hover  string
	status string
	width  int
}

// New builds the element tree and binds an engine to it.
func New(opts Options) (*Model, error) {
	if len(opts.Labels) == 0 {
		return nil, ErrNoItems
	}
	if err := opts.Bindings.Validate(); err != nil {
		return nil, fmt.Errorf("bindings: %w", err)
	}
	if opts.Selected != "" && !slices.Contains(opts.Labels, opts.Selected) {
		return nil, fmt.Errorf("initial selection %q is not one of the items", opts.Selected)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	m := &Model{
		opts:  opts,
		doc:   dom.New(),
		mouse: mouse.NewHandler(),
		keys:  newKeyMap(opts.Bindings, opts.Typeahead),
		help:  help.New(),
		width: 80,
	}
	m.root = m.doc.CreateElement(rootID, "")
	m.doc.Body.AppendChild(m.root)

	var selected *dom.Element
	for i, label := range opts.Labels {
		el := m.doc.CreateElement(fmt.Sprintf("%s%d", itemIDPrefix, i), label)
		m.root.AppendChild(el)
		m.items = append(m.items, el)
		if label == opts.Selected && selected == nil {
			selected = el
		}
	}

	cfg := keynav.Config{
		Items:                 dom.Items(m.items),
		Root:                  m.root,
		Bindings:              opts.Bindings,
		SelectedAttr:          keynav.Attr{Name: selectedAttr, Value: "true"},
		InfiniteNavigation:    opts.InfiniteNavigation,
		SelectionFollowsFocus: opts.SelectionFollowsFocus,
		ToggleAfterSelected:   opts.ToggleAfterSelected,
		UseRovingTabIndex:     opts.UseRovingTabIndex,
		Typeahead:             opts.Typeahead,
		OnSelect: func(it keynav.Item) {
			m.status = "selected " + it.(*dom.Element).Text
		},
		Logger: opts.Logger,
	}
	if selected != nil {
		cfg.Selected = selected
	}
	if opts.Toggle {
		m.button = m.doc.CreateElement(triggerID, triggerPrompt)
		m.button.SetAttribute(expandedAttr, "false")
		m.root.AppendChild(m.button)
		m.button.OnClick(m.onTrigger)
		m.setOpen(false)
		cfg.Toggle = m.button
	}
	m.engine = dom.Bind(m.doc, cfg)

	if m.button != nil {
		m.button.Focus()
	} else {
		m.focusTabStop()
	}
	return m, nil
}

// Document returns the element tree the engine is bound to.
func (m *Model) Document() *dom.Document { return m.doc }

// Engine returns the bound engine.
func (m *Model) Engine() *keynav.Engine { return m.engine }

// Open reports whether the items are visible.
func (m *Model) Open() bool {
	return m.button == nil || !m.root.HasAttribute(hiddenAttr)
}

// Status returns the last status message.
func (m *Model) Status() string { return m.status }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		if k := KeyFromMsg(msg); k != "" {
			m.press(k)
		}
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}
	return m, nil
}

// press delivers k to the focused element. A key the element does not
// consume bubbles to the widget root, where the toggle bindings apply.
// The trigger button activates on Enter and Space like a native button.
func (m *Model) press(k string) {
	active := m.doc.Active()
	ev := m.doc.KeyDown(active, k)
	if ev.DefaultPrevented() {
		return
	}
	k = keynav.NormalizeKey(k)
	switch {
	case k == keynav.KeyTab:
		m.cycleFocus()
	case active != nil && active == m.button && (k == keynav.KeyEnter || k == keynav.KeySpace):
		m.button.Click()
	case active != nil && active != m.root && m.root.Contains(active):
		m.doc.KeyDown(m.root, k)
	}
}

// cycleFocus moves focus between the trigger and the items' tab stop.
func (m *Model) cycleFocus() {
	if m.button == nil {
		m.focusTabStop()
		return
	}
	if m.doc.Active() == m.button && m.Open() {
		m.focusTabStop()
		return
	}
	m.button.Focus()
}

// focusTabStop focuses the item a Tab press would land on: the roving tab
// stop, then the selected item, then the first item.
func (m *Model) focusTabStop() {
	for _, el := range m.items {
		if v, _ := el.Attribute(keynav.TabIndexAttr); v == keynav.TabStop {
			el.Focus()
			return
		}
	}
	if sel, ok := m.engine.Selected(); ok {
		sel.Focus()
		return
	}
	m.engine.FocusFirst()
}

func (m *Model) onTrigger(*dom.Element) {
	if !m.Open() {
		m.setOpen(true)
		m.focusTabStop()
		return
	}
	m.setOpen(false)
	m.button.Focus()
}

func (m *Model) setOpen(open bool) {
	if open {
		m.root.RemoveAttribute(hiddenAttr)
		m.button.SetAttribute(expandedAttr, "true")
		return
	}
	m.root.SetAttribute(hiddenAttr, "true")
	m.button.SetAttribute(expandedAttr, "false")
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	a := m.mouse.HandleMouse(msg)
	switch a.Type {
	case mouse.ActionPress:
		if a.Region == nil {
			m.doc.PointerDown(nil)
			return
		}
		if el := m.doc.GetElementByID(a.Region.ID); el != nil {
			m.doc.Click(el)
		}
	case mouse.ActionHover:
		m.hover = ""
		if a.Region != nil {
			m.hover = a.Region.ID
		}
	case mouse.ActionScrollUp:
		m.engine.SelectPrevious()
	case mouse.ActionScrollDown:
		m.engine.SelectNext()
	}
}

// View renders the widget and rebuilds the hit map for the frame.
func (m *Model) View() string {
	m.mouse.HitMap.Clear()
	var lines []string
	if m.button != nil {
		btn := m.renderTrigger()
		m.mouse.HitMap.AddRect(triggerID, 0, 0, lipgloss.Width(btn), 1, nil)
		lines = append(lines, btn)
	}
	if m.Open() {
		top := len(lines)
		if m.opts.Layout == Horizontal {
			lines = append(lines, m.renderRow(top))
		} else {
			lines = append(lines, m.renderColumn(top)...)
		}
	}
	lines = append(lines, "", m.renderStatus(), m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

func (m *Model) renderTrigger() string {
	text := m.button.Text
	if sel, ok := m.engine.Selected(); ok {
		text += ": " + sel.(*dom.Element).Text
	}
	if m.Open() {
		text += " ▴"
	} else {
		text += " ▾"
	}
	switch {
	case m.button.Focused():
		return triggerFocusedStyle.Render(text)
	case m.hover == triggerID:
		return triggerHoverStyle.Render(text)
	default:
		return triggerStyle.Render(text)
	}
}

func (m *Model) labelWidth() int {
	return max(m.width-4, 1)
}

func (m *Model) renderColumn(top int) []string {
	out := make([]string, 0, len(m.items))
	for i, el := range m.items {
		cursor := "  "
		if el.Focused() {
			cursor = cursorStyle.Render("▸ ")
		}
		label := ansi.Truncate(el.Text, m.labelWidth(), "…")
		style := itemStyle
		switch {
		case el.Focused():
			style = itemFocusedStyle
		case m.isSelected(el):
			style = itemSelectedStyle
		case m.hover == el.ID:
			style = itemHoverStyle
		}
		if m.isSelected(el) {
			label = "● " + label
		} else {
			label = "  " + label
		}
		line := cursor + style.Render(label)
		m.mouse.HitMap.AddRect(el.ID, 0, top+i, lipgloss.Width(line), 1, i)
		out = append(out, line)
	}
	return out
}

func (m *Model) renderRow(top int) string {
	tabs := make([]string, 0, len(m.items))
	x := 0
	per := max(m.labelWidth()/len(m.items), 1)
	for i, el := range m.items {
		label := ansi.Truncate(el.Text, per, "…")
		style := tabStyle
		switch {
		case el.Focused():
			style = tabFocusedStyle
		case m.isSelected(el):
			style = tabSelectedStyle
		case m.hover == el.ID:
			style = tabStyle.Foreground(cyanColor)
		}
		tab := style.Render(label)
		w := lipgloss.Width(tab)
		m.mouse.HitMap.AddRect(el.ID, x, top, w, 1, i)
		x += w + 1
		tabs = append(tabs, tab)
	}
	return strings.Join(tabs, " ")
}

func (m *Model) renderStatus() string {
	modality := string(m.doc.Modality().Current())
	if modality == "" {
		modality = "none"
	}
	focus := "none"
	if a := m.doc.Active(); a != nil {
		focus = a.Text
	}
	parts := []string{
		"modality " + modalityStyle.Render(modality),
		"focus " + focus,
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return statusStyle.Render(strings.Join(parts, " · "))
}

func (m *Model) isSelected(el *dom.Element) bool {
	v, _ := el.Attribute(selectedAttr)
	return v == "true"
}
