// Package mouse maps terminal mouse events onto rectangular screen regions.
package mouse

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Rect is a screen rectangle. X and Y are the top-left cell; W and H are
// exclusive extents.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named hit target.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds the regions of the last rendered frame. Regions added later
// win when they overlap earlier ones.
type HitMap struct {
	regions []Region
}

// NewHitMap returns an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// Add appends a region.
func (hm *HitMap) Add(r Region) {
	hm.regions = append(hm.regions, r)
}

// AddRect appends a region built from coordinates.
func (hm *HitMap) AddRect(id string, x, y, w, h int, data any) {
	hm.Add(Region{ID: id, Rect: Rect{X: x, Y: y, W: w, H: h}, Data: data})
}

// Test returns the topmost region containing (x, y), or nil.
func (hm *HitMap) Test(x, y int) *Region {
	for i := len(hm.regions) - 1; i >= 0; i-- {
		if hm.regions[i].Rect.Contains(x, y) {
			return &hm.regions[i]
		}
	}
	return nil
}

// Regions returns the registered regions in insertion order.
func (hm *HitMap) Regions() []Region {
	return hm.regions
}

// Clear drops all regions. Call it before rebuilding for a new frame.
func (hm *HitMap) Clear() {
	hm.regions = hm.regions[:0]
}

// ActionType classifies a mouse event.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionPress
	ActionHover
	ActionScrollUp
	ActionScrollDown
)

func (a ActionType) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionHover:
		return "hover"
	case ActionScrollUp:
		return "scroll-up"
	case ActionScrollDown:
		return "scroll-down"
	default:
		return "none"
	}
}

// Action is a classified mouse event with the region under the pointer.
type Action struct {
	Type   ActionType
	Region *Region
	X, Y   int
}

// Handler classifies mouse messages against its hit map.
type Handler struct {
	HitMap *HitMap
}

// NewHandler returns a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap()}
}

// HandleMouse turns a bubbletea mouse message into an Action. Only left
// presses count as presses; releases are ignored.
func (h *Handler) HandleMouse(msg tea.MouseMsg) Action {
	a := Action{X: msg.X, Y: msg.Y, Region: h.HitMap.Test(msg.X, msg.Y)}
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			a.Type = ActionPress
		case tea.MouseButtonWheelUp:
			a.Type = ActionScrollUp
		case tea.MouseButtonWheelDown:
			a.Type = ActionScrollDown
		}
	case tea.MouseActionMotion:
		a.Type = ActionHover
	}
	return a
}
