// Package mouse resolves terminal mouse coordinates to the regions that
// were laid out on screen.
package mouse

import tea "github.com/charmbracelet/bubbletea"

// Rect is a screen rectangle in cells. Width and height are exclusive.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a clickable area. Data carries whatever the owner needs to
// act on a hit.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds regions in insertion order. Later regions win on overlap.
type HitMap struct {
	regions []Region
}

func NewHitMap() *HitMap {
	return &HitMap{}
}

func (h *HitMap) AddRect(id string, x, y, w, h2 int, data any) {
	h.regions = append(h.regions, Region{ID: id, Rect: Rect{X: x, Y: y, W: w, H: h2}, Data: data})
}

// Test returns the topmost region at x, y or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			return &h.regions[i]
		}
	}
	return nil
}

func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

func (h *HitMap) Regions() []Region {
	return h.regions
}

// IsPrimaryClick reports whether msg is a left button press.
func IsPrimaryClick(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
}
