package layout

import (
	"math"

	"github.com/lixenwraith/dropzone/vmath"
)

// Spacing between arranged boxes, in layout units
const (
	Gap       = 2.0
	ZoneRatio = 0.5 // Share of the area height given to sort category zones
)

// Box is one arranged drop target
type Box struct {
	ID   TargetID
	Rect vmath.Rect
}

// Arrangement is a computed screen layout
type Arrangement struct {
	Targets []Box
	Rests   []vmath.Rect // Resting rects of draggable items, in display order
}

// Apply registers every target through fn, typically a session's OnLayout
func (a Arrangement) Apply(fn func(TargetID, vmath.Rect)) {
	for _, b := range a.Targets {
		fn(b.ID, b.Rect)
	}
}

// Target returns the arranged rect for id
func (a Arrangement) Target(id TargetID) (vmath.Rect, bool) {
	for _, b := range a.Targets {
		if b.ID == id {
			return b.Rect, true
		}
	}
	return vmath.Rect{}, false
}

// ArrangeSort lays category zones in a row across the top of area and the
// item pool in wrapped rows beneath them
func ArrangeSort(categories []TargetID, items int, itemW, itemH float64, area vmath.Rect) Arrangement {
	var a Arrangement
	k := float64(len(categories))
	if k == 0 {
		return a
	}

	zoneW := math.Max(itemW+Gap, (area.Width-Gap*(k-1))/k)
	zoneH := math.Max(itemH+Gap, math.Floor(area.Height*ZoneRatio))
	for i, id := range categories {
		a.Targets = append(a.Targets, Box{
			ID:   id,
			Rect: vmath.Rect{X: area.X + float64(i)*(zoneW+Gap), Y: area.Y, Width: zoneW, Height: zoneH},
		})
	}

	poolTop := area.Y + zoneH + Gap
	a.Rests = flow(items, itemW, itemH, vmath.Rect{X: area.X, Y: poolTop, Width: area.Width})
	return a
}

// ArrangeGrid lays ids as a cols-wide grid of item-sized slots centered in area
// Puzzle slots touch so the solved picture reads as one image
func ArrangeGrid(ids []TargetID, cols int, itemW, itemH float64, area vmath.Rect) Arrangement {
	var a Arrangement
	if cols <= 0 || len(ids) == 0 {
		return a
	}
	rows := (len(ids) + cols - 1) / cols
	gridW := float64(cols) * itemW
	gridH := float64(rows) * itemH
	origin := vmath.Point{
		X: area.X + math.Max(0, math.Floor((area.Width-gridW)/2)),
		Y: area.Y + math.Max(0, math.Floor((area.Height-gridH)/2)),
	}
	for i, id := range ids {
		r := vmath.Rect{
			X:      origin.X + float64(i%cols)*itemW,
			Y:      origin.Y + float64(i/cols)*itemH,
			Width:  itemW,
			Height: itemH,
		}
		a.Targets = append(a.Targets, Box{ID: id, Rect: r})
		a.Rests = append(a.Rests, r)
	}
	return a
}

// flow wraps n item rects left to right starting at area's origin
func flow(n int, itemW, itemH float64, area vmath.Rect) []vmath.Rect {
	perRow := int((area.Width + Gap) / (itemW + Gap))
	if perRow < 1 {
		perRow = 1
	}
	out := make([]vmath.Rect, n)
	for i := range out {
		out[i] = vmath.Rect{
			X:      area.X + float64(i%perRow)*(itemW+Gap),
			Y:      area.Y + float64(i/perRow)*(itemH+1),
			Width:  itemW,
			Height: itemH,
		}
	}
	return out
}
