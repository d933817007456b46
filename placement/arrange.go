package placement

import (
	"github.com/lixenwraith/dropzone/layout"
	"github.com/lixenwraith/dropzone/vmath"
)

// Arrange computes the default layout of a session's targets inside area
// Sort: category zones over the item pool. Puzzle: a square grid of slots
func Arrange(s Session, itemW, itemH float64, area vmath.Rect) layout.Arrangement {
	switch v := s.(type) {
	case *SortSession:
		cats := v.ex.Categories
		ids := make([]layout.TargetID, len(cats))
		for i, c := range cats {
			ids[i] = layout.TargetID(c.ID)
		}
		return layout.ArrangeSort(ids, len(v.pool), itemW, itemH, area)
	case *PuzzleSession:
		ids := make([]layout.TargetID, v.Size())
		for i := range ids {
			ids[i] = SlotTarget(i)
		}
		return layout.ArrangeGrid(ids, v.Columns(), itemW, itemH, area)
	default:
		return layout.Arrangement{}
	}
}
