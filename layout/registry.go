// Package layout holds the most recent measured screen rectangle of each drop target
package layout

import "github.com/lixenwraith/dropzone/vmath"

// TargetID identifies a drop target (category zone or grid slot)
type TargetID string

// Registry stores last-measured target rects
// Iteration order is first-registration order, so hit-test tie-breaks are
// stable across calls. Not safe for concurrent use: owned by the event thread
type Registry struct {
	rects map[TargetID]vmath.Rect
	order []TargetID
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		rects: make(map[TargetID]vmath.Rect),
	}
}

// Register overwrites the stored rect for id; most recent measurement wins
func (r *Registry) Register(id TargetID, rect vmath.Rect) {
	if _, ok := r.rects[id]; !ok {
		r.order = append(r.order, id)
	}
	r.rects[id] = rect
}

// OnLayout is the host-facing alias of Register
func (r *Registry) OnLayout(id TargetID, rect vmath.Rect) {
	r.Register(id, rect)
}

// Get returns the rect for id; ok is false for a target not yet measured
func (r *Registry) Get(id TargetID) (vmath.Rect, bool) {
	rect, ok := r.rects[id]
	return rect, ok
}

// Remove forgets a target, e.g. when its zone is unmounted
func (r *Registry) Remove(id TargetID) {
	if _, ok := r.rects[id]; !ok {
		return
	}
	delete(r.rects, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Each visits measured targets in registration order, stopping when fn returns false
func (r *Registry) Each(fn func(id TargetID, rect vmath.Rect) bool) {
	for _, id := range r.order {
		if !fn(id, r.rects[id]) {
			return
		}
	}
}

// Len returns the number of measured targets
func (r *Registry) Len() int {
	return len(r.order)
}

// Bounds returns the union of all measured rects; ok is false when empty
func (r *Registry) Bounds() (vmath.Rect, bool) {
	var u vmath.Rect
	for _, id := range r.order {
		u = u.Union(r.rects[id])
	}
	return u, len(r.order) > 0
}

// Reset drops all measurements
func (r *Registry) Reset() {
	clear(r.rects)
	r.order = r.order[:0]
}
