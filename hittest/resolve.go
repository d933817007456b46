// Package hittest maps a gesture release point to at most one drop target.
//
// A target is a candidate when the release point lies inside its rect OR the
// distance from the point to the rect center is below the drop threshold.
// Among candidates the nearest center wins; containment only admits a target
// to the candidate set, it never short-circuits the choice. Targets whose rect
// has not been measured yet are not candidates.
package hittest

import (
	"math"

	"github.com/lixenwraith/dropzone/layout"
	"github.com/lixenwraith/dropzone/vmath"
)

// DefaultThresholdRatio is the fraction of the dragged item's edge length used
// as the center-distance threshold
const DefaultThresholdRatio = 0.7

// Threshold derives the drop threshold from an item edge length
func Threshold(edge, ratio float64) float64 {
	if edge <= 0 || ratio <= 0 {
		return 0
	}
	return edge * ratio
}

// Candidate is one target evaluated during a resolve pass
type Candidate struct {
	Target   layout.TargetID
	Distance float64
	Contains bool
}

// Result of a resolve pass
type Result struct {
	Target   layout.TargetID
	Distance float64
	Contains bool
	Found    bool
}

// Resolve returns the winning target for the release point
// Ties in distance keep the earlier target in registry order
func Resolve(point vmath.Point, reg *layout.Registry, threshold float64) Result {
	var best Result
	bestDist := math.Inf(1)

	reg.Each(func(id layout.TargetID, rect vmath.Rect) bool {
		c := evaluate(id, rect, point)
		if !c.Contains && !(c.Distance < threshold) {
			return true
		}
		if c.Distance < bestDist {
			bestDist = c.Distance
			best = Result{Target: id, Distance: c.Distance, Contains: c.Contains, Found: true}
		}
		return true
	})
	return best
}

// ResolveNearest returns the nearest measured target by center distance with
// no threshold, used as the closed-board fallback
func ResolveNearest(point vmath.Point, reg *layout.Registry) Result {
	var best Result
	bestDist := math.Inf(1)

	reg.Each(func(id layout.TargetID, rect vmath.Rect) bool {
		c := evaluate(id, rect, point)
		if c.Distance < bestDist {
			bestDist = c.Distance
			best = Result{Target: id, Distance: c.Distance, Contains: c.Contains, Found: true}
		}
		return true
	})
	return best
}

// Candidates lists every measured target with its containment and distance,
// in registry order. Diagnostic only
func Candidates(point vmath.Point, reg *layout.Registry) []Candidate {
	out := make([]Candidate, 0, reg.Len())
	reg.Each(func(id layout.TargetID, rect vmath.Rect) bool {
		out = append(out, evaluate(id, rect, point))
		return true
	})
	return out
}

func evaluate(id layout.TargetID, rect vmath.Rect, point vmath.Point) Candidate {
	return Candidate{
		Target:   id,
		Distance: vmath.Distance(point, rect.Center()),
		Contains: rect.Contains(point),
	}
}
