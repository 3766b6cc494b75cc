package shape

import "maquette/pkg/geometry"

// Freehand records the literal sequence of sampled pointer positions, one
// vertex per move event, and closes the ring back to the anchor on finish.
type Freehand struct {
	points []geometry.Point2D
}

// Begin starts the path at the anchor.
func (f *Freehand) Begin(anchor geometry.Point2D) {
	f.points = []geometry.Point2D{anchor}
}

// Update appends the current position and returns the accumulated path.
func (f *Freehand) Update(current geometry.Point2D) []geometry.Point2D {
	f.points = append(f.points, current)
	return f.points
}

// Finish appends the release position and closes the ring back to the
// anchor. Returns nil when fewer than 3 distinct points were recorded.
func (f *Freehand) Finish(current geometry.Point2D) []geometry.Point2D {
	pts := append(f.points, current)
	if geometry.DistinctCount(pts) < 3 {
		return nil
	}
	return geometry.CloseRing(pts)
}
