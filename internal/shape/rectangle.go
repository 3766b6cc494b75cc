package shape

import "maquette/pkg/geometry"

// Rectangle builds the closed 5-vertex ring of the axis-aligned box spanned
// by the anchor and the current pointer position.
type Rectangle struct {
	anchor geometry.Point2D
}

// Begin fixes the anchor corner.
func (r *Rectangle) Begin(anchor geometry.Point2D) {
	r.anchor = anchor
}

// Update returns the provisional ring for the current pointer position.
func (r *Rectangle) Update(current geometry.Point2D) []geometry.Point2D {
	return r.ring(current)
}

// Finish returns the final ring, or nil when the box has zero extent on
// either axis.
func (r *Rectangle) Finish(current geometry.Point2D) []geometry.Point2D {
	if current.X == r.anchor.X || current.Y == r.anchor.Y {
		return nil
	}
	return r.ring(current)
}

func (r *Rectangle) ring(current geometry.Point2D) []geometry.Point2D {
	b, _ := geometry.BBoxOf([]geometry.Point2D{r.anchor, current})
	return b.Ring()
}
