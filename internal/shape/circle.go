package shape

import (
	"math"

	"maquette/pkg/geometry"
)

// DefaultCircleSegments is the vertex count of the sampled circle ring.
const DefaultCircleSegments = 48

// minRadiusDeg rejects zero-radius gestures (accidental clicks).
const minRadiusDeg = 1e-9

// Circle builds a regular polygon approximating a circle centered on the
// anchor. The radius is the planar distance from anchor to cursor with the
// east-west delta scaled by cos(anchor latitude), so the circle is round in
// meters rather than in raw degrees.
type Circle struct {
	// Segments is the number of ring vertices; zero falls back to the default.
	Segments int

	anchor geometry.Point2D
	cosLat float64
}

// Begin fixes the circle center and caches the meridian-convergence factor
// at its latitude.
func (c *Circle) Begin(anchor geometry.Point2D) {
	c.anchor = anchor
	c.cosLat = math.Cos(anchor.Y * math.Pi / 180)
	if math.Abs(c.cosLat) < 1e-9 {
		c.cosLat = 1e-9
	}
}

// Update returns the provisional ring for the current pointer position.
func (c *Circle) Update(current geometry.Point2D) []geometry.Point2D {
	return c.ring(c.radius(current))
}

// Finish returns the final ring, or nil when the radius is degenerate.
func (c *Circle) Finish(current geometry.Point2D) []geometry.Point2D {
	r := c.radius(current)
	if r < minRadiusDeg {
		return nil
	}
	return c.ring(r)
}

// radius returns the gesture radius in latitude-degree units.
func (c *Circle) radius(current geometry.Point2D) float64 {
	dx := (current.X - c.anchor.X) * c.cosLat
	dy := current.Y - c.anchor.Y
	return math.Hypot(dx, dy)
}

// ring samples the circle at 2π·i/n and closes it by repeating the first
// vertex. Longitudes are divided by cos(lat) to undo the meridian scaling.
func (c *Circle) ring(radius float64) []geometry.Point2D {
	n := c.Segments
	if n <= 0 {
		n = DefaultCircleSegments
	}
	points := make([]geometry.Point2D, n+1)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		points[i] = geometry.Point2D{
			X: c.anchor.X + radius*math.Cos(angle)/c.cosLat,
			Y: c.anchor.Y + radius*math.Sin(angle),
		}
	}
	points[n] = points[0]
	return points
}
