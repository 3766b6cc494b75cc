// Package geometry provides basic geometric types used throughout the application.
//
// Point2D carries no unit of its own: depending on context a point is in pixel
// space, normalized [0,1] mask space, or geographic space with X=longitude and
// Y=latitude in decimal degrees. Callers must not mix spaces.
package geometry

import "math"

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Sub returns the difference of two points.
func (p Point2D) Sub(other Point2D) Point2D {
	return Point2D{X: p.X - other.X, Y: p.Y - other.Y}
}

// BBox is an axis-aligned bounding box in geographic coordinates
// (decimal degrees, WGS84). Field names follow the backend schema.
type BBox struct {
	MinLon float64 `json:"min_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLon float64 `json:"max_lon"`
	MaxLat float64 `json:"max_lat"`
}

// BBoxOf computes the bounding box of a set of points (X=lon, Y=lat).
// Returns false when the set is empty.
func BBoxOf(points []Point2D) (BBox, bool) {
	if len(points) == 0 {
		return BBox{}, false
	}
	b := BBox{
		MinLon: points[0].X, MaxLon: points[0].X,
		MinLat: points[0].Y, MaxLat: points[0].Y,
	}
	for _, p := range points[1:] {
		if p.X < b.MinLon {
			b.MinLon = p.X
		}
		if p.X > b.MaxLon {
			b.MaxLon = p.X
		}
		if p.Y < b.MinLat {
			b.MinLat = p.Y
		}
		if p.Y > b.MaxLat {
			b.MaxLat = p.Y
		}
	}
	return b, true
}

// Width returns the longitude span.
func (b BBox) Width() float64 {
	return b.MaxLon - b.MinLon
}

// Height returns the latitude span.
func (b BBox) Height() float64 {
	return b.MaxLat - b.MinLat
}

// Center returns the center point of the box.
func (b BBox) Center() Point2D {
	return Point2D{X: (b.MinLon + b.MaxLon) / 2, Y: (b.MinLat + b.MaxLat) / 2}
}

// Contains returns true if the point is inside or on the box.
func (b BBox) Contains(p Point2D) bool {
	return p.X >= b.MinLon && p.X <= b.MaxLon &&
		p.Y >= b.MinLat && p.Y <= b.MaxLat
}

// Pad returns the box expanded by a fraction of its own size on every edge.
// A fraction of 0.1 grows a 1°×1° box to 1.2°×1.2°.
func (b BBox) Pad(fraction float64) BBox {
	dx := b.Width() * fraction
	dy := b.Height() * fraction
	return BBox{
		MinLon: b.MinLon - dx,
		MinLat: b.MinLat - dy,
		MaxLon: b.MaxLon + dx,
		MaxLat: b.MaxLat + dy,
	}
}

// Ring converts the box to a closed 5-vertex polygon, counter-clockwise
// starting at the south-west corner.
func (b BBox) Ring() []Point2D {
	return []Point2D{
		{X: b.MinLon, Y: b.MinLat},
		{X: b.MaxLon, Y: b.MinLat},
		{X: b.MaxLon, Y: b.MaxLat},
		{X: b.MinLon, Y: b.MaxLat},
		{X: b.MinLon, Y: b.MinLat},
	}
}
