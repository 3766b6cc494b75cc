// Package selection owns the committed area selection and the modal drawing
// state machine that produces it from pointer gestures and mask placements.
package selection

import "maquette/pkg/geometry"

// Selection is the single committed output of the engine: a bounding box and,
// for circle, freehand and mask selections, the exact polygon. A rectangle
// selection carries no polygon because the bbox is itself exact. Selections
// are replaced wholesale on commit, upload or clear, never mutated in place.
type Selection struct {
	BBox    geometry.BBox
	Polygon []geometry.Point2D // nil for rectangle selections
}

// Contains reports whether a geographic point falls inside the selection,
// using the polygon when present and the bbox otherwise.
func (s *Selection) Contains(p geometry.Point2D) bool {
	if s == nil {
		return false
	}
	if s.Polygon != nil {
		return geometry.PointInPolygon(p, s.Polygon)
	}
	return s.BBox.Contains(p)
}

// ClipPolygon returns the selection outline as [[lon,lat],...] pairs for the
// generation request, or nil for rectangle selections where the bbox alone
// describes the footprint.
func (s *Selection) ClipPolygon() [][]float64 {
	if s == nil || s.Polygon == nil {
		return nil
	}
	out := make([][]float64, len(s.Polygon))
	for i, p := range s.Polygon {
		out[i] = []float64{p.X, p.Y}
	}
	return out
}
