// Package shape provides the drawing-gesture shape builders. A builder is fed
// a fixed anchor point and a stream of pointer positions in geographic
// coordinates and produces a live polygon.
package shape

import "maquette/pkg/geometry"

// Mode selects which builder is active.
type Mode int

const (
	// ModeRectangle draws an axis-aligned box between anchor and cursor.
	ModeRectangle Mode = iota
	// ModeCircle draws a circle around the anchor, round in meters.
	ModeCircle
	// ModeFreehand records the literal pointer path.
	ModeFreehand
)

func (m Mode) String() string {
	switch m {
	case ModeRectangle:
		return "Rectangle"
	case ModeCircle:
		return "Circle"
	case ModeFreehand:
		return "Freehand"
	default:
		return "Unknown"
	}
}

// Builder turns a pointer gesture into a polygon. Begin fixes the anchor,
// Update returns the provisional polygon for the current pointer position,
// and Finish returns the final polygon or nil when the gesture is degenerate.
// Builders perform no minimum-size checks; the interaction controller rejects
// commits whose extent is below threshold.
type Builder interface {
	Begin(anchor geometry.Point2D)
	Update(current geometry.Point2D) []geometry.Point2D
	Finish(current geometry.Point2D) []geometry.Point2D
}

// New returns a fresh builder for the given mode.
func New(mode Mode) Builder {
	switch mode {
	case ModeCircle:
		return &Circle{Segments: DefaultCircleSegments}
	case ModeFreehand:
		return &Freehand{}
	default:
		return &Rectangle{}
	}
}
