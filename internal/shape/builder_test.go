package shape

import (
	"math"
	"testing"

	"maquette/pkg/geometry"
)

func TestRectangleRing(t *testing.T) {
	anchor := geometry.Point2D{X: 7.5, Y: 46.8}
	release := geometry.Point2D{X: 7.1, Y: 46.2}

	r := &Rectangle{}
	r.Begin(anchor)
	ring := r.Finish(release)
	if ring == nil {
		t.Fatal("Finish returned nil for a valid rectangle")
	}
	if len(ring) != 5 || ring[0] != ring[4] {
		t.Fatalf("expected closed 5-point ring, got %v", ring)
	}

	b, _ := geometry.BBoxOf(ring)
	if b.MinLon != math.Min(anchor.X, release.X) || b.MaxLon != math.Max(anchor.X, release.X) {
		t.Fatalf("lon extent wrong: %+v", b)
	}
	if b.MinLat != math.Min(anchor.Y, release.Y) || b.MaxLat != math.Max(anchor.Y, release.Y) {
		t.Fatalf("lat extent wrong: %+v", b)
	}
}

func TestRectangleZeroExtent(t *testing.T) {
	r := &Rectangle{}
	anchor := geometry.Point2D{X: 7.0, Y: 46.0}
	r.Begin(anchor)
	if got := r.Finish(anchor); got != nil {
		t.Fatalf("zero-extent rectangle should be degenerate, got %v", got)
	}
	if got := r.Finish(geometry.Point2D{X: 7.0, Y: 46.5}); got != nil {
		t.Fatalf("zero-width rectangle should be degenerate, got %v", got)
	}
}

func TestCircleVerticesEquidistant(t *testing.T) {
	anchor := geometry.Point2D{X: 7.0, Y: 46.0}
	cursor := geometry.Point2D{X: 7.01, Y: 46.004}

	c := &Circle{Segments: DefaultCircleSegments}
	c.Begin(anchor)
	ring := c.Finish(cursor)
	if ring == nil {
		t.Fatal("Finish returned nil for a valid circle")
	}
	if len(ring) != DefaultCircleSegments+1 {
		t.Fatalf("ring has %d vertices, want %d", len(ring), DefaultCircleSegments+1)
	}
	if ring[0] != ring[len(ring)-1] {
		t.Fatal("circle ring not closed")
	}

	cosLat := math.Cos(anchor.Y * math.Pi / 180)
	want := math.Hypot((cursor.X-anchor.X)*cosLat, cursor.Y-anchor.Y)
	for i, v := range ring[:len(ring)-1] {
		got := math.Hypot((v.X-anchor.X)*cosLat, v.Y-anchor.Y)
		if math.Abs(got-want) > 1e-12 {
			t.Fatalf("vertex %d at distance %v, want %v", i, got, want)
		}
	}
}

func TestCircleDegenerateRadius(t *testing.T) {
	c := &Circle{}
	anchor := geometry.Point2D{X: 7.0, Y: 46.0}
	c.Begin(anchor)
	if got := c.Finish(anchor); got != nil {
		t.Fatalf("zero-radius circle should be degenerate, got %v", got)
	}
}

func TestFreehandClosesToAnchor(t *testing.T) {
	f := &Freehand{}
	anchor := geometry.Point2D{X: 7.0, Y: 46.0}
	f.Begin(anchor)
	f.Update(geometry.Point2D{X: 7.1, Y: 46.0})
	f.Update(geometry.Point2D{X: 7.1, Y: 46.1})
	ring := f.Finish(geometry.Point2D{X: 7.0, Y: 46.1})
	if ring == nil {
		t.Fatal("Finish returned nil for a valid freehand path")
	}
	if ring[len(ring)-1] != anchor {
		t.Fatalf("ring not closed to anchor: last=%v", ring[len(ring)-1])
	}
	if len(ring) != 5 {
		t.Fatalf("expected 5 vertices (4 samples + closing anchor), got %d", len(ring))
	}
}

func TestFreehandTooFewPoints(t *testing.T) {
	f := &Freehand{}
	anchor := geometry.Point2D{X: 7.0, Y: 46.0}
	f.Begin(anchor)
	// Only two distinct positions ever seen.
	if got := f.Finish(geometry.Point2D{X: 7.1, Y: 46.0}); got != nil {
		t.Fatalf("2-point freehand should be degenerate, got %v", got)
	}
}

func TestNewPicksBuilder(t *testing.T) {
	cases := []struct {
		mode Mode
		want string
	}{
		{ModeRectangle, "Rectangle"},
		{ModeCircle, "Circle"},
		{ModeFreehand, "Freehand"},
	}
	for _, tc := range cases {
		if New(tc.mode) == nil {
			t.Fatalf("New(%v) returned nil", tc.mode)
		}
		if tc.mode.String() != tc.want {
			t.Fatalf("Mode.String() = %q, want %q", tc.mode.String(), tc.want)
		}
	}
}
