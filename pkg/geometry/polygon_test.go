package geometry

import (
	"math"
	"testing"
)

func TestBBoxOf(t *testing.T) {
	pts := []Point2D{{X: 7.2, Y: 46.5}, {X: 6.8, Y: 46.9}, {X: 7.0, Y: 46.1}}
	b, ok := BBoxOf(pts)
	if !ok {
		t.Fatal("BBoxOf returned not ok for non-empty input")
	}
	want := BBox{MinLon: 6.8, MinLat: 46.1, MaxLon: 7.2, MaxLat: 46.9}
	if b != want {
		t.Fatalf("BBoxOf = %+v, want %+v", b, want)
	}
	if b.MinLon > b.MaxLon || b.MinLat > b.MaxLat {
		t.Fatalf("bbox invariant violated: %+v", b)
	}

	if _, ok := BBoxOf(nil); ok {
		t.Fatal("BBoxOf(nil) should return not ok")
	}
}

func TestBBoxRingClosed(t *testing.T) {
	b := BBox{MinLon: 1, MinLat: 2, MaxLon: 3, MaxLat: 4}
	ring := b.Ring()
	if len(ring) != 5 {
		t.Fatalf("Ring has %d vertices, want 5", len(ring))
	}
	if ring[0] != ring[4] {
		t.Fatalf("Ring not closed: first=%v last=%v", ring[0], ring[4])
	}
}

func TestCloseRing(t *testing.T) {
	open := []Point2D{{0, 0}, {1, 0}, {1, 1}}
	closed := CloseRing(open)
	if len(closed) != 4 || closed[3] != open[0] {
		t.Fatalf("CloseRing failed: %v", closed)
	}
	// Already closed input is returned unchanged.
	again := CloseRing(closed)
	if len(again) != len(closed) {
		t.Fatalf("CloseRing on closed ring grew to %d points", len(again))
	}
	// Input slice untouched.
	if len(open) != 3 {
		t.Fatalf("CloseRing modified its input: %v", open)
	}
}

func TestDistinctCount(t *testing.T) {
	pts := []Point2D{{0, 0}, {1, 1}, {0, 0}, {1, 1}, {2, 2}}
	if got := DistinctCount(pts); got != 3 {
		t.Fatalf("DistinctCount = %d, want 3", got)
	}
}

func TestSimplifyDropsCollinear(t *testing.T) {
	// Points along a straight line with tiny noise below tolerance.
	var pts []Point2D
	for i := 0; i <= 10; i++ {
		pts = append(pts, Point2D{X: float64(i), Y: 0.01 * float64(i%2)})
	}
	got := Simplify(pts, 0.5)
	if len(got) != 2 {
		t.Fatalf("Simplify kept %d points, want 2 (endpoints)", len(got))
	}
	if got[0] != pts[0] || got[1] != pts[len(pts)-1] {
		t.Fatalf("Simplify lost endpoints: %v", got)
	}
}

func TestSimplifyKeepsCorners(t *testing.T) {
	pts := []Point2D{{0, 0}, {5, 0}, {10, 0}, {10, 5}, {10, 10}, {5, 10}, {0, 10}}
	got := Simplify(pts, 0.8)
	want := []Point2D{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if len(got) != len(want) {
		t.Fatalf("Simplify = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Simplify[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSimplifyIdempotent(t *testing.T) {
	pts := []Point2D{
		{0, 0}, {1, 0.3}, {2, -0.2}, {3, 2}, {4, 2.1}, {5, 0}, {6, -1}, {7, 0.4},
	}
	const tol = 0.5
	once := Simplify(pts, tol)
	twice := Simplify(once, tol)
	if len(once) != len(twice) {
		t.Fatalf("not idempotent: %d then %d points", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("not idempotent at %d: %v vs %v", i, once[i], twice[i])
		}
	}
}

func TestPerpendicularDistance(t *testing.T) {
	d := PerpendicularDistance(Point2D{5, 3}, Point2D{0, 0}, Point2D{10, 0})
	if math.Abs(d-3) > 1e-12 {
		t.Fatalf("PerpendicularDistance = %v, want 3", d)
	}
	// Degenerate chord falls back to point distance.
	d = PerpendicularDistance(Point2D{3, 4}, Point2D{0, 0}, Point2D{0, 0})
	if math.Abs(d-5) > 1e-12 {
		t.Fatalf("degenerate PerpendicularDistance = %v, want 5", d)
	}
}

func TestPointInPolygon(t *testing.T) {
	square := []Point2D{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if !PointInPolygon(Point2D{5, 5}, square) {
		t.Fatal("center should be inside")
	}
	if PointInPolygon(Point2D{15, 5}, square) {
		t.Fatal("outside point reported inside")
	}
	if PointInPolygon(Point2D{5, 5}, square[:2]) {
		t.Fatal("degenerate polygon should contain nothing")
	}
}
