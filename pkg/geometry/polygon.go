package geometry

import "math"

// IsClosed returns true if the polygon's first and last vertices coincide.
func IsClosed(points []Point2D) bool {
	if len(points) < 2 {
		return false
	}
	return points[0] == points[len(points)-1]
}

// CloseRing appends the first vertex at the end unless the ring is already
// closed. The input slice is not modified.
func CloseRing(points []Point2D) []Point2D {
	if len(points) == 0 || IsClosed(points) {
		return points
	}
	out := make([]Point2D, len(points), len(points)+1)
	copy(out, points)
	return append(out, points[0])
}

// DistinctCount returns the number of distinct vertices in the sequence.
func DistinctCount(points []Point2D) int {
	seen := make(map[Point2D]struct{}, len(points))
	for _, p := range points {
		seen[p] = struct{}{}
	}
	return len(seen)
}

// PerpendicularDistance returns the distance from p to the infinite line
// through a and b. When a == b it degrades to the point distance.
func PerpendicularDistance(p, a, b Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	mag := math.Sqrt(dx*dx + dy*dy)
	if mag == 0 {
		return p.Distance(a)
	}
	return math.Abs(dy*p.X-dx*p.Y+b.X*a.Y-b.Y*a.X) / mag
}

// Simplify reduces a polyline with the Douglas-Peucker algorithm: points
// within tolerance of the chord between segment endpoints are discarded.
// Implemented iteratively with an explicit index-range stack so pathological
// contours with thousands of vertices cannot exhaust the call stack.
// Endpoints are always kept. Running Simplify on its own output with the
// same tolerance is a no-op.
func Simplify(points []Point2D, tolerance float64) []Point2D {
	if len(points) <= 2 {
		return points
	}

	keep := make([]bool, len(points))
	keep[0] = true
	keep[len(points)-1] = true

	type span struct{ first, last int }
	stack := []span{{0, len(points) - 1}}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		maxDist := 0.0
		maxIdx := -1
		for i := s.first + 1; i < s.last; i++ {
			d := PerpendicularDistance(points[i], points[s.first], points[s.last])
			if d > maxDist {
				maxDist = d
				maxIdx = i
			}
		}

		if maxIdx >= 0 && maxDist > tolerance {
			keep[maxIdx] = true
			stack = append(stack, span{s.first, maxIdx}, span{maxIdx, s.last})
		}
	}

	out := make([]Point2D, 0, len(points))
	for i, k := range keep {
		if k {
			out = append(out, points[i])
		}
	}
	return out
}

// PointInPolygon tests if a point is inside a polygon using ray casting.
// The polygon may be open or closed.
func PointInPolygon(p Point2D, polygon []Point2D) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	n := len(polygon)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pi, pj := polygon[i], polygon[j]
		if ((pi.Y > p.Y) != (pj.Y > p.Y)) &&
			(p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X) {
			inside = !inside
		}
	}
	return inside
}
