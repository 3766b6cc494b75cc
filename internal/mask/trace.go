package mask

import "maquette/pkg/geometry"

// moore is the 8-neighborhood in clockwise order starting east (image
// coordinates, y grows downward).
var moore = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// traceBoundary walks the outer contour of the first foreground region found
// in raster-scan order using Moore-neighbor tracing. Each step searches the
// 8 neighbors clockwise starting just past the reverse of the direction the
// walk entered the current pixel, so the walk hugs the region's outside.
// The walk ends when it returns to the start pixel, or after 2·w·h steps as
// a safety bound against pathological masks. Returns the contour in pixel
// coordinates, or a short slice when no region exists.
func traceBoundary(m *pixelMask) []geometry.Point2D {
	sx, sy := -1, -1
scan:
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if m.at(x, y) {
				sx, sy = x, y
				break scan
			}
		}
	}
	if sx < 0 {
		return nil
	}

	contour := []geometry.Point2D{{X: float64(sx), Y: float64(sy)}}

	// The start pixel is the first in raster order, so its west neighbor is
	// background; treat the walk as having entered it moving east.
	cx, cy := sx, sy
	dir := 0
	maxSteps := 2 * m.w * m.h

	for step := 0; step < maxSteps; step++ {
		found := false
		// Just past the reverse of the entry direction.
		start := (dir + 5) % 8
		for i := 0; i < 8; i++ {
			d := (start + i) % 8
			nx := cx + moore[d][0]
			ny := cy + moore[d][1]
			if m.at(nx, ny) {
				cx, cy = nx, ny
				dir = d
				found = true
				break
			}
		}
		if !found {
			// Isolated pixel: no neighbors, contour is the single point.
			break
		}
		if cx == sx && cy == sy {
			break
		}
		contour = append(contour, geometry.Point2D{X: float64(cx), Y: float64(cy)})
	}

	return contour
}
