// Package mapview provides the map viewport widget. It converts pointer
// positions to geographic coordinates for the selection controller, renders
// the committed and provisional geometry, and implements the fit-to-bounds
// operation requested on commit.
//
// The viewport itself is a local equirectangular projection around its
// center; tile rendering is out of scope, a graticule stands in for the
// base map.
package mapview

import (
	"image"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"maquette/internal/selection"
	"maquette/pkg/geometry"
)

const (
	minDegPerPx  = 1e-7
	maxDegPerPx  = 1.0
	zoomStep     = 1.25
	defaultLon   = 7.45  // Bern
	defaultLat   = 46.95 //
	defaultScale = 0.0005
)

var (
	colorBackground  = color.NRGBA{R: 0xf2, G: 0xef, B: 0xe9, A: 0xff}
	colorGraticule   = color.NRGBA{R: 0xc8, G: 0xc4, B: 0xbc, A: 0xff}
	colorCommitted   = color.NRGBA{R: 0xd0, G: 0x33, B: 0x2b, A: 0xff}
	colorProvisional = color.NRGBA{R: 0x2b, G: 0x5f, B: 0xd0, A: 0xff}
)

// MapView is the interactive map widget. Pointer events are forwarded to the
// controller in geographic coordinates; an unmodified drag pans the view,
// a shift-drag draws.
type MapView struct {
	widget.BaseWidget

	controller *selection.Controller

	// Viewport: geographic center and latitude degrees per pixel. Longitude
	// scale follows cos(centerLat) so the view is locally square in meters.
	centerLon, centerLat float64
	degPerPx             float64

	raster      *fynecanvas.Raster
	provisional []geometry.Point2D
	drawing     bool

	// OnTapped receives plain clicks in geographic coordinates (used for
	// mask placement).
	OnTapped func(geometry.Point2D)
	// OnPointer receives every pointer position for the coordinate readout.
	OnPointer func(geometry.Point2D)
}

// New creates a map view bound to a selection controller.
func New(controller *selection.Controller) *MapView {
	mv := &MapView{
		controller: controller,
		centerLon:  defaultLon,
		centerLat:  defaultLat,
		degPerPx:   defaultScale,
	}
	mv.raster = fynecanvas.NewRaster(mv.draw)
	mv.ExtendBaseWidget(mv)
	return mv
}

// CreateRenderer implements fyne.Widget.
func (mv *MapView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(mv.raster)
}

// FitBounds recenters and rescales the viewport so the padded box fills it.
// Implements the controller's MapView interface.
func (mv *MapView) FitBounds(b geometry.BBox, padding float64) {
	b = b.Pad(padding)
	c := b.Center()
	mv.centerLon, mv.centerLat = c.X, c.Y

	size := mv.Size()
	if size.Width <= 0 || size.Height <= 0 {
		mv.Refresh()
		return
	}
	cosLat := mv.cosLat()
	perH := b.Height() / float64(size.Height)
	perW := b.Width() * cosLat / float64(size.Width)
	mv.degPerPx = clampScale(math.Max(perH, perW))
	mv.Refresh()
}

// Center returns the viewport center.
func (mv *MapView) Center() geometry.Point2D {
	return geometry.Point2D{X: mv.centerLon, Y: mv.centerLat}
}

// MouseDown starts a drawing gesture when the shift modifier is held;
// otherwise the press begins a pan. Implements desktop.Mouseable.
func (mv *MapView) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	shift := ev.Modifier&fyne.KeyModifierShift != 0
	mv.drawing = mv.controller.PointerDown(mv.toGeo(ev.Position), shift)
}

// MouseUp finishes an in-progress gesture. Implements desktop.Mouseable.
func (mv *MapView) MouseUp(ev *desktop.MouseEvent) {
	if !mv.drawing {
		return
	}
	mv.drawing = false
	mv.controller.PointerUp(mv.toGeo(ev.Position))
	mv.provisional = nil
	mv.Refresh()
}

// MouseIn implements desktop.Hoverable.
func (mv *MapView) MouseIn(*desktop.MouseEvent) {}

// MouseMoved implements desktop.Hoverable, feeding the coordinate readout.
func (mv *MapView) MouseMoved(ev *desktop.MouseEvent) {
	if mv.OnPointer != nil {
		mv.OnPointer(mv.toGeo(ev.Position))
	}
}

// MouseOut implements desktop.Hoverable.
func (mv *MapView) MouseOut() {}

// Dragged feeds a drawing gesture or pans the viewport. Implements
// fyne.Draggable; the map's native pan is suspended while drawing.
func (mv *MapView) Dragged(ev *fyne.DragEvent) {
	if mv.drawing {
		mv.provisional = mv.controller.PointerMove(mv.toGeo(ev.Position))
		mv.Refresh()
		return
	}
	cosLat := mv.cosLat()
	mv.centerLon -= float64(ev.Dragged.DX) * mv.degPerPx / cosLat
	mv.centerLat += float64(ev.Dragged.DY) * mv.degPerPx
	mv.Refresh()
}

// DragEnd implements fyne.Draggable. Gesture completion happens in MouseUp,
// which carries the release position.
func (mv *MapView) DragEnd() {}

// Tapped forwards plain clicks for mask placement.
func (mv *MapView) Tapped(ev *fyne.PointEvent) {
	if mv.OnTapped != nil {
		mv.OnTapped(mv.toGeo(ev.Position))
	}
}

// Scrolled zooms around the viewport center.
func (mv *MapView) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		mv.degPerPx = clampScale(mv.degPerPx / zoomStep)
	} else if ev.Scrolled.DY < 0 {
		mv.degPerPx = clampScale(mv.degPerPx * zoomStep)
	}
	mv.Refresh()
}

func clampScale(s float64) float64 {
	return math.Min(maxDegPerPx, math.Max(minDegPerPx, s))
}

func (mv *MapView) cosLat() float64 {
	c := math.Cos(mv.centerLat * math.Pi / 180)
	if math.Abs(c) < 1e-9 {
		return 1e-9
	}
	return c
}

// toGeo converts a widget-local position to geographic coordinates.
func (mv *MapView) toGeo(pos fyne.Position) geometry.Point2D {
	size := mv.Size()
	dx := float64(pos.X) - float64(size.Width)/2
	dy := float64(pos.Y) - float64(size.Height)/2
	return geometry.Point2D{
		X: mv.centerLon + dx*mv.degPerPx/mv.cosLat(),
		Y: mv.centerLat - dy*mv.degPerPx,
	}
}

// toPixel converts geographic coordinates to raster pixel coordinates.
func (mv *MapView) toPixel(p geometry.Point2D, w, h int) (int, int) {
	x := (p.X-mv.centerLon)*mv.cosLat()/mv.degPerPx + float64(w)/2
	y := (mv.centerLat-p.Y)/mv.degPerPx + float64(h)/2
	return int(math.Round(x)), int(math.Round(y))
}

// draw renders the viewport raster: graticule, committed geometry, then the
// provisional gesture on top.
func (mv *MapView) draw(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillRect(img, colorBackground)

	mv.drawGraticule(img, w, h)

	if sel := mv.controller.Selection(); sel != nil {
		mv.drawRing(img, sel.BBox.Ring(), colorCommitted, w, h)
		if sel.Polygon != nil {
			mv.drawRing(img, sel.Polygon, colorCommitted, w, h)
		}
	}
	if len(mv.provisional) >= 2 {
		mv.drawRing(img, mv.provisional, colorProvisional, w, h)
	}
	return img
}

func fillRect(img *image.RGBA, c color.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
}

// drawGraticule draws meridians and parallels at a step that keeps roughly
// 50–100 px between lines at the current scale.
func (mv *MapView) drawGraticule(img *image.RGBA, w, h int) {
	step := niceStep(mv.degPerPx * 80)
	c := color.RGBA{R: colorGraticule.R, G: colorGraticule.G, B: colorGraticule.B, A: 0xff}

	minGeo := mv.toGeo(fyne.Position{X: 0, Y: float32(h)})
	maxGeo := mv.toGeo(fyne.Position{X: float32(w), Y: 0})

	for lon := math.Floor(minGeo.X/step) * step; lon <= maxGeo.X; lon += step {
		x, _ := mv.toPixel(geometry.Point2D{X: lon, Y: mv.centerLat}, w, h)
		if x >= 0 && x < w {
			for y := 0; y < h; y++ {
				img.SetRGBA(x, y, c)
			}
		}
	}
	for lat := math.Floor(minGeo.Y/step) * step; lat <= maxGeo.Y; lat += step {
		_, y := mv.toPixel(geometry.Point2D{X: mv.centerLon, Y: lat}, w, h)
		if y >= 0 && y < h {
			for x := 0; x < w; x++ {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

// niceStep rounds target up to a 1/2/5×10ⁿ degree step.
func niceStep(target float64) float64 {
	if target <= 0 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(target)))
	for _, m := range []float64{1, 2, 5} {
		if m*mag >= target {
			return m * mag
		}
	}
	return 10 * mag
}

// drawRing draws a polygon outline, connecting the last vertex back to the
// first when the ring is open.
func (mv *MapView) drawRing(img *image.RGBA, ring []geometry.Point2D, c color.NRGBA, w, h int) {
	if len(ring) < 2 {
		return
	}
	rgba := color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
	n := len(ring)
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		x0, y0 := mv.toPixel(a, w, h)
		x1, y1 := mv.toPixel(b, w, h)
		drawLine(img, x0, y0, x1, y1, rgba)
	}
}

// drawLine draws a 1px line with the integer Bresenham walk.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	b := img.Bounds()
	for {
		if x0 >= b.Min.X && x0 < b.Max.X && y0 >= b.Min.Y && y0 < b.Max.Y {
			img.SetRGBA(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
