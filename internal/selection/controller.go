package selection

import (
	"log/slog"

	"maquette/internal/geo"
	"maquette/internal/mask"
	"maquette/internal/shape"
	"maquette/pkg/geometry"
)

// DefaultMinExtentDeg rejects commits whose bbox spans less than this on
// either axis, filtering out accidental shift-clicks. Tuned empirically;
// override through Options when the map's zoom range calls for it.
const DefaultMinExtentDeg = 0.0005

// FitPadding is the fractional bbox padding requested when fitting the view
// to a fresh commit.
const FitPadding = 0.15

// MapView is the viewport collaborator: it hands the controller pointer
// positions already converted to geographic coordinates and can fit itself
// to a bounding box.
type MapView interface {
	FitBounds(b geometry.BBox, padding float64)
}

// Options configures the controller.
type Options struct {
	MinExtentDeg   float64 // Minimum commit extent per axis, in degrees
	CircleSegments int     // Vertex count for circle gestures
}

// DefaultOptions returns the tuned defaults.
func DefaultOptions() Options {
	return Options{
		MinExtentDeg:   DefaultMinExtentDeg,
		CircleSegments: shape.DefaultCircleSegments,
	}
}

// gesture is the Drawing half of the controller's tagged state. A nil
// gesture means Idle; invalid mode/anchor combinations cannot be expressed.
type gesture struct {
	mode    shape.Mode
	builder shape.Builder
}

// Controller is the modal drawing state machine. It owns the active draw
// mode, gates gestures on a modifier key, feeds pointer events to the active
// shape builder, and commits the results.
//
// The engine is event-driven and single-threaded by contract: pointer events
// and mask placements are serialized by the caller, so the controller takes
// no locks.
type Controller struct {
	opts      Options
	mode      shape.Mode
	active    *gesture
	committed *Selection
	view      MapView
	projector geo.Projector

	// OnCommit fires after every selection change, including clears, with
	// the new selection (nil when cleared).
	OnCommit func(*Selection)
}

// NewController creates an idle controller in rectangle mode.
func NewController(view MapView, opts Options) *Controller {
	if opts.MinExtentDeg <= 0 {
		opts.MinExtentDeg = DefaultMinExtentDeg
	}
	if opts.CircleSegments <= 0 {
		opts.CircleSegments = shape.DefaultCircleSegments
	}
	return &Controller{opts: opts, view: view}
}

// SetView attaches the viewport collaborator. Needed because the view and
// the controller reference each other; a nil view simply skips fitting.
func (c *Controller) SetView(v MapView) {
	c.view = v
}

// Mode returns the active draw mode.
func (c *Controller) Mode() shape.Mode {
	return c.mode
}

// Drawing reports whether a gesture is in progress.
func (c *Controller) Drawing() bool {
	return c.active != nil
}

// Selection returns the committed selection, or nil.
func (c *Controller) Selection() *Selection {
	return c.committed
}

// SetMode switches the active draw mode. Honored only while idle; a switch
// attempted mid-gesture is silently ignored.
func (c *Controller) SetMode(m shape.Mode) {
	if c.active != nil {
		return
	}
	c.mode = m
}

// PointerDown starts a gesture when the modifier key is held. Returns true
// when the gesture engages, which tells the view to suspend its native pan
// behavior for the duration. A pointer-down while already drawing is a no-op
// reported as engaged so the gesture keeps the pointer.
func (c *Controller) PointerDown(p geometry.Point2D, modifier bool) bool {
	if c.active != nil {
		return true
	}
	if !modifier {
		return false
	}

	b := c.newBuilder()
	b.Begin(p)
	c.active = &gesture{mode: c.mode, builder: b}
	slog.Debug("gesture started", "mode", c.mode.String(), "lon", p.X, "lat", p.Y)
	return true
}

// PointerMove feeds the builder and returns the provisional polygon for live
// rendering, or nil while idle. Nothing is committed.
func (c *Controller) PointerMove(p geometry.Point2D) []geometry.Point2D {
	if c.active == nil {
		return nil
	}
	return c.active.builder.Update(p)
}

// PointerUp finishes the gesture. A non-degenerate polygon whose bbox
// exceeds the minimum extent on both axes replaces the committed selection
// and the view is fit to it; anything else is discarded and the previous
// selection stands.
func (c *Controller) PointerUp(p geometry.Point2D) {
	if c.active == nil {
		return
	}
	g := c.active
	c.active = nil

	polygon := g.builder.Finish(p)
	if polygon == nil {
		slog.Debug("gesture discarded: degenerate", "mode", g.mode.String())
		return
	}
	bbox, ok := geometry.BBoxOf(polygon)
	if !ok || bbox.Width() < c.opts.MinExtentDeg || bbox.Height() < c.opts.MinExtentDeg {
		slog.Debug("gesture discarded: below minimum extent",
			"mode", g.mode.String(), "width", bbox.Width(), "height", bbox.Height())
		return
	}

	sel := &Selection{BBox: bbox}
	if g.mode != shape.ModeRectangle {
		sel.Polygon = polygon
	}
	c.commit(sel)
}

// PlaceMask projects an extracted mask shape at the given center with the
// requested physical width in meters and commits the result, bypassing the
// pointer gesture entirely. Returns false when projection fails; the prior
// selection is left untouched.
func (c *Controller) PlaceMask(s *mask.Shape, center geometry.Point2D, widthMeters float64) bool {
	polygon, bbox, ok := c.projector.Project(s, center, widthMeters)
	if !ok {
		return false
	}
	c.commit(&Selection{BBox: bbox, Polygon: polygon})
	return true
}

// Clear resets the committed selection regardless of state and forces idle.
func (c *Controller) Clear() {
	c.active = nil
	c.committed = nil
	if c.OnCommit != nil {
		c.OnCommit(nil)
	}
}

func (c *Controller) commit(sel *Selection) {
	c.committed = sel
	if c.view != nil {
		c.view.FitBounds(sel.BBox, FitPadding)
	}
	if c.OnCommit != nil {
		c.OnCommit(sel)
	}
	slog.Info("selection committed",
		"bbox", sel.BBox, "polygon_vertices", len(sel.Polygon))
}

func (c *Controller) newBuilder() shape.Builder {
	if c.mode == shape.ModeCircle {
		return &shape.Circle{Segments: c.opts.CircleSegments}
	}
	return shape.New(c.mode)
}
