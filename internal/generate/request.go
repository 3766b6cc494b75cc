// Package generate builds and submits model-generation jobs to the backend
// service that turns a committed footprint into a printable terrain model.
package generate

import (
	"fmt"

	"maquette/internal/selection"
	"maquette/pkg/geometry"
)

// Resolution is the terrain grid resolution in meters.
type Resolution string

const (
	ResolutionHalfMeter Resolution = "0.5"
	ResolutionTwoMeter  Resolution = "2"
	ResolutionTenMeter  Resolution = "10"
)

// MaxAreaKm2 is the backend's hard limit on footprint area; larger
// selections are rejected server-side, so the UI warns before submitting.
const MaxAreaKm2 = 100.0

// Request is the job-submission payload. Field names and bounds mirror the
// backend schema.
type Request struct {
	BBox             geometry.BBox `json:"bbox"`
	Resolution       Resolution    `json:"resolution"`
	ZExaggeration    float64       `json:"z_exaggeration"`
	BaseHeight       float64       `json:"base_height"`
	IncludeBuildings bool          `json:"include_buildings"`
	IncludeRoads     bool          `json:"include_roads"`
	ModelWidthMM     float64       `json:"model_width_mm"`
	GridSplit        int           `json:"grid_split"`
	// ClipPolygon is the [[lon,lat],...] outline for circle/freehand/mask
	// selections; omitted for rectangles where the bbox is exact.
	ClipPolygon [][]float64 `json:"clip_polygon,omitempty"`
}

// NewRequest builds a request with backend defaults from a committed
// selection.
func NewRequest(sel *selection.Selection) Request {
	var r Request
	if sel != nil {
		r.BBox = sel.BBox
		r.ClipPolygon = sel.ClipPolygon()
	}
	r.Resolution = ResolutionTwoMeter
	r.ZExaggeration = 1.0
	r.BaseHeight = 2.0
	r.IncludeBuildings = true
	r.IncludeRoads = true
	r.ModelWidthMM = 150.0
	r.GridSplit = 1
	return r
}

// Validate enforces the backend's field bounds so a bad request fails fast
// on the client.
func (r Request) Validate() error {
	if r.BBox.MinLon >= r.BBox.MaxLon || r.BBox.MinLat >= r.BBox.MaxLat {
		return fmt.Errorf("generate: empty bounding box %+v", r.BBox)
	}
	switch r.Resolution {
	case ResolutionHalfMeter, ResolutionTwoMeter, ResolutionTenMeter:
	default:
		return fmt.Errorf("generate: unknown resolution %q", r.Resolution)
	}
	if r.ZExaggeration < 0.5 || r.ZExaggeration > 5.0 {
		return fmt.Errorf("generate: z_exaggeration %v outside [0.5, 5]", r.ZExaggeration)
	}
	if r.BaseHeight < 0.5 || r.BaseHeight > 20.0 {
		return fmt.Errorf("generate: base_height %v outside [0.5, 20] mm", r.BaseHeight)
	}
	if r.ModelWidthMM < 50.0 || r.ModelWidthMM > 500.0 {
		return fmt.Errorf("generate: model_width_mm %v outside [50, 500]", r.ModelWidthMM)
	}
	if r.GridSplit < 1 || r.GridSplit > 4 {
		return fmt.Errorf("generate: grid_split %d outside [1, 4]", r.GridSplit)
	}
	return nil
}

// Status is the lifecycle state of a generation job.
type Status string

const (
	StatusPending              Status = "pending"
	StatusDownloadingTerrain   Status = "downloading_terrain"
	StatusDownloadingBuildings Status = "downloading_buildings"
	StatusDownloadingRoads     Status = "downloading_roads"
	StatusProcessing           Status = "processing"
	StatusGeneratingSTL        Status = "generating_stl"
	StatusCompleted            Status = "completed"
	StatusFailed               Status = "failed"
)

// Done reports whether the job has reached a terminal state.
func (s Status) Done() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job is the backend's view of a submitted generation job.
type Job struct {
	JobID       string  `json:"job_id"`
	Status      Status  `json:"status"`
	Progress    float64 `json:"progress"`
	Message     string  `json:"message"`
	DownloadURL string  `json:"download_url,omitempty"`
}
