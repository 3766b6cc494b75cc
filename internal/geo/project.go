// Package geo maps normalized mask shapes into geographic coordinates and
// derives size analytics from bounding boxes. Both use the same local
// equirectangular approximation: small regions of the globe are treated as
// flat, with one degree of latitude ≈ 111,320 m and one degree of longitude
// scaled by cos(latitude). Valid for footprints of a few kilometers; this is
// not a general-purpose geodesic projector.
package geo

import (
	"math"

	"maquette/internal/mask"
	"maquette/pkg/geometry"
)

// MetersPerDegree is the flat-earth meters per degree of latitude.
const MetersPerDegree = 111320.0

// Projector places a normalized mask shape on the map.
type Projector struct {
	// MetersPerDegree can be overridden for testing; zero uses the default.
	MetersPerDegree float64
}

// Project maps a mask shape to a geographic polygon and bounding box given a
// placement center and the physical footprint width in meters. The latitude
// span follows the mask's aspect ratio (height = width/aspect). Normalized
// rows grow downward while latitude grows upward, so the vertical axis is
// flipped.
func (pr Projector) Project(shape *mask.Shape, center geometry.Point2D, widthMeters float64) ([]geometry.Point2D, geometry.BBox, bool) {
	if shape == nil || len(shape.Points) < 4 || widthMeters <= 0 || shape.Aspect <= 0 {
		return nil, geometry.BBox{}, false
	}

	mpd := pr.MetersPerDegree
	if mpd == 0 {
		mpd = MetersPerDegree
	}

	cosLat := math.Cos(center.Y * math.Pi / 180)
	if math.Abs(cosLat) < 1e-9 {
		return nil, geometry.BBox{}, false
	}

	lonSpan := widthMeters / (mpd * cosLat)
	latSpan := (widthMeters / shape.Aspect) / mpd

	polygon := make([]geometry.Point2D, len(shape.Points))
	for i, p := range shape.Points {
		polygon[i] = geometry.Point2D{
			X: center.X + (p.X-0.5)*lonSpan,
			Y: center.Y + (0.5-p.Y)*latSpan,
		}
	}

	bbox, _ := geometry.BBoxOf(polygon)
	return polygon, bbox, true
}

// Analytics holds derived size estimates for a committed bounding box.
type Analytics struct {
	WidthKm  float64 `json:"width_km"`
	HeightKm float64 `json:"height_km"`
	AreaKm2  float64 `json:"area_km2"`
}

// Analyze computes planar dimensions and area for a bbox at its mean
// latitude. Stateless; feeds UI estimates and oversized-selection warnings.
func Analyze(b geometry.BBox) Analytics {
	meanLat := (b.MinLat + b.MaxLat) / 2
	widthKm := b.Width() * MetersPerDegree * math.Cos(meanLat*math.Pi/180) / 1000
	heightKm := b.Height() * MetersPerDegree / 1000
	return Analytics{
		WidthKm:  widthKm,
		HeightKm: heightKm,
		AreaKm2:  widthKm * heightKm,
	}
}
