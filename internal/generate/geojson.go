package generate

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"maquette/internal/selection"
)

// ExportGeoJSON serializes a committed selection as a GeoJSON Feature: the
// selection outline (or the bbox ring for rectangles) as a Polygon geometry
// with the bbox and size analytics attached as properties.
func ExportGeoJSON(sel *selection.Selection, props map[string]interface{}) ([]byte, error) {
	outline := sel.Polygon
	if outline == nil {
		outline = sel.BBox.Ring()
	}

	ring := make(orb.Ring, len(outline))
	for i, p := range outline {
		ring[i] = orb.Point{p.X, p.Y}
	}
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}

	feature := geojson.NewFeature(orb.Polygon{ring})
	feature.BBox = geojson.BBox{sel.BBox.MinLon, sel.BBox.MinLat, sel.BBox.MaxLon, sel.BBox.MaxLat}
	for k, v := range props {
		feature.Properties[k] = v
	}
	return feature.MarshalJSON()
}
