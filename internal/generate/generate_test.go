package generate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"maquette/internal/selection"
	"maquette/pkg/geometry"
)

func validSelection() *selection.Selection {
	return &selection.Selection{
		BBox: geometry.BBox{MinLon: 7.0, MinLat: 46.0, MaxLon: 7.05, MaxLat: 46.02},
	}
}

func TestNewRequestDefaults(t *testing.T) {
	r := NewRequest(validSelection())
	if err := r.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if r.Resolution != ResolutionTwoMeter || r.ModelWidthMM != 150.0 || r.GridSplit != 1 {
		t.Fatalf("unexpected defaults: %+v", r)
	}
	if r.ClipPolygon != nil {
		t.Fatal("rectangle selection should produce no clip polygon")
	}
}

func TestRequestClipPolygonFromPolygonSelection(t *testing.T) {
	sel := validSelection()
	sel.Polygon = []geometry.Point2D{{X: 7.0, Y: 46.0}, {X: 7.05, Y: 46.0}, {X: 7.02, Y: 46.02}}
	r := NewRequest(sel)
	if len(r.ClipPolygon) != 3 {
		t.Fatalf("clip polygon has %d points, want 3", len(r.ClipPolygon))
	}
	if r.ClipPolygon[1][0] != 7.05 || r.ClipPolygon[1][1] != 46.0 {
		t.Fatalf("clip polygon order wrong: %v", r.ClipPolygon)
	}
}

func TestValidateBounds(t *testing.T) {
	base := NewRequest(validSelection())

	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"empty bbox", func(r *Request) { r.BBox = geometry.BBox{} }},
		{"bad resolution", func(r *Request) { r.Resolution = "1.5" }},
		{"z too low", func(r *Request) { r.ZExaggeration = 0.4 }},
		{"z too high", func(r *Request) { r.ZExaggeration = 5.1 }},
		{"base too thin", func(r *Request) { r.BaseHeight = 0.2 }},
		{"base too thick", func(r *Request) { r.BaseHeight = 25 }},
		{"model too narrow", func(r *Request) { r.ModelWidthMM = 40 }},
		{"model too wide", func(r *Request) { r.ModelWidthMM = 600 }},
		{"grid too small", func(r *Request) { r.GridSplit = 0 }},
		{"grid too large", func(r *Request) { r.GridSplit = 5 }},
	}
	for _, tc := range cases {
		r := base
		tc.mutate(&r)
		if err := r.Validate(); err == nil {
			t.Errorf("%s: Validate accepted %+v", tc.name, r)
		}
	}
}

func TestSubmitAndPoll(t *testing.T) {
	polls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/generate":
			var req Request
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if req.BBox.MinLon != 7.0 {
				http.Error(w, "unexpected bbox", http.StatusBadRequest)
				return
			}
			json.NewEncoder(w).Encode(Job{JobID: "job-1", Status: StatusPending})
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/jobs/"):
			polls++
			job := Job{JobID: "job-1", Status: StatusProcessing, Progress: 50}
			if polls >= 3 {
				job = Job{JobID: "job-1", Status: StatusCompleted, Progress: 100,
					DownloadURL: "/api/jobs/job-1/download"}
			}
			json.NewEncoder(w).Encode(job)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	job, err := c.Submit(context.Background(), NewRequest(validSelection()))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if job.JobID != "job-1" {
		t.Fatalf("job id = %q", job.JobID)
	}

	var seen []Status
	final, err := c.Poll(context.Background(), job.JobID, time.Millisecond, func(j *Job) {
		seen = append(seen, j.Status)
	})
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if final.Status != StatusCompleted || final.DownloadURL == "" {
		t.Fatalf("final job = %+v", final)
	}
	if len(seen) < 2 || seen[len(seen)-1] != StatusCompleted {
		t.Fatalf("update sequence wrong: %v", seen)
	}
}

func TestSubmitRejectsInvalidRequestLocally(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	req := NewRequest(validSelection())
	req.GridSplit = 9
	if _, err := c.Submit(context.Background(), req); err == nil {
		t.Fatal("invalid request reached the wire")
	}
	if called {
		t.Fatal("server should not be contacted for an invalid request")
	}
}

func TestSubmitSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "area too large", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if _, err := c.Submit(context.Background(), NewRequest(validSelection())); err == nil {
		t.Fatal("server error not surfaced")
	}
}

func TestExportGeoJSON(t *testing.T) {
	sel := validSelection()
	data, err := ExportGeoJSON(sel, map[string]interface{}{"name": "test"})
	if err != nil {
		t.Fatalf("ExportGeoJSON: %v", err)
	}

	var doc struct {
		Type     string `json:"type"`
		Geometry struct {
			Type        string        `json:"type"`
			Coordinates [][][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties map[string]interface{} `json:"properties"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Type != "Feature" || doc.Geometry.Type != "Polygon" {
		t.Fatalf("unexpected GeoJSON: %s", data)
	}
	ring := doc.Geometry.Coordinates[0]
	if len(ring) < 4 {
		t.Fatalf("ring too short: %v", ring)
	}
	first, last := ring[0], ring[len(ring)-1]
	if first[0] != last[0] || first[1] != last[1] {
		t.Fatal("exported ring is not closed")
	}
	if doc.Properties["name"] != "test" {
		t.Fatalf("properties lost: %v", doc.Properties)
	}
}
