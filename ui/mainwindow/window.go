// Package mainwindow assembles the application window: the map view, the
// draw-mode toolbar, mask upload, analytics readout and generation controls.
package mainwindow

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"maquette/internal/app"
	"maquette/internal/generate"
	"maquette/internal/geo"
	"maquette/internal/mask"
	"maquette/internal/selection"
	"maquette/internal/shape"
	"maquette/pkg/geometry"
	"maquette/ui/mapview"
)

var modeNames = []string{
	shape.ModeRectangle.String(),
	shape.ModeCircle.String(),
	shape.ModeFreehand.String(),
}

// MainWindow wires the selection engine to the Fyne window.
type MainWindow struct {
	win        fyne.Window
	state      *app.State
	controller *selection.Controller
	mapView    *mapview.MapView
	client     *generate.Client

	modeRadio   *widget.RadioGroup
	status      *widget.Label
	coords      *widget.Label
	analytics   *widget.Label
	widthM      *widget.Entry
	progress    *widget.ProgressBar
	generateBtn *widget.Button
	exportBtn   *widget.Button
}

// New builds the window on the given Fyne window handle.
func New(win fyne.Window, state *app.State) *MainWindow {
	mw := &MainWindow{
		win:   win,
		state: state,
		client: generate.NewClient(state.Cfg.Backend.BaseURL,
			time.Duration(state.Cfg.Backend.TimeoutMs)*time.Millisecond),
	}

	opts := selection.Options{
		MinExtentDeg:   state.Cfg.Engine.MinExtentDeg,
		CircleSegments: state.Cfg.Engine.CircleSegments,
	}
	mw.controller = selection.NewController(nil, opts)
	mw.mapView = mapview.New(mw.controller)
	mw.controller.SetView(mw.mapView)
	mw.controller.OnCommit = state.AnnounceSelection

	mw.mapView.OnTapped = mw.handleMapTap
	mw.mapView.OnPointer = mw.handlePointer

	mw.buildWidgets()
	mw.subscribe()

	win.SetContent(container.NewBorder(
		mw.toolbar(), mw.statusBar(), nil, nil, mw.mapView,
	))
	win.Resize(fyne.NewSize(1100, 750))
	return mw
}

func (mw *MainWindow) buildWidgets() {
	mw.modeRadio = widget.NewRadioGroup(modeNames, func(name string) {
		for i, n := range modeNames {
			if n == name {
				mw.controller.SetMode(shape.Mode(i))
			}
		}
		// A switch attempted mid-gesture is ignored; snap the radio back.
		mw.modeRadio.SetSelected(mw.controller.Mode().String())
	})
	mw.modeRadio.Horizontal = true
	mw.modeRadio.Selected = modeNames[0]

	mw.status = widget.NewLabel("Shift-drag to select an area")
	mw.coords = widget.NewLabel("")
	mw.analytics = widget.NewLabel("No selection")
	mw.widthM = widget.NewEntry()
	mw.widthM.SetText("500")
	mw.widthM.SetPlaceHolder("width (m)")

	mw.progress = widget.NewProgressBar()
	mw.progress.Hide()

	mw.generateBtn = widget.NewButton("Generate", mw.submitJob)
	mw.generateBtn.Disable()
	mw.exportBtn = widget.NewButton("Export GeoJSON", mw.exportGeoJSON)
	mw.exportBtn.Disable()
}

func (mw *MainWindow) toolbar() fyne.CanvasObject {
	return container.NewHBox(
		mw.modeRadio,
		widget.NewButton("Clear", mw.clearAll),
		widget.NewSeparator(),
		widget.NewButton("Load Mask…", mw.openMask),
		widget.NewLabel("Mask width (m):"),
		mw.widthM,
		widget.NewSeparator(),
		mw.generateBtn,
		mw.exportBtn,
	)
}

func (mw *MainWindow) statusBar() fyne.CanvasObject {
	return container.NewVBox(
		mw.progress,
		container.NewHBox(mw.status, widget.NewSeparator(), mw.analytics, widget.NewSeparator(), mw.coords),
	)
}

func (mw *MainWindow) subscribe() {
	mw.state.On(app.EventSelectionChanged, func(data interface{}) {
		sel, _ := data.(*selection.Selection)
		mw.refreshAnalytics(sel)
		mw.mapView.Refresh()
	})
	mw.state.On(app.EventMaskLoaded, func(interface{}) {
		mw.status.SetText("Mask loaded — click the map to place it")
	})
	mw.state.On(app.EventJobUpdated, func(data interface{}) {
		job, _ := data.(*generate.Job)
		mw.refreshJob(job)
	})
}

func (mw *MainWindow) clearAll() {
	mw.controller.Clear()
	mw.state.ClearPendingMask()
	mw.status.SetText("Selection cleared")
	mw.mapView.Refresh()
}

func (mw *MainWindow) refreshAnalytics(sel *selection.Selection) {
	if sel == nil {
		mw.analytics.SetText("No selection")
		mw.generateBtn.Disable()
		mw.exportBtn.Disable()
		return
	}
	a := geo.Analyze(sel.BBox)
	text := fmt.Sprintf("%.2f × %.2f km — %.2f km²", a.WidthKm, a.HeightKm, a.AreaKm2)
	if a.AreaKm2 > generate.MaxAreaKm2 {
		text += fmt.Sprintf(" (over the %.0f km² limit)", generate.MaxAreaKm2)
	}
	mw.analytics.SetText(text)
	mw.generateBtn.Enable()
	mw.exportBtn.Enable()
}

func (mw *MainWindow) handlePointer(p geometry.Point2D) {
	mw.coords.SetText(fmt.Sprintf("%.5f, %.5f", p.X, p.Y))
}

// handleMapTap places a pending mask at the clicked location.
func (mw *MainWindow) handleMapTap(p geometry.Point2D) {
	pending, widthMeters := mw.state.PendingMask()
	if pending == nil {
		return
	}
	if !mw.controller.PlaceMask(pending, p, widthMeters) {
		mw.status.SetText("Could not place the mask here")
		return
	}
	mw.state.ClearPendingMask()
	mw.status.SetText("Mask placed")
}

// openMask lets the user pick an image file and runs the extraction
// pipeline on it. Failure is a status message, never fatal.
func (mw *MainWindow) openMask() {
	widthMeters, err := strconv.ParseFloat(mw.widthM.Text, 64)
	if err != nil || widthMeters <= 0 {
		mw.status.SetText("Enter a positive mask width in meters first")
		return
	}

	fileDialog := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()

		opts := mask.DefaultOptions()
		opts.MaxDimension = mw.state.Cfg.Engine.MaskMaxDimension
		opts.SimplifyTolerance = mw.state.Cfg.Engine.SimplifyTolerance

		extracted, err := mask.ExtractWithOptions(rc, opts)
		if err != nil {
			slog.Warn("mask extraction failed", "uri", rc.URI().String(), "err", err)
			mw.status.SetText("Could not extract a shape from that image")
			return
		}
		mw.state.SetPendingMask(extracted, widthMeters)
	}, mw.win)
	fileDialog.SetFilter(storage.NewExtensionFileFilter(
		[]string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tiff", ".tif", ".webp"}))
	fileDialog.Show()
}

// submitJob sends the committed selection to the generation backend and
// polls it to completion.
func (mw *MainWindow) submitJob() {
	sel := mw.controller.Selection()
	if sel == nil {
		return
	}
	req := generate.NewRequest(sel)
	if err := req.Validate(); err != nil {
		mw.status.SetText(err.Error())
		return
	}

	mw.generateBtn.Disable()
	mw.progress.Show()
	mw.progress.SetValue(0)
	mw.status.SetText("Submitting…")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		job, err := mw.client.Submit(ctx, req)
		if err != nil {
			slog.Error("job submission failed", "err", err)
			mw.state.SetJob(&generate.Job{Status: generate.StatusFailed, Message: err.Error()})
			return
		}
		mw.state.SetJob(job)

		final, err := mw.client.Poll(ctx, job.JobID, 2*time.Second, func(j *generate.Job) {
			mw.state.SetJob(j)
		})
		if err != nil {
			slog.Error("job polling failed", "job_id", job.JobID, "err", err)
			mw.state.SetJob(&generate.Job{JobID: job.JobID, Status: generate.StatusFailed, Message: err.Error()})
			return
		}
		slog.Info("job finished", "job_id", final.JobID, "status", string(final.Status))
	}()
}

func (mw *MainWindow) refreshJob(job *generate.Job) {
	if job == nil {
		return
	}
	mw.progress.SetValue(job.Progress / 100)
	switch job.Status {
	case generate.StatusCompleted:
		mw.progress.Hide()
		mw.generateBtn.Enable()
		mw.status.SetText("Model ready: " + mw.client.BaseURL + job.DownloadURL)
	case generate.StatusFailed:
		mw.progress.Hide()
		mw.generateBtn.Enable()
		mw.status.SetText("Generation failed: " + job.Message)
	default:
		mw.status.SetText(fmt.Sprintf("%s (%.0f%%)", job.Status, job.Progress))
	}
}

// exportGeoJSON writes the committed selection to a file chosen by the user.
func (mw *MainWindow) exportGeoJSON() {
	sel := mw.controller.Selection()
	if sel == nil {
		return
	}
	a := geo.Analyze(sel.BBox)
	data, err := generate.ExportGeoJSON(sel, map[string]interface{}{
		"width_km":  a.WidthKm,
		"height_km": a.HeightKm,
		"area_km2":  a.AreaKm2,
	})
	if err != nil {
		mw.status.SetText("Export failed: " + err.Error())
		return
	}

	saveDialog := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if _, err := wc.Write(data); err != nil {
			mw.status.SetText("Export failed: " + err.Error())
			return
		}
		mw.status.SetText("Selection exported")
	}, mw.win)
	saveDialog.SetFileName("selection.geojson")
	saveDialog.Show()
}
