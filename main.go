// Package main provides the entry point for the Maquette footprint selector.
package main

import (
	"log/slog"

	fyneapp "fyne.io/fyne/v2/app"

	"maquette/internal/app"
	"maquette/internal/config"
	maqlog "maquette/internal/log"
	"maquette/ui/mainwindow"
)

const (
	appTitle   = "Maquette"
	appVersion = "0.1.0"
)

func main() {
	cfg, err := config.Load(config.DefaultPath())

	maqlog.Init(maqlog.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	if err != nil {
		slog.Warn("config unreadable, continuing with defaults",
			"path", config.DefaultPath(), "err", err)
	}
	slog.Info("starting", "app", appTitle, "version", appVersion,
		"backend", cfg.Backend.BaseURL)

	fa := fyneapp.New()
	win := fa.NewWindow(appTitle)

	state := app.NewState(cfg)
	mainwindow.New(win, state)

	win.ShowAndRun()
}
