// Package app provides application state and the event bus wiring the engine
// to the UI.
package app

import (
	"sync"

	"maquette/internal/config"
	"maquette/internal/generate"
	"maquette/internal/mask"
	"maquette/internal/selection"
)

// EventType identifies application events.
type EventType int

const (
	// EventSelectionChanged fires with *selection.Selection (nil on clear).
	EventSelectionChanged EventType = iota
	// EventModeChanged fires with shape.Mode.
	EventModeChanged
	// EventMaskLoaded fires with *mask.Shape once extraction succeeds; the
	// shape then awaits a placement click on the map.
	EventMaskLoaded
	// EventMaskCleared fires when a pending mask is placed or discarded.
	EventMaskCleared
	// EventJobUpdated fires with *generate.Job on every polled state.
	EventJobUpdated
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds application state shared between the window, the map view and
// background job polling. The selection engine itself is single-threaded;
// the mutex only guards state touched by the polling goroutine.
type State struct {
	mu sync.RWMutex

	Cfg config.Config

	// pendingMask is an extracted shape waiting for a placement click.
	pendingMask *mask.Shape
	// maskWidthM is the physical footprint width chosen for the pending mask.
	maskWidthM float64

	currentJob *generate.Job

	listeners map[EventType][]EventListener
}

// NewState creates application state with the given configuration.
func NewState(cfg config.Config) *State {
	return &State{
		Cfg:       cfg,
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetPendingMask stores an extracted mask shape and its requested physical
// width, superseding any prior upload, and announces it.
func (s *State) SetPendingMask(shape *mask.Shape, widthMeters float64) {
	s.mu.Lock()
	s.pendingMask = shape
	s.maskWidthM = widthMeters
	s.mu.Unlock()
	s.Emit(EventMaskLoaded, shape)
}

// PendingMask returns the shape awaiting placement, or nil.
func (s *State) PendingMask() (*mask.Shape, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pendingMask, s.maskWidthM
}

// ClearPendingMask drops the pending mask, if any.
func (s *State) ClearPendingMask() {
	s.mu.Lock()
	had := s.pendingMask != nil
	s.pendingMask = nil
	s.maskWidthM = 0
	s.mu.Unlock()
	if had {
		s.Emit(EventMaskCleared, nil)
	}
}

// SetJob records the latest observed job state and announces it.
func (s *State) SetJob(job *generate.Job) {
	s.mu.Lock()
	s.currentJob = job
	s.mu.Unlock()
	s.Emit(EventJobUpdated, job)
}

// Job returns the last observed job state, or nil.
func (s *State) Job() *generate.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentJob
}

// AnnounceSelection publishes a selection change from the controller.
func (s *State) AnnounceSelection(sel *selection.Selection) {
	s.Emit(EventSelectionChanged, sel)
}
