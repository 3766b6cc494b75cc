package app

import (
	"testing"

	"maquette/internal/config"
	"maquette/internal/mask"
	"maquette/pkg/geometry"
)

func TestEventBus(t *testing.T) {
	s := NewState(config.Defaults())

	var got []interface{}
	s.On(EventMaskLoaded, func(data interface{}) { got = append(got, data) })
	s.On(EventMaskLoaded, func(data interface{}) { got = append(got, data) })

	shape := &mask.Shape{
		Points: []geometry.Point2D{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 0}},
		Aspect: 1,
	}
	s.SetPendingMask(shape, 500)

	if len(got) != 2 {
		t.Fatalf("expected both listeners to fire, got %d", len(got))
	}
	if got[0] != shape {
		t.Fatal("listener received wrong payload")
	}
}

func TestPendingMaskLifecycle(t *testing.T) {
	s := NewState(config.Defaults())
	cleared := 0
	s.On(EventMaskCleared, func(interface{}) { cleared++ })

	if m, _ := s.PendingMask(); m != nil {
		t.Fatal("fresh state should have no pending mask")
	}

	shape := &mask.Shape{Points: []geometry.Point2D{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 0}}, Aspect: 2}
	s.SetPendingMask(shape, 250)
	m, w := s.PendingMask()
	if m != shape || w != 250 {
		t.Fatalf("pending mask = %v/%v", m, w)
	}

	// A new upload supersedes the prior one wholesale.
	other := &mask.Shape{Points: shape.Points, Aspect: 1}
	s.SetPendingMask(other, 100)
	if m, _ := s.PendingMask(); m != other {
		t.Fatal("new upload did not supersede prior mask")
	}

	s.ClearPendingMask()
	if m, _ := s.PendingMask(); m != nil {
		t.Fatal("mask survived clear")
	}
	if cleared != 1 {
		t.Fatalf("EventMaskCleared fired %d times, want 1", cleared)
	}
	// Clearing again is a no-op.
	s.ClearPendingMask()
	if cleared != 1 {
		t.Fatal("redundant clear emitted an event")
	}
}
