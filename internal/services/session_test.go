package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"porter-desk-service/internal/adapters/storage"
	"porter-desk-service/internal/domain"
)

func mustParseDay(t *testing.T, day string) time.Time {
	t.Helper()

	ts, err := time.Parse("2006-01-02", day)
	if err != nil {
		t.Fatalf("bad fixture day %q: %v", day, err)
	}
	return ts
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStateStore()
	tracker := NewTracker(store)

	if _, err := tracker.Start(ctx, "   ", domain.ShiftMorning); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("blank name must fail validation, got %v", err)
	}
	if _, err := tracker.Start(ctx, "Ana", domain.Shift("Lunch")); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("unknown shift must fail validation, got %v", err)
	}

	started, err := tracker.Start(ctx, "Ana", domain.ShiftMorning)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.Name != "Ana" || started.Shift != domain.ShiftMorning {
		t.Errorf("session = %+v", started)
	}

	current, err := tracker.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current == nil || current.Name != "Ana" {
		t.Fatalf("current = %+v, want Ana", current)
	}

	// Starting again replaces the active session; no stacking.
	if _, err := tracker.Start(ctx, "Bruno", domain.ShiftNight); err != nil {
		t.Fatalf("restart: %v", err)
	}
	current, err = tracker.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current.Name != "Bruno" {
		t.Errorf("current = %+v, want Bruno", current)
	}

	if err := tracker.End(ctx); err != nil {
		t.Fatalf("end: %v", err)
	}
	current, err = tracker.Current(ctx)
	if err != nil {
		t.Fatalf("current after end: %v", err)
	}
	if current != nil {
		t.Errorf("expected no session after end, got %+v", current)
	}
}

func TestPorterFallsBackToSystem(t *testing.T) {
	ctx := context.Background()
	tracker := NewTracker(storage.NewMemoryStateStore())

	if got := tracker.Porter(ctx); got != domain.DefaultPorter {
		t.Errorf("porter = %q, want %q", got, domain.DefaultPorter)
	}
}

func TestTrackersAreIndependent(t *testing.T) {
	ctx := context.Background()
	trackerA := NewTracker(storage.NewMemoryStateStore())
	trackerB := NewTracker(storage.NewMemoryStateStore())

	if _, err := trackerA.Start(ctx, "Ana", domain.ShiftMorning); err != nil {
		t.Fatalf("start: %v", err)
	}

	if got := trackerB.Porter(ctx); got != domain.DefaultPorter {
		t.Errorf("tracker B porter = %q, want %q (no cross-contamination)", got, domain.DefaultPorter)
	}
}
