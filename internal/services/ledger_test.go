package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"porter-desk-service/internal/adapters/storage"
	"porter-desk-service/internal/domain"
	"porter-desk-service/internal/ports"
)

func newTestLedger(t *testing.T) (*Ledger, *storage.MemoryStateStore) {
	t.Helper()

	store := storage.NewMemoryStateStore()
	ledger := NewLedger(store)
	ledger.now = func() time.Time {
		return time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	}
	if err := ledger.Load(context.Background()); err != nil {
		t.Fatalf("load ledger: %v", err)
	}

	return ledger, store
}

func TestAddPackagePrependsAndPersists(t *testing.T) {
	ctx := context.Background()
	ledger, store := newTestLedger(t)

	first, err := ledger.AddPackage(ctx, PackageDraft{ResidentID: "r1", Carrier: "Acme"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ledger.AddPackage(ctx, PackageDraft{ResidentID: "r1", Carrier: "Swift"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pkgs := ledger.Packages()
	if len(pkgs) != 2 {
		t.Fatalf("expected 2 packages, got %d", len(pkgs))
	}
	if pkgs[0].ID != second.ID || pkgs[1].ID != first.ID {
		t.Error("expected most-recent-first ordering")
	}

	// The persisted slot matches the in-memory collection.
	value, ok, err := store.Read(ctx, ports.SlotPackages)
	if err != nil || !ok {
		t.Fatalf("packages slot missing: ok=%v err=%v", ok, err)
	}
	var stored []domain.Package
	if err := json.Unmarshal([]byte(value), &stored); err != nil {
		t.Fatalf("decode stored packages: %v", err)
	}
	if len(stored) != 2 || stored[0].ID != second.ID {
		t.Errorf("stored collection out of sync: %+v", stored)
	}
}

func TestAddPackageSessionScenario(t *testing.T) {
	ctx := context.Background()
	ledger, store := newTestLedger(t)
	tracker := NewTracker(store)

	if _, err := tracker.Start(ctx, "Ana", domain.ShiftMorning); err != nil {
		t.Fatalf("start session: %v", err)
	}

	pkg, err := ledger.AddPackage(ctx, PackageDraft{
		ResidentID: "R1",
		Carrier:    "Acme",
		Porter:     tracker.Porter(ctx),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pkg.PorterID != "Ana" {
		t.Errorf("porter = %q, want Ana", pkg.PorterID)
	}
	if pkg.Status != domain.StatusPending {
		t.Errorf("status = %q, want PENDING", pkg.Status)
	}
	if pkg.DeliveredAt != nil {
		t.Errorf("deliveredAt should be absent, got %v", *pkg.DeliveredAt)
	}
}

func TestUpdatePackageStatusRoundTrip(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	pkg, err := ledger.AddPackage(ctx, PackageDraft{ResidentID: "r1", Carrier: "Acme", Description: "box"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := ledger.UpdatePackageStatus(ctx, pkg.ID, domain.StatusDelivered); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	delivered, ok := ledger.FindPackage(pkg.ID)
	if !ok {
		t.Fatal("package vanished")
	}
	if delivered.Status != domain.StatusDelivered || delivered.DeliveredAt == nil {
		t.Fatalf("expected DELIVERED with deliveredAt set, got %+v", delivered)
	}

	if err := ledger.UpdatePackageStatus(ctx, pkg.ID, domain.StatusPending); err != nil {
		t.Fatalf("undo: %v", err)
	}
	restored, _ := ledger.FindPackage(pkg.ID)
	if restored.Status != domain.StatusPending || restored.DeliveredAt != nil {
		t.Fatalf("expected PENDING with deliveredAt absent, got %+v", restored)
	}
	if restored != pkg {
		t.Errorf("round trip changed other fields: got %+v, want %+v", restored, pkg)
	}
}

func TestUpdatePackageStatusUnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	if _, err := ledger.AddPackage(ctx, PackageDraft{ResidentID: "r1", Carrier: "Acme"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := ledger.UpdatePackageStatus(ctx, "missing", domain.StatusDelivered); err != nil {
		t.Fatalf("no-op update returned error: %v", err)
	}
	if len(ledger.Packages()) != 1 {
		t.Error("collection changed by a no-op update")
	}
}

func TestClearDeliveredHistory(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	a, _ := ledger.AddPackage(ctx, PackageDraft{ResidentID: "r1", Carrier: "Acme"})
	b, _ := ledger.AddPackage(ctx, PackageDraft{ResidentID: "r1", Carrier: "Acme"})
	c, _ := ledger.AddPackage(ctx, PackageDraft{ResidentID: "r1", Carrier: "Acme"})

	if err := ledger.UpdatePackageStatus(ctx, b.ID, domain.StatusDelivered); err != nil {
		t.Fatalf("deliver: %v", err)
	}

	if err := ledger.ClearDeliveredHistory(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	pkgs := ledger.Packages()
	if len(pkgs) != 2 {
		t.Fatalf("expected 2 packages after clear, got %d", len(pkgs))
	}
	// Pending packages survive in their original relative order.
	if pkgs[0].ID != c.ID || pkgs[1].ID != a.ID {
		t.Errorf("order after clear = [%s %s], want [%s %s]", pkgs[0].ID, pkgs[1].ID, c.ID, a.ID)
	}
}

func TestDeleteResidentOrphansPackages(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	resident, err := ledger.AddResident(ctx, "Ana", "101", "5511999999999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pkg, err := ledger.AddPackage(ctx, PackageDraft{ResidentID: resident.ID, Carrier: "Acme"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := ledger.DeleteResident(ctx, resident.ID); err != nil {
		t.Fatalf("delete resident: %v", err)
	}

	if len(ledger.Residents()) != 0 {
		t.Error("resident not removed")
	}

	survivor, ok := ledger.FindPackage(pkg.ID)
	if !ok {
		t.Fatal("package was cascade-deleted; it must survive as orphan")
	}
	if survivor != pkg {
		t.Errorf("package mutated by resident delete: %+v", survivor)
	}
	if _, ok := domain.ResolveResident(ledger.Residents(), survivor.ResidentID); ok {
		t.Error("expected residentId to no longer resolve")
	}
}

func TestDeleteResidentUnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	if err := ledger.DeleteResident(ctx, "missing"); err != nil {
		t.Fatalf("no-op delete returned error: %v", err)
	}
}

func TestMutationFailsWhenStorageUnavailable(t *testing.T) {
	ctx := context.Background()
	ledger, store := newTestLedger(t)

	store.FailWrites = true

	_, err := ledger.AddResident(ctx, "Ana", "101", "5511999999999")
	if !errors.Is(err, ports.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}

	// Memory must stay in agreement with the (unchanged) store.
	if len(ledger.Residents()) != 0 {
		t.Error("in-memory collection mutated despite failed persist")
	}
}

func TestPackagesOnFiltersByDay(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	day := time.Date(2026, 8, 28, 8, 0, 0, 0, time.UTC)
	ledger.now = func() time.Time { return day }
	onDay, _ := ledger.AddPackage(ctx, PackageDraft{ResidentID: "r1", Carrier: "Acme"})

	ledger.now = func() time.Time { return day.AddDate(0, 0, 1) }
	if _, err := ledger.AddPackage(ctx, PackageDraft{ResidentID: "r1", Carrier: "Acme"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := ledger.PackagesOn("2026-08-28")
	if len(got) != 1 || got[0].ID != onDay.ID {
		t.Errorf("packagesOn = %+v, want only %s", got, onDay.ID)
	}
}
