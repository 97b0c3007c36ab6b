package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"porter-desk-service/internal/domain"
	"porter-desk-service/internal/ports"
)

// Ledger owns the authoritative in-memory resident and package collections.
// Every mutation builds the updated collection, persists it through the
// state store, and only then replaces the in-memory copy, so a failed write
// leaves memory and storage in agreement. A single mutex serializes
// operations; the desk is a single logical writer even though HTTP handlers
// run concurrently.
type Ledger struct {
	store ports.StateStore
	now   func() time.Time

	mu        sync.Mutex
	residents []domain.Resident
	packages  []domain.Package
}

func NewLedger(store ports.StateStore) *Ledger {
	return &Ledger{
		store: store,
		now:   time.Now,
	}
}

// Load reads both collections from the store, replacing the in-memory
// state. Absent slots load as empty collections. Called once at startup and
// again after a backup import, which writes to the store directly.
func (l *Ledger) Load(ctx context.Context) error {
	residents, err := readSlot[domain.Resident](ctx, l.store, ports.SlotResidents)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	packages, err := readSlot[domain.Package](ctx, l.store, ports.SlotPackages)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.residents = residents
	l.packages = packages

	return nil
}

func readSlot[T any](ctx context.Context, store ports.StateStore, slot string) ([]T, error) {
	value, ok, err := store.Read(ctx, slot)
	if err != nil {
		return nil, fmt.Errorf("read slot %q: %w", slot, err)
	}
	if !ok {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		return nil, fmt.Errorf("decode slot %q: %w", slot, err)
	}
	if items == nil {
		items = []T{}
	}

	return items, nil
}

func persistSlot[T any](ctx context.Context, store ports.StateStore, slot string, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode slot %q: %w", slot, err)
	}

	if err := store.Write(ctx, slot, string(data)); err != nil {
		return fmt.Errorf("persist slot %q: %w", slot, err)
	}

	return nil
}

// AddResident validates and appends a resident, then persists the full
// collection. No duplicate detection: two residents may share a name or
// apartment by operator choice.
func (l *Ledger) AddResident(ctx context.Context, name, apartment, phone string) (domain.Resident, error) {
	resident, err := domain.NewResident(name, apartment, phone)
	if err != nil {
		return domain.Resident{}, fmt.Errorf("add resident: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	updated := append(append([]domain.Resident{}, l.residents...), resident)
	if err := persistSlot(ctx, l.store, ports.SlotResidents, updated); err != nil {
		return domain.Resident{}, fmt.Errorf("add resident: %w", err)
	}
	l.residents = updated

	return resident, nil
}

// DeleteResident removes the matching resident, a no-op when the id is
// unknown. Packages pointing at the id are left untouched and become
// orphaned; consumers resolve them as "unknown resident".
func (l *Ledger) DeleteResident(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	updated := make([]domain.Resident, 0, len(l.residents))
	found := false
	for _, r := range l.residents {
		if r.ID == id {
			found = true
			continue
		}
		updated = append(updated, r)
	}
	if !found {
		return nil
	}

	if err := persistSlot(ctx, l.store, ports.SlotResidents, updated); err != nil {
		return fmt.Errorf("delete resident: %w", err)
	}
	l.residents = updated

	return nil
}

// PackageDraft is the operator's input for a new package. Porter is the
// active session name; the domain fills the "System" sentinel when empty.
type PackageDraft struct {
	ResidentID  string
	Carrier     string
	Description string
	PhotoURL    string
	Porter      string
}

// AddPackage registers a freshly received package at the head of the
// collection (the desk lists most-recent-first).
func (l *Ledger) AddPackage(ctx context.Context, draft PackageDraft) (domain.Package, error) {
	pkg, err := domain.NewPackage(draft.ResidentID, draft.Carrier, draft.Description, draft.PhotoURL, draft.Porter, l.now())
	if err != nil {
		return domain.Package{}, fmt.Errorf("add package: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	updated := append([]domain.Package{pkg}, l.packages...)
	if err := persistSlot(ctx, l.store, ports.SlotPackages, updated); err != nil {
		return domain.Package{}, fmt.Errorf("add package: %w", err)
	}
	l.packages = updated

	return pkg, nil
}

// UpdatePackageStatus transitions a package between PENDING and DELIVERED,
// keeping DeliveredAt paired with the status. Unknown ids are a silent
// no-op: stale desk views make them a normal occurrence.
func (l *Ledger) UpdatePackageStatus(ctx context.Context, id string, status domain.PackageStatus) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i, p := range l.packages {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	updated := append([]domain.Package{}, l.packages...)
	if err := updated[idx].SetStatus(status, l.now()); err != nil {
		return fmt.Errorf("update package status: %w", err)
	}

	if err := persistSlot(ctx, l.store, ports.SlotPackages, updated); err != nil {
		return fmt.Errorf("update package status: %w", err)
	}
	l.packages = updated

	return nil
}

// DeletePackage removes the matching package, a no-op when the id is unknown.
func (l *Ledger) DeletePackage(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	updated := make([]domain.Package, 0, len(l.packages))
	found := false
	for _, p := range l.packages {
		if p.ID == id {
			found = true
			continue
		}
		updated = append(updated, p)
	}
	if !found {
		return nil
	}

	if err := persistSlot(ctx, l.store, ports.SlotPackages, updated); err != nil {
		return fmt.Errorf("delete package: %w", err)
	}
	l.packages = updated

	return nil
}

// ClearDeliveredHistory removes every DELIVERED package across all dates,
// keeping pending packages in their original relative order. Bulk and
// irreversible; callers gate it behind explicit confirmation.
func (l *Ledger) ClearDeliveredHistory(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	updated := make([]domain.Package, 0, len(l.packages))
	for _, p := range l.packages {
		if p.Status != domain.StatusDelivered {
			updated = append(updated, p)
		}
	}
	if len(updated) == len(l.packages) {
		return nil
	}

	if err := persistSlot(ctx, l.store, ports.SlotPackages, updated); err != nil {
		return fmt.Errorf("clear delivered history: %w", err)
	}
	l.packages = updated

	return nil
}

// Residents returns a read-only snapshot of the resident collection.
func (l *Ledger) Residents() []domain.Resident {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]domain.Resident{}, l.residents...)
}

// Packages returns a read-only snapshot of the package collection,
// most-recent-first.
func (l *Ledger) Packages() []domain.Package {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]domain.Package{}, l.packages...)
}

// PackagesOn returns the packages received on the given calendar day
// (YYYY-MM-DD), for the day-by-day desk view.
func (l *Ledger) PackagesOn(date string) []domain.Package {
	return domain.FilterByDate(l.Packages(), date)
}

// FindPackage resolves a package by id.
func (l *Ledger) FindPackage(id string) (domain.Package, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.packages {
		if p.ID == id {
			return p, true
		}
	}

	return domain.Package{}, false
}

// Stats computes the dashboard counters for the given calendar day.
func (l *Ledger) Stats(today string) domain.DashboardStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	return domain.ComputeStats(l.packages, l.residents, today)
}
