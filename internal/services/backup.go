package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"porter-desk-service/internal/domain"
	"porter-desk-service/internal/ports"
)

// ErrParse marks an uploaded backup that could not be accepted. No partial
// import is ever applied behind it.
var ErrParse = errors.New("invalid backup file")

// Snapshot is the backup interchange format: the full ledger plus the
// export timestamp. Unrecognized fields in an uploaded file are ignored.
type Snapshot struct {
	Residents  []domain.Resident `json:"residents"`
	Packages   []domain.Package  `json:"packages"`
	ExportedAt time.Time         `json:"exportedAt"`
}

// ExportSnapshot serializes the stored collections as a downloadable backup.
// It reads from the store, not the ledger cache, so it always reflects what
// is durably saved.
func ExportSnapshot(ctx context.Context, store ports.StateStore) ([]byte, error) {
	residents, err := readSlot[domain.Resident](ctx, store, ports.SlotResidents)
	if err != nil {
		return nil, fmt.Errorf("export snapshot: %w", err)
	}

	packages, err := readSlot[domain.Package](ctx, store, ports.SlotPackages)
	if err != nil {
		return nil, fmt.Errorf("export snapshot: %w", err)
	}

	snap := Snapshot{
		Residents:  residents,
		Packages:   packages,
		ExportedAt: time.Now(),
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export snapshot: encode: %w", err)
	}

	return data, nil
}

// BackupFilename embeds the current date so successive exports sort in the
// operator's download folder.
func BackupFilename(now time.Time) string {
	return fmt.Sprintf("porter_backup_%s.json", now.Format("2006-01-02"))
}

// ImportSnapshot validates an uploaded backup and applies it to the store.
// Each top-level field replaces its slot wholesale; a field absent from the
// payload leaves its slot untouched, and a payload with neither field is a
// no-op success. Records are validated one by one before anything is
// written, so a malformed file can never corrupt the live slots. The ledger
// must be reloaded afterwards; import does not refresh its memory.
func ImportSnapshot(ctx context.Context, store ports.StateStore, data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("import snapshot: %w: %v", ErrParse, err)
	}
	if raw == nil {
		return fmt.Errorf("import snapshot: %w: top-level value is not an object", ErrParse)
	}

	var (
		residents    []domain.Resident
		packages     []domain.Package
		hasResidents bool
		hasPackages  bool
	)

	if rawResidents, ok := raw[ports.SlotResidents]; ok {
		if err := json.Unmarshal(rawResidents, &residents); err != nil {
			return fmt.Errorf("import snapshot: residents: %w: %v", ErrParse, err)
		}
		for i, r := range residents {
			if err := validateImportedResident(r); err != nil {
				return fmt.Errorf("import snapshot: resident at index %d: %w", i, err)
			}
		}
		hasResidents = true
	}

	if rawPackages, ok := raw[ports.SlotPackages]; ok {
		if err := json.Unmarshal(rawPackages, &packages); err != nil {
			return fmt.Errorf("import snapshot: packages: %w: %v", ErrParse, err)
		}
		for i, p := range packages {
			if err := validateImportedPackage(p); err != nil {
				return fmt.Errorf("import snapshot: package at index %d: %w", i, err)
			}
		}
		hasPackages = true
	}

	if hasResidents {
		if residents == nil {
			residents = []domain.Resident{}
		}
		if err := persistSlot(ctx, store, ports.SlotResidents, residents); err != nil {
			return fmt.Errorf("import snapshot: %w", err)
		}
	}
	if hasPackages {
		if packages == nil {
			packages = []domain.Package{}
		}
		if err := persistSlot(ctx, store, ports.SlotPackages, packages); err != nil {
			return fmt.Errorf("import snapshot: %w", err)
		}
	}

	return nil
}

func validateImportedResident(r domain.Resident) error {
	if r.ID == "" {
		return fmt.Errorf("%w: missing id", ErrParse)
	}
	if r.Name == "" {
		return fmt.Errorf("%w: missing name", ErrParse)
	}

	return nil
}

func validateImportedPackage(p domain.Package) error {
	if p.ID == "" {
		return fmt.Errorf("%w: missing id", ErrParse)
	}
	if p.ResidentID == "" {
		return fmt.Errorf("%w: missing residentId", ErrParse)
	}
	if p.Carrier == "" {
		return fmt.Errorf("%w: missing carrier", ErrParse)
	}

	switch p.Status {
	case domain.StatusPending:
		if p.DeliveredAt != nil {
			return fmt.Errorf("%w: pending package carries deliveredAt", ErrParse)
		}
	case domain.StatusDelivered:
		if p.DeliveredAt == nil {
			return fmt.Errorf("%w: delivered package missing deliveredAt", ErrParse)
		}
	default:
		return fmt.Errorf("%w: unknown status %q", ErrParse, p.Status)
	}

	return nil
}
