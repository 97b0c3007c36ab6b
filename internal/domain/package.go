package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type PackageStatus string

const (
	StatusPending   PackageStatus = "PENDING"
	StatusDelivered PackageStatus = "DELIVERED"
)

// Sentinel porter identity recorded when no session is active, and the
// generic description used when the operator leaves the field blank.
const (
	DefaultPorter      = "System"
	DefaultDescription = "Package"
)

// A single parcel logged at the front desk. ReceivedAt is set once at
// creation and never changes; DeliveredAt is present exactly when Status is
// DELIVERED. ResidentID may stop resolving after the resident is deleted
// (the package is then "orphaned") and consumers must treat that as an
// unknown resident, not an error.
type Package struct {
	ID          string        `json:"id"`
	ResidentID  string        `json:"residentId"`
	Carrier     string        `json:"carrier"`
	Description string        `json:"description"`
	ReceivedAt  time.Time     `json:"receivedAt"`
	DeliveredAt *time.Time    `json:"deliveredAt,omitempty"`
	Status      PackageStatus `json:"status"`
	PhotoURL    string        `json:"photoUrl,omitempty"`
	PorterID    string        `json:"porterId"`
}

// NewPackage builds a freshly received package. Resident and carrier are
// required; description and porter fall back to their generic defaults.
func NewPackage(residentID, carrier, description, photoURL, porter string, now time.Time) (Package, error) {
	if strings.TrimSpace(residentID) == "" {
		return Package{}, fmt.Errorf("new package: resident is required: %w", ErrValidation)
	}
	if strings.TrimSpace(carrier) == "" {
		return Package{}, fmt.Errorf("new package: carrier is required: %w", ErrValidation)
	}

	if strings.TrimSpace(description) == "" {
		description = DefaultDescription
	}
	if strings.TrimSpace(porter) == "" {
		porter = DefaultPorter
	}

	return Package{
		ID:          uuid.NewString(),
		ResidentID:  residentID,
		Carrier:     carrier,
		Description: description,
		ReceivedAt:  now,
		Status:      StatusPending,
		PhotoURL:    photoURL,
		PorterID:    porter,
	}, nil
}

// SetStatus transitions the package and keeps DeliveredAt paired with the
// status in the same step: DELIVERED stamps it with now, PENDING clears it.
// Transitioning back to PENDING is the delivery undo.
func (p *Package) SetStatus(status PackageStatus, now time.Time) error {
	switch status {
	case StatusDelivered:
		p.Status = StatusDelivered
		t := now
		p.DeliveredAt = &t
	case StatusPending:
		p.Status = StatusPending
		p.DeliveredAt = nil
	default:
		return fmt.Errorf("set status: unknown status %q: %w", status, ErrValidation)
	}

	return nil
}

// FilterByDate returns the packages received on the given calendar day
// (date formatted as YYYY-MM-DD). The match is a prefix comparison against
// the RFC 3339 rendering, so each package stays bucketed in the timezone it
// was captured with.
func FilterByDate(pkgs []Package, date string) []Package {
	out := make([]Package, 0, len(pkgs))
	for _, p := range pkgs {
		if strings.HasPrefix(p.ReceivedAt.Format(time.RFC3339), date) {
			out = append(out, p)
		}
	}

	return out
}

// SplitByStatus partitions packages into pending and delivered subsets,
// preserving relative order in both.
func SplitByStatus(pkgs []Package) (pending, delivered []Package) {
	pending = make([]Package, 0, len(pkgs))
	delivered = make([]Package, 0, len(pkgs))
	for _, p := range pkgs {
		if p.Status == StatusDelivered {
			delivered = append(delivered, p)
		} else {
			pending = append(pending, p)
		}
	}

	return pending, delivered
}
