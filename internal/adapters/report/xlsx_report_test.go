package report

import (
	"bytes"
	"testing"
	"time"

	"porter-desk-service/internal/domain"

	"github.com/xuri/excelize/v2"
)

func TestBuildPackageReport(t *testing.T) {
	received := time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC)
	delivered := received.Add(4 * time.Hour)

	residents := []domain.Resident{
		{ID: "r1", Name: "Ana", Apartment: "101", Phone: "5511999999999"},
	}
	pkgs := []domain.Package{
		{
			ID:          "p1",
			ResidentID:  "r1",
			Carrier:     "Acme",
			Description: "shoes",
			ReceivedAt:  received,
			DeliveredAt: &delivered,
			Status:      domain.StatusDelivered,
			PorterID:    "Ana",
		},
		{
			ID:          "p2",
			ResidentID:  "gone",
			Carrier:     "Swift",
			Description: "Package",
			ReceivedAt:  received,
			Status:      domain.StatusPending,
			PorterID:    "System",
		},
	}

	data, err := BuildPackageReport(pkgs, residents, received)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open generated report: %v", err)
	}
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue(sheetName, ref)
		if err != nil {
			t.Fatalf("get cell %s: %v", ref, err)
		}
		return v
	}

	if got := cell("A1"); got != "Status" {
		t.Errorf("A1 = %q, want Status", got)
	}
	if got := cell("B2"); got != "Ana (101)" {
		t.Errorf("B2 = %q, want Ana (101)", got)
	}
	if got := cell("F2"); got != "2026-08-28 13:30" {
		t.Errorf("F2 = %q, want delivered timestamp", got)
	}

	// Orphaned package resolves to the placeholder, never an error.
	if got := cell("B3"); got != domain.UnknownResidentName {
		t.Errorf("B3 = %q, want %q", got, domain.UnknownResidentName)
	}
	if got := cell("F3"); got != "---" {
		t.Errorf("F3 = %q, want ---", got)
	}
}

func TestReportFilename(t *testing.T) {
	now := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	if got := ReportFilename(now); got != "package_report_2026-08-28.xlsx" {
		t.Errorf("filename = %q", got)
	}
}
