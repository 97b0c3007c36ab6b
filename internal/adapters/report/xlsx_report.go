package report

import (
	"fmt"
	"time"

	"porter-desk-service/internal/domain"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Packages"

var headers = []string{
	"Status",
	"Resident",
	"Carrier",
	"Description",
	"Received",
	"Delivered",
	"Porter",
}

// BuildPackageReport renders the full package log as a downloadable xlsx
// table. Orphaned packages resolve to the unknown-resident placeholder;
// the report is a pure projection and feeds nothing back into the ledger.
func BuildPackageReport(pkgs []domain.Package, residents []domain.Resident, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("build package report: create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("build package report: drop default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#EEF2FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("build package report: header style: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("build package report: header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("build package report: set header %q: %w", header, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("build package report: style header %q: %w", header, err)
		}
	}

	for row, pkg := range pkgs {
		delivered := "---"
		if pkg.DeliveredAt != nil {
			delivered = pkg.DeliveredAt.Format("2006-01-02 15:04")
		}

		values := []any{
			string(pkg.Status),
			domain.ResidentLabel(residents, pkg.ResidentID),
			pkg.Carrier,
			pkg.Description,
			pkg.ReceivedAt.Format("2006-01-02 15:04"),
			delivered,
			pkg.PorterID,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("build package report: cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("build package report: set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SetCellValue(sheetName, "I1", "Generated"); err != nil {
		return nil, fmt.Errorf("build package report: set generated label: %w", err)
	}
	if err := f.SetCellValue(sheetName, "I2", generatedAt.Format("2006-01-02 15:04")); err != nil {
		return nil, fmt.Errorf("build package report: set generated time: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("build package report: write: %w", err)
	}

	return buf.Bytes(), nil
}

// ReportFilename embeds the generation date, mirroring the backup naming.
func ReportFilename(now time.Time) string {
	return fmt.Sprintf("package_report_%s.xlsx", now.Format("2006-01-02"))
}
