package spreadsheet

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"

	billing "rollcall-billing/internal/billing/domain"
)

const (
	headerFill      = "2E7D32"
	headerFontColor = "FFFFFF"
	siblingFill     = "FFF9C4"
	currencyFormat  = "$#,##0.00"

	siblingNote = "CHECK FOR SIBLING DISCOUNT"
)

var reportColumns = []string{"Player Name", "Clinic", "Status", "Sessions", "Total Charged", "Sibling Discount Note"}

// ReportWriter renders monthly reports into the billing workbook, one
// sheet per period. Replacing a period drops its old sheet entirely
// before writing, so rerunning a month always converges on the same
// final content.
type ReportWriter struct {
	mu   sync.Mutex
	path string
}

// NewReportWriter constructs a writer over the given workbook path.
func NewReportWriter(path string) (*ReportWriter, error) {
	if path == "" {
		return nil, errors.New("report writer: empty path")
	}
	return &ReportWriter{path: path}, nil
}

// Replace writes the report sheet for its period.
func (w *ReportWriter) Replace(ctx context.Context, report *billing.MonthlyReport) error {
	_ = ctx
	if report == nil {
		return errors.New("report writer: nil report")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	file, created, err := w.open()
	if err != nil {
		return err
	}
	defer file.Close()

	label := report.Period.Label()

	// An existing sheet for the period is renamed out of the way so
	// the workbook never drops below one sheet, then deleted at the
	// end.
	stale := ""
	if index, err := file.GetSheetIndex(label); err == nil && index != -1 {
		stale = label + " (stale)"
		if err := file.SetSheetName(label, stale); err != nil {
			return err
		}
	}

	if _, err := file.NewSheet(label); err != nil {
		return err
	}
	if err := w.writeSheet(file, label, report); err != nil {
		return err
	}

	if stale != "" {
		if err := file.DeleteSheet(stale); err != nil {
			return err
		}
	}
	if created {
		if err := file.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}

	return file.SaveAs(w.path)
}

func (w *ReportWriter) open() (*excelize.File, bool, error) {
	if _, err := os.Stat(w.path); errors.Is(err, fs.ErrNotExist) {
		return excelize.NewFile(), true, nil
	}
	file, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, false, err
	}
	return file, false, nil
}

func (w *ReportWriter) writeSheet(file *excelize.File, sheet string, report *billing.MonthlyReport) error {
	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: headerFontColor},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	numFmt := currencyFormat
	currencyStyle, err := file.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return err
	}
	siblingStyle, err := file.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{siblingFill}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	siblingCurrencyStyle, err := file.NewStyle(&excelize.Style{
		Fill:         excelize.Fill{Type: "pattern", Color: []string{siblingFill}, Pattern: 1},
		CustomNumFmt: &numFmt,
	})
	if err != nil {
		return err
	}
	boldStyle, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	for col, name := range reportColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}
	if err := file.SetCellStyle(sheet, "A1", "F1", headerStyle); err != nil {
		return err
	}

	for i, item := range report.Items {
		row := i + 2
		note := ""
		if item.SiblingFlag {
			note = siblingNote
		}
		values := []any{
			item.PlayerName,
			item.Clinic,
			item.Status.DisplayName(),
			item.Sessions,
			item.TotalCharge,
			note,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}

		chargeCell, err := excelize.CoordinatesToCellName(5, row)
		if err != nil {
			return err
		}
		if item.SiblingFlag {
			start, _ := excelize.CoordinatesToCellName(1, row)
			end, _ := excelize.CoordinatesToCellName(len(reportColumns), row)
			if err := file.SetCellStyle(sheet, start, end, siblingStyle); err != nil {
				return err
			}
			if err := file.SetCellStyle(sheet, chargeCell, chargeCell, siblingCurrencyStyle); err != nil {
				return err
			}
		} else if err := file.SetCellStyle(sheet, chargeCell, chargeCell, currencyStyle); err != nil {
			return err
		}
	}

	widths := map[string]float64{"A": 28, "B": 46, "C": 11, "D": 11, "E": 17, "F": 36}
	for col, width := range widths {
		if err := file.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	if err := file.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	summaryRow := len(report.Items) + 3
	if err := file.SetCellValue(sheet, cellName(1, summaryRow), "MONTHLY SUMMARY"); err != nil {
		return err
	}
	if err := file.SetCellStyle(sheet, cellName(1, summaryRow), cellName(1, summaryRow), boldStyle); err != nil {
		return err
	}
	if err := file.SetCellValue(sheet, cellName(1, summaryRow+1), "Total Players:"); err != nil {
		return err
	}
	if err := file.SetCellValue(sheet, cellName(2, summaryRow+1), report.TotalPlayers); err != nil {
		return err
	}
	if err := file.SetCellValue(sheet, cellName(1, summaryRow+2), "Total Revenue:"); err != nil {
		return err
	}
	if err := file.SetCellValue(sheet, cellName(2, summaryRow+2), report.TotalRevenue); err != nil {
		return err
	}
	return file.SetCellStyle(sheet, cellName(2, summaryRow+2), cellName(2, summaryRow+2), currencyStyle)
}

func cellName(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}
