package interfaces

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	billing "rollcall-billing/internal/billing/domain"
)

// BuildReportPDF renders a monthly billing report as a PDF.
func BuildReportPDF(report *billing.MonthlyReport) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Monthly Billing Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s", report.Period.Label()))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(55, 6, "Player Name", "1", 0, "C", false, 0, "")
	pdf.CellFormat(90, 6, "Clinic", "1", 0, "C", false, 0, "")
	pdf.CellFormat(22, 6, "Status", "1", 0, "C", false, 0, "")
	pdf.CellFormat(22, 6, "Sessions", "1", 0, "C", false, 0, "")
	pdf.CellFormat(28, 6, "Total Charged", "1", 0, "C", false, 0, "")
	pdf.CellFormat(55, 6, "Sibling Note", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, item := range report.Items {
		note := ""
		if item.SiblingFlag {
			note = "CHECK FOR SIBLING DISCOUNT"
		}
		pdf.CellFormat(55, 6, item.PlayerName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(90, 6, item.Clinic, "1", 0, "L", false, 0, "")
		pdf.CellFormat(22, 6, item.Status.DisplayName(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(22, 6, fmt.Sprintf("%d", item.Sessions), "1", 0, "R", false, 0, "")
		pdf.CellFormat(28, 6, fmt.Sprintf("$%.2f", item.TotalCharge), "1", 0, "R", false, 0, "")
		pdf.CellFormat(55, 6, note, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, "MONTHLY SUMMARY")
	pdf.Ln(5)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Total Players: %d", report.TotalPlayers))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total Revenue: $%.2f", report.TotalRevenue))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildReportXLSX renders a monthly billing report as a standalone
// xlsx workbook.
func BuildReportXLSX(report *billing.MonthlyReport) ([]byte, error) {
	f := excelize.NewFile()
	sheet := report.Period.Label()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"Player Name", "Clinic", "Status", "Sessions", "Total Charged", "Sibling Discount Note"}
	for col, name := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		_ = f.SetCellValue(sheet, cell, name)
	}
	for i, item := range report.Items {
		row := i + 2
		note := ""
		if item.SiblingFlag {
			note = "CHECK FOR SIBLING DISCOUNT"
		}
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.PlayerName)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.Clinic)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.Status.DisplayName())
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), item.Sessions)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), item.TotalCharge)
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", row), note)
	}

	summaryRow := len(report.Items) + 3
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "MONTHLY SUMMARY")
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow+1), "Total Players:")
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow+1), report.TotalPlayers)
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow+2), "Total Revenue:")
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow+2), report.TotalRevenue)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
