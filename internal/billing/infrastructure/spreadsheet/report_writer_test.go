package spreadsheet

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	attendance "rollcall-billing/internal/attendance/domain"
	billing "rollcall-billing/internal/billing/domain"
)

func testReport(t *testing.T) *billing.MonthlyReport {
	t.Helper()
	period, err := billing.NewPeriod(1, 2026)
	if err != nil {
		t.Fatalf("new period: %v", err)
	}
	return &billing.MonthlyReport{
		Period: period,
		Items: []billing.LineItem{
			{PlayerName: "Jones, Carl", Clinic: "Red Ball", Status: attendance.StatusGuest, Sessions: 3, TotalCharge: 60},
			{PlayerName: "Smith, Alice", Clinic: "Bruno", Status: attendance.StatusMember, Sessions: 2, TotalCharge: 40, SiblingFlag: true},
			{PlayerName: "Smith, Bob", Clinic: "Bruno", Status: attendance.StatusMember, Sessions: 1, TotalCharge: 20, SiblingFlag: true},
		},
		TotalPlayers: 3,
		TotalRevenue: 120,
	}
}

func TestReplace_WritesPeriodSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "billing.xlsx")
	writer, err := NewReportWriter(path)
	if err != nil {
		t.Fatalf("new report writer: %v", err)
	}
	report := testReport(t)

	if err := writer.Replace(context.Background(), report); err != nil {
		t.Fatalf("replace: %v", err)
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer file.Close()

	sheet := report.Period.Label()
	if index, err := file.GetSheetIndex(sheet); err != nil || index == -1 {
		t.Fatalf("expected sheet %q, index=%d err=%v", sheet, index, err)
	}
	if index, err := file.GetSheetIndex("Sheet1"); err != nil || index != -1 {
		t.Fatalf("default sheet must be removed, index=%d err=%v", index, err)
	}

	rows, err := file.GetRows(sheet)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	for i, want := range reportColumns {
		if rows[0][i] != want {
			t.Fatalf("header column %d: expected %q, got %q", i, want, rows[0][i])
		}
	}
	if rows[1][0] != "Jones, Carl" || rows[1][2] != "Guest" {
		t.Fatalf("unexpected first line item row: %v", rows[1])
	}
	if rows[2][5] != siblingNote {
		t.Fatalf("sibling rows must carry the discount note, got %q", rows[2][5])
	}
	if rows[1][5] != "" {
		t.Fatalf("non-sibling rows must not carry a note, got %q", rows[1][5])
	}

	summaryRow := len(report.Items) + 3
	if got, _ := file.GetCellValue(sheet, cellName(1, summaryRow)); got != "MONTHLY SUMMARY" {
		t.Fatalf("expected summary heading, got %q", got)
	}
	if got, _ := file.GetCellValue(sheet, cellName(2, summaryRow+1)); got != "3" {
		t.Fatalf("expected total players 3, got %q", got)
	}
}

func TestReplace_RerunConverges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "billing.xlsx")
	writer, err := NewReportWriter(path)
	if err != nil {
		t.Fatalf("new report writer: %v", err)
	}
	first := testReport(t)
	if err := writer.Replace(context.Background(), first); err != nil {
		t.Fatalf("first replace: %v", err)
	}

	second := &billing.MonthlyReport{
		Period: first.Period,
		Items: []billing.LineItem{
			{PlayerName: "Smith, Alice", Clinic: "Bruno", Status: attendance.StatusMember, Sessions: 1, TotalCharge: 20},
		},
		TotalPlayers: 1,
		TotalRevenue: 20,
	}
	if err := writer.Replace(context.Background(), second); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer file.Close()

	sheet := first.Period.Label()
	if index, err := file.GetSheetIndex(sheet + " (stale)"); err != nil || index != -1 {
		t.Fatalf("stale sheet must be removed, index=%d err=%v", index, err)
	}
	rows, err := file.GetRows(sheet)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	dataRows := 0
	for _, row := range rows[1:] {
		if len(row) > 0 && row[0] == "Smith, Alice" {
			dataRows++
		}
		if len(row) > 0 && row[0] == "Jones, Carl" {
			t.Fatalf("old line items must not survive a rerun")
		}
	}
	if dataRows != 1 {
		t.Fatalf("expected exactly one line item after rerun, got %d", dataRows)
	}
}

func TestReplace_SeparateSheetsPerPeriod(t *testing.T) {
	path := filepath.Join(t.TempDir(), "billing.xlsx")
	writer, err := NewReportWriter(path)
	if err != nil {
		t.Fatalf("new report writer: %v", err)
	}
	january := testReport(t)
	if err := writer.Replace(context.Background(), january); err != nil {
		t.Fatalf("january replace: %v", err)
	}

	february, err := billing.NewPeriod(2, 2026)
	if err != nil {
		t.Fatalf("new period: %v", err)
	}
	if err := writer.Replace(context.Background(), &billing.MonthlyReport{
		Period: february,
		Items: []billing.LineItem{
			{PlayerName: "Smith, Alice", Clinic: "Bruno", Status: attendance.StatusMember, Sessions: 1, TotalCharge: 20},
		},
		TotalPlayers: 1,
		TotalRevenue: 20,
	}); err != nil {
		t.Fatalf("february replace: %v", err)
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer file.Close()

	for _, sheet := range []string{"January 2026", "February 2026"} {
		if index, err := file.GetSheetIndex(sheet); err != nil || index == -1 {
			t.Fatalf("expected sheet %q, index=%d err=%v", sheet, index, err)
		}
	}
}
