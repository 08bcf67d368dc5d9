package spreadsheet

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	attendance "rollcall-billing/internal/attendance/domain"
)

const (
	attendanceSheet = "Attendance"

	headerFill      = "2E7D32"
	headerFontColor = "FFFFFF"
)

var headerColumns = []string{"Date", "Clinic", "Coaches", "Player Name", "Status"}

// Store persists attendance rows in an xlsx workbook, one row per
// player per session. The workbook and the Attendance sheet are
// created on first append.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore constructs a store over the given workbook path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("attendance spreadsheet: empty path")
	}
	return &Store{path: path}, nil
}

// Append writes records to the end of the Attendance sheet. There is
// no rollback: a failure after some rows were written leaves those
// rows in place.
func (s *Store) Append(ctx context.Context, records []attendance.Record) error {
	_ = ctx
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, created, err := s.open()
	if err != nil {
		return err
	}
	defer file.Close()

	if created {
		if err := writeHeader(file); err != nil {
			return err
		}
	}

	rows, err := file.GetRows(attendanceSheet)
	if err != nil {
		return err
	}
	next := len(rows) + 1
	for i, record := range records {
		values := []any{
			record.Date,
			record.Clinic,
			record.CoachList(),
			record.PlayerName,
			string(record.Status),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, next+i)
			if err != nil {
				return err
			}
			if err := file.SetCellValue(attendanceSheet, cell, value); err != nil {
				return err
			}
		}
	}

	return file.SaveAs(s.path)
}

// All reads every attendance row. A missing workbook means no data,
// not an error. Rows missing the status column default to member,
// covering legacy data written before the column existed.
func (s *Store) All(ctx context.Context) ([]attendance.Record, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	file, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rows, err := file.GetRows(attendanceSheet)
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	records := make([]attendance.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := attendance.Record{
			Date:       cellAt(row, 0),
			Clinic:     cellAt(row, 1),
			Coaches:    splitCoaches(cellAt(row, 2)),
			PlayerName: cellAt(row, 3),
			Status:     attendance.ParseStatus(cellAt(row, 4)),
		}
		if record.Date == "" && record.PlayerName == "" {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *Store) open() (*excelize.File, bool, error) {
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		file := excelize.NewFile()
		if err := file.SetSheetName("Sheet1", attendanceSheet); err != nil {
			file.Close()
			return nil, false, err
		}
		return file, true, nil
	}
	file, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, false, err
	}
	return file, false, nil
}

func writeHeader(file *excelize.File) error {
	for col, name := range headerColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(attendanceSheet, cell, name); err != nil {
			return err
		}
	}

	styleID, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: headerFontColor},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	if err := file.SetCellStyle(attendanceSheet, "A1", "E1", styleID); err != nil {
		return err
	}

	widths := map[string]float64{"A": 17, "B": 43, "C": 36, "D": 28, "E": 11}
	for col, width := range widths {
		if err := file.SetColWidth(attendanceSheet, col, col, width); err != nil {
			return err
		}
	}

	return file.SetPanes(attendanceSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func cellAt(row []string, index int) string {
	if index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

func splitCoaches(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	coaches := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			coaches = append(coaches, part)
		}
	}
	if len(coaches) == 0 {
		return nil
	}
	return coaches
}
