package billing

import "errors"

var (
	ErrInvalidMonth     = errors.New("billing: month out of range")
	ErrInvalidYear      = errors.New("billing: invalid year")
	ErrNoAttendanceData = errors.New("billing: no attendance data")
	ErrNilPricingTable  = errors.New("billing: nil pricing table")
	ErrNilStore         = errors.New("billing: nil attendance store")
	ErrNilReportWriter  = errors.New("billing: nil report writer")
)
