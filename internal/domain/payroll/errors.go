package payroll

import "errors"

var (
	ErrInvalidSettings         = errors.New("invalid payroll settings")
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
	ErrNegativeHours           = errors.New("attendance record has negative hours")
	ErrNegativeExpense         = errors.New("expense has a negative amount")
)
