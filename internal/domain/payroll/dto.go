package payroll

import (
	"strings"

	"github.com/worktrack/worktrack-backend-go/internal/pkg/validator"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/worktime"
)

type PeriodRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	// Internal use
	Period worktime.Period `json:"-"`
}

func (r *PeriodRequest) Validate() error {
	p, err := worktime.MonthPeriod(r.Year, r.Month)
	if err != nil {
		return validator.ValidationErrors{{
			Field:   "period",
			Message: "year and month must describe a valid month (month 1-12)",
		}}
	}
	r.Period = p
	return nil
}

type ExportFormat string

const (
	ExportFormatXLSX ExportFormat = "xlsx"
	ExportFormatCSV  ExportFormat = "csv"
)

type ExportRequest struct {
	PeriodRequest
	Format ExportFormat `json:"format"`
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := r.PeriodRequest.Validate(); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}

	r.Format = ExportFormat(strings.ToLower(string(r.Format)))
	if r.Format == "" {
		r.Format = ExportFormatXLSX
	}
	if r.Format != ExportFormatXLSX && r.Format != ExportFormatCSV {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format must be one of: xlsx, csv",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Report struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	Lines       []Line `json:"lines"`
	Totals      Totals `json:"totals"`
}

type DepartmentReport struct {
	Year        int              `json:"year"`
	Month       int              `json:"month"`
	Departments []DepartmentLine `json:"departments"`
}

type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
