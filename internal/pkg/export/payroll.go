package export

import (
	"fmt"

	"github.com/gocarina/gocsv"
	"github.com/worktrack/worktrack-backend-go/internal/domain/payroll"
	"github.com/xuri/excelize/v2"
)

const payrollSheet = "Payroll"

// amount columns (Regular Hours .. Net Pay) start at D
const firstAmountColumn = 4

type payrollRow struct {
	EmployeeID     string `csv:"Employee ID"`
	Name           string `csv:"Name"`
	Department     string `csv:"Department"`
	RegularHours   string `csv:"Regular Hours"`
	OvertimeHours  string `csv:"Overtime Hours"`
	HourlyRate     string `csv:"Hourly Rate"`
	GrossPay       string `csv:"Gross Pay"`
	Tax            string `csv:"Tax"`
	Reimbursements string `csv:"Reimbursements"`
	NetPay         string `csv:"Net Pay"`
}

func toRow(l payroll.Line) payrollRow {
	v := l.Values()
	return payrollRow{
		EmployeeID:     v[0],
		Name:           v[1],
		Department:     v[2],
		RegularHours:   v[3],
		OvertimeHours:  v[4],
		HourlyRate:     v[5],
		GrossPay:       v[6],
		Tax:            v[7],
		Reimbursements: v[8],
		NetPay:         v[9],
	}
}

// PayrollCSV renders lines as CSV with a header row.
func PayrollCSV(lines []payroll.Line) ([]byte, error) {
	rows := make([]payrollRow, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, toRow(l))
	}

	data, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("marshal payroll csv: %w", err)
	}
	return data, nil
}

// PayrollXLSX renders lines as a single-sheet workbook with a totals row.
func PayrollXLSX(title string, lines []payroll.Line, totals payroll.Totals) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", payrollSheet); err != nil {
		return nil, err
	}

	if err := f.SetCellValue(payrollSheet, "A1", title); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(payroll.Columns))
	for i, c := range payroll.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(payrollSheet, "A3", &header); err != nil {
		return nil, err
	}

	row := 4
	for _, l := range lines {
		values := []interface{}{
			l.EmployeeID,
			l.Name,
			l.Department,
			l.RegularHours.InexactFloat64(),
			l.OvertimeHours.InexactFloat64(),
			l.HourlyRate.InexactFloat64(),
			l.GrossPay.InexactFloat64(),
			l.Tax.InexactFloat64(),
			l.Reimbursements.InexactFloat64(),
			l.NetPay.InexactFloat64(),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(payrollSheet, cell, &values); err != nil {
			return nil, err
		}
		row++
	}

	totalRow := []interface{}{
		"Total", "", "",
		totals.RegularHours.InexactFloat64(),
		totals.OvertimeHours.InexactFloat64(),
		"",
		totals.GrossPay.InexactFloat64(),
		totals.Tax.InexactFloat64(),
		totals.Reimbursements.InexactFloat64(),
		totals.NetPay.InexactFloat64(),
	}
	totalCell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(payrollSheet, totalCell, &totalRow); err != nil {
		return nil, err
	}

	if err := styleSheet(f, row); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write payroll workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func styleSheet(f *excelize.File, lastRow int) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	// 4 is the built-in "#,##0.00" format
	amount, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return err
	}

	if err := f.SetCellStyle(payrollSheet, "A1", "A1", bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(payrollSheet, "A3", "J3", bold); err != nil {
		return err
	}

	from, err := excelize.CoordinatesToCellName(firstAmountColumn, 4)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(len(payroll.Columns), lastRow)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(payrollSheet, from, to, amount); err != nil {
		return err
	}

	return f.SetColWidth(payrollSheet, "A", "J", 16)
}
