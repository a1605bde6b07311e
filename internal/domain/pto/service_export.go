package pto

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// BalanceSummaryPDF renders the employee's balance summary as a one-page PDF.
func (s *Service) BalanceSummaryPDF(ctx context.Context, employeeID int64) ([]byte, error) {
	employee, err := s.Store.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	rows, err := s.Store.BalanceSummary(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "PTO Balance Summary")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s", employee.FirstName, employee.LastName))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(70, 8, "PTO Type", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, "Allotted", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Used", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Remaining", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range rows {
		pdf.CellFormat(70, 8, row.DisplayName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", row.Allotted), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", row.Used), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", row.Remaining), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CalendarXLSX renders the month's absence calendar as an xlsx workbook.
func (s *Service) CalendarXLSX(ctx context.Context, month string, q CalendarQuery) ([]byte, error) {
	entries, err := s.Store.CalendarEntries(ctx, q)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Calendar"
	f.SetSheetName("Sheet1", sheet)

	if err := f.SetCellValue(sheet, "A1", "PTO Calendar "+month); err != nil {
		return nil, err
	}

	headers := []string{"Employee", "PTO Type", "Start Date", "End Date", "Hours", "Notes"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for rowIdx, entry := range entries {
		values := []any{
			entry.EmployeeLast + ", " + entry.EmployeeFirst,
			entry.PTOTypeName,
			entry.StartDate.String(),
			entry.EndDate.String(),
			entry.Hours,
			entry.Notes,
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+3)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
