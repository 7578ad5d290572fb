package spreadsheet

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
)

const (
	sheetSchedule = "Schedule"
	sheetSummary  = "Summary"

	dateLayout = "2006-01-02"
)

// Codec bundles the workbook reader and writer behind value-receiver methods
// so callers can depend on an interface.
type Codec struct{}

// Write renders data as an XLSX workbook.
func (Codec) Write(data dto.ExportData) ([]byte, error) { return WriteWorkbook(data) }

// Parse reads schedule rows out of an uploaded workbook.
func (Codec) Parse(content []byte) ([]dto.ImportInstallmentRow, error) {
	return ParseWorkbook(content)
}

var scheduleHeaders = []string{
	"Client", "Amount", "Markup %", "Start Date", "Due Date", "Installment", "Status",
}

// WriteWorkbook renders portfolio data as an XLSX workbook with a summary
// sheet and a schedule table holding one row per installment. The schedule
// table repeats the loan's identifying columns on every row, so ParseWorkbook
// can rebuild the loans from the table alone.
func WriteWorkbook(data dto.ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, data); err != nil {
		return nil, err
	}
	if err := writeScheduleSheet(f, data.Rows); err != nil {
		return nil, err
	}

	// The default sheet is replaced by ours.
	if idx, err := f.GetSheetIndex(sheetSummary); err == nil {
		f.SetActiveSheet(idx)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, data dto.ExportData) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	rows := [][]any{
		{"Owner", data.OwnerName},
		{"Generated", data.GeneratedAt.Format(dateLayout)},
		{},
		{"Invested", data.Summary.Invested.StringFixed(2)},
		{"Total To Collect", data.Summary.TotalToCollect.StringFixed(2)},
		{"Profit", data.Summary.Profit.StringFixed(2)},
		{"Paid Total", data.Summary.PaidTotal.StringFixed(2)},
		{"Capital Recovered", data.Summary.CapitalRecovered.StringFixed(2)},
		{"Capital Pending", data.Summary.CapitalPending.StringFixed(2)},
		{"Profit Collected", data.Summary.ProfitCollected.StringFixed(2)},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheetSummary, cell, &row); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}
	return nil
}

func writeScheduleSheet(f *excelize.File, rows []dto.ExportInstallmentRow) error {
	if _, err := f.NewSheet(sheetSchedule); err != nil {
		return fmt.Errorf("create schedule sheet: %w", err)
	}

	header := make([]any, len(scheduleHeaders))
	for i, h := range scheduleHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetSchedule, "A1", &header); err != nil {
		return fmt.Errorf("write schedule header: %w", err)
	}

	for i, r := range rows {
		row := []any{
			r.ClientName,
			r.LoanAmount.StringFixed(2),
			r.MarkupPercent.String(),
			r.StartDate.Format(dateLayout),
			r.DueDate.Format(dateLayout),
			r.Amount.StringFixed(2),
			r.Status,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetSchedule, cell, &row); err != nil {
			return fmt.Errorf("write schedule row %d: %w", i+2, err)
		}
	}
	return nil
}

// ParseWorkbook reads schedule rows out of an uploaded workbook. It expects
// the table layout produced by WriteWorkbook: client, loan amount, markup,
// start date, due date, installment amount and status, header on row one.
// Rows that fail to parse are returned with zero values so the caller can
// count and skip them.
func ParseWorkbook(content []byte) ([]dto.ImportInstallmentRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := sheetSchedule
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		// Fall back to the first sheet for workbooks not produced by us.
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	parsed := make([]dto.ImportInstallmentRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		parsed = append(parsed, parseScheduleRow(row))
	}
	return parsed, nil
}

func parseScheduleRow(cells []string) dto.ImportInstallmentRow {
	var row dto.ImportInstallmentRow
	if len(cells) < 7 {
		return row
	}

	row.ClientName = cells[0]
	if amount, err := decimal.NewFromString(cells[1]); err == nil {
		row.LoanAmount = amount
	}
	if markup, err := decimal.NewFromString(cells[2]); err == nil {
		row.MarkupPercent = markup
	}
	if start, err := time.Parse(dateLayout, cells[3]); err == nil {
		row.StartDate = start
	}
	if due, err := time.Parse(dateLayout, cells[4]); err == nil {
		row.DueDate = due
	}
	if amount, err := decimal.NewFromString(cells[5]); err == nil {
		row.Amount = amount
	}
	row.Paid = parsePaid(cells[6])
	return row
}

// parsePaid is deliberately loose: anything that reads as paid counts,
// everything else (PENDING, PARTIAL, blank, unknown) imports as not paid.
// Partial progress is not representable in the workbook.
func parsePaid(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Contains(s, "paid") || strings.Contains(s, "pagad")
}
