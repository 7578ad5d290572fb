package spreadsheet_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/infrastructure/spreadsheet"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestWorkbookRoundTrip(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	data := dto.ExportData{
		OwnerName:   "Owner",
		GeneratedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Rows: []dto.ExportInstallmentRow{
			{ClientName: "Maria Lopez", LoanAmount: d("1000"), MarkupPercent: d("10"), StartDate: start,
				DueDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Amount: d("366.66"), Status: "PAID"},
			{ClientName: "Maria Lopez", LoanAmount: d("1000"), MarkupPercent: d("10"), StartDate: start,
				DueDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Amount: d("366.66"), Status: "PARTIAL"},
			{ClientName: "Maria Lopez", LoanAmount: d("1000"), MarkupPercent: d("10"), StartDate: start,
				DueDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), Amount: d("366.68"), Status: "PENDING"},
		},
	}

	content, err := spreadsheet.WriteWorkbook(data)
	require.NoError(t, err)

	rows, err := spreadsheet.ParseWorkbook(content)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	for i, row := range rows {
		assert.Equal(t, "Maria Lopez", row.ClientName)
		assert.True(t, d("1000.00").Equal(row.LoanAmount))
		assert.True(t, d("10").Equal(row.MarkupPercent))
		assert.Equal(t, start, row.StartDate)
		assert.Equal(t, data.Rows[i].DueDate, row.DueDate)
		assert.True(t, data.Rows[i].Amount.Equal(row.Amount))
	}

	// Only PAID survives the trip; partial progress flattens to not paid.
	assert.True(t, rows[0].Paid)
	assert.False(t, rows[1].Paid)
	assert.False(t, rows[2].Paid)
}

func TestParseWorkbook_ForeignSheetFallback(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{
		"Cliente", "Inversión", "Recargo", "Inicio", "Vencimiento", "Cuota", "Estado",
	}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{
		"Pedro", "500.00", "5", "2024-01-15", "2024-02-15", "262.50", "Pagado",
	}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{
		"Pedro", "not-a-number", "5", "2024-01-15", "2024-03-15", "262.50", "Pendiente",
	}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := spreadsheet.ParseWorkbook(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Pedro", rows[0].ClientName)
	assert.True(t, d("500.00").Equal(rows[0].LoanAmount))
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), rows[0].DueDate)
	assert.True(t, rows[0].Paid)

	// The broken amount comes back zero so the importer can skip the row.
	assert.True(t, rows[1].LoanAmount.IsZero())
	assert.False(t, rows[1].Paid)
}

func TestParseWorkbook_EmptyTable(t *testing.T) {
	content, err := spreadsheet.WriteWorkbook(dto.ExportData{OwnerName: "Owner", GeneratedAt: time.Now()})
	require.NoError(t, err)

	rows, err := spreadsheet.ParseWorkbook(content)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
