package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
	"github.com/SAHICA-Code/NovaBank/internal/domain/service"
	"github.com/SAHICA-Code/NovaBank/internal/domain/valueobject"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func row(dueDate time.Time, amount string, status valueobject.InstallmentStatus, paid string) model.Installment {
	pa := d(paid)
	return model.Installment{
		ID:         "i-" + dueDate.Format("2006-01-02"),
		DueDate:    dueDate,
		Amount:     d(amount),
		PaidAmount: pa,
		Remaining:  d(amount).Sub(pa),
		Status:     status,
	}
}

func TestMonthlyTotals(t *testing.T) {
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	apr := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)

	installments := []model.Installment{
		row(jan, "100", valueobject.InstallmentStatusPending, "0"),
		row(jan.AddDate(0, 0, 5), "50", valueobject.InstallmentStatusPartial, "20"),
		row(feb, "200", valueobject.InstallmentStatusPaid, "200"),
		row(apr, "300", valueobject.InstallmentStatusPending, "0"),
	}

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)
	totals := service.MonthlyTotals(installments, from, to)

	// Every month on the axis is present, zero-filled where nothing is due.
	require.Len(t, totals, 4)
	assert.Equal(t, time.January, totals[0].Month)
	assert.True(t, d("150").Equal(totals[0].Total))
	assert.True(t, totals[1].Total.IsZero(), "paid installments are not upcoming")
	assert.True(t, totals[2].Total.IsZero())
	assert.True(t, d("300").Equal(totals[3].Total))
}

func TestTotalPending(t *testing.T) {
	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	installments := []model.Installment{
		row(due, "100", valueobject.InstallmentStatusPending, "0"),
		row(due.AddDate(0, 1, 0), "100", valueobject.InstallmentStatusPartial, "40"),
		row(due.AddDate(0, 2, 0), "100", valueobject.InstallmentStatusPaid, "100"),
	}
	assert.True(t, d("200.00").Equal(service.TotalPending(installments)))
}

func TestSummarize(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	loanA, err := model.NewLoan("owner-1", "client-1", d("1000"), d("10"), 2, start, start)
	require.NoError(t, err)
	loanB, err := model.NewLoan("owner-1", "client-2", d("500"), d("20"), 2, start, start)
	require.NoError(t, err)

	due := start.AddDate(0, 1, 0)
	now := time.Now().UTC()
	installments := []model.Installment{
		model.MarkPaid(row(due, "550", valueobject.InstallmentStatusPending, "0"), now),
		row(due.AddDate(0, 1, 0), "550", valueobject.InstallmentStatusPartial, "250"),
		row(due, "300", valueobject.InstallmentStatusPending, "0"),
		row(due.AddDate(0, 1, 0), "300", valueobject.InstallmentStatusPending, "0"),
	}

	sum := service.Summarize([]model.Loan{loanA, loanB}, installments)

	assert.True(t, d("1500.00").Equal(sum.Invested))
	assert.True(t, d("1700.00").Equal(sum.TotalToCollect))
	assert.True(t, d("200.00").Equal(sum.Profit))
	// 550 from the paid row plus 250 from the partial one.
	assert.True(t, d("800.00").Equal(sum.PaidTotal))
	// All collected money goes to capital first, none to profit yet.
	assert.True(t, d("800.00").Equal(sum.CapitalRecovered))
	assert.True(t, d("700.00").Equal(sum.CapitalPending))
	assert.True(t, sum.ProfitCollected.IsZero())
}

func TestSummarize_ProfitAfterCapitalRecovered(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	loan, err := model.NewLoan("owner-1", "client-1", d("1000"), d("10"), 2, start, start)
	require.NoError(t, err)

	now := time.Now().UTC()
	installments := loan.Installments()
	for i, inst := range installments {
		installments[i] = model.MarkPaid(inst, now)
	}

	sum := service.Summarize([]model.Loan{loan}, installments)

	assert.True(t, d("1100.00").Equal(sum.PaidTotal))
	assert.True(t, d("1000.00").Equal(sum.CapitalRecovered))
	assert.True(t, sum.CapitalPending.IsZero())
	assert.True(t, d("100.00").Equal(sum.ProfitCollected))
}

func TestSummarize_Empty(t *testing.T) {
	sum := service.Summarize(nil, nil)
	assert.True(t, sum.Invested.IsZero())
	assert.True(t, sum.Profit.IsZero())
	assert.True(t, sum.PaidTotal.IsZero())
}
