package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
)

// MonthlyTotal is the pending amount due within one calendar month.
type MonthlyTotal struct {
	Year  int
	Month time.Month
	Total decimal.Decimal
}

// MonthlyTotals sums the unpaid installment amounts per calendar month
// between from and to, inclusive. Months without installments appear with a
// zero total so charts render a continuous axis.
func MonthlyTotals(installments []model.Installment, from, to time.Time) []MonthlyTotal {
	type key struct {
		year  int
		month time.Month
	}

	start := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)

	var order []key
	totals := make(map[key]decimal.Decimal)
	for m := start; !m.After(end); m = m.AddDate(0, 1, 0) {
		k := key{m.Year(), m.Month()}
		order = append(order, k)
		totals[k] = decimal.Zero
	}

	for _, inst := range installments {
		if inst.IsPaid() {
			continue
		}
		k := key{inst.DueDate.Year(), inst.DueDate.Month()}
		if current, ok := totals[k]; ok {
			totals[k] = current.Add(inst.Amount).Round(2)
		}
	}

	out := make([]MonthlyTotal, 0, len(order))
	for _, k := range order {
		out = append(out, MonthlyTotal{Year: k.year, Month: k.month, Total: totals[k]})
	}
	return out
}

// TotalPending sums the amounts of all installments not yet fully paid.
func TotalPending(installments []model.Installment) decimal.Decimal {
	total := decimal.Zero
	for _, inst := range installments {
		if !inst.IsPaid() {
			total = total.Add(inst.Amount)
		}
	}
	return total.Round(2)
}

// PortfolioSummary is the owner dashboard and export header: capital
// invested, contracted profit, and how much of each has come back.
type PortfolioSummary struct {
	Invested         decimal.Decimal
	TotalToCollect   decimal.Decimal
	Profit           decimal.Decimal
	PaidTotal        decimal.Decimal
	CapitalRecovered decimal.Decimal
	CapitalPending   decimal.Decimal
	ProfitCollected  decimal.Decimal
}

// Summarize computes the portfolio summary across the owner's loans and all
// their installments. Paid money counts first toward capital, then profit.
func Summarize(loans []model.Loan, installments []model.Installment) PortfolioSummary {
	invested := decimal.Zero
	totalToCollect := decimal.Zero
	for _, l := range loans {
		invested = invested.Add(l.Amount())
		totalToCollect = totalToCollect.Add(l.TotalToRepay())
	}

	paidTotal := decimal.Zero
	for _, inst := range installments {
		if inst.IsPaid() {
			paidTotal = paidTotal.Add(inst.Amount)
		} else {
			paidTotal = paidTotal.Add(inst.PaidAmount)
		}
	}

	capitalRecovered := decimal.Min(paidTotal, invested)
	capitalPending := decimal.Max(invested.Sub(capitalRecovered), decimal.Zero)
	profitCollected := decimal.Max(paidTotal.Sub(invested), decimal.Zero)

	return PortfolioSummary{
		Invested:         invested.Round(2),
		TotalToCollect:   totalToCollect.Round(2),
		Profit:           totalToCollect.Sub(invested).Round(2),
		PaidTotal:        paidTotal.Round(2),
		CapitalRecovered: capitalRecovered.Round(2),
		CapitalPending:   capitalPending.Round(2),
		ProfitCollected:  profitCollected.Round(2),
	}
}
