package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SAHICA-Code/NovaBank/internal/domain/valueobject"
)

var hundred = decimal.NewFromInt(100)

// addMonths advances t by n calendar months, clamping the day of month to
// the last day of the target month instead of letting it overflow into the
// next one: 2024-01-31 plus one month is 2024-02-29, not 2024-03-02.
func addMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	first := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

// Schedule is the output of the flat-markup builder: an ordered sequence of
// installments plus the contracted total and the representative monthly
// amount ("cuota").
type Schedule struct {
	Total   decimal.Decimal
	Monthly decimal.Decimal
	Rows    []Installment
}

// BuildFlatMarkupSchedule computes a repayment schedule for a simple,
// non-compounding markup ("recargo") loan.
//
//	total = round2(amount * (1 + markupPercent/100))
//
// The total is split into equal installments truncated to two decimals; the
// last installment absorbs the rounding remainder, so the rows always sum to
// the total exactly. The first installment is due one calendar month after
// startDate. Under this mode interest is zero and principal equals the row
// amount.
//
// Inputs are assumed validated (amount > 0, months >= 1, markupPercent >= 0);
// the function returns nil rows for a non-positive term or amount.
func BuildFlatMarkupSchedule(
	amount decimal.Decimal,
	months int,
	markupPercent decimal.Decimal,
	startDate time.Time,
) Schedule {
	if months <= 0 || amount.LessThanOrEqual(decimal.Zero) {
		return Schedule{}
	}

	total := amount.Mul(decimal.NewFromInt(1).Add(markupPercent.Div(hundred))).Round(2)

	// Truncated base guarantees base*months <= total; the last row reconciles.
	base := total.Div(decimal.NewFromInt(int64(months))).RoundDown(2)

	rows := make([]Installment, 0, months)
	accumulated := decimal.Zero
	for i := 1; i <= months; i++ {
		dueDate := addMonths(startDate, i)
		cuota := base
		if i == months {
			cuota = total.Sub(accumulated)
		}
		accumulated = accumulated.Add(cuota)

		rows = append(rows, Installment{
			Period:    i,
			DueDate:   dueDate,
			Amount:    cuota,
			Principal: cuota,
			Interest:  decimal.Zero,
			Remaining: cuota,
			Status:    valueobject.InstallmentStatusPending,
		})
	}

	return Schedule{
		Total:   total,
		Monthly: rows[0].Amount,
		Rows:    rows,
	}
}

// BuildInterestSchedule computes a standard fixed-payment (French)
// amortization schedule.
//
//	monthlyRate = annualRatePct / 12 / 100
//	payment     = P * r / (1 - (1+r)^-n)
//
// monthlyExtras is a flat per-installment addition (insurance and the like);
// it is added to each row amount but never amortized, so it does not affect
// the running balance or the interest computation. The last period is
// adjusted so the balance reaches exactly zero despite rounding. A zero rate
// degenerates to an even principal split.
func BuildInterestSchedule(
	principal decimal.Decimal,
	annualRatePct decimal.Decimal,
	months int,
	startDate time.Time,
	monthlyExtras decimal.Decimal,
) []Installment {
	if months <= 0 || principal.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	// float64 only for the power term; monetary arithmetic stays decimal.
	monthlyRate := annualRatePct.InexactFloat64() / 12.0 / 100.0

	var payment decimal.Decimal
	if monthlyRate == 0 {
		payment = principal.Div(decimal.NewFromInt(int64(months))).Round(2)
	} else {
		factor := math.Pow(1+monthlyRate, -float64(months))
		payment = decimal.NewFromFloat(principal.InexactFloat64() * monthlyRate / (1 - factor)).Round(2)
	}

	monthlyRateDec := decimal.NewFromFloat(monthlyRate)
	rows := make([]Installment, 0, months)
	saldo := principal

	for period := 1; period <= months; period++ {
		interest := saldo.Mul(monthlyRateDec).Round(2)
		principalPaid := payment.Sub(interest)

		// Last period: absorb the rounding drift so saldo hits zero.
		if period == months {
			principalPaid = saldo
			payment = principalPaid.Add(interest)
		}
		saldo = saldo.Sub(principalPaid)
		if saldo.IsNegative() {
			saldo = decimal.Zero
		}

		amount := payment.Add(monthlyExtras).Round(2)
		rows = append(rows, Installment{
			Period:    period,
			DueDate:   addMonths(startDate, period),
			Amount:    amount,
			Principal: principalPaid.Round(2),
			Interest:  interest,
			Extras:    monthlyExtras,
			Remaining: amount,
			Status:    valueobject.InstallmentStatusPending,
		})
	}

	return rows
}

// BuildManualSchedule produces a fixed-amount schedule for tracker-panel
// loans where the user enters the monthly payment directly.
func BuildManualSchedule(
	startDate time.Time,
	months int,
	monthlyPayment decimal.Decimal,
	monthlyExtras decimal.Decimal,
) []Installment {
	if months <= 0 || monthlyPayment.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	amount := monthlyPayment.Add(monthlyExtras).Round(2)
	rows := make([]Installment, 0, months)
	for i := 1; i <= months; i++ {
		rows = append(rows, Installment{
			Period:    i,
			DueDate:   addMonths(startDate, i),
			Amount:    amount,
			Principal: monthlyPayment.Round(2),
			Extras:    monthlyExtras,
			Remaining: amount,
			Status:    valueobject.InstallmentStatusPending,
		})
	}
	return rows
}

// ValidateLoanTerms checks the flat-markup builder preconditions and returns
// the first violated one.
func ValidateLoanTerms(amount decimal.Decimal, months int, markupPercent decimal.Decimal, startDate time.Time) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if months < 1 {
		return ErrInvalidTerm
	}
	if markupPercent.IsNegative() {
		return ErrInvalidMarkup
	}
	if startDate.IsZero() {
		return ErrInvalidDate
	}
	return nil
}
