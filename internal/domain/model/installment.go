package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SAHICA-Code/NovaBank/internal/domain/valueobject"
)

// Validation errors detected at the boundary, before the pure schedule and
// waterfall functions run.
var (
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidTerm      = errors.New("term must be at least one month")
	ErrInvalidMarkup    = errors.New("markup percent must not be negative")
	ErrInvalidRate      = errors.New("annual rate must not be negative")
	ErrInvalidDate      = errors.New("invalid start date")
	ErrInvalidPayment   = errors.New("payment amount must be positive")
	ErrMissingReference = errors.New("owner and client references are required")
)

// Installment is one row of a repayment schedule. Amount is the nominal value
// fixed at schedule creation; Remaining always equals
// max(Amount - PaidAmount, 0).
type Installment struct {
	ID         string
	LoanID     string
	Period     int
	DueDate    time.Time
	Amount     decimal.Decimal
	Principal  decimal.Decimal
	Interest   decimal.Decimal
	Extras     decimal.Decimal
	PaidAmount decimal.Decimal
	Remaining  decimal.Decimal
	Status     valueobject.InstallmentStatus
	PaidAt     *time.Time
}

// IsPaid returns true when the installment has reached its terminal state.
func (i Installment) IsPaid() bool {
	return i.Status.Equal(valueobject.InstallmentStatusPaid)
}

// Outstanding returns the remaining balance, defaulting to the full amount
// for rows persisted before partial-payment tracking existed.
func (i Installment) Outstanding() decimal.Decimal {
	if i.Remaining.IsZero() && i.PaidAmount.IsZero() && !i.IsPaid() {
		return i.Amount
	}
	return i.Remaining
}

// receive applies an amount toward the installment and recomputes remaining,
// status and paidAt. trackPartial selects PARTIAL over PENDING for rows that
// are partly covered. paidAt is set exactly once, on the transition to PAID.
func (i Installment) receive(amount decimal.Decimal, now time.Time, trackPartial bool) Installment {
	next := i
	next.PaidAmount = i.PaidAmount.Add(amount)
	next.Remaining = i.Outstanding().Sub(amount)
	if next.Remaining.IsNegative() {
		next.Remaining = decimal.Zero
	}

	if next.Remaining.IsZero() {
		next.Status = valueobject.InstallmentStatusPaid
		if i.PaidAt == nil {
			paidAt := now
			next.PaidAt = &paidAt
		}
		return next
	}

	if trackPartial && next.PaidAmount.IsPositive() {
		next.Status = valueobject.InstallmentStatusPartial
	} else {
		next.Status = valueobject.InstallmentStatusPending
	}
	return next
}

// MarkPaid unconditionally settles the installment, independent of amount.
// Remaining is zeroed and PaidAmount topped up so the balance invariant
// holds. A no-op when the installment is already PAID.
func MarkPaid(i Installment, now time.Time) Installment {
	if i.IsPaid() {
		return i
	}
	next := i
	next.Status = valueobject.InstallmentStatusPaid
	next.PaidAmount = i.Amount
	next.Remaining = decimal.Zero
	paidAt := now
	next.PaidAt = &paidAt
	return next
}
