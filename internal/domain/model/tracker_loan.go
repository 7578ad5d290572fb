package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SAHICA-Code/NovaBank/internal/domain/event"
	"github.com/SAHICA-Code/NovaBank/internal/domain/valueobject"
)

// ErrInvalidTitle is returned when a tracker loan title is too short.
var ErrInvalidTitle = errors.New("title must have at least two characters")

// ErrInstallmentNotFound is returned when an installment ID does not belong
// to the aggregate it was addressed through.
var ErrInstallmentNotFound = errors.New("installment not found")

// TrackerLoan is a borrower-panel loan the user tracks against their own
// lenders. The schedule is either entered manually (fixed monthly payment)
// or derived from an annual interest rate.
type TrackerLoan struct {
	id             string
	userID         string
	title          string
	loanType       valueobject.TrackerLoanType
	startDate      time.Time
	months         int
	monthlyPayment decimal.Decimal
	monthlyExtras  decimal.Decimal
	installments   []Installment
	finishedAt     *time.Time
	createdAt      time.Time
	updatedAt      time.Time
	domainEvents   []event.DomainEvent
}

// NewTrackerLoan creates a tracker loan with a manual fixed-payment schedule.
func NewTrackerLoan(
	userID, title string,
	loanType valueobject.TrackerLoanType,
	startDate time.Time,
	months int,
	monthlyPayment, monthlyExtras decimal.Decimal,
	now time.Time,
) (TrackerLoan, error) {
	title = strings.TrimSpace(title)
	if len(title) < 2 {
		return TrackerLoan{}, ErrInvalidTitle
	}
	if months < 1 {
		return TrackerLoan{}, ErrInvalidTerm
	}
	if monthlyPayment.LessThanOrEqual(decimal.Zero) {
		return TrackerLoan{}, ErrInvalidAmount
	}
	if monthlyExtras.IsNegative() {
		return TrackerLoan{}, ErrInvalidAmount
	}
	if startDate.IsZero() {
		return TrackerLoan{}, ErrInvalidDate
	}

	id := uuid.New().String()
	rows := attachRows(id, BuildManualSchedule(startDate, months, monthlyPayment, monthlyExtras))

	loan := TrackerLoan{
		id:             id,
		userID:         userID,
		title:          title,
		loanType:       loanType,
		startDate:      startDate,
		months:         months,
		monthlyPayment: monthlyPayment.Round(2),
		monthlyExtras:  monthlyExtras.Round(2),
		installments:   rows,
		createdAt:      now,
		updatedAt:      now,
	}
	loan.domainEvents = append(loan.domainEvents, event.NewTrackerLoanCreated(
		id, userID, title, loanType.String(), months, loan.monthlyPayment,
	))
	return loan, nil
}

// NewTrackerLoanWithInterest creates a tracker loan whose schedule follows
// the fixed-payment amortization formula for the given annual rate.
func NewTrackerLoanWithInterest(
	userID, title string,
	loanType valueobject.TrackerLoanType,
	principal, annualRatePct decimal.Decimal,
	months int,
	startDate time.Time,
	monthlyExtras decimal.Decimal,
	now time.Time,
) (TrackerLoan, error) {
	title = strings.TrimSpace(title)
	if len(title) < 2 {
		return TrackerLoan{}, ErrInvalidTitle
	}
	if months < 1 {
		return TrackerLoan{}, ErrInvalidTerm
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return TrackerLoan{}, ErrInvalidAmount
	}
	if annualRatePct.IsNegative() {
		return TrackerLoan{}, ErrInvalidRate
	}
	if startDate.IsZero() {
		return TrackerLoan{}, ErrInvalidDate
	}

	id := uuid.New().String()
	rows := attachRows(id, BuildInterestSchedule(principal, annualRatePct, months, startDate, monthlyExtras))

	loan := TrackerLoan{
		id:             id,
		userID:         userID,
		title:          title,
		loanType:       loanType,
		startDate:      startDate,
		months:         months,
		monthlyPayment: rows[0].Amount,
		monthlyExtras:  monthlyExtras.Round(2),
		installments:   rows,
		createdAt:      now,
		updatedAt:      now,
	}
	loan.domainEvents = append(loan.domainEvents, event.NewTrackerLoanCreated(
		id, userID, title, loanType.String(), months, loan.monthlyPayment,
	))
	return loan, nil
}

// ReconstructTrackerLoan rebuilds a TrackerLoan from persistence.
func ReconstructTrackerLoan(
	id, userID, title string,
	loanType valueobject.TrackerLoanType,
	startDate time.Time,
	months int,
	monthlyPayment, monthlyExtras decimal.Decimal,
	installments []Installment,
	finishedAt *time.Time,
	createdAt, updatedAt time.Time,
) TrackerLoan {
	return TrackerLoan{
		id:             id,
		userID:         userID,
		title:          title,
		loanType:       loanType,
		startDate:      startDate,
		months:         months,
		monthlyPayment: monthlyPayment,
		monthlyExtras:  monthlyExtras,
		installments:   installments,
		finishedAt:     finishedAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// MarkInstallmentPaid settles one schedule row. When that was the last open
// row the loan is finished in the same transition.
func (t TrackerLoan) MarkInstallmentPaid(installmentID string, now time.Time) (TrackerLoan, error) {
	idx := -1
	for i, inst := range t.installments {
		if inst.ID == installmentID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return t, ErrInstallmentNotFound
	}

	next := t
	next.installments = make([]Installment, len(t.installments))
	copy(next.installments, t.installments)
	next.installments[idx] = MarkPaid(next.installments[idx], now)
	next.updatedAt = now

	for _, inst := range next.installments {
		if !inst.IsPaid() {
			return next, nil
		}
	}
	return next.Finish(now), nil
}

// Finish stamps the loan as fully repaid.
func (t TrackerLoan) Finish(now time.Time) TrackerLoan {
	if t.finishedAt != nil {
		return t
	}
	next := t
	finished := now
	next.finishedAt = &finished
	next.updatedAt = now
	return next
}

func (t TrackerLoan) ID() string                        { return t.id }
func (t TrackerLoan) UserID() string                    { return t.userID }
func (t TrackerLoan) Title() string                     { return t.title }
func (t TrackerLoan) Type() valueobject.TrackerLoanType { return t.loanType }
func (t TrackerLoan) StartDate() time.Time              { return t.startDate }
func (t TrackerLoan) Months() int                       { return t.months }
func (t TrackerLoan) MonthlyPayment() decimal.Decimal   { return t.monthlyPayment }
func (t TrackerLoan) MonthlyExtras() decimal.Decimal    { return t.monthlyExtras }
func (t TrackerLoan) FinishedAt() *time.Time            { return t.finishedAt }
func (t TrackerLoan) CreatedAt() time.Time              { return t.createdAt }
func (t TrackerLoan) UpdatedAt() time.Time              { return t.updatedAt }
func (t TrackerLoan) DomainEvents() []event.DomainEvent { return t.domainEvents }

// Installments returns a defensive copy of the schedule rows.
func (t TrackerLoan) Installments() []Installment {
	if t.installments == nil {
		return nil
	}
	out := make([]Installment, len(t.installments))
	copy(out, t.installments)
	return out
}

// ClearEvents returns a copy with an empty event list.
func (t TrackerLoan) ClearEvents() TrackerLoan {
	next := t
	next.domainEvents = nil
	return next
}
