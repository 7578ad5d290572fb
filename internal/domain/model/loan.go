package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SAHICA-Code/NovaBank/internal/domain/event"
	"github.com/SAHICA-Code/NovaBank/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Loan aggregate root (owner-side markup loan)
// ---------------------------------------------------------------------------

// Loan is an immutable aggregate. Mutations return a new copy.
type Loan struct {
	id            string
	ownerID       string
	clientID      string
	amount        decimal.Decimal
	markupPercent decimal.Decimal
	months        int
	totalToRepay  decimal.Decimal
	startDate     time.Time
	installments  []Installment
	version       int
	createdAt     time.Time
	updatedAt     time.Time
	domainEvents  []event.DomainEvent
}

// NewLoan validates the loan terms, generates the flat-markup schedule and
// returns the loan in its initial state.
func NewLoan(
	ownerID, clientID string,
	amount, markupPercent decimal.Decimal,
	months int,
	startDate time.Time,
	now time.Time,
) (Loan, error) {
	if ownerID == "" || clientID == "" {
		return Loan{}, ErrMissingReference
	}
	if err := ValidateLoanTerms(amount, months, markupPercent, startDate); err != nil {
		return Loan{}, err
	}

	id := uuid.New().String()
	schedule := BuildFlatMarkupSchedule(amount, months, markupPercent, startDate)
	rows := attachRows(id, schedule.Rows)

	loan := Loan{
		id:            id,
		ownerID:       ownerID,
		clientID:      clientID,
		amount:        amount.Round(2),
		markupPercent: markupPercent,
		months:        months,
		totalToRepay:  schedule.Total,
		startDate:     startDate,
		installments:  rows,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}

	loan.domainEvents = append(loan.domainEvents, event.NewLoanCreated(
		id, ownerID, clientID, loan.amount, markupPercent, months, schedule.Total, startDate,
	))

	return loan, nil
}

// ImportedRow is one schedule row carried in from an external workbook:
// due date and amount come from the file, not from the schedule builder.
type ImportedRow struct {
	DueDate time.Time
	Amount  decimal.Decimal
	Paid    bool
}

// ImportLoan creates a loan whose installment set is taken verbatim from
// imported rows, preserving each row's due date, amount and paid state. The
// term is the number of rows; the contracted total still follows the markup
// formula so the loan reads like one created in the app.
func ImportLoan(
	ownerID, clientID string,
	amount, markupPercent decimal.Decimal,
	startDate time.Time,
	imported []ImportedRow,
	now time.Time,
) (Loan, error) {
	if ownerID == "" || clientID == "" {
		return Loan{}, ErrMissingReference
	}
	months := len(imported)
	if err := ValidateLoanTerms(amount, months, markupPercent, startDate); err != nil {
		return Loan{}, err
	}
	for _, row := range imported {
		if row.Amount.LessThanOrEqual(decimal.Zero) {
			return Loan{}, ErrInvalidAmount
		}
		if row.DueDate.IsZero() {
			return Loan{}, ErrInvalidDate
		}
	}

	total := amount.Mul(decimal.NewFromInt(1).Add(markupPercent.Div(hundred))).Round(2)

	id := uuid.New().String()
	rows := make([]Installment, 0, months)
	for i, row := range imported {
		inst := Installment{
			Period:    i + 1,
			DueDate:   row.DueDate,
			Amount:    row.Amount,
			Principal: row.Amount,
			Interest:  decimal.Zero,
			Remaining: row.Amount,
			Status:    valueobject.InstallmentStatusPending,
		}
		if row.Paid {
			inst = MarkPaid(inst, now)
		}
		rows = append(rows, inst)
	}

	loan := Loan{
		id:            id,
		ownerID:       ownerID,
		clientID:      clientID,
		amount:        amount.Round(2),
		markupPercent: markupPercent,
		months:        months,
		totalToRepay:  total,
		startDate:     startDate,
		installments:  attachRows(id, rows),
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}

	loan.domainEvents = append(loan.domainEvents, event.NewLoanCreated(
		id, ownerID, clientID, loan.amount, markupPercent, months, total, startDate,
	))

	return loan, nil
}

// ReconstructLoan rebuilds a Loan aggregate from persistence.
func ReconstructLoan(
	id, ownerID, clientID string,
	amount, markupPercent decimal.Decimal,
	months int,
	totalToRepay decimal.Decimal,
	startDate time.Time,
	installments []Installment,
	version int,
	createdAt, updatedAt time.Time,
) Loan {
	return Loan{
		id:            id,
		ownerID:       ownerID,
		clientID:      clientID,
		amount:        amount,
		markupPercent: markupPercent,
		months:        months,
		totalToRepay:  totalToRepay,
		startDate:     startDate,
		installments:  installments,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Reschedule replaces the loan terms and regenerates the full installment
// set. Existing installments are discarded, never edited in place.
func (l Loan) Reschedule(
	clientID string,
	amount, markupPercent decimal.Decimal,
	months int,
	startDate time.Time,
	now time.Time,
) (Loan, error) {
	if clientID == "" {
		clientID = l.clientID
	}
	if err := ValidateLoanTerms(amount, months, markupPercent, startDate); err != nil {
		return l, err
	}

	schedule := BuildFlatMarkupSchedule(amount, months, markupPercent, startDate)

	next := l
	next.clientID = clientID
	next.amount = amount.Round(2)
	next.markupPercent = markupPercent
	next.months = months
	next.totalToRepay = schedule.Total
	next.startDate = startDate
	next.installments = attachRows(l.id, schedule.Rows)
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanRescheduled(
		l.id, l.ownerID, next.amount, markupPercent, months, schedule.Total, startDate,
	))
	return next, nil
}

// IsSettled reports whether every installment has been paid.
func (l Loan) IsSettled() bool {
	if len(l.installments) == 0 {
		return false
	}
	for _, inst := range l.installments {
		if !inst.IsPaid() {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (l Loan) ID() string                      { return l.id }
func (l Loan) OwnerID() string                 { return l.ownerID }
func (l Loan) ClientID() string                { return l.clientID }
func (l Loan) Amount() decimal.Decimal         { return l.amount }
func (l Loan) MarkupPercent() decimal.Decimal  { return l.markupPercent }
func (l Loan) Months() int                     { return l.months }
func (l Loan) TotalToRepay() decimal.Decimal   { return l.totalToRepay }
func (l Loan) StartDate() time.Time            { return l.startDate }
func (l Loan) Version() int                    { return l.version }
func (l Loan) CreatedAt() time.Time            { return l.createdAt }
func (l Loan) UpdatedAt() time.Time            { return l.updatedAt }
func (l Loan) DomainEvents() []event.DomainEvent { return l.domainEvents }

// Installments returns a defensive copy of the schedule rows.
func (l Loan) Installments() []Installment {
	if l.installments == nil {
		return nil
	}
	out := make([]Installment, len(l.installments))
	copy(out, l.installments)
	return out
}

// ClearEvents returns a copy with an empty event list.
func (l Loan) ClearEvents() Loan {
	next := l
	next.domainEvents = nil
	return next
}

func attachRows(loanID string, rows []Installment) []Installment {
	out := make([]Installment, len(rows))
	for i, r := range rows {
		r.ID = uuid.New().String()
		r.LoanID = loanID
		out[i] = r
	}
	return out
}

func copyEvents(evts []event.DomainEvent) []event.DomainEvent {
	if evts == nil {
		return nil
	}
	out := make([]event.DomainEvent, len(evts))
	copy(out, evts)
	return out
}
