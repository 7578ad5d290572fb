package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SAHICA-Code/NovaBank/internal/events"
)

// DomainEvent is an alias for the shared events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Loan events
// ---------------------------------------------------------------------------

// LoanCreated is raised when a new loan and its schedule enter the system.
type LoanCreated struct {
	events.BaseEvent
	ClientID      string          `json:"client_id"`
	Amount        decimal.Decimal `json:"amount"`
	MarkupPercent decimal.Decimal `json:"markup_percent"`
	Months        int             `json:"months"`
	TotalToRepay  decimal.Decimal `json:"total_to_repay"`
	StartDate     time.Time       `json:"start_date"`
}

func NewLoanCreated(
	loanID, ownerID, clientID string,
	amount, markupPercent decimal.Decimal,
	months int, totalToRepay decimal.Decimal, startDate time.Time,
) LoanCreated {
	return LoanCreated{
		BaseEvent:     events.NewBaseEvent("ledger.loan.created", loanID, "Loan", ownerID),
		ClientID:      clientID,
		Amount:        amount,
		MarkupPercent: markupPercent,
		Months:        months,
		TotalToRepay:  totalToRepay,
		StartDate:     startDate,
	}
}

// LoanRescheduled is raised when a loan edit discards and regenerates the
// installment set.
type LoanRescheduled struct {
	events.BaseEvent
	Amount        decimal.Decimal `json:"amount"`
	MarkupPercent decimal.Decimal `json:"markup_percent"`
	Months        int             `json:"months"`
	TotalToRepay  decimal.Decimal `json:"total_to_repay"`
	StartDate     time.Time       `json:"start_date"`
}

func NewLoanRescheduled(
	loanID, ownerID string,
	amount, markupPercent decimal.Decimal,
	months int, totalToRepay decimal.Decimal, startDate time.Time,
) LoanRescheduled {
	return LoanRescheduled{
		BaseEvent:     events.NewBaseEvent("ledger.loan.rescheduled", loanID, "Loan", ownerID),
		Amount:        amount,
		MarkupPercent: markupPercent,
		Months:        months,
		TotalToRepay:  totalToRepay,
		StartDate:     startDate,
	}
}

// LoanDeleted is raised when a loan and its installments are removed.
type LoanDeleted struct {
	events.BaseEvent
}

func NewLoanDeleted(loanID, ownerID string) LoanDeleted {
	return LoanDeleted{
		BaseEvent: events.NewBaseEvent("ledger.loan.deleted", loanID, "Loan", ownerID),
	}
}

// LoanSettled is raised when every installment of a loan has been paid.
type LoanSettled struct {
	events.BaseEvent
	TotalToRepay decimal.Decimal `json:"total_to_repay"`
}

func NewLoanSettled(loanID, ownerID string, totalToRepay decimal.Decimal) LoanSettled {
	return LoanSettled{
		BaseEvent:    events.NewBaseEvent("ledger.loan.settled", loanID, "Loan", ownerID),
		TotalToRepay: totalToRepay,
	}
}

// ---------------------------------------------------------------------------
// Installment events
// ---------------------------------------------------------------------------

// PaymentApplied is raised for every installment a cash payment touched,
// including the cascade targets of an overpayment.
type PaymentApplied struct {
	events.BaseEvent
	LoanID    string          `json:"loan_id"`
	Used      decimal.Decimal `json:"used"`
	Remaining decimal.Decimal `json:"remaining"`
	Status    string          `json:"status"`
}

func NewPaymentApplied(installmentID, ownerID, loanID string, used, remaining decimal.Decimal, status string) PaymentApplied {
	return PaymentApplied{
		BaseEvent: events.NewBaseEvent("ledger.installment.payment_applied", installmentID, "Installment", ownerID),
		LoanID:    loanID,
		Used:      used,
		Remaining: remaining,
		Status:    status,
	}
}

// InstallmentPaid is raised when an installment transitions into PAID.
type InstallmentPaid struct {
	events.BaseEvent
	LoanID string          `json:"loan_id"`
	Amount decimal.Decimal `json:"amount"`
	PaidAt time.Time       `json:"paid_at"`
}

func NewInstallmentPaid(installmentID, ownerID, loanID string, amount decimal.Decimal, paidAt time.Time) InstallmentPaid {
	return InstallmentPaid{
		BaseEvent: events.NewBaseEvent("ledger.installment.paid", installmentID, "Installment", ownerID),
		LoanID:    loanID,
		Amount:    amount,
		PaidAt:    paidAt,
	}
}

// InstallmentOverdue is raised by the overdue sweeper for unpaid installments
// past their due date. It never alters the installment state machine.
type InstallmentOverdue struct {
	events.BaseEvent
	LoanID    string          `json:"loan_id"`
	DueDate   time.Time       `json:"due_date"`
	Remaining decimal.Decimal `json:"remaining"`
}

func NewInstallmentOverdue(installmentID, ownerID, loanID string, dueDate time.Time, remaining decimal.Decimal) InstallmentOverdue {
	return InstallmentOverdue{
		BaseEvent: events.NewBaseEvent("ledger.installment.overdue", installmentID, "Installment", ownerID),
		LoanID:    loanID,
		DueDate:   dueDate,
		Remaining: remaining,
	}
}

// ---------------------------------------------------------------------------
// Client and tracker events
// ---------------------------------------------------------------------------

// ClientCreated is raised when an owner registers a new client.
type ClientCreated struct {
	events.BaseEvent
	Name string `json:"name"`
}

func NewClientCreated(clientID, ownerID, name string) ClientCreated {
	return ClientCreated{
		BaseEvent: events.NewBaseEvent("ledger.client.created", clientID, "Client", ownerID),
		Name:      name,
	}
}

// TrackerLoanCreated is raised when a tracker-panel loan and its schedule are
// created.
type TrackerLoanCreated struct {
	events.BaseEvent
	Title          string          `json:"title"`
	Type           string          `json:"type"`
	Months         int             `json:"months"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
}

func NewTrackerLoanCreated(loanID, userID, title, loanType string, months int, monthlyPayment decimal.Decimal) TrackerLoanCreated {
	return TrackerLoanCreated{
		BaseEvent:      events.NewBaseEvent("ledger.tracker.loan.created", loanID, "TrackerLoan", userID),
		Title:          title,
		Type:           loanType,
		Months:         months,
		MonthlyPayment: monthlyPayment,
	}
}
