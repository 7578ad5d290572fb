package port

import (
	"context"
	"errors"
	"time"

	"github.com/SAHICA-Code/NovaBank/internal/domain/event"
	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
)

// ErrNotFound is returned by repositories when a row does not exist or does
// not belong to the requesting owner.
var ErrNotFound = errors.New("not found")

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// LoanRepository persists and retrieves owner-side loans together with their
// installments. Save must write the loan and its full installment set in one
// transaction; a reschedule deletes the old rows and inserts the new ones.
type LoanRepository interface {
	Save(ctx context.Context, loan model.Loan) error
	FindByID(ctx context.Context, ownerID, id string) (model.Loan, error)
	FindByOwner(ctx context.Context, ownerID string) ([]model.Loan, error)
	FindByClient(ctx context.Context, ownerID, clientID string) ([]model.Loan, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// InstallmentRepository reads and updates individual installments. SaveAll
// must apply every row atomically: persisting only part of a waterfall
// result leaves the schedule inconsistent with the money received.
type InstallmentRepository interface {
	FindByID(ctx context.Context, ownerID, id string) (model.Installment, error)
	FindDueAfter(ctx context.Context, loanID string, after time.Time) ([]model.Installment, error)
	FindByLoan(ctx context.Context, loanID string) ([]model.Installment, error)
	FindByOwner(ctx context.Context, ownerID, clientID string) ([]model.Installment, error)
	FindOverdue(ctx context.Context, before time.Time) ([]model.Installment, error)
	SaveAll(ctx context.Context, installments []model.Installment) error
}

// ClientRepository persists and retrieves an owner's clients.
type ClientRepository interface {
	Save(ctx context.Context, c model.Client) error
	FindByID(ctx context.Context, ownerID, id string) (model.Client, error)
	FindByOwner(ctx context.Context, ownerID string) ([]model.Client, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// UserRepository persists and retrieves user accounts.
type UserRepository interface {
	Save(ctx context.Context, u model.User) error
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	Delete(ctx context.Context, id string) error
}

// ResetTokenRepository stores single-use password reset tokens. Consume
// atomically fetches and deletes a token.
type ResetTokenRepository interface {
	Save(ctx context.Context, t model.PasswordResetToken) error
	Consume(ctx context.Context, token string) (model.PasswordResetToken, error)
}

// TrackerLoanRepository persists and retrieves tracker-panel loans.
type TrackerLoanRepository interface {
	Save(ctx context.Context, loan model.TrackerLoan) error
	FindByID(ctx context.Context, userID, id string) (model.TrackerLoan, error)
	FindByUser(ctx context.Context, userID string) ([]model.TrackerLoan, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// External service ports
// ---------------------------------------------------------------------------

// Mailer delivers transactional mail.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}
