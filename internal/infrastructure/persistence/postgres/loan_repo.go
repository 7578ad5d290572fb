package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
	pg "github.com/SAHICA-Code/NovaBank/internal/postgres"
)

// ErrVersionConflict is returned when a concurrent write won the race.
var ErrVersionConflict = errors.New("optimistic locking conflict on loan")

// LoanRepo implements port.LoanRepository.
type LoanRepo struct {
	pool *pgxpool.Pool
}

// NewLoanRepo creates a PostgreSQL-backed loan repository.
func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

// Save persists the loan and replaces its installment set in one
// transaction. Replacing, not updating, matches the aggregate: a reschedule
// always regenerates every row.
func (r *LoanRepo) Save(ctx context.Context, loan model.Loan) error {
	return pg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		return r.save(ctx, tx, loan)
	})
}

func (r *LoanRepo) save(ctx context.Context, tx pgx.Tx, loan model.Loan) error {
	loanQuery := `
		INSERT INTO loans (
			id, owner_id, client_id, amount, markup_percent, months,
			total_to_repay, start_date, version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO UPDATE SET
			client_id      = EXCLUDED.client_id,
			amount         = EXCLUDED.amount,
			markup_percent = EXCLUDED.markup_percent,
			months         = EXCLUDED.months,
			total_to_repay = EXCLUDED.total_to_repay,
			start_date     = EXCLUDED.start_date,
			version        = loans.version + 1,
			updated_at     = EXCLUDED.updated_at
		WHERE loans.version = $9
	`
	tag, err := tx.Exec(ctx, loanQuery,
		loan.ID(), loan.OwnerID(), loan.ClientID(),
		loan.Amount(), loan.MarkupPercent(), loan.Months(),
		loan.TotalToRepay(), loan.StartDate(),
		loan.Version(), loan.CreatedAt(), loan.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionConflict
	}

	if _, err := tx.Exec(ctx, `DELETE FROM installments WHERE loan_id = $1`, loan.ID()); err != nil {
		return fmt.Errorf("clear installments: %w", err)
	}
	for _, inst := range loan.Installments() {
		if err := insertInstallment(ctx, tx, "installments", inst); err != nil {
			return err
		}
	}
	return nil
}

// FindByID retrieves a loan with its installments, scoped to the owner.
func (r *LoanRepo) FindByID(ctx context.Context, ownerID, id string) (model.Loan, error) {
	query := loanSelect + ` WHERE owner_id = $1 AND id = $2`
	loan, err := scanLoanRow(r.pool.QueryRow(ctx, query, ownerID, id))
	if err != nil {
		return model.Loan{}, err
	}
	return r.withInstallments(ctx, loan)
}

// FindByOwner retrieves all loans of an owner, newest first.
func (r *LoanRepo) FindByOwner(ctx context.Context, ownerID string) ([]model.Loan, error) {
	query := loanSelect + ` WHERE owner_id = $1 ORDER BY created_at DESC`
	return r.queryLoans(ctx, query, ownerID)
}

// FindByClient retrieves an owner's loans for one client.
func (r *LoanRepo) FindByClient(ctx context.Context, ownerID, clientID string) ([]model.Loan, error) {
	query := loanSelect + ` WHERE owner_id = $1 AND client_id = $2 ORDER BY created_at DESC`
	return r.queryLoans(ctx, query, ownerID, clientID)
}

// Delete removes the loan; installments cascade.
func (r *LoanRepo) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM loans WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

const loanSelect = `
	SELECT id, owner_id, client_id, amount, markup_percent, months,
	       total_to_repay, start_date, version, created_at, updated_at
	FROM loans`

const installmentSelect = `
	SELECT id, loan_id, period, due_date, amount, principal, interest,
	       extras, paid_amount, remaining, status, paid_at`

func (r *LoanRepo) queryLoans(ctx context.Context, query string, args ...any) ([]model.Loan, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var loans []model.Loan
	for rows.Next() {
		loan, err := scanLoanRow(rows)
		if err != nil {
			return nil, err
		}
		loan, err = r.withInstallments(ctx, loan)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

func (r *LoanRepo) withInstallments(ctx context.Context, loan model.Loan) (model.Loan, error) {
	query := installmentSelect + ` FROM installments WHERE loan_id = $1 ORDER BY period`
	rows, err := r.pool.Query(ctx, query, loan.ID())
	if err != nil {
		return model.Loan{}, fmt.Errorf("query installments: %w", err)
	}
	defer rows.Close()

	var installments []model.Installment
	for rows.Next() {
		inst, err := scanInstallment(rows)
		if err != nil {
			return model.Loan{}, err
		}
		installments = append(installments, inst)
	}
	if err := rows.Err(); err != nil {
		return model.Loan{}, err
	}

	return model.ReconstructLoan(
		loan.ID(), loan.OwnerID(), loan.ClientID(),
		loan.Amount(), loan.MarkupPercent(), loan.Months(),
		loan.TotalToRepay(), loan.StartDate(),
		installments, loan.Version(), loan.CreatedAt(), loan.UpdatedAt(),
	), nil
}

func scanLoanRow(s scannable) (model.Loan, error) {
	var (
		id, ownerID, clientID string
		amount, markupPercent decimal.Decimal
		months                int
		totalToRepay          decimal.Decimal
		startDate             time.Time
		version               int
		createdAt, updatedAt  time.Time
	)
	err := s.Scan(
		&id, &ownerID, &clientID, &amount, &markupPercent, &months,
		&totalToRepay, &startDate, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Loan{}, mapNotFound(err)
	}

	return model.ReconstructLoan(
		id, ownerID, clientID, amount, markupPercent, months,
		totalToRepay, startDate, nil, version, createdAt, updatedAt,
	), nil
}

func insertInstallment(ctx context.Context, tx pgx.Tx, table string, inst model.Installment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			id, loan_id, period, due_date, amount, principal, interest,
			extras, paid_amount, remaining, status, paid_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`, table)
	_, err := tx.Exec(ctx, query,
		inst.ID, inst.LoanID, inst.Period, inst.DueDate,
		inst.Amount, inst.Principal, inst.Interest, inst.Extras,
		inst.PaidAmount, inst.Remaining, inst.Status.String(), inst.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("save installment %d: %w", inst.Period, err)
	}
	return nil
}
