package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
	pg "github.com/SAHICA-Code/NovaBank/internal/postgres"
)

// InstallmentRepo implements port.InstallmentRepository.
type InstallmentRepo struct {
	pool *pgxpool.Pool
}

// NewInstallmentRepo creates a PostgreSQL-backed installment repository.
func NewInstallmentRepo(pool *pgxpool.Pool) *InstallmentRepo {
	return &InstallmentRepo{pool: pool}
}

// FindByID retrieves one installment, scoped to the owner through its loan.
func (r *InstallmentRepo) FindByID(ctx context.Context, ownerID, id string) (model.Installment, error) {
	query := `
		SELECT i.id, i.loan_id, i.period, i.due_date, i.amount, i.principal,
		       i.interest, i.extras, i.paid_amount, i.remaining, i.status, i.paid_at
		FROM installments i
		JOIN loans l ON l.id = i.loan_id
		WHERE l.owner_id = $1 AND i.id = $2
	`
	return scanInstallment(r.pool.QueryRow(ctx, query, ownerID, id))
}

// FindDueAfter retrieves the loan's installments with a due date strictly
// after the given one, sorted ascending. This is the cascade order of the
// payment waterfall.
func (r *InstallmentRepo) FindDueAfter(ctx context.Context, loanID string, after time.Time) ([]model.Installment, error) {
	query := installmentSelect + `
		FROM installments
		WHERE loan_id = $1 AND due_date > $2
		ORDER BY due_date ASC`
	return r.queryInstallments(ctx, query, loanID, after)
}

// FindByLoan retrieves all installments of a loan ordered by period.
func (r *InstallmentRepo) FindByLoan(ctx context.Context, loanID string) ([]model.Installment, error) {
	query := installmentSelect + ` FROM installments WHERE loan_id = $1 ORDER BY period`
	return r.queryInstallments(ctx, query, loanID)
}

// FindByOwner retrieves every installment across the owner's loans, ordered
// by due date. clientID narrows the result when set.
func (r *InstallmentRepo) FindByOwner(ctx context.Context, ownerID, clientID string) ([]model.Installment, error) {
	query := `
		SELECT i.id, i.loan_id, i.period, i.due_date, i.amount, i.principal,
		       i.interest, i.extras, i.paid_amount, i.remaining, i.status, i.paid_at
		FROM installments i
		JOIN loans l ON l.id = i.loan_id
		WHERE l.owner_id = $1 AND ($2 = '' OR l.client_id = $2)
		ORDER BY i.due_date ASC
	`
	return r.queryInstallments(ctx, query, ownerID, clientID)
}

// FindOverdue retrieves unpaid installments due before the given time,
// across all owners. Used by the overdue sweep.
func (r *InstallmentRepo) FindOverdue(ctx context.Context, before time.Time) ([]model.Installment, error) {
	query := installmentSelect + `
		FROM installments
		WHERE status <> 'PAID' AND due_date < $1
		ORDER BY due_date ASC`
	return r.queryInstallments(ctx, query, before)
}

// SaveAll updates every row in one transaction. The waterfall's touched set
// must land together or not at all.
func (r *InstallmentRepo) SaveAll(ctx context.Context, installments []model.Installment) error {
	if len(installments) == 0 {
		return nil
	}

	query := `
		UPDATE installments SET
			paid_amount = $2,
			remaining   = $3,
			status      = $4,
			paid_at     = $5
		WHERE id = $1
	`
	return pg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		for _, inst := range installments {
			tag, err := tx.Exec(ctx, query,
				inst.ID, inst.PaidAmount, inst.Remaining, inst.Status.String(), inst.PaidAt,
			)
			if err != nil {
				return fmt.Errorf("save installment %s: %w", inst.ID, err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("save installment %s: no such row", inst.ID)
			}
		}
		return nil
	})
}

func (r *InstallmentRepo) queryInstallments(ctx context.Context, query string, args ...any) ([]model.Installment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query installments: %w", err)
	}
	defer rows.Close()

	var installments []model.Installment
	for rows.Next() {
		inst, err := scanInstallment(rows)
		if err != nil {
			return nil, err
		}
		installments = append(installments, inst)
	}
	return installments, rows.Err()
}
