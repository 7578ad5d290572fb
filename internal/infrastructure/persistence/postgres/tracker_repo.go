package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
	"github.com/SAHICA-Code/NovaBank/internal/domain/valueobject"
	pg "github.com/SAHICA-Code/NovaBank/internal/postgres"
)

// TrackerLoanRepo implements port.TrackerLoanRepository.
type TrackerLoanRepo struct {
	pool *pgxpool.Pool
}

// NewTrackerLoanRepo creates a PostgreSQL-backed tracker loan repository.
func NewTrackerLoanRepo(pool *pgxpool.Pool) *TrackerLoanRepo {
	return &TrackerLoanRepo{pool: pool}
}

// Save persists the tracker loan and replaces its installment set.
func (r *TrackerLoanRepo) Save(ctx context.Context, loan model.TrackerLoan) error {
	return pg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		return r.save(ctx, tx, loan)
	})
}

func (r *TrackerLoanRepo) save(ctx context.Context, tx pgx.Tx, loan model.TrackerLoan) error {
	query := `
		INSERT INTO tracker_loans (
			id, user_id, title, type, start_date, months,
			monthly_payment, monthly_extras, finished_at, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO UPDATE SET
			title           = EXCLUDED.title,
			type            = EXCLUDED.type,
			monthly_payment = EXCLUDED.monthly_payment,
			monthly_extras  = EXCLUDED.monthly_extras,
			finished_at     = EXCLUDED.finished_at,
			updated_at      = EXCLUDED.updated_at
	`
	_, err := tx.Exec(ctx, query,
		loan.ID(), loan.UserID(), loan.Title(), loan.Type().String(),
		loan.StartDate(), loan.Months(),
		loan.MonthlyPayment(), loan.MonthlyExtras(),
		loan.FinishedAt(), loan.CreatedAt(), loan.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save tracker loan: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM tracker_installments WHERE loan_id = $1`, loan.ID()); err != nil {
		return fmt.Errorf("clear tracker installments: %w", err)
	}
	for _, inst := range loan.Installments() {
		if err := insertInstallment(ctx, tx, "tracker_installments", inst); err != nil {
			return err
		}
	}
	return nil
}

// FindByID retrieves one tracker loan with its installments.
func (r *TrackerLoanRepo) FindByID(ctx context.Context, userID, id string) (model.TrackerLoan, error) {
	query := trackerSelect + ` WHERE user_id = $1 AND id = $2`
	loan, err := scanTrackerLoan(r.pool.QueryRow(ctx, query, userID, id))
	if err != nil {
		return model.TrackerLoan{}, err
	}
	return r.withInstallments(ctx, loan)
}

// FindByUser retrieves all tracker loans of a user, newest first.
func (r *TrackerLoanRepo) FindByUser(ctx context.Context, userID string) ([]model.TrackerLoan, error) {
	query := trackerSelect + ` WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query tracker loans: %w", err)
	}
	defer rows.Close()

	var loans []model.TrackerLoan
	for rows.Next() {
		loan, err := scanTrackerLoan(rows)
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

const trackerSelect = `
	SELECT id, user_id, title, type, start_date, months,
	       monthly_payment, monthly_extras, finished_at, created_at, updated_at
	FROM tracker_loans`

func scanTrackerLoan(s scannable) (model.TrackerLoan, error) {
	var (
		id, userID, title, typeStr    string
		startDate                     time.Time
		months                        int
		monthlyPayment, monthlyExtras decimal.Decimal
		finishedAt                    *time.Time
		createdAt, updatedAt          time.Time
	)
	err := s.Scan(
		&id, &userID, &title, &typeStr, &startDate, &months,
		&monthlyPayment, &monthlyExtras, &finishedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.TrackerLoan{}, mapNotFound(err)
	}

	return model.ReconstructTrackerLoan(
		id, userID, title, valueobject.NewTrackerLoanType(typeStr),
		startDate, months, monthlyPayment, monthlyExtras,
		nil, finishedAt, createdAt, updatedAt,
	), nil
}

func (r *TrackerLoanRepo) withInstallments(ctx context.Context, loan model.TrackerLoan) (model.TrackerLoan, error) {
	query := installmentSelect + ` FROM tracker_installments WHERE loan_id = $1 ORDER BY period`
	rows, err := r.pool.Query(ctx, query, loan.ID())
	if err != nil {
		return model.TrackerLoan{}, fmt.Errorf("query tracker installments: %w", err)
	}
	defer rows.Close()

	var installments []model.Installment
	for rows.Next() {
		inst, err := scanInstallment(rows)
		if err != nil {
			return model.TrackerLoan{}, err
		}
		installments = append(installments, inst)
	}
	if err := rows.Err(); err != nil {
		return model.TrackerLoan{}, err
	}

	return model.ReconstructTrackerLoan(
		loan.ID(), loan.UserID(), loan.Title(), loan.Type(),
		loan.StartDate(), loan.Months(), loan.MonthlyPayment(), loan.MonthlyExtras(),
		installments, loan.FinishedAt(), loan.CreatedAt(), loan.UpdatedAt(),
	), nil
}
