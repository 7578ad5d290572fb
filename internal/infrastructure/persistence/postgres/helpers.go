package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
	"github.com/SAHICA-Code/NovaBank/internal/domain/valueobject"
)

// scannable is satisfied by pgx.Row and pgx.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// mapNotFound converts pgx's no-rows sentinel into the repository port's.
func mapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return port.ErrNotFound
	}
	return err
}

func scanInstallment(s scannable) (model.Installment, error) {
	var (
		inst      model.Installment
		statusStr string
	)
	err := s.Scan(
		&inst.ID, &inst.LoanID, &inst.Period, &inst.DueDate,
		&inst.Amount, &inst.Principal, &inst.Interest, &inst.Extras,
		&inst.PaidAmount, &inst.Remaining, &statusStr, &inst.PaidAt,
	)
	if err != nil {
		return model.Installment{}, mapNotFound(err)
	}

	status, err := valueobject.NewInstallmentStatus(statusStr)
	if err != nil {
		return model.Installment{}, err
	}
	inst.Status = status
	return inst, nil
}
