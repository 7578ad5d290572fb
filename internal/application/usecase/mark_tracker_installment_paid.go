package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
)

// MarkTrackerInstallmentPaidUseCase settles one row of a tracker loan. The
// loan finishes automatically when its last row is settled.
type MarkTrackerInstallmentPaidUseCase struct {
	trackerRepo port.TrackerLoanRepository
}

// NewMarkTrackerInstallmentPaidUseCase wires dependencies.
func NewMarkTrackerInstallmentPaidUseCase(trackerRepo port.TrackerLoanRepository) *MarkTrackerInstallmentPaidUseCase {
	return &MarkTrackerInstallmentPaidUseCase{trackerRepo: trackerRepo}
}

// Execute marks the installment paid and persists the aggregate.
func (uc *MarkTrackerInstallmentPaidUseCase) Execute(
	ctx context.Context,
	userID, loanID, installmentID string,
) (dto.TrackerLoanResponse, error) {
	now := time.Now().UTC()

	loan, err := uc.trackerRepo.FindByID(ctx, userID, loanID)
	if err != nil {
		return dto.TrackerLoanResponse{}, fmt.Errorf("find tracker loan: %w", err)
	}

	loan, err = loan.MarkInstallmentPaid(installmentID, now)
	if err != nil {
		return dto.TrackerLoanResponse{}, fmt.Errorf("mark installment paid: %w", err)
	}

	if err := uc.trackerRepo.Save(ctx, loan); err != nil {
		return dto.TrackerLoanResponse{}, fmt.Errorf("save tracker loan: %w", err)
	}

	return dto.NewTrackerLoanResponse(loan), nil
}
