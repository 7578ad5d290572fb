package usecase

import (
	"context"
	"fmt"

	"github.com/SAHICA-Code/NovaBank/internal/domain/event"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
)

// DeleteLoanUseCase removes a loan and its installments.
type DeleteLoanUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
}

// NewDeleteLoanUseCase wires dependencies.
func NewDeleteLoanUseCase(loanRepo port.LoanRepository, publisher port.EventPublisher) *DeleteLoanUseCase {
	return &DeleteLoanUseCase{loanRepo: loanRepo, publisher: publisher}
}

// Execute deletes the loan after confirming ownership.
func (uc *DeleteLoanUseCase) Execute(ctx context.Context, ownerID, loanID string) error {
	loan, err := uc.loanRepo.FindByID(ctx, ownerID, loanID)
	if err != nil {
		return fmt.Errorf("find loan: %w", err)
	}

	if err := uc.loanRepo.Delete(ctx, ownerID, loanID); err != nil {
		return fmt.Errorf("delete loan: %w", err)
	}

	if err := uc.publisher.Publish(ctx, event.NewLoanDeleted(loan.ID(), ownerID)); err != nil {
		return fmt.Errorf("publish events: %w", err)
	}
	return nil
}
