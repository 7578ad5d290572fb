package usecase

import (
	"context"
	"fmt"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
)

// ListInstallmentsUseCase lists the schedule of one loan.
type ListInstallmentsUseCase struct {
	loanRepo        port.LoanRepository
	installmentRepo port.InstallmentRepository
}

// NewListInstallmentsUseCase wires dependencies.
func NewListInstallmentsUseCase(
	loanRepo port.LoanRepository,
	installmentRepo port.InstallmentRepository,
) *ListInstallmentsUseCase {
	return &ListInstallmentsUseCase{loanRepo: loanRepo, installmentRepo: installmentRepo}
}

// Execute lists the loan's installments after confirming ownership.
func (uc *ListInstallmentsUseCase) Execute(
	ctx context.Context,
	ownerID, loanID string,
) ([]dto.InstallmentResponse, error) {
	if _, err := uc.loanRepo.FindByID(ctx, ownerID, loanID); err != nil {
		return nil, fmt.Errorf("find loan: %w", err)
	}

	installments, err := uc.installmentRepo.FindByLoan(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("list installments: %w", err)
	}
	return dto.NewInstallmentResponses(installments), nil
}
