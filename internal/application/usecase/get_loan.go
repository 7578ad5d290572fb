package usecase

import (
	"context"
	"fmt"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
)

// GetLoanUseCase retrieves one loan with its full installment schedule.
type GetLoanUseCase struct {
	loanRepo port.LoanRepository
}

// NewGetLoanUseCase wires dependencies.
func NewGetLoanUseCase(loanRepo port.LoanRepository) *GetLoanUseCase {
	return &GetLoanUseCase{loanRepo: loanRepo}
}

// Execute retrieves the loan scoped to the requesting owner.
func (uc *GetLoanUseCase) Execute(ctx context.Context, ownerID, loanID string) (dto.LoanResponse, error) {
	loan, err := uc.loanRepo.FindByID(ctx, ownerID, loanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}
	return dto.NewLoanResponse(loan), nil
}
