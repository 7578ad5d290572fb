package usecase

import (
	"context"
	"fmt"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
)

// ListLoansUseCase lists an owner's loans, optionally filtered by client.
type ListLoansUseCase struct {
	loanRepo port.LoanRepository
}

// NewListLoansUseCase wires dependencies.
func NewListLoansUseCase(loanRepo port.LoanRepository) *ListLoansUseCase {
	return &ListLoansUseCase{loanRepo: loanRepo}
}

// Execute lists loans for the owner. clientID narrows the result when set.
func (uc *ListLoansUseCase) Execute(ctx context.Context, ownerID, clientID string) ([]dto.LoanResponse, error) {
	var (
		loans []model.Loan
		err   error
	)
	if clientID != "" {
		loans, err = uc.loanRepo.FindByClient(ctx, ownerID, clientID)
	} else {
		loans, err = uc.loanRepo.FindByOwner(ctx, ownerID)
	}
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}

	out := make([]dto.LoanResponse, len(loans))
	for i, l := range loans {
		out[i] = dto.NewLoanResponse(l)
	}
	return out, nil
}
