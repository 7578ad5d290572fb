package usecase

import (
	"context"
	"fmt"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
)

// ListTrackerLoansUseCase lists the user's tracker loans.
type ListTrackerLoansUseCase struct {
	trackerRepo port.TrackerLoanRepository
}

// NewListTrackerLoansUseCase wires dependencies.
func NewListTrackerLoansUseCase(trackerRepo port.TrackerLoanRepository) *ListTrackerLoansUseCase {
	return &ListTrackerLoansUseCase{trackerRepo: trackerRepo}
}

// Execute lists all tracker loans of the user.
func (uc *ListTrackerLoansUseCase) Execute(ctx context.Context, userID string) ([]dto.TrackerLoanResponse, error) {
	loans, err := uc.trackerRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tracker loans: %w", err)
	}

	out := make([]dto.TrackerLoanResponse, len(loans))
	for i, l := range loans {
		out[i] = dto.NewTrackerLoanResponse(l)
	}
	return out, nil
}
