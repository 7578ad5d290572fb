package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
	"github.com/SAHICA-Code/NovaBank/internal/domain/valueobject"
)

// CreateTrackerLoanUseCase creates a borrower-panel loan. When a principal
// and annual rate are supplied the schedule is amortized; otherwise the
// fixed monthly payment drives a manual schedule.
type CreateTrackerLoanUseCase struct {
	trackerRepo port.TrackerLoanRepository
	publisher   port.EventPublisher
}

// NewCreateTrackerLoanUseCase wires dependencies.
func NewCreateTrackerLoanUseCase(
	trackerRepo port.TrackerLoanRepository,
	publisher port.EventPublisher,
) *CreateTrackerLoanUseCase {
	return &CreateTrackerLoanUseCase{trackerRepo: trackerRepo, publisher: publisher}
}

// Execute creates the tracker loan and its schedule.
func (uc *CreateTrackerLoanUseCase) Execute(
	ctx context.Context,
	req dto.CreateTrackerLoanRequest,
) (dto.TrackerLoanResponse, error) {
	now := time.Now().UTC()
	loanType := valueobject.NewTrackerLoanType(req.Type)

	var (
		loan model.TrackerLoan
		err  error
	)
	if req.Principal.IsPositive() && req.AnnualRatePct.IsPositive() {
		loan, err = model.NewTrackerLoanWithInterest(
			req.UserID, req.Title, loanType,
			req.Principal, req.AnnualRatePct,
			req.Months, req.StartDate, req.MonthlyExtras, now,
		)
	} else {
		loan, err = model.NewTrackerLoan(
			req.UserID, req.Title, loanType,
			req.StartDate, req.Months,
			req.MonthlyPayment, req.MonthlyExtras, now,
		)
	}
	if err != nil {
		return dto.TrackerLoanResponse{}, fmt.Errorf("create tracker loan: %w", err)
	}

	if err := uc.trackerRepo.Save(ctx, loan); err != nil {
		return dto.TrackerLoanResponse{}, fmt.Errorf("save tracker loan: %w", err)
	}

	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.TrackerLoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.NewTrackerLoanResponse(loan), nil
}
