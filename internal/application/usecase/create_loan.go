package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
)

// CreateLoanUseCase creates a loan and its repayment schedule for a client.
type CreateLoanUseCase struct {
	loanRepo   port.LoanRepository
	clientRepo port.ClientRepository
	publisher  port.EventPublisher
}

// NewCreateLoanUseCase wires dependencies.
func NewCreateLoanUseCase(
	loanRepo port.LoanRepository,
	clientRepo port.ClientRepository,
	publisher port.EventPublisher,
) *CreateLoanUseCase {
	return &CreateLoanUseCase{
		loanRepo:   loanRepo,
		clientRepo: clientRepo,
		publisher:  publisher,
	}
}

// Execute validates the terms, generates the schedule and persists the loan.
func (uc *CreateLoanUseCase) Execute(
	ctx context.Context,
	req dto.CreateLoanRequest,
) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	// The client must exist and belong to the requesting owner.
	if _, err := uc.clientRepo.FindByID(ctx, req.OwnerID, req.ClientID); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find client: %w", err)
	}

	loan, err := model.NewLoan(
		req.OwnerID, req.ClientID,
		req.Amount, req.MarkupPercent,
		req.Months, req.StartDate, now,
	)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("create loan: %w", err)
	}

	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}

	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.NewLoanResponse(loan), nil
}
