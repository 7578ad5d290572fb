package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
)

// UpdateLoanUseCase replaces a loan's terms. The old installments are
// discarded and a fresh schedule is generated: payments already recorded on
// the old rows are not carried over.
type UpdateLoanUseCase struct {
	loanRepo   port.LoanRepository
	clientRepo port.ClientRepository
	publisher  port.EventPublisher
}

// NewUpdateLoanUseCase wires dependencies.
func NewUpdateLoanUseCase(
	loanRepo port.LoanRepository,
	clientRepo port.ClientRepository,
	publisher port.EventPublisher,
) *UpdateLoanUseCase {
	return &UpdateLoanUseCase{
		loanRepo:   loanRepo,
		clientRepo: clientRepo,
		publisher:  publisher,
	}
}

// Execute reschedules the loan under new terms.
func (uc *UpdateLoanUseCase) Execute(
	ctx context.Context,
	req dto.UpdateLoanRequest,
) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	loan, err := uc.loanRepo.FindByID(ctx, req.OwnerID, req.LoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}

	if req.ClientID != "" && req.ClientID != loan.ClientID() {
		if _, err := uc.clientRepo.FindByID(ctx, req.OwnerID, req.ClientID); err != nil {
			return dto.LoanResponse{}, fmt.Errorf("find client: %w", err)
		}
	}

	loan, err = loan.Reschedule(req.ClientID, req.Amount, req.MarkupPercent, req.Months, req.StartDate, now)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("reschedule loan: %w", err)
	}

	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}

	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.NewLoanResponse(loan), nil
}
