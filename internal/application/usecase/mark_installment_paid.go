package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/domain/event"
	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
)

// MarkInstallmentPaidUseCase settles one installment in full regardless of
// the amount received. Marking a PAID installment again is a no-op.
type MarkInstallmentPaidUseCase struct {
	installmentRepo port.InstallmentRepository
	loanRepo        port.LoanRepository
	publisher       port.EventPublisher
}

// NewMarkInstallmentPaidUseCase wires dependencies.
func NewMarkInstallmentPaidUseCase(
	installmentRepo port.InstallmentRepository,
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
) *MarkInstallmentPaidUseCase {
	return &MarkInstallmentPaidUseCase{
		installmentRepo: installmentRepo,
		loanRepo:        loanRepo,
		publisher:       publisher,
	}
}

// Execute marks the installment paid.
func (uc *MarkInstallmentPaidUseCase) Execute(
	ctx context.Context,
	ownerID, installmentID string,
) (dto.InstallmentResponse, error) {
	now := time.Now().UTC()

	inst, err := uc.installmentRepo.FindByID(ctx, ownerID, installmentID)
	if err != nil {
		return dto.InstallmentResponse{}, fmt.Errorf("find installment: %w", err)
	}

	wasPaid := inst.IsPaid()
	inst = model.MarkPaid(inst, now)

	if !wasPaid {
		if err := uc.installmentRepo.SaveAll(ctx, []model.Installment{inst}); err != nil {
			return dto.InstallmentResponse{}, fmt.Errorf("save installment: %w", err)
		}

		events := []event.DomainEvent{
			event.NewInstallmentPaid(inst.ID, ownerID, inst.LoanID, inst.Amount, *inst.PaidAt),
		}
		if loan, err := uc.loanRepo.FindByID(ctx, ownerID, inst.LoanID); err == nil && loan.IsSettled() {
			events = append(events, event.NewLoanSettled(loan.ID(), ownerID, loan.TotalToRepay()))
		}
		if err := uc.publisher.Publish(ctx, events...); err != nil {
			return dto.InstallmentResponse{}, fmt.Errorf("publish events: %w", err)
		}
	}

	return dto.NewInstallmentResponse(inst), nil
}
