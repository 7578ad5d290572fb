package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/domain/event"
	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
)

// ApplyPaymentUseCase records a cash payment against an installment. An
// overpayment cascades to the later installments of the same loan, settling
// them in due-date order until the money runs out.
type ApplyPaymentUseCase struct {
	installmentRepo port.InstallmentRepository
	loanRepo        port.LoanRepository
	publisher       port.EventPublisher
	waterfall       model.Waterfall
}

// NewApplyPaymentUseCase wires dependencies.
func NewApplyPaymentUseCase(
	installmentRepo port.InstallmentRepository,
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
	waterfall model.Waterfall,
) *ApplyPaymentUseCase {
	return &ApplyPaymentUseCase{
		installmentRepo: installmentRepo,
		loanRepo:        loanRepo,
		publisher:       publisher,
		waterfall:       waterfall,
	}
}

// Execute applies the payment and persists every touched installment in one
// transaction.
func (uc *ApplyPaymentUseCase) Execute(
	ctx context.Context,
	req dto.ApplyPaymentRequest,
) (dto.PaymentResultResponse, error) {
	now := time.Now().UTC()

	// 1. Load the target and its later siblings, sorted by due date.
	target, err := uc.installmentRepo.FindByID(ctx, req.OwnerID, req.InstallmentID)
	if err != nil {
		return dto.PaymentResultResponse{}, fmt.Errorf("find installment: %w", err)
	}
	future, err := uc.installmentRepo.FindDueAfter(ctx, target.LoanID, target.DueDate)
	if err != nil {
		return dto.PaymentResultResponse{}, fmt.Errorf("find future installments: %w", err)
	}

	// 2. Run the waterfall.
	result, err := uc.waterfall.Apply(target, future, req.Amount, now)
	if err != nil {
		return dto.PaymentResultResponse{}, fmt.Errorf("apply payment: %w", err)
	}

	// 3. Persist all touched rows atomically.
	touched := append([]model.Installment{result.Target}, result.Future...)
	if err := uc.installmentRepo.SaveAll(ctx, touched); err != nil {
		return dto.PaymentResultResponse{}, fmt.Errorf("save installments: %w", err)
	}

	// 4. Publish one event per touched row, plus paid transitions.
	events := uc.paymentEvents(req.OwnerID, target, future, result)

	// 5. Report loan settlement when the last open row was covered.
	settled := false
	if loan, err := uc.loanRepo.FindByID(ctx, req.OwnerID, target.LoanID); err == nil && loan.IsSettled() {
		settled = true
		events = append(events, event.NewLoanSettled(loan.ID(), req.OwnerID, loan.TotalToRepay()))
	}

	if err := uc.publisher.Publish(ctx, events...); err != nil {
		return dto.PaymentResultResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.PaymentResultResponse{
		Target:      dto.NewInstallmentResponse(result.Target),
		Future:      dto.NewInstallmentResponses(result.Future),
		Applied:     result.Applied,
		LoanSettled: settled,
	}, nil
}

func (uc *ApplyPaymentUseCase) paymentEvents(
	ownerID string,
	target model.Installment,
	future []model.Installment,
	result model.PaymentApplication,
) []event.DomainEvent {
	before := make(map[string]model.Installment, len(future)+1)
	before[target.ID] = target
	for _, fp := range future {
		before[fp.ID] = fp
	}

	touched := append([]model.Installment{result.Target}, result.Future...)
	events := make([]event.DomainEvent, 0, len(touched))
	for _, row := range touched {
		prev := before[row.ID]
		used := decimal.Min(row.PaidAmount.Sub(prev.PaidAmount), prev.Outstanding())
		events = append(events, event.NewPaymentApplied(
			row.ID, ownerID, row.LoanID, used, row.Outstanding(), row.Status.String(),
		))
		if row.IsPaid() && !prev.IsPaid() && row.PaidAt != nil {
			events = append(events, event.NewInstallmentPaid(row.ID, ownerID, row.LoanID, row.Amount, *row.PaidAt))
		}
	}
	return events
}
