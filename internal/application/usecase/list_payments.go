package usecase

import (
	"context"
	"fmt"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
	"github.com/SAHICA-Code/NovaBank/internal/domain/service"
)

// ListPaymentsUseCase builds the payment screen: every installment across
// the owner's loans plus the total still pending.
type ListPaymentsUseCase struct {
	installmentRepo port.InstallmentRepository
}

// NewListPaymentsUseCase wires dependencies.
func NewListPaymentsUseCase(installmentRepo port.InstallmentRepository) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{installmentRepo: installmentRepo}
}

// Execute lists the owner's installments. clientID narrows the result when
// set.
func (uc *ListPaymentsUseCase) Execute(
	ctx context.Context,
	ownerID, clientID string,
) (dto.PaymentsOverviewResponse, error) {
	installments, err := uc.installmentRepo.FindByOwner(ctx, ownerID, clientID)
	if err != nil {
		return dto.PaymentsOverviewResponse{}, fmt.Errorf("list installments: %w", err)
	}

	return dto.PaymentsOverviewResponse{
		Installments: dto.NewInstallmentResponses(installments),
		PendingTotal: service.TotalPending(installments),
	}, nil
}
