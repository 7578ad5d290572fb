package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
	"github.com/SAHICA-Code/NovaBank/internal/domain/service"
)

// upcomingMonths is how far ahead the dashboard chart looks.
const upcomingMonths = 12

// GetDashboardUseCase builds the owner dashboard: portfolio summary plus the
// upcoming twelve months of scheduled collections.
type GetDashboardUseCase struct {
	loanRepo        port.LoanRepository
	installmentRepo port.InstallmentRepository
}

// NewGetDashboardUseCase wires dependencies.
func NewGetDashboardUseCase(
	loanRepo port.LoanRepository,
	installmentRepo port.InstallmentRepository,
) *GetDashboardUseCase {
	return &GetDashboardUseCase{loanRepo: loanRepo, installmentRepo: installmentRepo}
}

// Execute computes the dashboard for the owner.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, ownerID string) (dto.DashboardResponse, error) {
	now := time.Now().UTC()

	loans, err := uc.loanRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return dto.DashboardResponse{}, fmt.Errorf("list loans: %w", err)
	}
	installments, err := uc.installmentRepo.FindByOwner(ctx, ownerID, "")
	if err != nil {
		return dto.DashboardResponse{}, fmt.Errorf("list installments: %w", err)
	}

	summary := service.Summarize(loans, installments)
	totals := service.MonthlyTotals(installments, now, now.AddDate(0, upcomingMonths-1, 0))

	upcoming := make([]dto.MonthlyTotalResponse, len(totals))
	for i, t := range totals {
		upcoming[i] = dto.MonthlyTotalResponse{
			Year:  t.Year,
			Month: int(t.Month),
			Total: t.Total,
		}
	}

	return dto.DashboardResponse{
		Summary:  dto.NewSummaryResponse(summary),
		Upcoming: upcoming,
	}, nil
}
