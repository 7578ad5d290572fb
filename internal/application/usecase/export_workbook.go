package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
	"github.com/SAHICA-Code/NovaBank/internal/domain/service"
)

// ExportWorkbookUseCase gathers everything the portfolio workbook needs:
// the summary block plus one schedule row per installment, each repeating
// the loan's identifying columns.
type ExportWorkbookUseCase struct {
	userRepo        port.UserRepository
	loanRepo        port.LoanRepository
	clientRepo      port.ClientRepository
	installmentRepo port.InstallmentRepository
}

// NewExportWorkbookUseCase wires dependencies.
func NewExportWorkbookUseCase(
	userRepo port.UserRepository,
	loanRepo port.LoanRepository,
	clientRepo port.ClientRepository,
	installmentRepo port.InstallmentRepository,
) *ExportWorkbookUseCase {
	return &ExportWorkbookUseCase{
		userRepo:        userRepo,
		loanRepo:        loanRepo,
		clientRepo:      clientRepo,
		installmentRepo: installmentRepo,
	}
}

// Execute assembles the export data for the owner.
func (uc *ExportWorkbookUseCase) Execute(ctx context.Context, ownerID string) (dto.ExportData, error) {
	now := time.Now().UTC()

	user, err := uc.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		return dto.ExportData{}, fmt.Errorf("find user: %w", err)
	}
	loans, err := uc.loanRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return dto.ExportData{}, fmt.Errorf("list loans: %w", err)
	}
	clients, err := uc.clientRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return dto.ExportData{}, fmt.Errorf("list clients: %w", err)
	}
	installments, err := uc.installmentRepo.FindByOwner(ctx, ownerID, "")
	if err != nil {
		return dto.ExportData{}, fmt.Errorf("list installments: %w", err)
	}

	clientNames := make(map[string]string, len(clients))
	for _, c := range clients {
		clientNames[c.ID()] = c.Name()
	}

	var rows []dto.ExportInstallmentRow
	for _, l := range loans {
		for _, inst := range l.Installments() {
			rows = append(rows, dto.ExportInstallmentRow{
				ClientName:    clientNames[l.ClientID()],
				LoanAmount:    l.Amount(),
				MarkupPercent: l.MarkupPercent(),
				StartDate:     l.StartDate(),
				DueDate:       inst.DueDate,
				Amount:        inst.Amount,
				Status:        inst.Status.String(),
			})
		}
	}

	return dto.ExportData{
		OwnerName:   user.Name(),
		GeneratedAt: now,
		Summary:     dto.NewSummaryResponse(service.Summarize(loans, installments)),
		Rows:        rows,
	}, nil
}
