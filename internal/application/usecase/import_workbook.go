package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
)

// ImportWorkbookUseCase recreates clients and loans from parsed workbook
// rows. Rows sharing client, loan amount, markup and start date form one
// loan; its term is the group size and each row becomes one installment with
// its due date and paid state preserved. Clients are matched by name,
// case-insensitively; unknown names are created on the fly. Invalid rows are
// skipped, not fatal.
type ImportWorkbookUseCase struct {
	clientRepo port.ClientRepository
	loanRepo   port.LoanRepository
	publisher  port.EventPublisher
}

// NewImportWorkbookUseCase wires dependencies.
func NewImportWorkbookUseCase(
	clientRepo port.ClientRepository,
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
) *ImportWorkbookUseCase {
	return &ImportWorkbookUseCase{
		clientRepo: clientRepo,
		loanRepo:   loanRepo,
		publisher:  publisher,
	}
}

// Execute imports the rows for the owner.
func (uc *ImportWorkbookUseCase) Execute(
	ctx context.Context,
	ownerID string,
	rows []dto.ImportInstallmentRow,
) (dto.ImportResult, error) {
	now := time.Now().UTC()

	existing, err := uc.clientRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return dto.ImportResult{}, fmt.Errorf("list clients: %w", err)
	}
	byName := make(map[string]string, len(existing))
	for _, c := range existing {
		byName[strings.ToLower(c.Name())] = c.ID()
	}

	var result dto.ImportResult

	// Group valid rows into loans, preserving first-seen order.
	groups := make(map[string][]dto.ImportInstallmentRow)
	var order []string
	for _, row := range rows {
		name := strings.TrimSpace(row.ClientName)
		if name == "" || row.LoanAmount.LessThanOrEqual(decimal.Zero) ||
			row.Amount.LessThanOrEqual(decimal.Zero) ||
			row.StartDate.IsZero() || row.DueDate.IsZero() {
			result.RowsSkipped++
			continue
		}
		row.ClientName = name

		key := strings.ToLower(name) + "|" + row.LoanAmount.String() + "|" +
			row.MarkupPercent.String() + "|" + row.StartDate.Format("2006-01-02")
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], row)
	}

	for _, key := range order {
		group := groups[key]
		sample := group[0]

		clientID, ok := byName[strings.ToLower(sample.ClientName)]
		if !ok {
			client, err := model.NewClient(ownerID, sample.ClientName, "", "", "", now)
			if err != nil {
				result.RowsSkipped += len(group)
				continue
			}
			if err := uc.clientRepo.Save(ctx, client); err != nil {
				return result, fmt.Errorf("save client: %w", err)
			}
			if err := uc.publisher.Publish(ctx, client.DomainEvents()...); err != nil {
				return result, fmt.Errorf("publish events: %w", err)
			}
			clientID = client.ID()
			byName[strings.ToLower(sample.ClientName)] = clientID
			result.ClientsCreated++
		}

		imported := make([]model.ImportedRow, len(group))
		for i, row := range group {
			imported[i] = model.ImportedRow{
				DueDate: row.DueDate,
				Amount:  row.Amount,
				Paid:    row.Paid,
			}
		}

		loan, err := model.ImportLoan(
			ownerID, clientID,
			sample.LoanAmount, sample.MarkupPercent, sample.StartDate,
			imported, now,
		)
		if err != nil {
			result.RowsSkipped += len(group)
			continue
		}
		if err := uc.loanRepo.Save(ctx, loan); err != nil {
			return result, fmt.Errorf("save loan: %w", err)
		}
		if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
			return result, fmt.Errorf("publish events: %w", err)
		}
		result.LoansCreated++
	}

	return result, nil
}
