package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/application/usecase"
	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
)

func TestImportWorkbook_Execute(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	due := func(m int) time.Time { return time.Date(2024, time.Month(1+m), 1, 0, 0, 0, 0, time.UTC) }

	t.Run("groups rows into loans and matches existing clients", func(t *testing.T) {
		clientRepo := &mockClientRepository{
			findByOwnerFunc: func(ctx context.Context, ownerID string) ([]model.Client, error) {
				return []model.Client{existingClient(ownerID)}, nil
			},
		}
		loanRepo := &mockLoanRepository{}

		uc := usecase.NewImportWorkbookUseCase(clientRepo, loanRepo, &mockEventPublisher{})

		result, err := uc.Execute(context.Background(), "owner-1", []dto.ImportInstallmentRow{
			{ClientName: "maria lopez", LoanAmount: d("1000"), MarkupPercent: d("10"), StartDate: start, DueDate: due(1), Amount: d("366.66"), Paid: true},
			{ClientName: "maria lopez", LoanAmount: d("1000"), MarkupPercent: d("10"), StartDate: start, DueDate: due(2), Amount: d("366.66")},
			{ClientName: "maria lopez", LoanAmount: d("1000"), MarkupPercent: d("10"), StartDate: start, DueDate: due(3), Amount: d("366.68")},
			{ClientName: "New Person", LoanAmount: d("500"), MarkupPercent: d("5"), StartDate: start, DueDate: due(1), Amount: d("262.50")},
			{ClientName: "New Person", LoanAmount: d("500"), MarkupPercent: d("5"), StartDate: start, DueDate: due(2), Amount: d("262.50")},
		})

		require.NoError(t, err)
		// "maria lopez" matches the existing client case-insensitively.
		assert.Equal(t, 1, result.ClientsCreated)
		assert.Equal(t, 2, result.LoansCreated)
		assert.Equal(t, 0, result.RowsSkipped)
		require.Len(t, clientRepo.savedClients, 1)
		assert.Equal(t, "New Person", clientRepo.savedClients[0].Name())
		require.Len(t, loanRepo.savedLoans, 2)

		// Three rows become one three-month loan.
		first := loanRepo.savedLoans[0]
		assert.Equal(t, 3, first.Months())
		assert.True(t, d("1100.00").Equal(first.TotalToRepay()))
	})

	t.Run("preserves due dates and paid statuses from the file", func(t *testing.T) {
		clientRepo := &mockClientRepository{}
		loanRepo := &mockLoanRepository{}

		uc := usecase.NewImportWorkbookUseCase(clientRepo, loanRepo, &mockEventPublisher{})

		// Due dates deliberately off the generated grid.
		odd := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
		_, err := uc.Execute(context.Background(), "owner-1", []dto.ImportInstallmentRow{
			{ClientName: "Ana", LoanAmount: d("600"), MarkupPercent: d("0"), StartDate: start, DueDate: odd, Amount: d("300.00"), Paid: true},
			{ClientName: "Ana", LoanAmount: d("600"), MarkupPercent: d("0"), StartDate: start, DueDate: odd.AddDate(0, 1, 0), Amount: d("300.00")},
		})
		require.NoError(t, err)
		require.Len(t, loanRepo.savedLoans, 1)

		rows := loanRepo.savedLoans[0].Installments()
		require.Len(t, rows, 2)
		assert.Equal(t, odd, rows[0].DueDate)
		assert.True(t, rows[0].IsPaid())
		require.NotNil(t, rows[0].PaidAt)
		assert.True(t, rows[0].Remaining.IsZero())
		assert.False(t, rows[1].IsPaid())
		assert.True(t, rows[1].Remaining.Equal(d("300.00")))
	})

	t.Run("skips invalid rows without aborting", func(t *testing.T) {
		clientRepo := &mockClientRepository{}
		loanRepo := &mockLoanRepository{}

		uc := usecase.NewImportWorkbookUseCase(clientRepo, loanRepo, &mockEventPublisher{})

		result, err := uc.Execute(context.Background(), "owner-1", []dto.ImportInstallmentRow{
			{ClientName: "", LoanAmount: d("1000"), MarkupPercent: d("10"), StartDate: start, DueDate: due(1), Amount: d("366.66")},
			{ClientName: "Pedro", LoanAmount: d("0"), MarkupPercent: d("10"), StartDate: start, DueDate: due(1), Amount: d("366.66")},
			{ClientName: "Pedro", LoanAmount: d("800"), MarkupPercent: d("10"), StartDate: start, DueDate: due(1), Amount: d("880.00")},
		})

		require.NoError(t, err)
		assert.Equal(t, 2, result.RowsSkipped)
		assert.Equal(t, 1, result.LoansCreated)
		assert.Equal(t, 1, result.ClientsCreated)
	})
}

func TestGetDashboard_Execute(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	loan, err := model.NewLoan("owner-1", "client-001", d("1000"), d("10"), 2, start, start)
	require.NoError(t, err)

	loanRepo := &mockLoanRepository{
		findByOwnerFunc: func(ctx context.Context, ownerID string) ([]model.Loan, error) {
			return []model.Loan{loan}, nil
		},
	}
	installmentRepo := &mockInstallmentRepository{
		findByOwnerFunc: func(ctx context.Context, ownerID, clientID string) ([]model.Installment, error) {
			return loan.Installments(), nil
		},
	}

	uc := usecase.NewGetDashboardUseCase(loanRepo, installmentRepo)

	resp, err := uc.Execute(context.Background(), "owner-1")
	require.NoError(t, err)

	assert.True(t, d("1000.00").Equal(resp.Summary.Invested))
	assert.True(t, d("1100.00").Equal(resp.Summary.TotalToCollect))
	assert.True(t, d("100.00").Equal(resp.Summary.Profit))
	assert.Len(t, resp.Upcoming, 12)
}
