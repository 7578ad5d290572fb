package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/application/usecase"
	"github.com/SAHICA-Code/NovaBank/internal/domain/event"
	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
	"github.com/SAHICA-Code/NovaBank/internal/domain/valueobject"
)

func openInstallment(id string, dueDate time.Time, amount string) model.Installment {
	return model.Installment{
		ID:        id,
		LoanID:    "loan-001",
		DueDate:   dueDate,
		Amount:    d(amount),
		Remaining: d(amount),
		Status:    valueobject.InstallmentStatusPending,
	}
}

func TestApplyPayment_Execute(t *testing.T) {
	due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("overpayment cascades to next installment", func(t *testing.T) {
		target := openInstallment("inst-1", due, "500")
		next := openInstallment("inst-2", due.AddDate(0, 1, 0), "500")

		installmentRepo := &mockInstallmentRepository{
			findByIDFunc: func(ctx context.Context, ownerID, id string) (model.Installment, error) {
				return target, nil
			},
			findDueAfterFunc: func(ctx context.Context, loanID string, after time.Time) ([]model.Installment, error) {
				assert.Equal(t, "loan-001", loanID)
				assert.Equal(t, target.DueDate, after)
				return []model.Installment{next}, nil
			},
		}
		publisher := &mockEventPublisher{}

		uc := usecase.NewApplyPaymentUseCase(
			installmentRepo, &mockLoanRepository{}, publisher,
			model.Waterfall{TrackPartial: true},
		)

		resp, err := uc.Execute(context.Background(), dto.ApplyPaymentRequest{
			OwnerID:       "owner-1",
			InstallmentID: "inst-1",
			Amount:        d("700"),
		})

		require.NoError(t, err)
		assert.Equal(t, "PAID", resp.Target.Status)
		require.Len(t, resp.Future, 1)
		assert.True(t, d("200").Equal(resp.Future[0].PaidAmount))
		assert.True(t, d("300").Equal(resp.Future[0].Remaining))
		assert.True(t, d("700").Equal(resp.Applied))
		assert.False(t, resp.LoanSettled)

		// Both rows persisted through one SaveAll.
		require.Len(t, installmentRepo.saved, 2)

		// One PaymentApplied per touched row plus one InstallmentPaid for
		// the settled target.
		var applied, paid int
		for _, e := range publisher.publishedEvents {
			switch e.(type) {
			case event.PaymentApplied:
				applied++
			case event.InstallmentPaid:
				paid++
			}
		}
		assert.Equal(t, 2, applied)
		assert.Equal(t, 1, paid)
	})

	t.Run("exact payment touches no sibling", func(t *testing.T) {
		target := openInstallment("inst-1", due, "500")
		installmentRepo := &mockInstallmentRepository{
			findByIDFunc: func(ctx context.Context, ownerID, id string) (model.Installment, error) {
				return target, nil
			},
		}

		uc := usecase.NewApplyPaymentUseCase(
			installmentRepo, &mockLoanRepository{}, &mockEventPublisher{},
			model.Waterfall{TrackPartial: true},
		)

		resp, err := uc.Execute(context.Background(), dto.ApplyPaymentRequest{
			OwnerID:       "owner-1",
			InstallmentID: "inst-1",
			Amount:        d("500"),
		})

		require.NoError(t, err)
		assert.Empty(t, resp.Future)
		require.Len(t, installmentRepo.saved, 1)
	})

	t.Run("reports settlement when last installment is covered", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		loan, err := model.NewLoan("owner-1", "client-001", d("1000"), d("10"), 2, start, start)
		require.NoError(t, err)

		rows := loan.Installments()
		now := time.Now().UTC()
		rows[0] = model.MarkPaid(rows[0], now)
		target := rows[1]

		installmentRepo := &mockInstallmentRepository{
			findByIDFunc: func(ctx context.Context, ownerID, id string) (model.Installment, error) {
				return target, nil
			},
		}
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(ctx context.Context, ownerID, id string) (model.Loan, error) {
				settledRows := []model.Installment{rows[0], model.MarkPaid(rows[1], now)}
				return model.ReconstructLoan(
					loan.ID(), loan.OwnerID(), loan.ClientID(),
					loan.Amount(), loan.MarkupPercent(), loan.Months(),
					loan.TotalToRepay(), loan.StartDate(),
					settledRows, loan.Version(), loan.CreatedAt(), loan.UpdatedAt(),
				), nil
			},
		}
		publisher := &mockEventPublisher{}

		uc := usecase.NewApplyPaymentUseCase(
			installmentRepo, loanRepo, publisher,
			model.Waterfall{TrackPartial: true},
		)

		resp, err := uc.Execute(context.Background(), dto.ApplyPaymentRequest{
			OwnerID:       "owner-1",
			InstallmentID: target.ID,
			Amount:        target.Amount,
		})

		require.NoError(t, err)
		assert.True(t, resp.LoanSettled)

		var settled bool
		for _, e := range publisher.publishedEvents {
			if _, ok := e.(event.LoanSettled); ok {
				settled = true
			}
		}
		assert.True(t, settled)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		target := openInstallment("inst-1", due, "500")
		installmentRepo := &mockInstallmentRepository{
			findByIDFunc: func(ctx context.Context, ownerID, id string) (model.Installment, error) {
				return target, nil
			},
		}

		uc := usecase.NewApplyPaymentUseCase(
			installmentRepo, &mockLoanRepository{}, &mockEventPublisher{},
			model.Waterfall{TrackPartial: true},
		)

		_, err := uc.Execute(context.Background(), dto.ApplyPaymentRequest{
			OwnerID:       "owner-1",
			InstallmentID: "inst-1",
			Amount:        d("0"),
		})
		assert.ErrorIs(t, err, model.ErrInvalidPayment)
		assert.Empty(t, installmentRepo.saved)
	})
}

func TestMarkInstallmentPaid_Execute(t *testing.T) {
	due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("settles row regardless of amount", func(t *testing.T) {
		target := openInstallment("inst-1", due, "500")
		installmentRepo := &mockInstallmentRepository{
			findByIDFunc: func(ctx context.Context, ownerID, id string) (model.Installment, error) {
				return target, nil
			},
		}
		publisher := &mockEventPublisher{}

		uc := usecase.NewMarkInstallmentPaidUseCase(installmentRepo, &mockLoanRepository{}, publisher)

		resp, err := uc.Execute(context.Background(), "owner-1", "inst-1")
		require.NoError(t, err)
		assert.Equal(t, "PAID", resp.Status)
		assert.True(t, resp.Remaining.IsZero())
		require.Len(t, installmentRepo.saved, 1)
		require.Len(t, publisher.publishedEvents, 1)
	})

	t.Run("no-op when already paid", func(t *testing.T) {
		paid := model.MarkPaid(openInstallment("inst-1", due, "500"), time.Now().UTC())
		installmentRepo := &mockInstallmentRepository{
			findByIDFunc: func(ctx context.Context, ownerID, id string) (model.Installment, error) {
				return paid, nil
			},
		}
		publisher := &mockEventPublisher{}

		uc := usecase.NewMarkInstallmentPaidUseCase(installmentRepo, &mockLoanRepository{}, publisher)

		resp, err := uc.Execute(context.Background(), "owner-1", "inst-1")
		require.NoError(t, err)
		assert.Equal(t, "PAID", resp.Status)
		assert.Empty(t, installmentRepo.saved)
		assert.Empty(t, publisher.publishedEvents)
	})
}
