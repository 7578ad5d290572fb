package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
	"github.com/SAHICA-Code/NovaBank/internal/domain/valueobject"
)

func pendingInstallment(id string, dueDate time.Time, amount string) model.Installment {
	return model.Installment{
		ID:        id,
		LoanID:    "loan-001",
		DueDate:   dueDate,
		Amount:    d(amount),
		Principal: d(amount),
		Remaining: d(amount),
		Status:    valueobject.InstallmentStatusPending,
	}
}

func TestWaterfall_ExactPayment(t *testing.T) {
	// paidNow equal to remaining: target PAID, no future row touched.
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	target := pendingInstallment("i1", due, "500")
	future := []model.Installment{pendingInstallment("i2", due.AddDate(0, 1, 0), "500")}

	w := model.Waterfall{TrackPartial: true}
	result, err := w.Apply(target, future, d("500"), now)

	require.NoError(t, err)
	assert.True(t, result.Target.Remaining.IsZero())
	assert.Equal(t, valueobject.InstallmentStatusPaid, result.Target.Status)
	require.NotNil(t, result.Target.PaidAt)
	assert.Equal(t, now, *result.Target.PaidAt)
	assert.Empty(t, result.Future, "no future installment may be touched")
	assert.True(t, d("500").Equal(result.Applied))
}

func TestWaterfall_OverpaymentCascades(t *testing.T) {
	// Target 500 remaining, paid 700, one future installment of 500:
	// target settles, 200 cascade to the future row.
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	target := pendingInstallment("i1", due, "500")
	future := []model.Installment{pendingInstallment("i2", due.AddDate(0, 1, 0), "500")}

	w := model.Waterfall{TrackPartial: true}
	result, err := w.Apply(target, future, d("700"), now)

	require.NoError(t, err)
	assert.True(t, result.Target.Remaining.IsZero())
	assert.Equal(t, valueobject.InstallmentStatusPaid, result.Target.Status)
	assert.True(t, d("700").Equal(result.Target.PaidAmount),
		"target records the full payment, got %s", result.Target.PaidAmount)

	require.Len(t, result.Future, 1)
	fp := result.Future[0]
	assert.True(t, d("200").Equal(fp.PaidAmount))
	assert.True(t, d("300").Equal(fp.Remaining))
	assert.Equal(t, valueobject.InstallmentStatusPartial, fp.Status)
	assert.Nil(t, fp.PaidAt)

	assert.True(t, d("700").Equal(result.Applied))
}

func TestWaterfall_PartialPayment(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	target := pendingInstallment("i1", due, "500")

	w := model.Waterfall{TrackPartial: true}
	result, err := w.Apply(target, nil, d("120"), now)

	require.NoError(t, err)
	assert.True(t, d("380").Equal(result.Target.Remaining))
	assert.True(t, d("120").Equal(result.Target.PaidAmount))
	assert.Equal(t, valueobject.InstallmentStatusPartial, result.Target.Status)
	assert.Nil(t, result.Target.PaidAt)
}

func TestWaterfall_PartialCollapsesToPendingWhenNotTracked(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	target := pendingInstallment("i1", due, "500")

	w := model.Waterfall{TrackPartial: false}
	result, err := w.Apply(target, nil, d("120"), now)

	require.NoError(t, err)
	assert.Equal(t, valueobject.InstallmentStatusPending, result.Target.Status)
	assert.True(t, d("380").Equal(result.Target.Remaining))
}

func TestWaterfall_CascadeStopsWhenExhausted(t *testing.T) {
	// 1250 against a 500 target and three future rows of 500: the first
	// future row settles, the second takes 250, the third is untouched.
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	target := pendingInstallment("i1", due, "500")
	future := []model.Installment{
		pendingInstallment("i2", due.AddDate(0, 1, 0), "500"),
		pendingInstallment("i3", due.AddDate(0, 2, 0), "500"),
		pendingInstallment("i4", due.AddDate(0, 3, 0), "500"),
	}

	w := model.Waterfall{TrackPartial: true}
	result, err := w.Apply(target, future, d("1250"), now)

	require.NoError(t, err)
	require.Len(t, result.Future, 2, "the third future row must stay untouched")

	assert.Equal(t, "i2", result.Future[0].ID)
	assert.Equal(t, valueobject.InstallmentStatusPaid, result.Future[0].Status)
	assert.True(t, result.Future[0].Remaining.IsZero())

	assert.Equal(t, "i3", result.Future[1].ID)
	assert.True(t, d("250").Equal(result.Future[1].PaidAmount))
	assert.True(t, d("250").Equal(result.Future[1].Remaining))
	assert.Equal(t, valueobject.InstallmentStatusPartial, result.Future[1].Status)

	assert.True(t, d("1250").Equal(result.Applied))
}

func TestWaterfall_Conservation(t *testing.T) {
	// Sum of used amounts across target and touched rows equals paidNow
	// whenever paidNow does not exceed the total outstanding balance.
	now := time.Now().UTC()
	due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	payments := []string{"0.01", "123.45", "500", "741.33", "1499.99", "1500"}
	for _, p := range payments {
		t.Run(p, func(t *testing.T) {
			target := pendingInstallment("i1", due, "500")
			future := []model.Installment{
				pendingInstallment("i2", due.AddDate(0, 1, 0), "500"),
				pendingInstallment("i3", due.AddDate(0, 2, 0), "500"),
			}

			w := model.Waterfall{TrackPartial: true}
			result, err := w.Apply(target, future, d(p), now)
			require.NoError(t, err)
			assert.True(t, d(p).Equal(result.Applied),
				"no money may be created or lost: applied %s for payment %s", result.Applied, p)
		})
	}
}

func TestWaterfall_ExcessBeyondOutstandingIsDropped(t *testing.T) {
	// Money beyond the total outstanding balance is absorbed, not credited.
	now := time.Now().UTC()
	due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	target := pendingInstallment("i1", due, "500")
	future := []model.Installment{pendingInstallment("i2", due.AddDate(0, 1, 0), "500")}

	w := model.Waterfall{TrackPartial: true}
	result, err := w.Apply(target, future, d("2000"), now)

	require.NoError(t, err)
	assert.True(t, d("1000").Equal(result.Applied))
	assert.Equal(t, valueobject.InstallmentStatusPaid, result.Target.Status)
	require.Len(t, result.Future, 1)
	assert.Equal(t, valueobject.InstallmentStatusPaid, result.Future[0].Status)
}

func TestWaterfall_SkipsSettledFutureRows(t *testing.T) {
	now := time.Now().UTC()
	due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	target := pendingInstallment("i1", due, "500")

	paid := model.MarkPaid(pendingInstallment("i2", due.AddDate(0, 1, 0), "500"), now.AddDate(0, 0, -1))
	open := pendingInstallment("i3", due.AddDate(0, 2, 0), "500")

	w := model.Waterfall{TrackPartial: true}
	result, err := w.Apply(target, []model.Installment{paid, open}, d("800"), now)

	require.NoError(t, err)
	require.Len(t, result.Future, 1)
	assert.Equal(t, "i3", result.Future[0].ID)
	assert.True(t, d("300").Equal(result.Future[0].PaidAmount))
}

func TestWaterfall_RejectsNonPositivePayment(t *testing.T) {
	due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	target := pendingInstallment("i1", due, "500")

	w := model.Waterfall{}
	_, err := w.Apply(target, nil, decimal.Zero, time.Now())
	assert.ErrorIs(t, err, model.ErrInvalidPayment)

	_, err = w.Apply(target, nil, d("-5"), time.Now())
	assert.ErrorIs(t, err, model.ErrInvalidPayment)
}

func TestWaterfall_FurtherPaymentSettlesPartial(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	target := pendingInstallment("i1", due, "500")

	w := model.Waterfall{TrackPartial: true}
	first, err := w.Apply(target, nil, d("200"), now)
	require.NoError(t, err)
	require.Equal(t, valueobject.InstallmentStatusPartial, first.Target.Status)

	later := now.Add(48 * time.Hour)
	second, err := w.Apply(first.Target, nil, d("300"), later)
	require.NoError(t, err)
	assert.Equal(t, valueobject.InstallmentStatusPaid, second.Target.Status)
	assert.True(t, second.Target.Remaining.IsZero())
	require.NotNil(t, second.Target.PaidAt)
	assert.Equal(t, later, *second.Target.PaidAt)
}

func TestMarkPaid(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("settles independent of amount", func(t *testing.T) {
		inst := pendingInstallment("i1", due, "500")
		updated := model.MarkPaid(inst, now)

		assert.Equal(t, valueobject.InstallmentStatusPaid, updated.Status)
		assert.True(t, updated.Remaining.IsZero())
		assert.True(t, updated.PaidAmount.Equal(updated.Amount))
		require.NotNil(t, updated.PaidAt)
		assert.Equal(t, now, *updated.PaidAt)
	})

	t.Run("no-op when already paid", func(t *testing.T) {
		inst := model.MarkPaid(pendingInstallment("i1", due, "500"), now)
		later := model.MarkPaid(inst, now.Add(time.Hour))

		// paidAt is set exactly once, on the transition into PAID.
		require.NotNil(t, later.PaidAt)
		assert.Equal(t, now, *later.PaidAt)
	})
}
