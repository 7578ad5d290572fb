package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Waterfall applies cash payments against installments, cascading any
// overpayment to the next-due installments in chronological order.
// TrackPartial selects whether partly-covered rows are reported as PARTIAL
// or collapse back to PENDING.
type Waterfall struct {
	TrackPartial bool
}

// PaymentApplication is the result of applying one payment. Future holds only
// the installments the cascade touched, in ascending due-date order; rows the
// leftover never reached are absent and must not be persisted. Applied is the
// sum of amounts actually consumed, never more than the total outstanding
// balance: any excess beyond that is dropped, not tracked as credit.
type PaymentApplication struct {
	Target  Installment
	Future  []Installment
	Applied decimal.Decimal
}

// Apply applies paidNow to the target installment and cascades any leftover
// to the future installments. future must contain exactly the sibling
// installments with a due date after the target's, sorted ascending.
//
// The target records the full paidNow in its PaidAmount even when part of it
// cascades; touched future rows record only the amount used on them. Calling
// Apply twice with the same arguments consumes paidNow twice: it is not
// idempotent, and callers must serialize the surrounding read-modify-write.
func (w Waterfall) Apply(
	target Installment,
	future []Installment,
	paidNow decimal.Decimal,
	now time.Time,
) (PaymentApplication, error) {
	if paidNow.LessThanOrEqual(decimal.Zero) {
		return PaymentApplication{}, ErrInvalidPayment
	}

	remaining := target.Outstanding()
	leftover := paidNow.Sub(remaining)

	result := PaymentApplication{
		Target:  target.receive(paidNow, now, w.TrackPartial),
		Applied: decimal.Min(paidNow, remaining),
	}

	if leftover.LessThanOrEqual(decimal.Zero) {
		return result, nil
	}

	for _, fp := range future {
		if leftover.LessThanOrEqual(decimal.Zero) {
			break
		}
		used := decimal.Min(leftover, fp.Outstanding())
		leftover = leftover.Sub(used)
		if used.LessThanOrEqual(decimal.Zero) {
			continue
		}
		result.Future = append(result.Future, fp.receive(used, now, w.TrackPartial))
		result.Applied = result.Applied.Add(used)
	}

	return result, nil
}
