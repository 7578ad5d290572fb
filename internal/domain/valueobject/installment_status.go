package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// InstallmentStatus – immutable value object
// ---------------------------------------------------------------------------

// InstallmentStatus represents the payment state of a single installment.
type InstallmentStatus struct {
	value string
}

const (
	installmentStatusPending = "PENDING"
	installmentStatusPartial = "PARTIAL"
	installmentStatusPaid    = "PAID"
)

var (
	InstallmentStatusPending = InstallmentStatus{value: installmentStatusPending}
	InstallmentStatusPartial = InstallmentStatus{value: installmentStatusPartial}
	InstallmentStatusPaid    = InstallmentStatus{value: installmentStatusPaid}
)

var validInstallmentStatuses = map[string]InstallmentStatus{
	installmentStatusPending: InstallmentStatusPending,
	installmentStatusPartial: InstallmentStatusPartial,
	installmentStatusPaid:    InstallmentStatusPaid,
}

// NewInstallmentStatus creates an InstallmentStatus from a raw string.
func NewInstallmentStatus(s string) (InstallmentStatus, error) {
	v, ok := validInstallmentStatuses[s]
	if !ok {
		return InstallmentStatus{}, fmt.Errorf("invalid installment status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s InstallmentStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s InstallmentStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s InstallmentStatus) Equal(other InstallmentStatus) bool { return s.value == other.value }

// IsTerminal returns true for PAID, which no further payment can leave.
func (s InstallmentStatus) IsTerminal() bool { return s.value == installmentStatusPaid }

// ---------------------------------------------------------------------------
// TrackerLoanType – immutable value object
// ---------------------------------------------------------------------------

// TrackerLoanType categorises a tracker-panel loan.
type TrackerLoanType struct {
	value string
}

const (
	trackerLoanTypeMortgage = "MORTGAGE"
	trackerLoanTypeCar      = "CAR"
	trackerLoanTypePersonal = "PERSONAL"
	trackerLoanTypeStudent  = "STUDENT"
	trackerLoanTypeOther    = "OTHER"
)

var (
	TrackerLoanTypeMortgage = TrackerLoanType{value: trackerLoanTypeMortgage}
	TrackerLoanTypeCar      = TrackerLoanType{value: trackerLoanTypeCar}
	TrackerLoanTypePersonal = TrackerLoanType{value: trackerLoanTypePersonal}
	TrackerLoanTypeStudent  = TrackerLoanType{value: trackerLoanTypeStudent}
	TrackerLoanTypeOther    = TrackerLoanType{value: trackerLoanTypeOther}
)

var validTrackerLoanTypes = map[string]TrackerLoanType{
	trackerLoanTypeMortgage: TrackerLoanTypeMortgage,
	trackerLoanTypeCar:      TrackerLoanTypeCar,
	trackerLoanTypePersonal: TrackerLoanTypePersonal,
	trackerLoanTypeStudent:  TrackerLoanTypeStudent,
	trackerLoanTypeOther:    TrackerLoanTypeOther,
}

// NewTrackerLoanType creates a TrackerLoanType from a raw string. Unknown
// values fall back to OTHER, matching the lenient intake of the tracker form.
func NewTrackerLoanType(s string) TrackerLoanType {
	if v, ok := validTrackerLoanTypes[s]; ok {
		return v
	}
	return TrackerLoanTypeOther
}

// String returns the string representation of the type.
func (t TrackerLoanType) String() string { return t.value }

// IsZero returns true when not initialised.
func (t TrackerLoanType) IsZero() bool { return t.value == "" }

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
