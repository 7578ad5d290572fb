package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
	"github.com/SAHICA-Code/NovaBank/internal/domain/service"
)

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

// RegisterRequest carries the data for a new account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest carries credentials for authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest rotates the password of an authenticated user.
type ChangePasswordRequest struct {
	UserID          string `json:"-"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ForgotPasswordRequest starts the reset flow for an email address.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest completes the reset flow with a single-use token.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// DeleteAccountRequest removes the authenticated user and everything they own.
type DeleteAccountRequest struct {
	UserID   string `json:"-"`
	Password string `json:"password"`
}

// UserResponse is the external representation of a user account.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned on successful login or registration.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// NewUserResponse maps a user aggregate to its external representation.
func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		CreatedAt: u.CreatedAt(),
	}
}

// ---------------------------------------------------------------------------
// Clients
// ---------------------------------------------------------------------------

// CreateClientRequest carries the data for a new client.
type CreateClientRequest struct {
	OwnerID string `json:"-"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Notes   string `json:"notes"`
}

// UpdateClientRequest replaces a client's contact details.
type UpdateClientRequest struct {
	OwnerID  string `json:"-"`
	ClientID string `json:"-"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Notes    string `json:"notes"`
}

// ClientResponse is the external representation of a client.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewClientResponse maps a client aggregate to its external representation.
func NewClientResponse(c model.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID(),
		Name:      c.Name(),
		Email:     c.Email(),
		Phone:     c.Phone(),
		Notes:     c.Notes(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

// ---------------------------------------------------------------------------
// Loans and installments
// ---------------------------------------------------------------------------

// CreateLoanRequest carries the terms of a new loan.
type CreateLoanRequest struct {
	OwnerID       string          `json:"-"`
	ClientID      string          `json:"client_id"`
	Amount        decimal.Decimal `json:"amount"`
	MarkupPercent decimal.Decimal `json:"markup_percent"`
	Months        int             `json:"months"`
	StartDate     time.Time       `json:"start_date"`
}

// UpdateLoanRequest replaces a loan's terms, regenerating its schedule.
type UpdateLoanRequest struct {
	OwnerID       string          `json:"-"`
	LoanID        string          `json:"-"`
	ClientID      string          `json:"client_id"`
	Amount        decimal.Decimal `json:"amount"`
	MarkupPercent decimal.Decimal `json:"markup_percent"`
	Months        int             `json:"months"`
	StartDate     time.Time       `json:"start_date"`
}

// InstallmentResponse is the external representation of a schedule row.
type InstallmentResponse struct {
	ID         string          `json:"id"`
	LoanID     string          `json:"loan_id"`
	Period     int             `json:"period"`
	DueDate    time.Time       `json:"due_date"`
	Amount     decimal.Decimal `json:"amount"`
	Principal  decimal.Decimal `json:"principal"`
	Interest   decimal.Decimal `json:"interest"`
	Extras     decimal.Decimal `json:"extras"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
	Remaining  decimal.Decimal `json:"remaining"`
	Status     string          `json:"status"`
	PaidAt     *time.Time      `json:"paid_at,omitempty"`
}

// NewInstallmentResponse maps an installment to its external representation.
func NewInstallmentResponse(i model.Installment) InstallmentResponse {
	return InstallmentResponse{
		ID:         i.ID,
		LoanID:     i.LoanID,
		Period:     i.Period,
		DueDate:    i.DueDate,
		Amount:     i.Amount,
		Principal:  i.Principal,
		Interest:   i.Interest,
		Extras:     i.Extras,
		PaidAmount: i.PaidAmount,
		Remaining:  i.Outstanding(),
		Status:     i.Status.String(),
		PaidAt:     i.PaidAt,
	}
}

// NewInstallmentResponses maps a slice of installments.
func NewInstallmentResponses(rows []model.Installment) []InstallmentResponse {
	out := make([]InstallmentResponse, len(rows))
	for idx, r := range rows {
		out[idx] = NewInstallmentResponse(r)
	}
	return out
}

// LoanResponse is the external representation of a loan.
type LoanResponse struct {
	ID            string                `json:"id"`
	ClientID      string                `json:"client_id"`
	Amount        decimal.Decimal       `json:"amount"`
	MarkupPercent decimal.Decimal       `json:"markup_percent"`
	Months        int                   `json:"months"`
	TotalToRepay  decimal.Decimal       `json:"total_to_repay"`
	StartDate     time.Time             `json:"start_date"`
	Settled       bool                  `json:"settled"`
	Installments  []InstallmentResponse `json:"installments,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// NewLoanResponse maps a loan aggregate to its external representation.
func NewLoanResponse(l model.Loan) LoanResponse {
	return LoanResponse{
		ID:            l.ID(),
		ClientID:      l.ClientID(),
		Amount:        l.Amount(),
		MarkupPercent: l.MarkupPercent(),
		Months:        l.Months(),
		TotalToRepay:  l.TotalToRepay(),
		StartDate:     l.StartDate(),
		Settled:       l.IsSettled(),
		Installments:  NewInstallmentResponses(l.Installments()),
		CreatedAt:     l.CreatedAt(),
		UpdatedAt:     l.UpdatedAt(),
	}
}

// ---------------------------------------------------------------------------
// Payments
// ---------------------------------------------------------------------------

// ApplyPaymentRequest applies cash against one installment, cascading any
// overpayment to the later installments of the same loan.
type ApplyPaymentRequest struct {
	OwnerID       string          `json:"-"`
	InstallmentID string          `json:"-"`
	Amount        decimal.Decimal `json:"amount"`
}

// PaymentResultResponse reports every installment a payment touched.
type PaymentResultResponse struct {
	Target      InstallmentResponse   `json:"target"`
	Future      []InstallmentResponse `json:"future,omitempty"`
	Applied     decimal.Decimal       `json:"applied"`
	LoanSettled bool                  `json:"loan_settled"`
}

// PaymentsOverviewResponse is the payment screen: every installment visible
// to the owner plus the pending total.
type PaymentsOverviewResponse struct {
	Installments []InstallmentResponse `json:"installments"`
	PendingTotal decimal.Decimal       `json:"pending_total"`
}

// ---------------------------------------------------------------------------
// Tracker loans
// ---------------------------------------------------------------------------

// CreateTrackerLoanRequest creates a borrower-panel loan. When AnnualRatePct
// and Principal are set the schedule is amortized; otherwise MonthlyPayment
// drives a fixed manual schedule.
type CreateTrackerLoanRequest struct {
	UserID         string          `json:"-"`
	Title          string          `json:"title"`
	Type           string          `json:"type"`
	StartDate      time.Time       `json:"start_date"`
	Months         int             `json:"months"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	MonthlyExtras  decimal.Decimal `json:"monthly_extras"`
	Principal      decimal.Decimal `json:"principal"`
	AnnualRatePct  decimal.Decimal `json:"annual_rate_pct"`
}

// TrackerLoanResponse is the external representation of a tracker loan.
type TrackerLoanResponse struct {
	ID             string                `json:"id"`
	Title          string                `json:"title"`
	Type           string                `json:"type"`
	StartDate      time.Time             `json:"start_date"`
	Months         int                   `json:"months"`
	MonthlyPayment decimal.Decimal       `json:"monthly_payment"`
	MonthlyExtras  decimal.Decimal       `json:"monthly_extras"`
	FinishedAt     *time.Time            `json:"finished_at,omitempty"`
	Installments   []InstallmentResponse `json:"installments,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
}

// NewTrackerLoanResponse maps a tracker loan to its external representation.
func NewTrackerLoanResponse(t model.TrackerLoan) TrackerLoanResponse {
	return TrackerLoanResponse{
		ID:             t.ID(),
		Title:          t.Title(),
		Type:           t.Type().String(),
		StartDate:      t.StartDate(),
		Months:         t.Months(),
		MonthlyPayment: t.MonthlyPayment(),
		MonthlyExtras:  t.MonthlyExtras(),
		FinishedAt:     t.FinishedAt(),
		Installments:   NewInstallmentResponses(t.Installments()),
		CreatedAt:      t.CreatedAt(),
	}
}

// ---------------------------------------------------------------------------
// Dashboard
// ---------------------------------------------------------------------------

// SummaryResponse is the portfolio summary block of the dashboard.
type SummaryResponse struct {
	Invested         decimal.Decimal `json:"invested"`
	TotalToCollect   decimal.Decimal `json:"total_to_collect"`
	Profit           decimal.Decimal `json:"profit"`
	PaidTotal        decimal.Decimal `json:"paid_total"`
	CapitalRecovered decimal.Decimal `json:"capital_recovered"`
	CapitalPending   decimal.Decimal `json:"capital_pending"`
	ProfitCollected  decimal.Decimal `json:"profit_collected"`
}

// NewSummaryResponse maps a portfolio summary.
func NewSummaryResponse(s service.PortfolioSummary) SummaryResponse {
	return SummaryResponse{
		Invested:         s.Invested,
		TotalToCollect:   s.TotalToCollect,
		Profit:           s.Profit,
		PaidTotal:        s.PaidTotal,
		CapitalRecovered: s.CapitalRecovered,
		CapitalPending:   s.CapitalPending,
		ProfitCollected:  s.ProfitCollected,
	}
}

// MonthlyTotalResponse is one bar of the upcoming-payments chart.
type MonthlyTotalResponse struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// DashboardResponse aggregates the owner dashboard.
type DashboardResponse struct {
	Summary  SummaryResponse        `json:"summary"`
	Upcoming []MonthlyTotalResponse `json:"upcoming"`
}

// ---------------------------------------------------------------------------
// Workbook export / import
// ---------------------------------------------------------------------------

// ExportInstallmentRow is one row of the export workbook's schedule table:
// one installment, repeating the identifying loan columns so the file can be
// re-imported without a separate loan sheet.
type ExportInstallmentRow struct {
	ClientName    string
	LoanAmount    decimal.Decimal
	MarkupPercent decimal.Decimal
	StartDate     time.Time
	DueDate       time.Time
	Amount        decimal.Decimal
	Status        string
}

// ExportData is everything the workbook writer needs.
type ExportData struct {
	OwnerName   string
	GeneratedAt time.Time
	Summary     SummaryResponse
	Rows        []ExportInstallmentRow
}

// ImportInstallmentRow is one parsed schedule row of an imported workbook.
// Rows sharing client, loan amount, markup and start date belong to the same
// loan; the loan's term is however many rows the group has.
type ImportInstallmentRow struct {
	ClientName    string
	LoanAmount    decimal.Decimal
	MarkupPercent decimal.Decimal
	StartDate     time.Time
	DueDate       time.Time
	Amount        decimal.Decimal
	Paid          bool
}

// ImportResult reports what an import created.
type ImportResult struct {
	ClientsCreated int `json:"clients_created"`
	LoansCreated   int `json:"loans_created"`
	RowsSkipped    int `json:"rows_skipped"`
}
