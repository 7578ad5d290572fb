package rest

import (
	"context"
	"encoding/json"
	"net/http"
)

// Handlers groups everything the router mounts. Ready reports whether the
// service's backing stores are reachable; nil means always ready.
type Handlers struct {
	Auth      *AuthHandler
	Clients   *ClientHandler
	Loans     *LoanHandler
	Payments  *PaymentHandler
	Tracker   *TrackerHandler
	Portfolio *PortfolioHandler
	Ready     func(context.Context) error
}

// PublicPaths lists the routes the auth middleware must not protect.
func PublicPaths() []string {
	return []string{
		"/healthz",
		"/readyz",
		"/api/v1/auth/register",
		"/api/v1/auth/login",
		"/api/v1/auth/forgot-password",
		"/api/v1/auth/reset-password",
	}
}

// RegisterRoutes registers all REST API routes on the given ServeMux.
func RegisterRoutes(mux *http.ServeMux, h Handlers) {
	// Health
	mux.HandleFunc("/healthz", healthz)
	mux.HandleFunc("/readyz", readyz(h.Ready))

	// Auth
	mux.HandleFunc("POST /api/v1/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/v1/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/v1/auth/change-password", h.Auth.ChangePassword)
	mux.HandleFunc("POST /api/v1/auth/forgot-password", h.Auth.ForgotPassword)
	mux.HandleFunc("POST /api/v1/auth/reset-password", h.Auth.ResetPassword)
	mux.HandleFunc("DELETE /api/v1/account", h.Auth.DeleteAccount)

	// Clients
	mux.HandleFunc("POST /api/v1/clients", h.Clients.Create)
	mux.HandleFunc("GET /api/v1/clients", h.Clients.List)
	mux.HandleFunc("GET /api/v1/clients/{id}", h.Clients.Get)
	mux.HandleFunc("PUT /api/v1/clients/{id}", h.Clients.Update)
	mux.HandleFunc("DELETE /api/v1/clients/{id}", h.Clients.Delete)

	// Loans
	mux.HandleFunc("POST /api/v1/loans", h.Loans.Create)
	mux.HandleFunc("GET /api/v1/loans", h.Loans.List)
	mux.HandleFunc("GET /api/v1/loans/{id}", h.Loans.Get)
	mux.HandleFunc("PUT /api/v1/loans/{id}", h.Loans.Update)
	mux.HandleFunc("DELETE /api/v1/loans/{id}", h.Loans.Delete)
	mux.HandleFunc("GET /api/v1/loans/{id}/installments", h.Loans.ListInstallments)

	// Payments
	mux.HandleFunc("GET /api/v1/payments", h.Payments.List)
	mux.HandleFunc("POST /api/v1/payments/{id}/pay", h.Payments.Apply)
	mux.HandleFunc("POST /api/v1/payments/{id}/mark-paid", h.Payments.MarkPaid)

	// Borrower panel
	mux.HandleFunc("POST /api/v1/tracker/loans", h.Tracker.Create)
	mux.HandleFunc("GET /api/v1/tracker/loans", h.Tracker.List)
	mux.HandleFunc("POST /api/v1/tracker/loans/{id}/installments/{installment_id}/pay", h.Tracker.MarkPaid)

	// Dashboard and workbooks
	mux.HandleFunc("GET /api/v1/dashboard", h.Portfolio.Dashboard)
	mux.HandleFunc("GET /api/v1/export", h.Portfolio.Export)
	mux.HandleFunc("POST /api/v1/import", h.Portfolio.Import)
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func readyz(check func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if check != nil {
			if err := check(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"})
				return
			}
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	}
}
