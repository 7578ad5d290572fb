package rest_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/application/usecase"
	"github.com/SAHICA-Code/NovaBank/internal/auth"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
	"github.com/SAHICA-Code/NovaBank/internal/presentation/rest"
)

// Func types below implement the handler dependencies so tests can stand in
// for use cases without a database.

type registerFn func(context.Context, dto.RegisterRequest) (dto.AuthResponse, error)

func (f registerFn) Execute(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error) {
	return f(ctx, req)
}

type loginFn func(context.Context, dto.LoginRequest) (dto.AuthResponse, error)

func (f loginFn) Execute(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	return f(ctx, req)
}

type changePasswordFn func(context.Context, dto.ChangePasswordRequest) error

func (f changePasswordFn) Execute(ctx context.Context, req dto.ChangePasswordRequest) error {
	return f(ctx, req)
}

type forgotPasswordFn func(context.Context, dto.ForgotPasswordRequest) error

func (f forgotPasswordFn) Execute(ctx context.Context, req dto.ForgotPasswordRequest) error {
	return f(ctx, req)
}

type resetPasswordFn func(context.Context, dto.ResetPasswordRequest) error

func (f resetPasswordFn) Execute(ctx context.Context, req dto.ResetPasswordRequest) error {
	return f(ctx, req)
}

type deleteAccountFn func(context.Context, dto.DeleteAccountRequest) error

func (f deleteAccountFn) Execute(ctx context.Context, req dto.DeleteAccountRequest) error {
	return f(ctx, req)
}

type applyPaymentFn func(context.Context, dto.ApplyPaymentRequest) (dto.PaymentResultResponse, error)

func (f applyPaymentFn) Execute(ctx context.Context, req dto.ApplyPaymentRequest) (dto.PaymentResultResponse, error) {
	return f(ctx, req)
}

type markPaidFn func(context.Context, string, string) (dto.InstallmentResponse, error)

func (f markPaidFn) Execute(ctx context.Context, ownerID, installmentID string) (dto.InstallmentResponse, error) {
	return f(ctx, ownerID, installmentID)
}

type listPaymentsFn func(context.Context, string, string) (dto.PaymentsOverviewResponse, error)

func (f listPaymentsFn) Execute(ctx context.Context, ownerID, clientID string) (dto.PaymentsOverviewResponse, error) {
	return f(ctx, ownerID, clientID)
}

type getLoanFn func(context.Context, string, string) (dto.LoanResponse, error)

func (f getLoanFn) Execute(ctx context.Context, ownerID, loanID string) (dto.LoanResponse, error) {
	return f(ctx, ownerID, loanID)
}

type listLoansFn func(context.Context, string, string) ([]dto.LoanResponse, error)

func (f listLoansFn) Execute(ctx context.Context, ownerID, clientID string) ([]dto.LoanResponse, error) {
	return f(ctx, ownerID, clientID)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func authed(req *http.Request, userID string) *http.Request {
	claims := &auth.Claims{UserID: userID}
	return req.WithContext(auth.ContextWithClaims(req.Context(), claims))
}

func TestHealthz(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyz(t *testing.T) {
	t.Run("reports ready when the check passes", func(t *testing.T) {
		mux := http.NewServeMux()
		rest.RegisterRoutes(mux, rest.Handlers{
			Ready: func(ctx context.Context) error { return nil },
		})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "ready")
	})

	t.Run("returns 503 when the check fails", func(t *testing.T) {
		mux := http.NewServeMux()
		rest.RegisterRoutes(mux, rest.Handlers{
			Ready: func(ctx context.Context) error { return context.DeadlineExceeded },
		})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	logger := testLogger()

	t.Run("returns token on success", func(t *testing.T) {
		login := loginFn(func(_ context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
			assert.Equal(t, "maria@example.com", req.Email)
			return dto.AuthResponse{Token: "jwt-token"}, nil
		})
		h := rest.NewAuthHandler(nil, login, nil, nil, nil, nil, logger)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"email":"maria@example.com","password":"secret123"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body dto.AuthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "jwt-token", body.Token)
	})

	t.Run("maps bad credentials to 401", func(t *testing.T) {
		login := loginFn(func(context.Context, dto.LoginRequest) (dto.AuthResponse, error) {
			return dto.AuthResponse{}, usecase.ErrInvalidCredentials
		})
		h := rest.NewAuthHandler(nil, login, nil, nil, nil, nil, logger)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"email":"maria@example.com","password":"wrong"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		h := rest.NewAuthHandler(nil, loginFn(nil), nil, nil, nil, nil, logger)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	register := registerFn(func(context.Context, dto.RegisterRequest) (dto.AuthResponse, error) {
		return dto.AuthResponse{}, usecase.ErrEmailTaken
	})
	h := rest.NewAuthHandler(register, nil, nil, nil, nil, nil, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
		strings.NewReader(`{"name":"Maria","email":"maria@example.com","password":"secret123"}`))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthHandler_ChangePassword_RequiresAuth(t *testing.T) {
	change := changePasswordFn(func(context.Context, dto.ChangePasswordRequest) error { return nil })
	h := rest.NewAuthHandler(nil, nil, change, nil, nil, nil, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/change-password",
		strings.NewReader(`{"current_password":"a","new_password":"b"}`))
	rec := httptest.NewRecorder()
	h.ChangePassword(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPaymentHandler_Apply(t *testing.T) {
	apply := applyPaymentFn(func(_ context.Context, req dto.ApplyPaymentRequest) (dto.PaymentResultResponse, error) {
		assert.Equal(t, "user-001", req.OwnerID)
		assert.Equal(t, "inst-042", req.InstallmentID)
		assert.True(t, req.Amount.Equal(decimal.RequireFromString("150.00")))
		return dto.PaymentResultResponse{Applied: req.Amount}, nil
	})
	h := rest.NewPaymentHandler(apply, nil, nil, testLogger())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/payments/{id}/pay", h.Apply)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/inst-042/pay",
		strings.NewReader(`{"amount":"150.00"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authed(req, "user-001"))

	require.Equal(t, http.StatusOK, rec.Code)
	var body dto.PaymentResultResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Applied.Equal(decimal.RequireFromString("150.00")))
}

func TestPaymentHandler_MarkPaid_NotFound(t *testing.T) {
	markPaid := markPaidFn(func(context.Context, string, string) (dto.InstallmentResponse, error) {
		return dto.InstallmentResponse{}, port.ErrNotFound
	})
	h := rest.NewPaymentHandler(nil, markPaid, nil, testLogger())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/payments/{id}/mark-paid", h.MarkPaid)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/missing/mark-paid", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authed(req, "user-001"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoanHandler_List(t *testing.T) {
	t.Run("passes the client filter through", func(t *testing.T) {
		list := listLoansFn(func(_ context.Context, ownerID, clientID string) ([]dto.LoanResponse, error) {
			assert.Equal(t, "user-001", ownerID)
			assert.Equal(t, "client-007", clientID)
			return []dto.LoanResponse{{ID: "loan-001"}}, nil
		})
		h := rest.NewLoanHandler(nil, nil, nil, list, nil, nil, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/loans?client_id=client-007", nil)
		rec := httptest.NewRecorder()
		h.List(rec, authed(req, "user-001"))

		require.Equal(t, http.StatusOK, rec.Code)
		var body []dto.LoanResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Len(t, body, 1)
		assert.Equal(t, "loan-001", body[0].ID)
	})

	t.Run("renders empty list as json array", func(t *testing.T) {
		list := listLoansFn(func(context.Context, string, string) ([]dto.LoanResponse, error) {
			return nil, nil
		})
		h := rest.NewLoanHandler(nil, nil, nil, list, nil, nil, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/loans", nil)
		rec := httptest.NewRecorder()
		h.List(rec, authed(req, "user-001"))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]\n", rec.Body.String())
	})
}

func TestLoanHandler_Get_ScopedToOwner(t *testing.T) {
	get := getLoanFn(func(_ context.Context, ownerID, loanID string) (dto.LoanResponse, error) {
		assert.Equal(t, "user-001", ownerID)
		assert.Equal(t, "loan-001", loanID)
		return dto.LoanResponse{ID: loanID}, nil
	})
	h := rest.NewLoanHandler(nil, nil, get, nil, nil, nil, testLogger())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/loans/{id}", h.Get)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/loans/loan-001", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authed(req, "user-001"))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListPayments(t *testing.T) {
	list := listPaymentsFn(func(context.Context, string, string) (dto.PaymentsOverviewResponse, error) {
		return dto.PaymentsOverviewResponse{PendingTotal: decimal.RequireFromString("350.00")}, nil
	})
	h := rest.NewPaymentHandler(nil, nil, list, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments", nil)
	rec := httptest.NewRecorder()
	h.List(rec, authed(req, "user-001"))

	require.Equal(t, http.StatusOK, rec.Code)
	var body dto.PaymentsOverviewResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.PendingTotal.Equal(decimal.RequireFromString("350.00")))
	assert.NotNil(t, body.Installments)
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := rest.NewRateLimiter(2)
	handler := rest.RateLimitMiddleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
