package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/auth"
)

type registerExecutor interface {
	Execute(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error)
}

type loginExecutor interface {
	Execute(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error)
}

type changePasswordExecutor interface {
	Execute(ctx context.Context, req dto.ChangePasswordRequest) error
}

type forgotPasswordExecutor interface {
	Execute(ctx context.Context, req dto.ForgotPasswordRequest) error
}

type resetPasswordExecutor interface {
	Execute(ctx context.Context, req dto.ResetPasswordRequest) error
}

type deleteAccountExecutor interface {
	Execute(ctx context.Context, req dto.DeleteAccountRequest) error
}

// AuthHandler serves registration, login and the password lifecycle.
type AuthHandler struct {
	register       registerExecutor
	login          loginExecutor
	changePassword changePasswordExecutor
	forgotPassword forgotPasswordExecutor
	resetPassword  resetPasswordExecutor
	deleteAccount  deleteAccountExecutor
	logger         *slog.Logger
}

// NewAuthHandler wires the auth use cases.
func NewAuthHandler(
	register registerExecutor,
	login loginExecutor,
	changePassword changePasswordExecutor,
	forgotPassword forgotPasswordExecutor,
	resetPassword resetPasswordExecutor,
	deleteAccount deleteAccountExecutor,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		register:       register,
		login:          login,
		changePassword: changePassword,
		forgotPassword: forgotPassword,
		resetPassword:  resetPassword,
		deleteAccount:  deleteAccount,
		logger:         logger,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := h.register.Execute(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := h.login.Execute(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.UserID = userID
	if err := h.changePassword.Execute(r.Context(), req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ForgotPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.forgotPassword.Execute(r.Context(), req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	// Always accepted, whether or not the email exists.
	w.WriteHeader(http.StatusAccepted)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.resetPassword.Execute(r.Context(), req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req dto.DeleteAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.UserID = userID
	if err := h.deleteAccount.Execute(r.Context(), req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requireUser extracts the authenticated user from the request context. A
// false return means a 401 has been written.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication required"})
		return "", false
	}
	return userID, true
}
