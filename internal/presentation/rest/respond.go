package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SAHICA-Code/NovaBank/internal/application/usecase"
	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError translates domain and application errors into HTTP status codes.
// Unknown errors are logged and reported as 500 without leaking detail.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
		writeJSON(w, status, errorBody{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, port.ErrNotFound),
		errors.Is(err, model.ErrInstallmentNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrEmailTaken),
		errors.Is(err, usecase.ErrClientHasLoans):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrTokenExpired),
		errors.Is(err, model.ErrInvalidAmount),
		errors.Is(err, model.ErrInvalidTerm),
		errors.Is(err, model.ErrInvalidMarkup),
		errors.Is(err, model.ErrInvalidRate),
		errors.Is(err, model.ErrInvalidDate),
		errors.Is(err, model.ErrInvalidPayment),
		errors.Is(err, model.ErrMissingReference),
		errors.Is(err, model.ErrInvalidClientName),
		errors.Is(err, model.ErrInvalidTitle),
		errors.Is(err, model.ErrInvalidEmail),
		errors.Is(err, model.ErrInvalidPassword):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody reads a JSON request body into dst. A false return means the
// response has already been written.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return false
	}
	return true
}
