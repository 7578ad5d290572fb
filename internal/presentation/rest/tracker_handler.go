package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
)

type createTrackerLoanExecutor interface {
	Execute(ctx context.Context, req dto.CreateTrackerLoanRequest) (dto.TrackerLoanResponse, error)
}

type listTrackerLoansExecutor interface {
	Execute(ctx context.Context, userID string) ([]dto.TrackerLoanResponse, error)
}

type markTrackerPaidExecutor interface {
	Execute(ctx context.Context, userID, loanID, installmentID string) (dto.TrackerLoanResponse, error)
}

// TrackerHandler serves the borrower panel: loans the user owes, tracked
// against a manual or amortized schedule.
type TrackerHandler struct {
	create   createTrackerLoanExecutor
	list     listTrackerLoansExecutor
	markPaid markTrackerPaidExecutor
	logger   *slog.Logger
}

// NewTrackerHandler wires the tracker use cases.
func NewTrackerHandler(
	create createTrackerLoanExecutor,
	list listTrackerLoansExecutor,
	markPaid markTrackerPaidExecutor,
	logger *slog.Logger,
) *TrackerHandler {
	return &TrackerHandler{
		create:   create,
		list:     list,
		markPaid: markPaid,
		logger:   logger,
	}
}

func (h *TrackerHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req dto.CreateTrackerLoanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.UserID = userID
	resp, err := h.create.Execute(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *TrackerHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := h.list.Execute(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if resp == nil {
		resp = []dto.TrackerLoanResponse{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *TrackerHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := h.markPaid.Execute(r.Context(), userID, r.PathValue("id"), r.PathValue("installment_id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
