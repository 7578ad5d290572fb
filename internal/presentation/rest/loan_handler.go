package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
)

type createLoanExecutor interface {
	Execute(ctx context.Context, req dto.CreateLoanRequest) (dto.LoanResponse, error)
}

type updateLoanExecutor interface {
	Execute(ctx context.Context, req dto.UpdateLoanRequest) (dto.LoanResponse, error)
}

type getLoanExecutor interface {
	Execute(ctx context.Context, ownerID, loanID string) (dto.LoanResponse, error)
}

type listLoansExecutor interface {
	Execute(ctx context.Context, ownerID, clientID string) ([]dto.LoanResponse, error)
}

type deleteLoanExecutor interface {
	Execute(ctx context.Context, ownerID, loanID string) error
}

type listInstallmentsExecutor interface {
	Execute(ctx context.Context, ownerID, loanID string) ([]dto.InstallmentResponse, error)
}

// LoanHandler serves the lender's loan book and schedules.
type LoanHandler struct {
	create       createLoanExecutor
	update       updateLoanExecutor
	get          getLoanExecutor
	list         listLoansExecutor
	remove       deleteLoanExecutor
	installments listInstallmentsExecutor
	logger       *slog.Logger
}

// NewLoanHandler wires the loan use cases.
func NewLoanHandler(
	create createLoanExecutor,
	update updateLoanExecutor,
	get getLoanExecutor,
	list listLoansExecutor,
	remove deleteLoanExecutor,
	installments listInstallmentsExecutor,
	logger *slog.Logger,
) *LoanHandler {
	return &LoanHandler{
		create:       create,
		update:       update,
		get:          get,
		list:         list,
		remove:       remove,
		installments: installments,
		logger:       logger,
	}
}

func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req dto.CreateLoanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.OwnerID = ownerID
	resp, err := h.create.Execute(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Update replaces the loan terms and regenerates the schedule. Payments
// already recorded on the old schedule are not carried over.
func (h *LoanHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req dto.UpdateLoanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.OwnerID = ownerID
	req.LoanID = r.PathValue("id")
	resp, err := h.update.Execute(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := h.get.Execute(r.Context(), ownerID, r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := h.list.Execute(r.Context(), ownerID, r.URL.Query().Get("client_id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if resp == nil {
		resp = []dto.LoanResponse{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := h.remove.Execute(r.Context(), ownerID, r.PathValue("id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LoanHandler) ListInstallments(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := h.installments.Execute(r.Context(), ownerID, r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if resp == nil {
		resp = []dto.InstallmentResponse{}
	}
	writeJSON(w, http.StatusOK, resp)
}
