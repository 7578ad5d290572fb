package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
)

type applyPaymentExecutor interface {
	Execute(ctx context.Context, req dto.ApplyPaymentRequest) (dto.PaymentResultResponse, error)
}

type markPaidExecutor interface {
	Execute(ctx context.Context, ownerID, installmentID string) (dto.InstallmentResponse, error)
}

type listPaymentsExecutor interface {
	Execute(ctx context.Context, ownerID, clientID string) (dto.PaymentsOverviewResponse, error)
}

// PaymentHandler serves payment recording against the owner's schedules.
type PaymentHandler struct {
	apply    applyPaymentExecutor
	markPaid markPaidExecutor
	list     listPaymentsExecutor
	logger   *slog.Logger
}

// NewPaymentHandler wires the payment use cases.
func NewPaymentHandler(
	apply applyPaymentExecutor,
	markPaid markPaidExecutor,
	list listPaymentsExecutor,
	logger *slog.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		apply:    apply,
		markPaid: markPaid,
		list:     list,
		logger:   logger,
	}
}

// Apply records a cash payment against one installment. Overpayment cascades
// to later installments of the same loan.
func (h *PaymentHandler) Apply(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req dto.ApplyPaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.OwnerID = ownerID
	req.InstallmentID = r.PathValue("id")
	resp, err := h.apply.Execute(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// MarkPaid settles an installment regardless of the amount collected so far.
func (h *PaymentHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := h.markPaid.Execute(r.Context(), ownerID, r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// List returns every installment visible to the owner plus the pending total,
// optionally filtered by client.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := h.list.Execute(r.Context(), ownerID, r.URL.Query().Get("client_id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if resp.Installments == nil {
		resp.Installments = []dto.InstallmentResponse{}
	}
	writeJSON(w, http.StatusOK, resp)
}
