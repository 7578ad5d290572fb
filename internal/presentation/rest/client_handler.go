package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
)

type createClientExecutor interface {
	Execute(ctx context.Context, req dto.CreateClientRequest) (dto.ClientResponse, error)
}

type updateClientExecutor interface {
	Execute(ctx context.Context, req dto.UpdateClientRequest) (dto.ClientResponse, error)
}

type getClientExecutor interface {
	Execute(ctx context.Context, ownerID, clientID string) (dto.ClientResponse, error)
}

type listClientsExecutor interface {
	Execute(ctx context.Context, ownerID string) ([]dto.ClientResponse, error)
}

type deleteClientExecutor interface {
	Execute(ctx context.Context, ownerID, clientID string) error
}

// ClientHandler serves the owner's client book.
type ClientHandler struct {
	create createClientExecutor
	update updateClientExecutor
	get    getClientExecutor
	list   listClientsExecutor
	remove deleteClientExecutor
	logger *slog.Logger
}

// NewClientHandler wires the client use cases.
func NewClientHandler(
	create createClientExecutor,
	update updateClientExecutor,
	get getClientExecutor,
	list listClientsExecutor,
	remove deleteClientExecutor,
	logger *slog.Logger,
) *ClientHandler {
	return &ClientHandler{
		create: create,
		update: update,
		get:    get,
		list:   list,
		remove: remove,
		logger: logger,
	}
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req dto.CreateClientRequest
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

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req dto.UpdateClientRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.OwnerID = ownerID
	req.ClientID = r.PathValue("id")
	resp, err := h.update.Execute(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
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

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := h.list.Execute(r.Context(), ownerID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if resp == nil {
		resp = []dto.ClientResponse{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
