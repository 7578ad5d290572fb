package usecase

import (
	"context"
	"fmt"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
)

// ListClientsUseCase lists the owner's clients.
type ListClientsUseCase struct {
	clientRepo port.ClientRepository
}

// NewListClientsUseCase wires dependencies.
func NewListClientsUseCase(clientRepo port.ClientRepository) *ListClientsUseCase {
	return &ListClientsUseCase{clientRepo: clientRepo}
}

// Execute lists all clients of the owner.
func (uc *ListClientsUseCase) Execute(ctx context.Context, ownerID string) ([]dto.ClientResponse, error) {
	clients, err := uc.clientRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	out := make([]dto.ClientResponse, len(clients))
	for i, c := range clients {
		out[i] = dto.NewClientResponse(c)
	}
	return out, nil
}
