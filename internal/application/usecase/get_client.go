package usecase

import (
	"context"
	"fmt"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
)

// GetClientUseCase retrieves one client.
type GetClientUseCase struct {
	clientRepo port.ClientRepository
}

// NewGetClientUseCase wires dependencies.
func NewGetClientUseCase(clientRepo port.ClientRepository) *GetClientUseCase {
	return &GetClientUseCase{clientRepo: clientRepo}
}

// Execute retrieves the client scoped to the requesting owner.
func (uc *GetClientUseCase) Execute(ctx context.Context, ownerID, clientID string) (dto.ClientResponse, error) {
	client, err := uc.clientRepo.FindByID(ctx, ownerID, clientID)
	if err != nil {
		return dto.ClientResponse{}, fmt.Errorf("find client: %w", err)
	}
	return dto.NewClientResponse(client), nil
}
