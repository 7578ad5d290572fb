package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
)

// UpdateClientUseCase replaces a client's contact details.
type UpdateClientUseCase struct {
	clientRepo port.ClientRepository
}

// NewUpdateClientUseCase wires dependencies.
func NewUpdateClientUseCase(clientRepo port.ClientRepository) *UpdateClientUseCase {
	return &UpdateClientUseCase{clientRepo: clientRepo}
}

// Execute updates the client after confirming ownership.
func (uc *UpdateClientUseCase) Execute(
	ctx context.Context,
	req dto.UpdateClientRequest,
) (dto.ClientResponse, error) {
	now := time.Now().UTC()

	client, err := uc.clientRepo.FindByID(ctx, req.OwnerID, req.ClientID)
	if err != nil {
		return dto.ClientResponse{}, fmt.Errorf("find client: %w", err)
	}

	client, err = client.Update(req.Name, req.Email, req.Phone, req.Notes, now)
	if err != nil {
		return dto.ClientResponse{}, fmt.Errorf("update client: %w", err)
	}

	if err := uc.clientRepo.Save(ctx, client); err != nil {
		return dto.ClientResponse{}, fmt.Errorf("save client: %w", err)
	}

	return dto.NewClientResponse(client), nil
}
