package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
)

// CreateClientUseCase registers a borrower for the requesting owner.
type CreateClientUseCase struct {
	clientRepo port.ClientRepository
	publisher  port.EventPublisher
}

// NewCreateClientUseCase wires dependencies.
func NewCreateClientUseCase(clientRepo port.ClientRepository, publisher port.EventPublisher) *CreateClientUseCase {
	return &CreateClientUseCase{clientRepo: clientRepo, publisher: publisher}
}

// Execute creates the client.
func (uc *CreateClientUseCase) Execute(
	ctx context.Context,
	req dto.CreateClientRequest,
) (dto.ClientResponse, error) {
	now := time.Now().UTC()

	client, err := model.NewClient(req.OwnerID, req.Name, req.Email, req.Phone, req.Notes, now)
	if err != nil {
		return dto.ClientResponse{}, fmt.Errorf("create client: %w", err)
	}

	if err := uc.clientRepo.Save(ctx, client); err != nil {
		return dto.ClientResponse{}, fmt.Errorf("save client: %w", err)
	}

	if err := uc.publisher.Publish(ctx, client.DomainEvents()...); err != nil {
		return dto.ClientResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.NewClientResponse(client), nil
}
