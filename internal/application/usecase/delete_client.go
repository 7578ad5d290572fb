package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
)

// ErrClientHasLoans is returned when deleting a client that still has loans.
var ErrClientHasLoans = errors.New("client still has loans")

// DeleteClientUseCase removes a client. Clients with loans on file cannot be
// deleted; the loans must go first.
type DeleteClientUseCase struct {
	clientRepo port.ClientRepository
	loanRepo   port.LoanRepository
}

// NewDeleteClientUseCase wires dependencies.
func NewDeleteClientUseCase(clientRepo port.ClientRepository, loanRepo port.LoanRepository) *DeleteClientUseCase {
	return &DeleteClientUseCase{clientRepo: clientRepo, loanRepo: loanRepo}
}

// Execute deletes the client after confirming ownership.
func (uc *DeleteClientUseCase) Execute(ctx context.Context, ownerID, clientID string) error {
	if _, err := uc.clientRepo.FindByID(ctx, ownerID, clientID); err != nil {
		return fmt.Errorf("find client: %w", err)
	}

	loans, err := uc.loanRepo.FindByClient(ctx, ownerID, clientID)
	if err != nil {
		return fmt.Errorf("list loans: %w", err)
	}
	if len(loans) > 0 {
		return ErrClientHasLoans
	}

	if err := uc.clientRepo.Delete(ctx, ownerID, clientID); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}
