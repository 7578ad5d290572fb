package usecase

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
)

// DeleteAccountUseCase removes a user after re-verifying their password.
// Clients, loans and installments cascade at the storage layer.
type DeleteAccountUseCase struct {
	userRepo port.UserRepository
}

// NewDeleteAccountUseCase wires dependencies.
func NewDeleteAccountUseCase(userRepo port.UserRepository) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{userRepo: userRepo}
}

// Execute deletes the account.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, req dto.DeleteAccountRequest) error {
	user, err := uc.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash()), []byte(req.Password)) != nil {
		return ErrInvalidCredentials
	}

	if err := uc.userRepo.Delete(ctx, user.ID()); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
