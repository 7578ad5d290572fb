package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
)

// ChangePasswordUseCase rotates the password of an authenticated user after
// verifying the current one.
type ChangePasswordUseCase struct {
	userRepo port.UserRepository
}

// NewChangePasswordUseCase wires dependencies.
func NewChangePasswordUseCase(userRepo port.UserRepository) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{userRepo: userRepo}
}

// Execute verifies the current password and stores the new hash.
func (uc *ChangePasswordUseCase) Execute(ctx context.Context, req dto.ChangePasswordRequest) error {
	now := time.Now().UTC()

	if len(req.NewPassword) < minPasswordLength {
		return model.ErrInvalidPassword
	}

	user, err := uc.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash()), []byte(req.CurrentPassword)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := uc.userRepo.Save(ctx, user.WithPasswordHash(string(hash), now)); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}
