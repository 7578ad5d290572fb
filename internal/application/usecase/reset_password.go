package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
)

// ErrTokenExpired is returned for a reset token past its TTL. Consuming the
// token deletes it either way: expired tokens cannot be retried.
var ErrTokenExpired = errors.New("reset token expired")

// ResetPasswordUseCase completes the password reset flow.
type ResetPasswordUseCase struct {
	userRepo  port.UserRepository
	tokenRepo port.ResetTokenRepository
}

// NewResetPasswordUseCase wires dependencies.
func NewResetPasswordUseCase(userRepo port.UserRepository, tokenRepo port.ResetTokenRepository) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{userRepo: userRepo, tokenRepo: tokenRepo}
}

// Execute consumes the token and stores the new password hash.
func (uc *ResetPasswordUseCase) Execute(ctx context.Context, req dto.ResetPasswordRequest) error {
	now := time.Now().UTC()

	if len(req.NewPassword) < minPasswordLength {
		return model.ErrInvalidPassword
	}

	token, err := uc.tokenRepo.Consume(ctx, req.Token)
	if err != nil {
		return fmt.Errorf("consume reset token: %w", err)
	}
	if token.Expired(now) {
		return ErrTokenExpired
	}

	user, err := uc.userRepo.FindByEmail(ctx, token.Email)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
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
