package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
)

const resetTokenTTL = time.Hour

// ForgotPasswordUseCase starts the password reset flow. It never reveals
// whether the email exists: unknown addresses succeed silently.
type ForgotPasswordUseCase struct {
	userRepo  port.UserRepository
	tokenRepo port.ResetTokenRepository
	mailer    port.Mailer
	resetURL  string
}

// NewForgotPasswordUseCase wires dependencies. resetURL is the public base
// URL the token is appended to.
func NewForgotPasswordUseCase(
	userRepo port.UserRepository,
	tokenRepo port.ResetTokenRepository,
	mailer port.Mailer,
	resetURL string,
) *ForgotPasswordUseCase {
	return &ForgotPasswordUseCase{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		mailer:    mailer,
		resetURL:  resetURL,
	}
}

// Execute issues a single-use token and mails the reset link.
func (uc *ForgotPasswordUseCase) Execute(ctx context.Context, req dto.ForgotPasswordRequest) error {
	now := time.Now().UTC()

	user, err := uc.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}

	token := model.NewPasswordResetToken(user.Email(), resetTokenTTL, now)
	if err := uc.tokenRepo.Save(ctx, token); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}

	link := fmt.Sprintf("%s?token=%s", uc.resetURL, token.Token)
	if err := uc.mailer.SendPasswordReset(ctx, user.Email(), link); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}
