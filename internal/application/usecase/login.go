package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong
// password. The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// LoginUseCase authenticates a user by email and password.
type LoginUseCase struct {
	userRepo port.UserRepository
	tokens   port.TokenIssuer
}

// NewLoginUseCase wires dependencies.
func NewLoginUseCase(userRepo port.UserRepository, tokens port.TokenIssuer) *LoginUseCase {
	return &LoginUseCase{userRepo: userRepo, tokens: tokens}
}

// Execute verifies the credentials and returns a fresh access token.
func (uc *LoginUseCase) Execute(
	ctx context.Context,
	req dto.LoginRequest,
) (dto.AuthResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return dto.AuthResponse{}, ErrInvalidCredentials
		}
		return dto.AuthResponse{}, fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash()), []byte(req.Password)) != nil {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	token, expiresAt, err := uc.tokens.Issue(user.ID(), user.Email())
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("issue token: %w", err)
	}

	return dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.NewUserResponse(user),
	}, nil
}
