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

// ErrEmailTaken is returned when registering with an email already on file.
var ErrEmailTaken = errors.New("email already registered")

const minPasswordLength = 8

// RegisterUserUseCase creates an account and signs the user in.
type RegisterUserUseCase struct {
	userRepo port.UserRepository
	tokens   port.TokenIssuer
}

// NewRegisterUserUseCase wires dependencies.
func NewRegisterUserUseCase(userRepo port.UserRepository, tokens port.TokenIssuer) *RegisterUserUseCase {
	return &RegisterUserUseCase{userRepo: userRepo, tokens: tokens}
}

// Execute registers the user and returns a fresh access token.
func (uc *RegisterUserUseCase) Execute(
	ctx context.Context,
	req dto.RegisterRequest,
) (dto.AuthResponse, error) {
	now := time.Now().UTC()

	if len(req.Password) < minPasswordLength {
		return dto.AuthResponse{}, model.ErrInvalidPassword
	}
	if _, err := uc.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return dto.AuthResponse{}, ErrEmailTaken
	} else if !errors.Is(err, port.ErrNotFound) {
		return dto.AuthResponse{}, fmt.Errorf("find user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := model.NewUser(req.Name, req.Email, string(hash), now)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("create user: %w", err)
	}

	if err := uc.userRepo.Save(ctx, user); err != nil {
		return dto.AuthResponse{}, fmt.Errorf("save user: %w", err)
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
