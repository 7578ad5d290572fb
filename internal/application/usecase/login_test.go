package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/SAHICA-Code/NovaBank/internal/application/dto"
	"github.com/SAHICA-Code/NovaBank/internal/application/usecase"
	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
)

func userWithPassword(t *testing.T, password string) model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now().UTC()
	return model.ReconstructUser("user-001", "Ana", "ana@example.com", string(hash), now, now)
}

func TestLogin_Execute(t *testing.T) {
	t.Run("returns token for valid credentials", func(t *testing.T) {
		user := userWithPassword(t, "s3cret-pass")
		userRepo := &mockUserRepository{
			findByEmailFunc: func(ctx context.Context, email string) (model.User, error) {
				assert.Equal(t, "ana@example.com", email)
				return user, nil
			},
		}

		uc := usecase.NewLoginUseCase(userRepo, &mockTokenIssuer{})

		resp, err := uc.Execute(context.Background(), dto.LoginRequest{
			Email:    "ana@example.com",
			Password: "s3cret-pass",
		})

		require.NoError(t, err)
		assert.Equal(t, "token-user-001", resp.Token)
		assert.Equal(t, "user-001", resp.User.ID)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		user := userWithPassword(t, "s3cret-pass")
		userRepo := &mockUserRepository{
			findByEmailFunc: func(ctx context.Context, email string) (model.User, error) {
				return user, nil
			},
		}

		uc := usecase.NewLoginUseCase(userRepo, &mockTokenIssuer{})
		_, err := uc.Execute(context.Background(), dto.LoginRequest{
			Email:    "ana@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
	})

	t.Run("unknown email is indistinguishable from wrong password", func(t *testing.T) {
		uc := usecase.NewLoginUseCase(&mockUserRepository{}, &mockTokenIssuer{})
		_, err := uc.Execute(context.Background(), dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
	})
}

func TestRegisterUser_Execute(t *testing.T) {
	t.Run("creates account and signs in", func(t *testing.T) {
		userRepo := &mockUserRepository{}
		uc := usecase.NewRegisterUserUseCase(userRepo, &mockTokenIssuer{})

		resp, err := uc.Execute(context.Background(), dto.RegisterRequest{
			Name:     "Ana",
			Email:    "Ana@Example.com",
			Password: "s3cret-pass",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		// Emails are stored lowercased.
		assert.Equal(t, "ana@example.com", resp.User.Email)

		require.Len(t, userRepo.savedUsers, 1)
		saved := userRepo.savedUsers[0]
		assert.NotEqual(t, "s3cret-pass", saved.PasswordHash())
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash()), []byte("s3cret-pass")))
	})

	t.Run("rejects taken email", func(t *testing.T) {
		userRepo := &mockUserRepository{
			findByEmailFunc: func(ctx context.Context, email string) (model.User, error) {
				return userWithPassword(t, "other"), nil
			},
		}
		uc := usecase.NewRegisterUserUseCase(userRepo, &mockTokenIssuer{})

		_, err := uc.Execute(context.Background(), dto.RegisterRequest{
			Name:     "Ana",
			Email:    "ana@example.com",
			Password: "s3cret-pass",
		})
		assert.ErrorIs(t, err, usecase.ErrEmailTaken)
	})

	t.Run("rejects short password", func(t *testing.T) {
		uc := usecase.NewRegisterUserUseCase(&mockUserRepository{}, &mockTokenIssuer{})
		_, err := uc.Execute(context.Background(), dto.RegisterRequest{
			Name:     "Ana",
			Email:    "ana@example.com",
			Password: "short",
		})
		assert.ErrorIs(t, err, model.ErrInvalidPassword)
	})
}

func TestPasswordResetFlow(t *testing.T) {
	t.Run("forgot password mails a single-use link", func(t *testing.T) {
		user := userWithPassword(t, "old-password")
		userRepo := &mockUserRepository{
			findByEmailFunc: func(ctx context.Context, email string) (model.User, error) {
				return user, nil
			},
		}
		tokenRepo := &mockResetTokenRepository{}
		mailer := &mockMailer{}

		uc := usecase.NewForgotPasswordUseCase(userRepo, tokenRepo, mailer, "https://example.com/reset")
		err := uc.Execute(context.Background(), dto.ForgotPasswordRequest{Email: "ana@example.com"})

		require.NoError(t, err)
		require.Len(t, tokenRepo.savedTokens, 1)
		require.Len(t, mailer.sentLinks, 1)
		assert.Contains(t, mailer.sentLinks[0], tokenRepo.savedTokens[0].Token)
	})

	t.Run("unknown email succeeds silently", func(t *testing.T) {
		mailer := &mockMailer{}
		uc := usecase.NewForgotPasswordUseCase(&mockUserRepository{}, &mockResetTokenRepository{}, mailer, "https://example.com/reset")

		err := uc.Execute(context.Background(), dto.ForgotPasswordRequest{Email: "nobody@example.com"})
		require.NoError(t, err)
		assert.Empty(t, mailer.sentTo)
	})

	t.Run("reset consumes token and stores new hash", func(t *testing.T) {
		user := userWithPassword(t, "old-password")
		now := time.Now().UTC()
		token := model.NewPasswordResetToken(user.Email(), time.Hour, now)

		userRepo := &mockUserRepository{
			findByEmailFunc: func(ctx context.Context, email string) (model.User, error) {
				return user, nil
			},
		}
		tokenRepo := &mockResetTokenRepository{
			consumeFunc: func(ctx context.Context, raw string) (model.PasswordResetToken, error) {
				assert.Equal(t, token.Token, raw)
				return token, nil
			},
		}

		uc := usecase.NewResetPasswordUseCase(userRepo, tokenRepo)
		err := uc.Execute(context.Background(), dto.ResetPasswordRequest{
			Token:       token.Token,
			NewPassword: "brand-new-pass",
		})

		require.NoError(t, err)
		require.Len(t, userRepo.savedUsers, 1)
		assert.NoError(t, bcrypt.CompareHashAndPassword(
			[]byte(userRepo.savedUsers[0].PasswordHash()), []byte("brand-new-pass"),
		))
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		user := userWithPassword(t, "old-password")
		stale := model.NewPasswordResetToken(user.Email(), time.Hour, time.Now().UTC().Add(-2*time.Hour))

		tokenRepo := &mockResetTokenRepository{
			consumeFunc: func(ctx context.Context, raw string) (model.PasswordResetToken, error) {
				return stale, nil
			},
		}

		uc := usecase.NewResetPasswordUseCase(&mockUserRepository{}, tokenRepo)
		err := uc.Execute(context.Background(), dto.ResetPasswordRequest{
			Token:       stale.Token,
			NewPassword: "brand-new-pass",
		})
		assert.ErrorIs(t, err, usecase.ErrTokenExpired)
	})

	t.Run("consumed token cannot be reused", func(t *testing.T) {
		uc := usecase.NewResetPasswordUseCase(&mockUserRepository{}, &mockResetTokenRepository{})
		err := uc.Execute(context.Background(), dto.ResetPasswordRequest{
			Token:       "gone",
			NewPassword: "brand-new-pass",
		})
		assert.ErrorIs(t, err, port.ErrNotFound)
	})
}
