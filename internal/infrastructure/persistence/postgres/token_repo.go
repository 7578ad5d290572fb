package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
	pg "github.com/SAHICA-Code/NovaBank/internal/postgres"
)

// ResetTokenRepo implements port.ResetTokenRepository.
type ResetTokenRepo struct {
	pool *pgxpool.Pool
}

// NewResetTokenRepo creates a PostgreSQL-backed reset token repository.
func NewResetTokenRepo(pool *pgxpool.Pool) *ResetTokenRepo {
	return &ResetTokenRepo{pool: pool}
}

// Save stores the token, replacing any earlier token for the same email.
func (r *ResetTokenRepo) Save(ctx context.Context, t model.PasswordResetToken) error {
	return pg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM password_reset_tokens WHERE email = $1`, t.Email); err != nil {
			return fmt.Errorf("clear reset tokens: %w", err)
		}
		query := `INSERT INTO password_reset_tokens (token, email, expires_at) VALUES ($1,$2,$3)`
		if _, err := tx.Exec(ctx, query, t.Token, t.Email, t.ExpiresAt); err != nil {
			return fmt.Errorf("save reset token: %w", err)
		}
		return nil
	})
}

// Consume fetches and deletes the token in one statement. A second call with
// the same token reports not found.
func (r *ResetTokenRepo) Consume(ctx context.Context, token string) (model.PasswordResetToken, error) {
	query := `
		DELETE FROM password_reset_tokens
		WHERE token = $1
		RETURNING token, email, expires_at
	`
	var t model.PasswordResetToken
	if err := r.pool.QueryRow(ctx, query, token).Scan(&t.Token, &t.Email, &t.ExpiresAt); err != nil {
		return model.PasswordResetToken{}, mapNotFound(err)
	}
	return t, nil
}
