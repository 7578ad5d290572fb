package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
)

// UserRepo implements port.UserRepository.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepo creates a PostgreSQL-backed user repository.
func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Save upserts the user.
func (r *UserRepo) Save(ctx context.Context, u model.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET
			name          = EXCLUDED.name,
			password_hash = EXCLUDED.password_hash,
			updated_at    = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query,
		u.ID(), u.Name(), u.Email(), u.PasswordHash(), u.CreatedAt(), u.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// FindByID retrieves one user.
func (r *UserRepo) FindByID(ctx context.Context, id string) (model.User, error) {
	return scanUser(r.pool.QueryRow(ctx, userSelect+` WHERE id = $1`, id))
}

// FindByEmail retrieves one user by email, case-insensitively.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	return scanUser(r.pool.QueryRow(ctx, userSelect+` WHERE email = $1`, strings.ToLower(email)))
}

// Delete removes the user; clients, loans and installments cascade.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

const userSelect = `
	SELECT id, name, email, password_hash, created_at, updated_at
	FROM users`

func scanUser(s scannable) (model.User, error) {
	var (
		id, name, email, passwordHash string
		createdAt, updatedAt          time.Time
	)
	if err := s.Scan(&id, &name, &email, &passwordHash, &createdAt, &updatedAt); err != nil {
		return model.User{}, mapNotFound(err)
	}
	return model.ReconstructUser(id, name, email, passwordHash, createdAt, updatedAt), nil
}
