package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SAHICA-Code/NovaBank/internal/domain/model"
	"github.com/SAHICA-Code/NovaBank/internal/domain/port"
)

// ClientRepo implements port.ClientRepository.
type ClientRepo struct {
	pool *pgxpool.Pool
}

// NewClientRepo creates a PostgreSQL-backed client repository.
func NewClientRepo(pool *pgxpool.Pool) *ClientRepo {
	return &ClientRepo{pool: pool}
}

// Save upserts the client.
func (r *ClientRepo) Save(ctx context.Context, c model.Client) error {
	query := `
		INSERT INTO clients (id, owner_id, name, email, phone, notes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE SET
			name       = EXCLUDED.name,
			email      = EXCLUDED.email,
			phone      = EXCLUDED.phone,
			notes      = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query,
		c.ID(), c.OwnerID(), c.Name(), c.Email(), c.Phone(), c.Notes(), c.CreatedAt(), c.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save client: %w", err)
	}
	return nil
}

// FindByID retrieves one client, scoped to the owner.
func (r *ClientRepo) FindByID(ctx context.Context, ownerID, id string) (model.Client, error) {
	query := clientSelect + ` WHERE owner_id = $1 AND id = $2`
	return scanClient(r.pool.QueryRow(ctx, query, ownerID, id))
}

// FindByOwner retrieves all clients of an owner, alphabetically.
func (r *ClientRepo) FindByOwner(ctx context.Context, ownerID string) ([]model.Client, error) {
	query := clientSelect + ` WHERE owner_id = $1 ORDER BY name`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	var clients []model.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// Delete removes the client.
func (r *ClientRepo) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

const clientSelect = `
	SELECT id, owner_id, name, email, phone, notes, created_at, updated_at
	FROM clients`

func scanClient(s scannable) (model.Client, error) {
	var (
		id, ownerID, name, email, phone, notes string
		createdAt, updatedAt                   time.Time
	)
	if err := s.Scan(&id, &ownerID, &name, &email, &phone, &notes, &createdAt, &updatedAt); err != nil {
		return model.Client{}, mapNotFound(err)
	}
	return model.ReconstructClient(id, ownerID, name, email, phone, notes, createdAt, updatedAt), nil
}
