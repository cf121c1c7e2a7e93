package force

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore handles force persistence using PostgreSQL, for deployments where
// saves are shared between machines instead of living in a local directory.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore creates a new PostgreSQL-backed force store.
func NewPGStore(ctx context.Context, databaseURL string) (*PGStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pooling configuration
	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	s := &PGStore{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return s, nil
}

// migrate creates the forces table if it does not exist.
func (s *PGStore) migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS forces (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	_, err := s.pool.Exec(ctx, query)
	return err
}

// Ping checks database connectivity.
func (s *PGStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the database connection pool.
func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}

// SaveSnapshot upserts a force save file.
func (s *PGStore) SaveSnapshot(ctx context.Context, save *SaveFile) error {
	data, err := json.Marshal(save)
	if err != nil {
		return opErr("SaveForce", "force", save.ID, err)
	}

	query := `
		INSERT INTO forces (id, name, data, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, data = EXCLUDED.data, updated_at = now()
	`
	if _, err := s.pool.Exec(ctx, query, save.ID, save.Name, data); err != nil {
		return opErr("SaveForce", "force", save.ID, err)
	}
	return nil
}

// Load retrieves a force save file by id.
func (s *PGStore) Load(ctx context.Context, forceID string) (*SaveFile, error) {
	query := `SELECT data FROM forces WHERE id = $1`

	var data []byte
	err := s.pool.QueryRow(ctx, query, forceID).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, opErr("LoadForce", "force", forceID, ErrForceNotFound)
	}
	if err != nil {
		return nil, opErr("LoadForce", "force", forceID, err)
	}

	var save SaveFile
	if err := json.Unmarshal(data, &save); err != nil {
		return nil, opErr("LoadForce", "force", forceID, ErrCorruptSave)
	}
	return &save, nil
}

// List returns the ids of every stored force, most recently saved first.
func (s *PGStore) List(ctx context.Context) ([]string, error) {
	query := `SELECT id FROM forces ORDER BY updated_at DESC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list forces: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan force id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Delete removes a stored force.
func (s *PGStore) Delete(ctx context.Context, forceID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM forces WHERE id = $1`, forceID)
	if err != nil {
		return opErr("DeleteForce", "force", forceID, err)
	}
	if tag.RowsAffected() == 0 {
		return opErr("DeleteForce", "force", forceID, ErrForceNotFound)
	}
	return nil
}
