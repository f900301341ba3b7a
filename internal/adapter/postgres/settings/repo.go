// Package settings implements the app_settings key/value store using
// PostgreSQL. It holds the durable launch gate, separate from lesson tables.
package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/triplingo-backend/internal/adapter/postgres"
)

// gateKeyPrefix namespaces launch gate keys.
const gateKeyPrefix = "seed_imported:"

const gateDoneValue = "true"

// Repo provides key/value settings backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new settings repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getSQL = `SELECT value FROM app_settings WHERE key = $1`

const setSQL = `
INSERT INTO app_settings (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

const clearGatesSQL = `DELETE FROM app_settings WHERE key LIKE 'seed\_imported:%'`

// Get returns the value for key and whether it exists.
func (r *Repo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getSQL, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, postgres.MapError(err, "setting", key)
	}
	return value, true, nil
}

// Set upserts a value.
func (r *Repo) Set(ctx context.Context, key, value string) error {
	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, setSQL, key, value); err != nil {
		return postgres.MapError(err, "setting", key)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Launch gate
// ---------------------------------------------------------------------------

// GateKey returns the settings key of a seed's launch gate.
func GateKey(seedName string) string {
	return gateKeyPrefix + seedName
}

// IsDone reports whether the seed has been imported.
func (r *Repo) IsDone(ctx context.Context, seedName string) (bool, error) {
	value, ok, err := r.Get(ctx, GateKey(seedName))
	if err != nil {
		return false, err
	}
	return ok && value == gateDoneValue, nil
}

// MarkDone records that the seed has been imported.
func (r *Repo) MarkDone(ctx context.Context, seedName string) error {
	return r.Set(ctx, GateKey(seedName), gateDoneValue)
}

// ClearAll unsets every launch gate, whatever seed it belongs to.
func (r *Repo) ClearAll(ctx context.Context) (int, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, clearGatesSQL)
	if err != nil {
		return 0, fmt.Errorf("clear gates: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
