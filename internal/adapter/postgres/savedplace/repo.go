// Package savedplace implements the map pin repository using PostgreSQL.
package savedplace

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/triplingo-backend/internal/adapter/postgres"
	"github.com/heartmarshall/triplingo-backend/internal/domain"
)

const table = "saved_places"

var columns = []string{"id", "name", "latitude", "longitude", "created_at"}

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides saved-place persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new saved-place repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a place. Out-of-range coordinates fail the table's check
// constraints and map to domain.ErrValidation.
func (r *Repo) Create(ctx context.Context, place *domain.SavedPlace) error {
	sql, args, err := builder.Insert(table).
		Columns(columns...).
		Values(place.ID, place.Name, place.Latitude, place.Longitude, place.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert saved place: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "saved_place", place.ID)
	}
	return nil
}

// List returns all places, newest first.
func (r *Repo) List(ctx context.Context) ([]domain.SavedPlace, error) {
	sql, args, err := builder.Select(columns...).From(table).OrderBy("created_at DESC", `name COLLATE "C"`).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list saved places: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list saved places: %w", err)
	}

	places, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SavedPlace, error) {
		var p domain.SavedPlace
		err := row.Scan(&p.ID, &p.Name, &p.Latitude, &p.Longitude, &p.CreatedAt)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("list saved places: %w", err)
	}
	return places, nil
}

// Delete removes a place by ID.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := builder.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete saved place: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "saved_place", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("saved_place %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
