// Package savedphrase implements the phrasebook repository using PostgreSQL.
// Saved phrases are snapshots keyed by (destination_name, situation_title,
// target_text) and reference no lesson rows.
package savedphrase

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/triplingo-backend/internal/adapter/postgres"
	"github.com/heartmarshall/triplingo-backend/internal/domain"
)

const (
	table   = "saved_phrases"
	columns = "id, target_text, english_meaning, destination_name, situation_title, last_practiced_at, created_at"
)

// builder is the statement builder for PostgreSQL placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides saved-phrase persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new saved-phrase repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getByKeySQL = `
SELECT ` + columns + `
FROM saved_phrases
WHERE destination_name = $1 AND situation_title = $2 AND target_text = $3`

const createSQL = `
INSERT INTO saved_phrases (` + columns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const touchSQL = `
UPDATE saved_phrases
SET last_practiced_at = $2,
    english_meaning   = COALESCE($3, english_meaning)
WHERE id = $1`

// GetByKey returns the saved phrase with the exact compound key.
// Returns domain.ErrNotFound if none exists.
func (r *Repo) GetByKey(ctx context.Context, key domain.SavedPhraseKey) (*domain.SavedPhrase, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sp, err := scanSavedPhrase(q.QueryRow(ctx, getByKeySQL, key.DestinationName, key.SituationTitle, key.TargetText))
	if err != nil {
		return nil, postgres.MapError(err, "saved_phrase", fmt.Sprintf("%q", key.TargetText))
	}
	return &sp, nil
}

// Create inserts a saved phrase. Returns domain.ErrAlreadyExists when the
// compound key is taken.
func (r *Repo) Create(ctx context.Context, sp *domain.SavedPhrase) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, createSQL,
		sp.ID, sp.TargetText, sp.EnglishMeaning, sp.DestinationName, sp.SituationTitle,
		ptrTimeToPgTimestamptz(sp.LastPracticedAt), sp.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "saved_phrase", sp.ID)
	}
	return nil
}

// Touch sets last_practiced_at and, when englishMeaning is non-nil, the meaning.
func (r *Repo) Touch(ctx context.Context, id uuid.UUID, practicedAt time.Time, englishMeaning *string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	meaning := pgtype.Text{}
	if englishMeaning != nil {
		meaning = pgtype.Text{String: *englishMeaning, Valid: true}
	}

	tag, err := q.Exec(ctx, touchSQL, id, practicedAt, meaning)
	if err != nil {
		return postgres.MapError(err, "saved_phrase", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("saved_phrase %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List returns saved phrases matching the filter, ordered by created_at
// desc, or by last_practiced_at desc when PracticedOnly is set.
func (r *Repo) List(ctx context.Context, filter domain.SavedPhraseFilter) ([]domain.SavedPhrase, error) {
	query := builder.Select(columns).From(table)

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		query = query.Where(sq.Or{
			sq.ILike{"target_text": pattern},
			sq.ILike{"english_meaning": pattern},
		})
	}

	if filter.PracticedOnly {
		query = query.
			Where(sq.NotEq{"last_practiced_at": nil}).
			OrderBy("last_practiced_at DESC")
	}
	query = query.OrderBy("created_at DESC", `target_text COLLATE "C"`)

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list saved phrases: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list saved phrases: %w", err)
	}

	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SavedPhrase, error) {
		return scanSavedPhrase(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list saved phrases: %w", err)
	}
	return result, nil
}

// Delete removes a saved phrase by ID.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := builder.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete saved phrase: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "saved_phrase", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("saved_phrase %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteAll removes every saved phrase.
func (r *Repo) DeleteAll(ctx context.Context) error {
	sql, args, err := builder.Delete(table).ToSql()
	if err != nil {
		return fmt.Errorf("build delete saved phrases: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete saved phrases: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func scanSavedPhrase(row pgx.Row) (domain.SavedPhrase, error) {
	var (
		sp          domain.SavedPhrase
		practicedAt pgtype.Timestamptz
	)
	err := row.Scan(&sp.ID, &sp.TargetText, &sp.EnglishMeaning, &sp.DestinationName,
		&sp.SituationTitle, &practicedAt, &sp.CreatedAt)
	if err != nil {
		return domain.SavedPhrase{}, err
	}
	if practicedAt.Valid {
		t := practicedAt.Time
		sp.LastPracticedAt = &t
	}
	return sp, nil
}

func ptrTimeToPgTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE wildcards so the search is a plain substring match.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
