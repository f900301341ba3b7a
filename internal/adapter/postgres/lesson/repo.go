// Package lesson implements the trip/situation/phrase repository using
// PostgreSQL. It serves both the seed importer and the read-only lesson
// queries.
package lesson

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/triplingo-backend/internal/adapter/postgres"
	"github.com/heartmarshall/triplingo-backend/internal/domain"
)

// Repo provides lesson persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new lesson repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const tripColumns = `id, destination_name, base_language, target_language, created_at`

const findTripByDestinationSQL = `
SELECT ` + tripColumns + `
FROM trips
WHERE destination_normalized = $1`

const getTripSQL = `
SELECT ` + tripColumns + `
FROM trips
WHERE id = $1`

const listTripsSQL = `
SELECT ` + tripColumns + `
FROM trips
ORDER BY created_at, destination_name COLLATE "C"`

const createTripSQL = `
INSERT INTO trips (id, destination_name, destination_normalized, base_language, target_language, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

const fillTripLanguagesSQL = `
UPDATE trips
SET base_language   = CASE WHEN base_language = ''   THEN $2 ELSE base_language END,
    target_language = CASE WHEN target_language = '' THEN $3 ELSE target_language END
WHERE id = $1
  AND ((base_language = '' AND $2 <> '') OR (target_language = '' AND $3 <> ''))`

const situationColumns = `id, trip_id, title, sort_order, created_at`

const findSituationSQL = `
SELECT ` + situationColumns + `
FROM situations
WHERE trip_id = $1 AND title = $2`

const listSituationsByTripIDsSQL = `
SELECT ` + situationColumns + `
FROM situations
WHERE trip_id = ANY($1::uuid[])
ORDER BY trip_id, sort_order, title COLLATE "C"`

const createSituationSQL = `
INSERT INTO situations (id, trip_id, title, sort_order, created_at)
VALUES ($1, $2, $3, $4, $5)`

const updateSituationSortOrderSQL = `
UPDATE situations SET sort_order = $2 WHERE id = $1`

const phraseColumns = `id, situation_id, target_text, english_meaning, notes, tags, created_at`

const findPhraseSQL = `
SELECT ` + phraseColumns + `
FROM phrases
WHERE situation_id = $1 AND target_text = $2`

const listPhrasesSQL = `
SELECT ` + phraseColumns + `
FROM phrases
WHERE situation_id = $1
ORDER BY target_text COLLATE "C"`

const createPhraseSQL = `
INSERT INTO phrases (id, situation_id, target_text, english_meaning, notes, tags, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const updatePhraseContentSQL = `
UPDATE phrases SET english_meaning = $2, notes = $3, tags = $4 WHERE id = $1`

// ---------------------------------------------------------------------------
// Trips
// ---------------------------------------------------------------------------

// FindTripByDestination matches destination names case-insensitively.
// Returns domain.ErrNotFound if no trip matches.
func (r *Repo) FindTripByDestination(ctx context.Context, destinationName string) (*domain.Trip, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanTrip(q.QueryRow(ctx, findTripByDestinationSQL, domain.NormalizeText(destinationName)))
	if err != nil {
		return nil, postgres.MapError(err, "trip", fmt.Sprintf("%q", destinationName))
	}
	return &t, nil
}

// GetTrip returns a trip by primary key.
func (r *Repo) GetTrip(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanTrip(q.QueryRow(ctx, getTripSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "trip", id)
	}
	return &t, nil
}

// ListTrips returns all trips ordered by creation time.
// Returns an empty slice (not nil) when there are no trips.
func (r *Repo) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listTripsSQL)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}

	trips, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Trip, error) {
		return scanTrip(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	return trips, nil
}

// CreateTrip inserts a trip. Returns domain.ErrAlreadyExists when a trip
// with the same destination (case-insensitive) exists.
func (r *Repo) CreateTrip(ctx context.Context, trip *domain.Trip) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, createTripSQL,
		trip.ID, trip.DestinationName, trip.DestinationKey(),
		trip.BaseLanguage, trip.TargetLanguage, trip.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "trip", trip.ID)
	}
	return nil
}

// FillTripLanguages sets each language only where the stored value is empty.
// Returns true if the row changed.
func (r *Repo) FillTripLanguages(ctx context.Context, tripID uuid.UUID, baseLanguage, targetLanguage string) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, fillTripLanguagesSQL, tripID, baseLanguage, targetLanguage)
	if err != nil {
		return false, postgres.MapError(err, "trip", tripID)
	}
	return tag.RowsAffected() > 0, nil
}

// ---------------------------------------------------------------------------
// Situations
// ---------------------------------------------------------------------------

// FindSituation matches the title exactly within the trip.
func (r *Repo) FindSituation(ctx context.Context, tripID uuid.UUID, title string) (*domain.Situation, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	s, err := scanSituation(q.QueryRow(ctx, findSituationSQL, tripID, title))
	if err != nil {
		return nil, postgres.MapError(err, "situation", fmt.Sprintf("%q", title))
	}
	return &s, nil
}

// CreateSituation inserts a situation. Returns domain.ErrNotFound for an
// unknown trip and domain.ErrAlreadyExists for a duplicate title.
func (r *Repo) CreateSituation(ctx context.Context, situation *domain.Situation) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, createSituationSQL,
		situation.ID, situation.TripID, situation.Title, situation.SortOrder, situation.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "situation", situation.ID)
	}
	return nil
}

// UpdateSituationSortOrder changes the sort order of a situation.
func (r *Repo) UpdateSituationSortOrder(ctx context.Context, situationID uuid.UUID, sortOrder int) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, updateSituationSortOrderSQL, situationID, sortOrder)
	if err != nil {
		return postgres.MapError(err, "situation", situationID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("situation %s: %w", situationID, domain.ErrNotFound)
	}
	return nil
}

// ListSituations returns the situations of a trip ordered by (sort_order, title).
func (r *Repo) ListSituations(ctx context.Context, tripID uuid.UUID) ([]domain.Situation, error) {
	return r.ListSituationsByTripIDs(ctx, []uuid.UUID{tripID})
}

// ListSituationsByTripIDs returns situations for multiple trips (batch for
// DataLoader), ordered by (trip_id, sort_order, title).
func (r *Repo) ListSituationsByTripIDs(ctx context.Context, tripIDs []uuid.UUID) ([]domain.Situation, error) {
	if len(tripIDs) == 0 {
		return []domain.Situation{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listSituationsByTripIDsSQL, tripIDs)
	if err != nil {
		return nil, fmt.Errorf("list situations by trip_ids: %w", err)
	}

	situations, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Situation, error) {
		return scanSituation(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list situations by trip_ids: %w", err)
	}
	return situations, nil
}

// ---------------------------------------------------------------------------
// Phrases
// ---------------------------------------------------------------------------

// FindPhrase matches the target text exactly within the situation.
func (r *Repo) FindPhrase(ctx context.Context, situationID uuid.UUID, targetText string) (*domain.Phrase, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanPhrase(q.QueryRow(ctx, findPhraseSQL, situationID, targetText))
	if err != nil {
		return nil, postgres.MapError(err, "phrase", fmt.Sprintf("%q", targetText))
	}
	return &p, nil
}

// CreatePhrase inserts a phrase. Returns domain.ErrNotFound for an unknown
// situation and domain.ErrAlreadyExists for a duplicate target text.
func (r *Repo) CreatePhrase(ctx context.Context, phrase *domain.Phrase) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, createPhraseSQL,
		phrase.ID, phrase.SituationID, phrase.TargetText, phrase.EnglishMeaning,
		ptrStringToPgText(phrase.Notes), domain.EncodeTags(phrase.Tags), phrase.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "phrase", phrase.ID)
	}
	return nil
}

// UpdatePhraseContent replaces the refreshable fields of a phrase.
func (r *Repo) UpdatePhraseContent(ctx context.Context, phraseID uuid.UUID, englishMeaning string, notes *string, tags []string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, updatePhraseContentSQL,
		phraseID, englishMeaning, ptrStringToPgText(notes), domain.EncodeTags(tags),
	)
	if err != nil {
		return postgres.MapError(err, "phrase", phraseID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("phrase %s: %w", phraseID, domain.ErrNotFound)
	}
	return nil
}

// ListPhrases returns the phrases of a situation ordered by target text.
func (r *Repo) ListPhrases(ctx context.Context, situationID uuid.UUID) ([]domain.Phrase, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listPhrasesSQL, situationID)
	if err != nil {
		return nil, fmt.Errorf("list phrases: %w", err)
	}

	phrases, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Phrase, error) {
		return scanPhrase(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list phrases: %w", err)
	}
	return phrases, nil
}

// DeleteAllContent removes every phrase, situation and trip.
func (r *Repo) DeleteAllContent(ctx context.Context) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	for _, table := range []string{"phrases", "situations", "trips"} {
		if _, err := q.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanTrip(row pgx.Row) (domain.Trip, error) {
	var t domain.Trip
	err := row.Scan(&t.ID, &t.DestinationName, &t.BaseLanguage, &t.TargetLanguage, &t.CreatedAt)
	return t, err
}

func scanSituation(row pgx.Row) (domain.Situation, error) {
	var (
		s         domain.Situation
		sortOrder int32
	)
	if err := row.Scan(&s.ID, &s.TripID, &s.Title, &sortOrder, &s.CreatedAt); err != nil {
		return domain.Situation{}, err
	}
	s.SortOrder = int(sortOrder)
	return s, nil
}

func scanPhrase(row pgx.Row) (domain.Phrase, error) {
	var (
		p         domain.Phrase
		notes     pgtype.Text
		tags      string
		createdAt time.Time
	)
	if err := row.Scan(&p.ID, &p.SituationID, &p.TargetText, &p.EnglishMeaning, &notes, &tags, &createdAt); err != nil {
		return domain.Phrase{}, err
	}
	if notes.Valid {
		p.Notes = &notes.String
	}
	p.Tags = domain.DecodeTags(tags)
	p.CreatedAt = createdAt
	return p, nil
}

// ptrStringToPgText converts a *string to pgtype.Text (nil -> NULL).
func ptrStringToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
