// Package seeder imports bundled seed content into the lesson store and
// coordinates the one-time import at launch.
package seeder

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/triplingo-backend/internal/domain"
)

// LessonRepo is the store access contract consumed by the importer.
// All lookups return domain.ErrNotFound when no row matches.
// Implemented by lesson.Repo (PostgreSQL) and memory.Store.
type LessonRepo interface {
	// Trips: destination match is case-insensitive.
	FindTripByDestination(ctx context.Context, destinationName string) (*domain.Trip, error)
	CreateTrip(ctx context.Context, trip *domain.Trip) error
	// FillTripLanguages sets each language only where the stored value is empty.
	// Returns true if a column changed.
	FillTripLanguages(ctx context.Context, tripID uuid.UUID, baseLanguage, targetLanguage string) (bool, error)

	// Situations: title match is exact and scoped to the trip.
	FindSituation(ctx context.Context, tripID uuid.UUID, title string) (*domain.Situation, error)
	CreateSituation(ctx context.Context, situation *domain.Situation) error
	UpdateSituationSortOrder(ctx context.Context, situationID uuid.UUID, sortOrder int) error

	// Phrases: target text match is exact and scoped to the situation.
	FindPhrase(ctx context.Context, situationID uuid.UUID, targetText string) (*domain.Phrase, error)
	CreatePhrase(ctx context.Context, phrase *domain.Phrase) error
	UpdatePhraseContent(ctx context.Context, phraseID uuid.UUID, englishMeaning string, notes *string, tags []string) error
}

// Gate is the durable per-seed launch flag. It lives outside the entity
// tables and survives restarts. Implemented by settings.Repo (PostgreSQL),
// redis.Gate and memory.Gate.
type Gate interface {
	IsDone(ctx context.Context, seedName string) (bool, error)
	MarkDone(ctx context.Context, seedName string) error
	// ClearAll unsets every gate, including gates of seeds no longer in
	// the catalog, and returns how many were set.
	ClearAll(ctx context.Context) (int, error)
}

type seedCatalog interface {
	Lookup(name string) (domain.Seed, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
