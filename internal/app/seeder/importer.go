package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/triplingo-backend/internal/domain"
)

// Importer upserts one named seed into the lesson store. It never reads or
// writes saved phrases.
type Importer struct {
	catalog seedCatalog
	repo    LessonRepo
	tx      txManager
	log     *slog.Logger
	now     func() time.Time
}

// NewImporter creates a new Importer.
func NewImporter(log *slog.Logger, catalog seedCatalog, repo LessonRepo, tx txManager) *Importer {
	return &Importer{
		catalog: catalog,
		repo:    repo,
		tx:      tx,
		log:     log.With("service", "seed_importer"),
		now:     time.Now,
	}
}

// UpsertSeed makes the store contain the trip, situations and phrases of
// the named seed without duplicating existing rows. Running it again with
// the same name changes nothing except the refreshable fields (situation
// sort order, phrase meaning/notes/tags).
//
// All writes happen in one transaction. Returns *domain.UnknownSeedError
// for a name missing from the catalog and *domain.ImportError for any store
// failure.
func (im *Importer) UpsertSeed(ctx context.Context, name string) (domain.ImportResult, error) {
	s, err := im.catalog.Lookup(name)
	if err != nil {
		return domain.ImportResult{Seed: name}, err
	}

	start := time.Now()
	var result domain.ImportResult

	err = im.tx.RunInTx(ctx, func(txCtx context.Context) error {
		result = domain.ImportResult{Seed: name}

		tripID, err := im.upsertTrip(txCtx, s, &result)
		if err != nil {
			return err
		}
		result.TripID = tripID

		for _, ss := range s.Situations {
			situationID, err := im.upsertSituation(txCtx, tripID, ss, &result)
			if err != nil {
				return err
			}
			for _, sp := range ss.Phrases {
				if err := im.upsertPhrase(txCtx, situationID, sp, &result); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		im.log.ErrorContext(ctx, "seed import failed",
			slog.String("seed", name),
			slog.String("error", err.Error()),
		)
		return domain.ImportResult{Seed: name}, &domain.ImportError{Seed: name, Err: err}
	}

	im.log.InfoContext(ctx, "seed imported",
		slog.String("seed", name),
		slog.String("trip_id", result.TripID.String()),
		slog.Int("created", result.Created.Total()),
		slog.Int("updated", result.Updated.Total()),
		slog.Duration("duration", time.Since(start)),
	)

	return result, nil
}

// upsertTrip reuses the trip with the same destination (case-insensitive)
// and only fills languages that are still empty.
func (im *Importer) upsertTrip(ctx context.Context, s domain.Seed, result *domain.ImportResult) (uuid.UUID, error) {
	trip, err := im.repo.FindTripByDestination(ctx, s.DestinationName)
	switch {
	case err == nil:
		if needsLanguages(trip, s) {
			changed, err := im.repo.FillTripLanguages(ctx, trip.ID, s.BaseLanguage, s.TargetLanguage)
			if err != nil {
				return uuid.Nil, fmt.Errorf("fill trip languages %s: %w", trip.ID, err)
			}
			if changed {
				result.Updated.Trips++
			}
		}
		return trip.ID, nil

	case errors.Is(err, domain.ErrNotFound):
		trip = &domain.Trip{
			ID:              uuid.New(),
			DestinationName: s.DestinationName,
			BaseLanguage:    s.BaseLanguage,
			TargetLanguage:  s.TargetLanguage,
			CreatedAt:       im.now(),
		}
		if err := im.repo.CreateTrip(ctx, trip); err != nil {
			return uuid.Nil, fmt.Errorf("create trip %q: %w", s.DestinationName, err)
		}
		result.Created.Trips++
		return trip.ID, nil

	default:
		return uuid.Nil, fmt.Errorf("find trip %q: %w", s.DestinationName, err)
	}
}

func needsLanguages(trip *domain.Trip, s domain.Seed) bool {
	return (trip.BaseLanguage == "" && s.BaseLanguage != "") ||
		(trip.TargetLanguage == "" && s.TargetLanguage != "")
}

// upsertSituation matches by exact title under the trip. Sort order is the
// only field refreshed on an existing situation.
func (im *Importer) upsertSituation(ctx context.Context, tripID uuid.UUID, ss domain.SeedSituation, result *domain.ImportResult) (uuid.UUID, error) {
	sit, err := im.repo.FindSituation(ctx, tripID, ss.Title)
	switch {
	case err == nil:
		if sit.SortOrder != ss.SortOrder {
			if err := im.repo.UpdateSituationSortOrder(ctx, sit.ID, ss.SortOrder); err != nil {
				return uuid.Nil, fmt.Errorf("update situation %s sort order: %w", sit.ID, err)
			}
			result.Updated.Situations++
		}
		return sit.ID, nil

	case errors.Is(err, domain.ErrNotFound):
		sit = &domain.Situation{
			ID:        uuid.New(),
			TripID:    tripID,
			Title:     ss.Title,
			SortOrder: ss.SortOrder,
			CreatedAt: im.now(),
		}
		if err := im.repo.CreateSituation(ctx, sit); err != nil {
			return uuid.Nil, fmt.Errorf("create situation %q: %w", ss.Title, err)
		}
		result.Created.Situations++
		return sit.ID, nil

	default:
		return uuid.Nil, fmt.Errorf("find situation %q: %w", ss.Title, err)
	}
}

// upsertPhrase matches by exact target text under the situation and
// refreshes meaning, notes and tags in place.
func (im *Importer) upsertPhrase(ctx context.Context, situationID uuid.UUID, sp domain.SeedPhrase, result *domain.ImportResult) error {
	phrase, err := im.repo.FindPhrase(ctx, situationID, sp.TargetText)
	switch {
	case err == nil:
		if phrase.SameContent(sp.EnglishMeaning, sp.Notes, sp.Tags) {
			return nil
		}
		if err := im.repo.UpdatePhraseContent(ctx, phrase.ID, sp.EnglishMeaning, sp.Notes, sp.Tags); err != nil {
			return fmt.Errorf("update phrase %s: %w", phrase.ID, err)
		}
		result.Updated.Phrases++
		return nil

	case errors.Is(err, domain.ErrNotFound):
		phrase = &domain.Phrase{
			ID:             uuid.New(),
			SituationID:    situationID,
			TargetText:     sp.TargetText,
			EnglishMeaning: sp.EnglishMeaning,
			Notes:          sp.Notes,
			Tags:           domain.NormalizeTags(sp.Tags),
			CreatedAt:      im.now(),
		}
		if err := im.repo.CreatePhrase(ctx, phrase); err != nil {
			return fmt.Errorf("create phrase %q: %w", sp.TargetText, err)
		}
		result.Created.Phrases++
		return nil

	default:
		return fmt.Errorf("find phrase %q: %w", sp.TargetText, err)
	}
}
