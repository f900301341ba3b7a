// Package dataloader provides per-request DataLoaders that batch lesson
// lookups made while rendering one response into single store calls.
package dataloader

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/triplingo-backend/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

type situationRepo interface {
	ListSituationsByTripIDs(ctx context.Context, tripIDs []uuid.UUID) ([]domain.Situation, error)
}

// Repos holds the repositories required by DataLoaders.
type Repos struct {
	Situation situationRepo
}

// Loaders contains the per-request DataLoaders.
type Loaders struct {
	SituationsByTripID *dataloader.Loader[uuid.UUID, []domain.Situation]
}

// NewLoaders creates a new set of DataLoaders backed by the given repositories.
// Must be called per-request (loaders cache results within a single request).
func NewLoaders(repos *Repos) *Loaders {
	return &Loaders{
		SituationsByTripID: newLoader(newSituationsBatchFn(repos.Situation)),
	}
}

func newLoader[V any](batchFn dataloader.BatchFunc[uuid.UUID, V]) *dataloader.Loader[uuid.UUID, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[uuid.UUID, V](wait),
		dataloader.WithBatchCapacity[uuid.UUID, V](maxBatch),
	)
}

func newSituationsBatchFn(repo situationRepo) dataloader.BatchFunc[uuid.UUID, []domain.Situation] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[[]domain.Situation] {
		situations, err := repo.ListSituationsByTripIDs(ctx, keys)
		if err != nil {
			results := make([]*dataloader.Result[[]domain.Situation], len(keys))
			for i := range results {
				results[i] = &dataloader.Result[[]domain.Situation]{Error: err}
			}
			return results
		}

		grouped := make(map[uuid.UUID][]domain.Situation, len(keys))
		for _, s := range situations {
			grouped[s.TripID] = append(grouped[s.TripID], s)
		}

		results := make([]*dataloader.Result[[]domain.Situation], len(keys))
		for i, key := range keys {
			data, ok := grouped[key]
			if !ok {
				data = []domain.Situation{}
			}
			results[i] = &dataloader.Result[[]domain.Situation]{Data: data}
		}
		return results
	}
}

// LoadSituations resolves the situations of several trips through one batch.
// The result is keyed by trip ID.
func (l *Loaders) LoadSituations(ctx context.Context, tripIDs []uuid.UUID) (map[uuid.UUID][]domain.Situation, error) {
	lists, errs := l.SituationsByTripID.LoadMany(ctx, tripIDs)()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	out := make(map[uuid.UUID][]domain.Situation, len(tripIDs))
	for i, id := range tripIDs {
		out[id] = lists[i]
	}
	return out, nil
}

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context.
// Panics if loaders are not present (indicates middleware misconfiguration).
func FromContext(ctx context.Context) *Loaders {
	l, ok := ctx.Value(loadersKey).(*Loaders)
	if !ok || l == nil {
		panic("dataloader: loaders not found in context, is middleware configured?")
	}
	return l
}
