package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/heartmarshall/triplingo-backend/internal/domain"
)

// PlaceRepo stores saved map places.
type PlaceRepo struct {
	s *Store
}

// Places returns the saved-place repository view of the store.
func (s *Store) Places() *PlaceRepo {
	return &PlaceRepo{s: s}
}

// Create inserts a place.
func (r *PlaceRepo) Create(ctx context.Context, place *domain.SavedPlace) error {
	return r.s.write(ctx, func(d *state) error {
		if _, ok := d.places[place.ID]; ok {
			return fmt.Errorf("saved place %s: %w", place.ID, domain.ErrAlreadyExists)
		}
		d.places[place.ID] = *place
		return nil
	})
}

// List returns all places, newest first.
func (r *PlaceRepo) List(ctx context.Context) ([]domain.SavedPlace, error) {
	var out []domain.SavedPlace
	err := r.s.read(ctx, func(d *state) error {
		for _, p := range d.places {
			out = append(out, p)
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.SavedPlace) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.Name, b.Name))
	})
	return out, err
}

// Delete removes a place by ID.
func (r *PlaceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(d *state) error {
		if _, ok := d.places[id]; !ok {
			return fmt.Errorf("saved place %s: %w", id, domain.ErrNotFound)
		}
		delete(d.places, id)
		return nil
	})
}
