package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/triplingo-backend/internal/domain"
)

// PhrasebookRepo stores saved phrases.
type PhrasebookRepo struct {
	s *Store
}

// Phrasebook returns the saved-phrase repository view of the store.
func (s *Store) Phrasebook() *PhrasebookRepo {
	return &PhrasebookRepo{s: s}
}

func findSaved(d *state, key domain.SavedPhraseKey) (domain.SavedPhrase, bool) {
	for _, sp := range d.savedPhrases {
		if sp.Key() == key {
			return sp, true
		}
	}
	return domain.SavedPhrase{}, false
}

// GetByKey returns the saved phrase with the exact compound key.
func (r *PhrasebookRepo) GetByKey(ctx context.Context, key domain.SavedPhraseKey) (*domain.SavedPhrase, error) {
	var out *domain.SavedPhrase
	err := r.s.read(ctx, func(d *state) error {
		sp, ok := findSaved(d, key)
		if !ok {
			return fmt.Errorf("saved phrase %q: %w", key.TargetText, domain.ErrNotFound)
		}
		sp = cloneSavedPhrase(sp)
		out = &sp
		return nil
	})
	return out, err
}

// Create inserts a saved phrase. The compound key is unique.
func (r *PhrasebookRepo) Create(ctx context.Context, sp *domain.SavedPhrase) error {
	return r.s.write(ctx, func(d *state) error {
		if _, ok := findSaved(d, sp.Key()); ok {
			return fmt.Errorf("saved phrase %q: %w", sp.TargetText, domain.ErrAlreadyExists)
		}
		d.savedPhrases[sp.ID] = cloneSavedPhrase(*sp)
		return nil
	})
}

// Touch sets LastPracticedAt and, when englishMeaning is non-nil, the meaning.
func (r *PhrasebookRepo) Touch(ctx context.Context, id uuid.UUID, practicedAt time.Time, englishMeaning *string) error {
	return r.s.write(ctx, func(d *state) error {
		sp, ok := d.savedPhrases[id]
		if !ok {
			return fmt.Errorf("saved phrase %s: %w", id, domain.ErrNotFound)
		}
		at := practicedAt
		sp.LastPracticedAt = &at
		if englishMeaning != nil {
			sp.EnglishMeaning = *englishMeaning
		}
		d.savedPhrases[id] = sp
		return nil
	})
}

// List returns saved phrases matching the filter. Rows are ordered by
// CreatedAt desc, or by LastPracticedAt desc when PracticedOnly is set.
func (r *PhrasebookRepo) List(ctx context.Context, filter domain.SavedPhraseFilter) ([]domain.SavedPhrase, error) {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	var out []domain.SavedPhrase
	err := r.s.read(ctx, func(d *state) error {
		for _, sp := range d.savedPhrases {
			if filter.PracticedOnly && sp.LastPracticedAt == nil {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(sp.TargetText), search) &&
				!strings.Contains(strings.ToLower(sp.EnglishMeaning), search) {
				continue
			}
			out = append(out, cloneSavedPhrase(sp))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(out, func(a, b domain.SavedPhrase) int {
		if filter.PracticedOnly {
			if c := b.LastPracticedAt.Compare(*a.LastPracticedAt); c != 0 {
				return c
			}
		}
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.TargetText, b.TargetText))
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// Delete removes a saved phrase by ID.
func (r *PhrasebookRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(d *state) error {
		if _, ok := d.savedPhrases[id]; !ok {
			return fmt.Errorf("saved phrase %s: %w", id, domain.ErrNotFound)
		}
		delete(d.savedPhrases, id)
		return nil
	})
}

// DeleteAll removes every saved phrase.
func (r *PhrasebookRepo) DeleteAll(ctx context.Context) error {
	return r.s.write(ctx, func(d *state) error {
		clear(d.savedPhrases)
		return nil
	})
}
