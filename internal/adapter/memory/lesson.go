package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/heartmarshall/triplingo-backend/internal/domain"
)

// LessonRepo stores trips, situations and phrases.
type LessonRepo struct {
	s *Store
}

// Lessons returns the lesson repository view of the store.
func (s *Store) Lessons() *LessonRepo {
	return &LessonRepo{s: s}
}

// ---------------------------------------------------------------------------
// Trips
// ---------------------------------------------------------------------------

// FindTripByDestination matches destination names case-insensitively.
func (r *LessonRepo) FindTripByDestination(ctx context.Context, destinationName string) (*domain.Trip, error) {
	var out *domain.Trip
	err := r.s.read(ctx, func(d *state) error {
		t, ok := findTrip(d, destinationName)
		if !ok {
			return fmt.Errorf("trip %q: %w", destinationName, domain.ErrNotFound)
		}
		out = &t
		return nil
	})
	return out, err
}

func findTrip(d *state, destinationName string) (domain.Trip, bool) {
	key := domain.NormalizeText(destinationName)
	for _, t := range d.trips {
		if t.DestinationKey() == key {
			return t, true
		}
	}
	return domain.Trip{}, false
}

// GetTrip returns a trip by ID.
func (r *LessonRepo) GetTrip(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	var out *domain.Trip
	err := r.s.read(ctx, func(d *state) error {
		t, ok := d.trips[id]
		if !ok {
			return fmt.Errorf("trip %s: %w", id, domain.ErrNotFound)
		}
		out = &t
		return nil
	})
	return out, err
}

// ListTrips returns all trips ordered by creation time.
func (r *LessonRepo) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	var out []domain.Trip
	err := r.s.read(ctx, func(d *state) error {
		out = make([]domain.Trip, 0, len(d.trips))
		for _, t := range d.trips {
			out = append(out, t)
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.Trip) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.DestinationName, b.DestinationName))
	})
	return out, err
}

// CreateTrip inserts a trip. A second trip with the same destination
// (case-insensitive) is rejected with ErrAlreadyExists.
func (r *LessonRepo) CreateTrip(ctx context.Context, trip *domain.Trip) error {
	return r.s.write(ctx, func(d *state) error {
		if _, ok := findTrip(d, trip.DestinationName); ok {
			return fmt.Errorf("trip %q: %w", trip.DestinationName, domain.ErrAlreadyExists)
		}
		d.trips[trip.ID] = *trip
		return nil
	})
}

// FillTripLanguages sets each language only where the stored value is empty.
func (r *LessonRepo) FillTripLanguages(ctx context.Context, tripID uuid.UUID, baseLanguage, targetLanguage string) (bool, error) {
	changed := false
	err := r.s.write(ctx, func(d *state) error {
		t, ok := d.trips[tripID]
		if !ok {
			return fmt.Errorf("trip %s: %w", tripID, domain.ErrNotFound)
		}
		if t.BaseLanguage == "" && baseLanguage != "" {
			t.BaseLanguage = baseLanguage
			changed = true
		}
		if t.TargetLanguage == "" && targetLanguage != "" {
			t.TargetLanguage = targetLanguage
			changed = true
		}
		d.trips[tripID] = t
		return nil
	})
	return changed, err
}

// ---------------------------------------------------------------------------
// Situations
// ---------------------------------------------------------------------------

// FindSituation matches the title exactly within the trip.
func (r *LessonRepo) FindSituation(ctx context.Context, tripID uuid.UUID, title string) (*domain.Situation, error) {
	var out *domain.Situation
	err := r.s.read(ctx, func(d *state) error {
		s, ok := findSituation(d, tripID, title)
		if !ok {
			return fmt.Errorf("situation %q: %w", title, domain.ErrNotFound)
		}
		out = &s
		return nil
	})
	return out, err
}

func findSituation(d *state, tripID uuid.UUID, title string) (domain.Situation, bool) {
	for _, s := range d.situations {
		if s.TripID == tripID && s.Title == title {
			return s, true
		}
	}
	return domain.Situation{}, false
}

// CreateSituation inserts a situation under an existing trip.
func (r *LessonRepo) CreateSituation(ctx context.Context, situation *domain.Situation) error {
	return r.s.write(ctx, func(d *state) error {
		if _, ok := d.trips[situation.TripID]; !ok {
			return fmt.Errorf("situation %s: trip %s: %w", situation.ID, situation.TripID, domain.ErrNotFound)
		}
		if _, ok := findSituation(d, situation.TripID, situation.Title); ok {
			return fmt.Errorf("situation %q: %w", situation.Title, domain.ErrAlreadyExists)
		}
		d.situations[situation.ID] = *situation
		return nil
	})
}

// UpdateSituationSortOrder changes the sort order of a situation.
func (r *LessonRepo) UpdateSituationSortOrder(ctx context.Context, situationID uuid.UUID, sortOrder int) error {
	return r.s.write(ctx, func(d *state) error {
		s, ok := d.situations[situationID]
		if !ok {
			return fmt.Errorf("situation %s: %w", situationID, domain.ErrNotFound)
		}
		s.SortOrder = sortOrder
		d.situations[situationID] = s
		return nil
	})
}

// ListSituations returns the situations of a trip ordered by (SortOrder, Title).
func (r *LessonRepo) ListSituations(ctx context.Context, tripID uuid.UUID) ([]domain.Situation, error) {
	return r.ListSituationsByTripIDs(ctx, []uuid.UUID{tripID})
}

// ListSituationsByTripIDs returns the situations of several trips ordered
// by (TripID, SortOrder, Title).
func (r *LessonRepo) ListSituationsByTripIDs(ctx context.Context, tripIDs []uuid.UUID) ([]domain.Situation, error) {
	var out []domain.Situation
	err := r.s.read(ctx, func(d *state) error {
		for _, s := range d.situations {
			if slices.Contains(tripIDs, s.TripID) {
				out = append(out, s)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.Situation) int {
		return cmp.Or(
			cmp.Compare(a.TripID.String(), b.TripID.String()),
			cmp.Compare(a.SortOrder, b.SortOrder),
			cmp.Compare(a.Title, b.Title),
		)
	})
	return out, err
}

// ---------------------------------------------------------------------------
// Phrases
// ---------------------------------------------------------------------------

// FindPhrase matches the target text exactly within the situation.
func (r *LessonRepo) FindPhrase(ctx context.Context, situationID uuid.UUID, targetText string) (*domain.Phrase, error) {
	var out *domain.Phrase
	err := r.s.read(ctx, func(d *state) error {
		p, ok := findPhrase(d, situationID, targetText)
		if !ok {
			return fmt.Errorf("phrase %q: %w", targetText, domain.ErrNotFound)
		}
		p = clonePhrase(p)
		out = &p
		return nil
	})
	return out, err
}

func findPhrase(d *state, situationID uuid.UUID, targetText string) (domain.Phrase, bool) {
	for _, p := range d.phrases {
		if p.SituationID == situationID && p.TargetText == targetText {
			return p, true
		}
	}
	return domain.Phrase{}, false
}

// CreatePhrase inserts a phrase under an existing situation.
func (r *LessonRepo) CreatePhrase(ctx context.Context, phrase *domain.Phrase) error {
	return r.s.write(ctx, func(d *state) error {
		if _, ok := d.situations[phrase.SituationID]; !ok {
			return fmt.Errorf("phrase %s: situation %s: %w", phrase.ID, phrase.SituationID, domain.ErrNotFound)
		}
		if _, ok := findPhrase(d, phrase.SituationID, phrase.TargetText); ok {
			return fmt.Errorf("phrase %q: %w", phrase.TargetText, domain.ErrAlreadyExists)
		}
		p := clonePhrase(*phrase)
		p.Tags = domain.NormalizeTags(p.Tags)
		d.phrases[p.ID] = p
		return nil
	})
}

// UpdatePhraseContent replaces the refreshable fields of a phrase.
func (r *LessonRepo) UpdatePhraseContent(ctx context.Context, phraseID uuid.UUID, englishMeaning string, notes *string, tags []string) error {
	return r.s.write(ctx, func(d *state) error {
		p, ok := d.phrases[phraseID]
		if !ok {
			return fmt.Errorf("phrase %s: %w", phraseID, domain.ErrNotFound)
		}
		p.EnglishMeaning = englishMeaning
		p.Notes = notes
		p.Tags = domain.NormalizeTags(tags)
		d.phrases[phraseID] = clonePhrase(p)
		return nil
	})
}

// ListPhrases returns the phrases of a situation ordered by TargetText.
func (r *LessonRepo) ListPhrases(ctx context.Context, situationID uuid.UUID) ([]domain.Phrase, error) {
	var out []domain.Phrase
	err := r.s.read(ctx, func(d *state) error {
		for _, p := range d.phrases {
			if p.SituationID == situationID {
				out = append(out, clonePhrase(p))
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.Phrase) int {
		return cmp.Compare(a.TargetText, b.TargetText)
	})
	return out, err
}

// DeleteAllContent removes every phrase, situation and trip.
func (r *LessonRepo) DeleteAllContent(ctx context.Context) error {
	return r.s.write(ctx, func(d *state) error {
		clear(d.phrases)
		clear(d.situations)
		clear(d.trips)
		return nil
	})
}
