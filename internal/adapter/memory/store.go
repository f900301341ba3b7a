// Package memory provides an in-process transactional store that mirrors the
// PostgreSQL adapter: the same lookups, the same uniqueness rules and the
// same "not found" errors. It backs unit tests and the seeder's dry runs.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/triplingo-backend/internal/domain"
)

type state struct {
	trips        map[uuid.UUID]domain.Trip
	situations   map[uuid.UUID]domain.Situation
	phrases      map[uuid.UUID]domain.Phrase
	savedPhrases map[uuid.UUID]domain.SavedPhrase
	places       map[uuid.UUID]domain.SavedPlace
	gate         map[string]bool
}

func newState() state {
	return state{
		trips:        map[uuid.UUID]domain.Trip{},
		situations:   map[uuid.UUID]domain.Situation{},
		phrases:      map[uuid.UUID]domain.Phrase{},
		savedPhrases: map[uuid.UUID]domain.SavedPhrase{},
		places:       map[uuid.UUID]domain.SavedPlace{},
		gate:         map[string]bool{},
	}
}

func (s state) clone() state {
	c := state{
		trips:        maps.Clone(s.trips),
		situations:   maps.Clone(s.situations),
		phrases:      make(map[uuid.UUID]domain.Phrase, len(s.phrases)),
		savedPhrases: make(map[uuid.UUID]domain.SavedPhrase, len(s.savedPhrases)),
		places:       maps.Clone(s.places),
		gate:         maps.Clone(s.gate),
	}
	for k, v := range s.phrases {
		c.phrases[k] = clonePhrase(v)
	}
	for k, v := range s.savedPhrases {
		c.savedPhrases[k] = cloneSavedPhrase(v)
	}
	return c
}

func clonePhrase(p domain.Phrase) domain.Phrase {
	p.Tags = slices.Clone(p.Tags)
	if p.Notes != nil {
		notes := *p.Notes
		p.Notes = &notes
	}
	return p
}

func cloneSavedPhrase(sp domain.SavedPhrase) domain.SavedPhrase {
	if sp.LastPracticedAt != nil {
		at := *sp.LastPracticedAt
		sp.LastPracticedAt = &at
	}
	return sp
}

// Store is the in-memory store. The zero value is not usable; call New.
//
// Writers are serialised: a transaction holds txMu for its whole run, and
// a write outside a transaction takes it for one call. Reads only take mu.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data state
}

// New creates an empty Store.
func New() *Store {
	return &Store{data: newState()}
}

type txCtxKey struct{}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txCtxKey{}).(bool)
	return v
}

// RunInTx runs fn with all writes isolated from other writers. If fn returns
// an error or panics, every change made through the context is discarded.
// A call nested inside another transaction joins it.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	restore := func() {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
	}

	defer func() {
		if r := recover(); r != nil {
			restore()
			panic(r)
		}
	}()

	if err := fn(context.WithValue(ctx, txCtxKey{}, true)); err != nil {
		restore()
		return err
	}
	return nil
}

// write runs fn under the write lock, joining the caller's transaction if any.
func (s *Store) write(ctx context.Context, fn func(d *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !inTx(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.data)
}

func (s *Store) read(ctx context.Context, fn func(d *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&s.data)
}

// Counts reports row counts per table. Used by dry runs and tests.
type Counts struct {
	Trips        int
	Situations   int
	Phrases      int
	SavedPhrases int
	Places       int
}

// Counts returns the current row counts.
func (s *Store) Counts() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Counts{
		Trips:        len(s.data.trips),
		Situations:   len(s.data.situations),
		Phrases:      len(s.data.phrases),
		SavedPhrases: len(s.data.savedPhrases),
		Places:       len(s.data.places),
	}
}
