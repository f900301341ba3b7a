package domain

import (
	"time"

	"github.com/google/uuid"
)

// SavedPhrase is a user's phrasebook row. It is a denormalized snapshot and
// holds no reference to Trip, Situation or Phrase, so seed re-imports and
// seed content changes never touch it.
type SavedPhrase struct {
	ID              uuid.UUID
	CreatedAt       time.Time
	TargetText      string
	EnglishMeaning  string
	DestinationName string
	SituationTitle  string
	LastPracticedAt *time.Time
}

// Key returns the compound uniqueness key of the row.
func (s *SavedPhrase) Key() SavedPhraseKey {
	return SavedPhraseKey{
		DestinationName: s.DestinationName,
		SituationTitle:  s.SituationTitle,
		TargetText:      s.TargetText,
	}
}

// SavedPhraseKey is the uniqueness key shared by every phrasebook operation.
// Matching is exact (case-sensitive).
type SavedPhraseKey struct {
	DestinationName string
	SituationTitle  string
	TargetText      string
}

// SavedPhraseFilter narrows phrasebook listings.
type SavedPhraseFilter struct {
	// Search matches target text or english meaning, case-insensitively.
	Search string
	// PracticedOnly keeps rows with a LastPracticedAt and orders by it (newest first).
	PracticedOnly bool
	Limit         int
}

// SavedPlace is a pinned point of interest on the map.
type SavedPlace struct {
	ID        uuid.UUID
	Name      string
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
}
