package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Trip is a destination with its language pair. Trips are created by the
// seed importer and are read-only for everything else.
type Trip struct {
	ID              uuid.UUID
	DestinationName string
	BaseLanguage    string
	TargetLanguage  string
	CreatedAt       time.Time
}

// DestinationKey returns the case-insensitive lookup key for the trip.
func (t *Trip) DestinationKey() string {
	return NormalizeText(t.DestinationName)
}

// Situation is a micro-lesson inside a trip. Title is unique per TripID.
type Situation struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	Title     string
	SortOrder int
	CreatedAt time.Time
}

// Phrase belongs to a situation. TargetText is unique per SituationID.
type Phrase struct {
	ID             uuid.UUID
	SituationID    uuid.UUID
	TargetText     string
	EnglishMeaning string
	Notes          *string
	Tags           []string
	CreatedAt      time.Time
}

// SameContent reports whether the refreshable fields of p equal the given values.
func (p *Phrase) SameContent(englishMeaning string, notes *string, tags []string) bool {
	if p.EnglishMeaning != englishMeaning {
		return false
	}
	if !equalStringPtr(p.Notes, notes) {
		return false
	}
	return EncodeTags(p.Tags) == EncodeTags(tags)
}

const tagSeparator = ","

// NormalizeTags trims every tag, drops empty ones and removes duplicates,
// keeping the order of first appearance. A tag containing the separator is
// split. Returns nil for an empty set.
func NormalizeTags(tags []string) []string {
	var out []string
	for _, raw := range tags {
		for _, t := range strings.Split(raw, tagSeparator) {
			t = strings.TrimSpace(t)
			if t == "" || slices.Contains(out, t) {
				continue
			}
			out = append(out, t)
		}
	}
	return out
}

// EncodeTags serializes a tag set to its stored delimited form ("food,polite").
func EncodeTags(tags []string) string {
	return strings.Join(NormalizeTags(tags), tagSeparator)
}

// DecodeTags parses the stored delimited form back into a tag set.
func DecodeTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return NormalizeTags(strings.Split(s, tagSeparator))
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
