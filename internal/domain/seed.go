package domain

import "github.com/google/uuid"

// Seed is a named, versioned, immutable bundle of lesson content.
type Seed struct {
	Name            string
	DestinationName string
	BaseLanguage    string
	TargetLanguage  string
	Situations      []SeedSituation
}

// SeedSituation is a situation as described by a seed, in seed order.
type SeedSituation struct {
	Title     string
	SortOrder int
	Phrases   []SeedPhrase
}

// SeedPhrase is a phrase as described by a seed.
type SeedPhrase struct {
	TargetText     string
	EnglishMeaning string
	Notes          *string
	Tags           []string
}

// PhraseCount returns the total number of phrases in the seed.
func (s Seed) PhraseCount() int {
	n := 0
	for _, sit := range s.Situations {
		n += len(sit.Phrases)
	}
	return n
}

// ImportCounts counts rows per entity type touched by one import.
type ImportCounts struct {
	Trips      int
	Situations int
	Phrases    int
}

// Total returns the sum of all counters.
func (c ImportCounts) Total() int {
	return c.Trips + c.Situations + c.Phrases
}

// ImportResult reports what a single seed import did.
type ImportResult struct {
	Seed    string
	TripID  uuid.UUID
	Created ImportCounts
	Updated ImportCounts
}
