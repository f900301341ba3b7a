package phrasebook

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/triplingo-backend/internal/domain"
)

// List returns saved phrases, newest first, or most recently practiced
// first when PracticedOnly is set.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.SavedPhrase, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	phrases, err := s.phrases.List(ctx, domain.SavedPhraseFilter{
		Search:        strings.TrimSpace(input.Search),
		PracticedOnly: input.PracticedOnly,
		Limit:         input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list saved phrases: %w", err)
	}
	return phrases, nil
}

// RecentlyPracticed returns up to limit phrases ordered by practice time.
// A non-positive limit means DefaultRecentLimit.
func (s *Service) RecentlyPracticed(ctx context.Context, limit int) ([]domain.SavedPhrase, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return s.List(ctx, ListInput{PracticedOnly: true, Limit: min(limit, MaxListLimit)})
}

// Delete removes a saved phrase.
func (s *Service) Delete(ctx context.Context, input DeleteInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	if err := s.phrases.Delete(ctx, input.ID); err != nil {
		return fmt.Errorf("delete saved phrase: %w", err)
	}

	s.log.InfoContext(ctx, "saved phrase deleted", slog.String("id", input.ID.String()))
	return nil
}
