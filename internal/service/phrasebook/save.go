package phrasebook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/triplingo-backend/internal/domain"
)

// IsSaved reports whether a phrase with the exact key exists. A failed
// lookup is logged and reported as not saved.
func (s *Service) IsSaved(ctx context.Context, key domain.SavedPhraseKey) bool {
	_, err := s.phrases.GetByKey(ctx, key)
	if err == nil {
		return true
	}
	if !errors.Is(err, domain.ErrNotFound) {
		s.log.WarnContext(ctx, "saved phrase lookup failed",
			slog.String("target_text", key.TargetText),
			slog.String("error", err.Error()),
		)
	}
	return false
}

// SaveIfNeeded stores the phrase unless one with the same key exists, in
// which case the existing row gets a fresh practice time and the given
// meaning. Returns true only when a new row was created.
//
// The lookup and the insert are not locked together. A concurrent save of
// the same key fails on the unique key with domain.ErrAlreadyExists.
func (s *Service) SaveIfNeeded(ctx context.Context, input SaveInput) (bool, error) {
	if err := input.Validate(); err != nil {
		return false, err
	}

	now := s.now()
	key := input.Key()

	existing, err := s.phrases.GetByKey(ctx, key)
	switch {
	case err == nil:
		meaning := input.EnglishMeaning
		if err := s.phrases.Touch(ctx, existing.ID, now, &meaning); err != nil {
			return false, fmt.Errorf("touch saved phrase: %w", err)
		}
		s.log.DebugContext(ctx, "saved phrase refreshed", slog.String("id", existing.ID.String()))
		return false, nil
	case !errors.Is(err, domain.ErrNotFound):
		return false, &domain.StoreFetchError{Op: "find saved phrase", Err: err}
	}

	sp := &domain.SavedPhrase{
		ID:              uuid.New(),
		CreatedAt:       now,
		TargetText:      input.TargetText,
		EnglishMeaning:  input.EnglishMeaning,
		DestinationName: input.DestinationName,
		SituationTitle:  input.SituationTitle,
		LastPracticedAt: &now,
	}
	if err := s.phrases.Create(ctx, sp); err != nil {
		return false, fmt.Errorf("create saved phrase: %w", err)
	}

	s.log.InfoContext(ctx, "phrase saved",
		slog.String("id", sp.ID.String()),
		slog.String("destination", sp.DestinationName),
		slog.String("situation", sp.SituationTitle),
	)
	return true, nil
}

// MarkPracticed sets the practice time of the phrase with the exact key.
// A phrase that was never saved is left alone.
func (s *Service) MarkPracticed(ctx context.Context, key domain.SavedPhraseKey) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	existing, err := s.phrases.GetByKey(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return &domain.StoreFetchError{Op: "find saved phrase", Err: err}
	}

	if err := s.phrases.Touch(ctx, existing.ID, s.now(), nil); err != nil {
		return fmt.Errorf("mark practiced: %w", err)
	}
	return nil
}
