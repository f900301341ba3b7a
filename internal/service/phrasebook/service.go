// Package phrasebook manages the traveller's saved phrases. Saved phrases
// are snapshots of lesson phrases and are never touched by seed imports.
package phrasebook

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/triplingo-backend/internal/domain"
)

const (
	DefaultRecentLimit = 5
	MaxListLimit       = 200
)

type phraseRepo interface {
	GetByKey(ctx context.Context, key domain.SavedPhraseKey) (*domain.SavedPhrase, error)
	Create(ctx context.Context, sp *domain.SavedPhrase) error
	Touch(ctx context.Context, id uuid.UUID, practicedAt time.Time, englishMeaning *string) error
	List(ctx context.Context, filter domain.SavedPhraseFilter) ([]domain.SavedPhrase, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service provides phrasebook operations.
type Service struct {
	phrases phraseRepo
	log     *slog.Logger
	now     func() time.Time
}

// NewService creates a new phrasebook service.
func NewService(log *slog.Logger, phrases phraseRepo) *Service {
	return &Service{
		phrases: phrases,
		log:     log.With("service", "phrasebook"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}
