// Package lessons serves read-only views of imported lesson content.
package lessons

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/triplingo-backend/internal/domain"
)

type lessonRepo interface {
	GetTrip(ctx context.Context, id uuid.UUID) (*domain.Trip, error)
	FindTripByDestination(ctx context.Context, destinationName string) (*domain.Trip, error)
	ListTrips(ctx context.Context) ([]domain.Trip, error)
	ListSituations(ctx context.Context, tripID uuid.UUID) ([]domain.Situation, error)
	ListPhrases(ctx context.Context, situationID uuid.UUID) ([]domain.Phrase, error)
}

// Service provides lesson queries.
type Service struct {
	lessons lessonRepo
	log     *slog.Logger
}

// NewService creates a new lessons service.
func NewService(log *slog.Logger, lessons lessonRepo) *Service {
	return &Service{
		lessons: lessons,
		log:     log.With("service", "lessons"),
	}
}

// ListTrips returns all trips in creation order.
func (s *Service) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.lessons.ListTrips(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	return trips, nil
}

// GetTrip returns a trip by ID.
func (s *Service) GetTrip(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	trip, err := s.lessons.GetTrip(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get trip: %w", err)
	}
	return trip, nil
}

// FindTripByDestination looks a trip up by destination, ignoring case.
func (s *Service) FindTripByDestination(ctx context.Context, destinationName string) (*domain.Trip, error) {
	if strings.TrimSpace(destinationName) == "" {
		return nil, domain.NewValidationError("destination", "required")
	}
	trip, err := s.lessons.FindTripByDestination(ctx, destinationName)
	if err != nil {
		return nil, fmt.Errorf("find trip: %w", err)
	}
	return trip, nil
}

// ListSituations returns the situations of a trip ordered by sort order,
// then title. Returns domain.ErrNotFound for an unknown trip.
func (s *Service) ListSituations(ctx context.Context, tripID uuid.UUID) ([]domain.Situation, error) {
	if _, err := s.lessons.GetTrip(ctx, tripID); err != nil {
		return nil, fmt.Errorf("get trip: %w", err)
	}
	situations, err := s.lessons.ListSituations(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("list situations: %w", err)
	}
	return situations, nil
}

// ListPhrases returns the phrases of a situation ordered by target text.
func (s *Service) ListPhrases(ctx context.Context, situationID uuid.UUID) ([]domain.Phrase, error) {
	phrases, err := s.lessons.ListPhrases(ctx, situationID)
	if err != nil {
		return nil, fmt.Errorf("list phrases: %w", err)
	}
	return phrases, nil
}
