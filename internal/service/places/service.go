// Package places stores pinned points of interest for the map screen.
package places

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/triplingo-backend/internal/domain"
)

type placeRepo interface {
	Create(ctx context.Context, place *domain.SavedPlace) error
	List(ctx context.Context) ([]domain.SavedPlace, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service provides saved-place operations.
type Service struct {
	places placeRepo
	log    *slog.Logger
}

// NewService creates a new places service.
func NewService(log *slog.Logger, places placeRepo) *Service {
	return &Service{
		places: places,
		log:    log.With("service", "places"),
	}
}

// SaveInput holds the parameters for pinning a place.
type SaveInput struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// Validate checks all fields and collects all errors.
func (i SaveInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > 200 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 200 characters"})
	}
	if math.IsNaN(i.Latitude) || i.Latitude < -90 || i.Latitude > 90 {
		errs = append(errs, domain.FieldError{Field: "latitude", Message: "must be between -90 and 90"})
	}
	if math.IsNaN(i.Longitude) || i.Longitude < -180 || i.Longitude > 180 {
		errs = append(errs, domain.FieldError{Field: "longitude", Message: "must be between -180 and 180"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Save pins a new place.
func (s *Service) Save(ctx context.Context, input SaveInput) (*domain.SavedPlace, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	place := &domain.SavedPlace{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(input.Name),
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.places.Create(ctx, place); err != nil {
		return nil, fmt.Errorf("create place: %w", err)
	}

	s.log.InfoContext(ctx, "place saved",
		slog.String("id", place.ID.String()),
		slog.String("name", place.Name),
	)
	return place, nil
}

// List returns all places, newest first.
func (s *Service) List(ctx context.Context) ([]domain.SavedPlace, error) {
	places, err := s.places.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}
	return places, nil
}

// Delete removes a place.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}
	if err := s.places.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete place: %w", err)
	}
	return nil
}
