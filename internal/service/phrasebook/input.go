package phrasebook

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/triplingo-backend/internal/domain"
)

// SaveInput describes a phrase the traveller wants to keep.
type SaveInput struct {
	TargetText      string
	EnglishMeaning  string
	DestinationName string
	SituationTitle  string
}

// Key returns the compound key the input is saved under.
func (i SaveInput) Key() domain.SavedPhraseKey {
	return domain.SavedPhraseKey{
		DestinationName: i.DestinationName,
		SituationTitle:  i.SituationTitle,
		TargetText:      i.TargetText,
	}
}

// Validate checks all fields and collects all errors.
func (i SaveInput) Validate() error {
	errs := validateKey(i.Key())
	if len(i.EnglishMeaning) > 1000 {
		errs = append(errs, domain.FieldError{Field: "english_meaning", Message: "max 1000 characters"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ValidateKey checks that every part of a saved-phrase key is present.
func ValidateKey(key domain.SavedPhraseKey) error {
	if errs := validateKey(key); len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateKey(key domain.SavedPhraseKey) []domain.FieldError {
	var errs []domain.FieldError
	if strings.TrimSpace(key.TargetText) == "" {
		errs = append(errs, domain.FieldError{Field: "target_text", Message: "required"})
	}
	if strings.TrimSpace(key.DestinationName) == "" {
		errs = append(errs, domain.FieldError{Field: "destination_name", Message: "required"})
	}
	if strings.TrimSpace(key.SituationTitle) == "" {
		errs = append(errs, domain.FieldError{Field: "situation_title", Message: "required"})
	}
	return errs
}

// ListInput holds the parameters for listing saved phrases.
type ListInput struct {
	Search        string
	PracticedOnly bool
	Limit         int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Limit > MaxListLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "max 200"})
	}
	if len(i.Search) > 200 {
		errs = append(errs, domain.FieldError{Field: "search", Message: "max 200 characters"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeleteInput holds the parameters for deleting a saved phrase.
type DeleteInput struct {
	ID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i DeleteInput) Validate() error {
	if i.ID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}
	return nil
}
