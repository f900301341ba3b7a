// Package reset wipes imported lesson content and the phrasebook so the
// next launch imports every seed again. Saved places survive a reset.
package reset

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/triplingo-backend/internal/domain"
)

type gate interface {
	ClearAll(ctx context.Context) (int, error)
}

type contentRepo interface {
	DeleteAllContent(ctx context.Context) error
}

type phrasebookRepo interface {
	DeleteAll(ctx context.Context) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service performs the destructive reset.
type Service struct {
	gate    gate
	content contentRepo
	saved   phrasebookRepo
	tx      txManager
	log     *slog.Logger
}

// NewService creates a new reset service.
func NewService(
	log *slog.Logger,
	gate gate,
	content contentRepo,
	saved phrasebookRepo,
	tx txManager,
) *Service {
	return &Service{
		gate:    gate,
		content: content,
		saved:   saved,
		tx:      tx,
		log:     log.With("service", "reset"),
	}
}

// Input holds the parameters for a reset.
type Input struct {
	Confirm bool
}

// Validate checks all fields and collects all errors.
func (i Input) Validate() error {
	if !i.Confirm {
		return domain.NewValidationError("confirm", "must be true")
	}
	return nil
}

// Reset clears every launch gate, then deletes all phrases, situations,
// trips and saved phrases in one transaction.
//
// Gates go first: if the delete fails afterwards, the next launch re-imports
// into the surviving rows, which the importer handles as an upsert.
func (s *Service) Reset(ctx context.Context, input Input) error {
	if err := input.Validate(); err != nil {
		return err
	}

	cleared, err := s.gate.ClearAll(ctx)
	if err != nil {
		return fmt.Errorf("clear launch gates: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.content.DeleteAllContent(txCtx); err != nil {
			return fmt.Errorf("delete lesson content: %w", err)
		}
		if err := s.saved.DeleteAll(txCtx); err != nil {
			return fmt.Errorf("delete saved phrases: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.WarnContext(ctx, "store reset", slog.Int("gates_cleared", cleared))
	return nil
}
