package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/triplingo-backend/internal/adapter/memory"
	"github.com/heartmarshall/triplingo-backend/internal/adapter/postgres"
	"github.com/heartmarshall/triplingo-backend/internal/adapter/postgres/lesson"
	"github.com/heartmarshall/triplingo-backend/internal/adapter/postgres/savedphrase"
	"github.com/heartmarshall/triplingo-backend/internal/adapter/postgres/savedplace"
	"github.com/heartmarshall/triplingo-backend/internal/adapter/postgres/settings"
	"github.com/heartmarshall/triplingo-backend/internal/adapter/redis"
	"github.com/heartmarshall/triplingo-backend/internal/app/seeder"
	"github.com/heartmarshall/triplingo-backend/internal/config"
	"github.com/heartmarshall/triplingo-backend/internal/domain"
	"github.com/heartmarshall/triplingo-backend/internal/transport/rest"
)

type lessonStore interface {
	seeder.LessonRepo
	GetTrip(ctx context.Context, id uuid.UUID) (*domain.Trip, error)
	ListTrips(ctx context.Context) ([]domain.Trip, error)
	ListSituations(ctx context.Context, tripID uuid.UUID) ([]domain.Situation, error)
	ListSituationsByTripIDs(ctx context.Context, tripIDs []uuid.UUID) ([]domain.Situation, error)
	ListPhrases(ctx context.Context, situationID uuid.UUID) ([]domain.Phrase, error)
	DeleteAllContent(ctx context.Context) error
}

type phrasebookStore interface {
	GetByKey(ctx context.Context, key domain.SavedPhraseKey) (*domain.SavedPhrase, error)
	Create(ctx context.Context, sp *domain.SavedPhrase) error
	Touch(ctx context.Context, id uuid.UUID, practicedAt time.Time, englishMeaning *string) error
	List(ctx context.Context, filter domain.SavedPhraseFilter) ([]domain.SavedPhrase, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
}

type placeStore interface {
	Create(ctx context.Context, place *domain.SavedPlace) error
	List(ctx context.Context) ([]domain.SavedPlace, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// stores bundles the repositories of one process, backed either by
// PostgreSQL (plus Redis for the gate) or by memory.
type stores struct {
	lessons    lessonStore
	phrasebook phrasebookStore
	places     placeStore
	gate       seeder.Gate
	tx         txRunner
	checks     []rest.Check
	closers    []func()
}

func (s *stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func newMemoryStores() *stores {
	m := memory.New()
	return &stores{
		lessons:    m.Lessons(),
		phrasebook: m.Phrasebook(),
		places:     m.Places(),
		gate:       m.Gate(),
		tx:         m,
	}
}

// openStores connects to PostgreSQL, applies migrations when enabled, and
// selects the gate backend. On error everything opened so far is closed.
func openStores(ctx context.Context, cfg *config.Config, log *slog.Logger) (_ *stores, err error) {
	s := &stores{}
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	s.closers = append(s.closers, pool.Close)
	s.checks = append(s.checks, rest.Check{Name: "database", Ping: pool.Ping})
	log.InfoContext(ctx, "database connected",
		slog.Int("max_conns", int(cfg.Database.MaxConns)),
	)

	if !cfg.Database.SkipMigrate {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	s.lessons = lesson.New(pool)
	s.phrasebook = savedphrase.New(pool)
	s.places = savedplace.New(pool)
	s.tx = postgres.NewTxManager(pool)

	switch cfg.Gate.Backend {
	case config.GateBackendRedis:
		rdb, err := redis.Connect(ctx, redis.Options{
			Addr:     cfg.Gate.RedisAddr,
			Password: cfg.Gate.RedisPassword,
			DB:       cfg.Gate.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect gate: %w", err)
		}
		s.closers = append(s.closers, func() { _ = rdb.Close() })
		s.checks = append(s.checks, rest.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
		s.gate = redis.NewGate(rdb, cfg.Gate.KeyPrefix)
	default:
		s.gate = settings.New(pool)
	}
	log.InfoContext(ctx, "launch gate ready", slog.String("backend", cfg.Gate.Backend))

	return s, nil
}
