package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/heartmarshall/triplingo-backend/internal/app/seeder"
	"github.com/heartmarshall/triplingo-backend/internal/config"
	"github.com/heartmarshall/triplingo-backend/internal/seed"
	"github.com/heartmarshall/triplingo-backend/internal/service/lessons"
	"github.com/heartmarshall/triplingo-backend/internal/service/phrasebook"
	"github.com/heartmarshall/triplingo-backend/internal/service/places"
	"github.com/heartmarshall/triplingo-backend/internal/service/reset"
	"github.com/heartmarshall/triplingo-backend/internal/transport/dataloader"
	"github.com/heartmarshall/triplingo-backend/internal/transport/middleware"
	"github.com/heartmarshall/triplingo-backend/internal/transport/rest"
)

const rateLimitCleanup = time.Minute

// Run is the server entry point. It loads configuration, opens the stores,
// imports pending seeds, and serves HTTP until ctx is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log, os.Stderr)
	logger.InfoContext(ctx, "starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	catalog, err := loadCatalog(cfg.Seed)
	if err != nil {
		return err
	}

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	importer := seeder.NewImporter(logger, catalog, st.lessons, st.tx)
	coordinator := seeder.NewCoordinator(logger, importer, st.gate, seeder.Config{
		Parallelism: cfg.Seed.Parallelism,
	})

	if !cfg.Seed.SkipImportOnStart {
		names, err := seedNames(catalog, cfg.Seed.Names)
		if err != nil {
			return err
		}
		// A failed seed keeps its gate unset and retries on the next launch;
		// the server still starts with whatever content is present.
		if _, err := coordinator.EnsureSeeded(ctx, names); err != nil {
			logger.ErrorContext(ctx, "seed import failed", slog.String("error", err.Error()))
		}
	}

	rateLimiter := middleware.NewRateLimiter(rateLimitCleanup)
	defer rateLimiter.Stop()

	handler := rest.NewRouter(rest.Handlers{
		Health:     rest.NewHealthHandler(BuildVersion(), st.checks...),
		Lessons:    rest.NewLessonHandler(lessons.NewService(logger, st.lessons), logger),
		Phrasebook: rest.NewPhrasebookHandler(phrasebook.NewService(logger, st.phrasebook), logger),
		Places:     rest.NewPlaceHandler(places.NewService(logger, st.places), logger),
		Admin: rest.NewAdminHandler(coordinator, catalog,
			reset.NewService(logger, st.gate, st.lessons, st.phrasebook, st.tx), logger),
	}, rest.RouterDeps{
		Logger:         logger,
		CORS:           cfg.CORS,
		Loaders:        &dataloader.Repos{Situation: st.lessons},
		RateLimiter:    rateLimiter,
		AdminPerMinute: cfg.RateLimit.AdminPerMinute,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

// serve runs srv until ctx is canceled, then drains in-flight requests
// for at most shutdownTimeout.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

func loadCatalog(cfg config.SeedConfig) (*seed.Catalog, error) {
	if cfg.CatalogDir != "" {
		c, err := seed.LoadDir(cfg.CatalogDir)
		if err != nil {
			return nil, fmt.Errorf("load seed catalog %s: %w", cfg.CatalogDir, err)
		}
		return c, nil
	}
	c, err := seed.Default()
	if err != nil {
		return nil, fmt.Errorf("load bundled seed catalog: %w", err)
	}
	return c, nil
}

// seedNames returns requested, or every catalog seed when requested is
// empty. Unknown names fail fast.
func seedNames(catalog *seed.Catalog, requested []string) ([]string, error) {
	if len(requested) == 0 {
		return catalog.Names(), nil
	}
	for _, name := range requested {
		if _, err := catalog.Lookup(name); err != nil {
			return nil, err
		}
	}
	return requested, nil
}
