package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/heartmarshall/triplingo-backend/internal/app/seeder"
	"github.com/heartmarshall/triplingo-backend/internal/config"
	"github.com/heartmarshall/triplingo-backend/internal/seed"
	"github.com/heartmarshall/triplingo-backend/internal/service/reset"
)

// ErrSeedsFailed is returned by RunSeeder when at least one seed failed.
var ErrSeedsFailed = errors.New("one or more seeds failed")

// SeederOptions holds the seeder command's flags.
type SeederOptions struct {
	Seeds      []string
	CatalogDir string
	Force      bool
	DryRun     bool
	Reset      bool
	Confirm    bool
	List       bool
}

// RunSeeder imports, lists or resets seed content from the command line.
// A dry run imports into a throwaway in-memory store and needs no database.
func RunSeeder(ctx context.Context, opts SeederOptions, out io.Writer) error {
	var (
		cfg    *config.Config
		logger *slog.Logger
	)
	if opts.DryRun || opts.List {
		logger = NewLogger(config.LogConfig{Level: "info", Format: "text"}, os.Stderr)
		cfg = &config.Config{Seed: config.SeedConfig{CatalogDir: opts.CatalogDir, Parallelism: 1}}
	} else {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		if opts.CatalogDir != "" {
			cfg.Seed.CatalogDir = opts.CatalogDir
		}
		logger = NewLogger(cfg.Log, os.Stderr)
	}

	catalog, err := loadCatalog(cfg.Seed)
	if err != nil {
		return err
	}
	if opts.List {
		return listSeeds(catalog, out)
	}

	var st *stores
	if opts.DryRun {
		st = newMemoryStores()
	} else {
		st, err = openStores(ctx, cfg, logger)
		if err != nil {
			return err
		}
	}
	defer st.Close()

	return runSeeder(ctx, opts, cfg.Seed, catalog, st, logger, out)
}

func runSeeder(
	ctx context.Context,
	opts SeederOptions,
	cfg config.SeedConfig,
	catalog *seed.Catalog,
	st *stores,
	logger *slog.Logger,
	out io.Writer,
) error {
	if opts.Reset {
		svc := reset.NewService(logger, st.gate, st.lessons, st.phrasebook, st.tx)
		if err := svc.Reset(ctx, reset.Input{Confirm: opts.Confirm}); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		fmt.Fprintln(out, "store reset")
		return nil
	}

	names := opts.Seeds
	if len(names) == 0 {
		names = cfg.Names
	}
	names, err := seedNames(catalog, names)
	if err != nil {
		return err
	}

	importer := seeder.NewImporter(logger, catalog, st.lessons, st.tx)
	coordinator := seeder.NewCoordinator(logger, importer, st.gate, seeder.Config{
		Parallelism: cfg.Parallelism,
		Force:       opts.Force,
	})

	report, err := coordinator.EnsureSeeded(ctx, names)
	printReport(out, names, report)
	if err != nil {
		logger.ErrorContext(ctx, "seed import failed", slog.String("error", err.Error()))
		return ErrSeedsFailed
	}
	return nil
}

func listSeeds(catalog *seed.Catalog, out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEED\tDESTINATION\tSITUATIONS\tPHRASES")
	for _, name := range catalog.Names() {
		s, err := catalog.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", name, s.DestinationName, len(s.Situations), s.PhraseCount())
	}
	return tw.Flush()
}

func printReport(out io.Writer, names []string, report *seeder.LaunchReport) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEED\tSTATUS\tCREATED\tUPDATED\tDURATION")
	for _, name := range names {
		o, ok := report.Outcomes[name]
		if !ok {
			continue
		}
		status := "imported"
		switch {
		case o.Err != nil:
			status = "failed: " + o.Err.Error()
		case o.Skipped:
			status = "skipped"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", name, status, o.Result.Created.Total(), o.Result.Updated.Total(), o.Duration.Round(time.Millisecond))
	}
	_ = tw.Flush()
}
