package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/triplingo-backend/internal/domain"
)

type seedImporter interface {
	UpsertSeed(ctx context.Context, name string) (domain.ImportResult, error)
}

// SeedOutcome holds the launch outcome of a single seed.
type SeedOutcome struct {
	Result   domain.ImportResult
	Skipped  bool
	Duration time.Duration
	Err      error
}

// LaunchReport collects per-seed outcomes of one EnsureSeeded call.
type LaunchReport struct {
	Outcomes map[string]SeedOutcome
}

// HasErrors returns true if any seed failed.
func (r *LaunchReport) HasErrors() bool {
	for _, o := range r.Outcomes {
		if o.Err != nil {
			return true
		}
	}
	return false
}

// Imported returns the number of seeds that were actually imported.
func (r *LaunchReport) Imported() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.Skipped && o.Err == nil {
			n++
		}
	}
	return n
}

// Coordinator runs the import once per seed per installation. A seed is
// gated only after its import committed, so a failed launch retries on
// the next one.
type Coordinator struct {
	importer seedImporter
	gate     Gate
	log      *slog.Logger
	cfg      Config
	flight   singleflight.Group
	locks    sync.Map // seed name -> *sync.Mutex
}

// NewCoordinator creates a new Coordinator.
func NewCoordinator(log *slog.Logger, importer seedImporter, gate Gate, cfg Config) *Coordinator {
	return &Coordinator{
		importer: importer,
		gate:     gate,
		log:      log.With("service", "seed_launch"),
		cfg:      cfg,
	}
}

// EnsureSeeded imports every named seed whose gate is not yet set.
// Concurrent calls for the same seed share one import. Every seed is
// attempted; the returned error is the first failure in name order.
func (c *Coordinator) EnsureSeeded(ctx context.Context, names []string) (*LaunchReport, error) {
	return c.launch(ctx, names, c.cfg.Force)
}

// Reimport imports the named seeds regardless of their gate and sets the
// gate afterwards. Imports of one seed never overlap, whichever method
// started them.
func (c *Coordinator) Reimport(ctx context.Context, names []string) (*LaunchReport, error) {
	return c.launch(ctx, names, true)
}

func (c *Coordinator) launch(ctx context.Context, names []string, force bool) (*LaunchReport, error) {
	names = dedupe(names)
	report := &LaunchReport{Outcomes: make(map[string]SeedOutcome, len(names))}
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(c.cfg.parallelism())

	for _, name := range names {
		g.Go(func() error {
			outcome := c.ensureOne(ctx, name, force)

			mu.Lock()
			report.Outcomes[name] = outcome
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if report.HasErrors() {
		c.log.WarnContext(ctx, "seed launch finished with errors",
			slog.Int("seeds", len(report.Outcomes)),
			slog.Int("imported", report.Imported()),
		)
	} else {
		c.log.InfoContext(ctx, "seed launch finished",
			slog.Int("seeds", len(report.Outcomes)),
			slog.Int("imported", report.Imported()),
		)
	}

	for _, name := range names {
		if err := report.Outcomes[name].Err; err != nil {
			return report, err
		}
	}
	return report, nil
}

func (c *Coordinator) ensureOne(ctx context.Context, name string, force bool) SeedOutcome {
	key := name
	if force {
		key = "force:" + name
	}
	v, _, _ := c.flight.Do(key, func() (any, error) {
		mu := c.seedLock(name)
		mu.Lock()
		defer mu.Unlock()
		return c.run(ctx, name, force), nil
	})
	return v.(SeedOutcome)
}

func (c *Coordinator) seedLock(name string) *sync.Mutex {
	v, _ := c.locks.LoadOrStore(name, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func (c *Coordinator) run(ctx context.Context, name string, force bool) SeedOutcome {
	start := time.Now()

	if !force {
		done, err := c.gate.IsDone(ctx, name)
		switch {
		case err != nil:
			// Import is idempotent; an unreadable gate only costs a re-run.
			c.log.WarnContext(ctx, "seed gate unreadable, importing anyway",
				slog.String("seed", name),
				slog.String("error", err.Error()),
			)
		case done:
			c.log.DebugContext(ctx, "seed already imported", slog.String("seed", name))
			return SeedOutcome{Result: domain.ImportResult{Seed: name}, Skipped: true, Duration: time.Since(start)}
		}
	}

	result, err := c.importer.UpsertSeed(ctx, name)
	if err != nil {
		return SeedOutcome{Result: result, Duration: time.Since(start), Err: err}
	}

	if err := c.gate.MarkDone(ctx, name); err != nil {
		c.log.ErrorContext(ctx, "mark seed imported",
			slog.String("seed", name),
			slog.String("error", err.Error()),
		)
		return SeedOutcome{Result: result, Duration: time.Since(start), Err: fmt.Errorf("mark seed %q imported: %w", name, err)}
	}

	return SeedOutcome{Result: result, Duration: time.Since(start)}
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
