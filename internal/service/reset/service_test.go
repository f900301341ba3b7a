package reset

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/triplingo-backend/internal/adapter/memory"
	"github.com/heartmarshall/triplingo-backend/internal/app/seeder"
	"github.com/heartmarshall/triplingo-backend/internal/domain"
	"github.com/heartmarshall/triplingo-backend/internal/seed"
	"github.com/heartmarshall/triplingo-backend/internal/service/phrasebook"
	"github.com/heartmarshall/triplingo-backend/internal/service/places"
)

type fixture struct {
	store       *memory.Store
	catalog     *seed.Catalog
	coordinator *seeder.Coordinator
	reset       *Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	catalog, err := seed.Default()
	require.NoError(t, err)

	store := memory.New()
	log := slog.Default()
	im := seeder.NewImporter(log, catalog, store.Lessons(), store)

	return fixture{
		store:       store,
		catalog:     catalog,
		coordinator: seeder.NewCoordinator(log, im, store.Gate(), seeder.Config{}),
		reset:       NewService(log, store.Gate(), store.Lessons(), store.Phrasebook(), store),
	}
}

func TestReset_RequiresConfirm(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.coordinator.EnsureSeeded(ctx, f.catalog.Names())
	require.NoError(t, err)
	before := f.store.Counts()

	err = f.reset.Reset(ctx, Input{})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, before, f.store.Counts(), "nothing is deleted without confirmation")
}

func TestReset_WipesAndReimports(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	log := slog.Default()

	_, err := f.coordinator.EnsureSeeded(ctx, f.catalog.Names())
	require.NoError(t, err)
	imported := f.store.Counts()

	book := phrasebook.NewService(log, f.store.Phrasebook())
	_, err = book.SaveIfNeeded(ctx, phrasebook.SaveInput{
		TargetText: "Merci", EnglishMeaning: "Thank you", DestinationName: "Paris", SituationTitle: "Café",
	})
	require.NoError(t, err)
	_, err = places.NewService(log, f.store.Places()).Save(ctx, places.SaveInput{Name: "Louvre", Latitude: 48.86, Longitude: 2.34})
	require.NoError(t, err)

	require.NoError(t, f.reset.Reset(ctx, Input{Confirm: true}))

	counts := f.store.Counts()
	assert.Zero(t, counts.Trips)
	assert.Zero(t, counts.Situations)
	assert.Zero(t, counts.Phrases)
	assert.Zero(t, counts.SavedPhrases)
	assert.Equal(t, 1, counts.Places, "saved places survive a reset")

	for _, name := range f.catalog.Names() {
		done, err := f.store.Gate().IsDone(ctx, name)
		require.NoError(t, err)
		assert.False(t, done, name)
	}

	// The next launch imports everything again.
	report, err := f.coordinator.EnsureSeeded(ctx, f.catalog.Names())
	require.NoError(t, err)
	assert.Equal(t, len(f.catalog.Names()), report.Imported())
	after := f.store.Counts()
	assert.Equal(t, imported.Trips, after.Trips)
	assert.Equal(t, imported.Situations, after.Situations)
	assert.Equal(t, imported.Phrases, after.Phrases)
}

func TestReset_ClearsGatesOutsideCatalog(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	// Left behind by a seed that the current catalog no longer ships.
	require.NoError(t, f.store.Gate().MarkDone(ctx, "tokyo_seed_v1"))
	_, err := f.coordinator.EnsureSeeded(ctx, f.catalog.Names())
	require.NoError(t, err)

	require.NoError(t, f.reset.Reset(ctx, Input{Confirm: true}))

	done, err := f.store.Gate().IsDone(ctx, "tokyo_seed_v1")
	require.NoError(t, err)
	assert.False(t, done)
}

type failingGate struct{}

func (failingGate) ClearAll(context.Context) (int, error) { return 0, errors.New("redis down") }

func TestReset_GateFailureKeepsContent(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.coordinator.EnsureSeeded(ctx, f.catalog.Names())
	require.NoError(t, err)
	before := f.store.Counts()

	svc := NewService(slog.Default(), failingGate{}, f.store.Lessons(), f.store.Phrasebook(), f.store)
	err = svc.Reset(ctx, Input{Confirm: true})
	require.ErrorContains(t, err, "clear launch gates")

	assert.Equal(t, before, f.store.Counts())
}

type failingSaved struct{}

func (failingSaved) DeleteAll(context.Context) error { return errors.New("disk full") }

func TestReset_DeleteFailureRollsBack(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.coordinator.EnsureSeeded(ctx, f.catalog.Names())
	require.NoError(t, err)
	before := f.store.Counts()

	svc := NewService(slog.Default(), f.store.Gate(), f.store.Lessons(), failingSaved{}, f.store)
	err = svc.Reset(ctx, Input{Confirm: true})
	require.ErrorContains(t, err, "disk full")

	assert.Equal(t, before, f.store.Counts(), "content deletion is rolled back")

	// Gates were cleared, so the next launch re-runs the import as an upsert.
	report, err := f.coordinator.EnsureSeeded(ctx, f.catalog.Names())
	require.NoError(t, err)
	for _, out := range report.Outcomes {
		assert.Zero(t, out.Result.Created.Total())
	}
}
