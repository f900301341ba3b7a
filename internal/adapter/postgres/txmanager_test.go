//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/triplingo-backend/internal/adapter/postgres"
	"github.com/heartmarshall/triplingo-backend/internal/adapter/postgres/testhelper"
)

// settingExists checks whether a settings row with the given key exists.
func settingExists(t *testing.T, pool *pgxpool.Pool, key string) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM app_settings WHERE key = $1)`,
		key,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("settingExists query: %v", err)
	}
	return exists
}

func insertSetting(ctx context.Context, pool *pgxpool.Pool, key string) error {
	q := postgres.QuerierFromCtx(ctx, pool)
	_, err := q.Exec(ctx, `INSERT INTO app_settings (key, value) VALUES ($1, 'x')`, key)
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	key := "commit-" + uuid.NewString()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertSetting(ctx, pool, key)
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !settingExists(t, pool, key) {
		t.Fatal("expected row to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	key := "rollback-" + uuid.NewString()
	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertSetting(ctx, pool, key); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}

	if settingExists(t, pool, key) {
		t.Fatal("expected row NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	key := "panic-" + uuid.NewString()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}

		if settingExists(t, pool, key) {
			t.Fatal("expected row NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertSetting(ctx, pool, key); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_NestedCallJoinsOuter(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	key := "nested-" + uuid.NewString()
	sentinel := errors.New("outer failure")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if !postgres.InTx(ctx) {
			t.Fatal("expected context to carry a transaction")
		}
		if err := tm.RunInTx(ctx, func(inner context.Context) error {
			return insertSetting(inner, pool, key)
		}); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}

	if settingExists(t, pool, key) {
		t.Fatal("inner write must roll back with the outer transaction")
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	pool := testhelper.SetupTestDB(t)

	if err := postgres.Migrate(context.Background(), pool, testhelper.Logger()); err != nil {
		t.Fatalf("Migrate on an up-to-date schema: %v", err)
	}
}
