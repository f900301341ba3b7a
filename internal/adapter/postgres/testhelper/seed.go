package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/triplingo-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedTrip inserts a trip with a unique destination and returns it.
func SeedTrip(t *testing.T, pool *pgxpool.Pool) domain.Trip {
	t.Helper()

	trip := domain.Trip{
		ID:              uuid.New(),
		DestinationName: "Destination " + uniqueSuffix(),
		BaseLanguage:    "English",
		TargetLanguage:  "Spanish",
		CreatedAt:       time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO trips (id, destination_name, destination_normalized, base_language, target_language, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		trip.ID, trip.DestinationName, trip.DestinationKey(), trip.BaseLanguage, trip.TargetLanguage, trip.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTrip: %v", err)
	}

	return trip
}

// SeedSituation inserts a situation under the trip and returns it.
func SeedSituation(t *testing.T, pool *pgxpool.Pool, tripID uuid.UUID, title string, sortOrder int) domain.Situation {
	t.Helper()

	s := domain.Situation{
		ID:        uuid.New(),
		TripID:    tripID,
		Title:     title,
		SortOrder: sortOrder,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO situations (id, trip_id, title, sort_order, created_at) VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.TripID, s.Title, s.SortOrder, s.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSituation: %v", err)
	}

	return s
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()

	var n int
	if err := pool.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("testhelper: CountRows %s: %v", table, err)
	}
	return n
}
