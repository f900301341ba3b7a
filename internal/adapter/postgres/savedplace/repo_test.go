//go:build integration

package savedplace_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/triplingo-backend/internal/adapter/postgres/savedplace"
	"github.com/heartmarshall/triplingo-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/triplingo-backend/internal/domain"
)

func TestRepo_CreateListDelete(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := savedplace.New(pool)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)

	first := &domain.SavedPlace{ID: uuid.New(), Name: "Sagrada Família", Latitude: 41.4036, Longitude: 2.1744, CreatedAt: base.Add(-time.Minute)}
	second := &domain.SavedPlace{ID: uuid.New(), Name: "Park Güell", Latitude: 41.4145, Longitude: 2.1527, CreatedAt: base}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.InDelta(t, 41.4036, list[1].Latitude, 1e-9)

	require.NoError(t, repo.Delete(ctx, first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), domain.ErrNotFound)
}

func TestRepo_RejectsOutOfRangeCoordinates(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := savedplace.New(pool)

	bad := &domain.SavedPlace{ID: uuid.New(), Name: "Nowhere", Latitude: 95, Longitude: 0, CreatedAt: time.Now().UTC()}
	assert.ErrorIs(t, repo.Create(context.Background(), bad), domain.ErrValidation)
}
