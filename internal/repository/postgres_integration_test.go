package repository_test

import (
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/pinpoint/internal/mapsurface"
	"github.com/UnknownOlympus/pinpoint/internal/models"
	"github.com/UnknownOlympus/pinpoint/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func TestRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := t.Context()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("pinpoint"),
		postgres.WithUsername("pinpoint"),
		postgres.WithPassword("pinpoint"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	repo := repository.NewRepository(pool, slog.Default())
	opts := mapsurface.DefaultOptions()

	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, mapsurface.Open(ctx, repo, opts))

	first, err := repo.AddMarker(ctx, models.Coordinate{Latitude: -23.5, Longitude: -46.6}, opts.Icon)
	require.NoError(t, err)
	require.NoError(t, repo.RemoveMarker(ctx, first))
	second, err := repo.AddMarker(ctx, models.Coordinate{Latitude: -23.9, Longitude: -46.3}, opts.Icon)
	require.NoError(t, err)
	require.NoError(t, repo.SetView(ctx, models.Coordinate{Latitude: -23.9, Longitude: -46.3}, opts.CloseUpZoom))

	state, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, opts.CloseUpZoom, state.Zoom)
	assert.Equal(t, opts.TileLayer, state.TileLayer)
	require.Len(t, state.Markers, 1)
	assert.Equal(t, second, state.Markers[0].Handle)
	assert.Equal(t, opts.Icon.IconURL, state.Markers[0].IconURL)

	require.ErrorIs(t, repo.RemoveMarker(ctx, first), mapsurface.ErrUnknownMarker)

	// A process that died without disposing leaves its marker behind; the next mount starts clean.
	remounted := repository.NewRepository(pool, slog.Default())
	require.NoError(t, remounted.EnsureSchema(ctx))
	require.NoError(t, mapsurface.Open(ctx, remounted, opts))

	state, err = remounted.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.Markers)
	assert.Equal(t, opts.OverviewZoom, state.Zoom)
	assert.Equal(t, opts.Center, state.Center)

	require.NoError(t, remounted.Dispose(ctx))

	var remaining int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM map_markers`).Scan(&remaining))
	assert.Zero(t, remaining)
}
