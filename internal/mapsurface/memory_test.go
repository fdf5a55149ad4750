package mapsurface_test

import (
	"context"
	"testing"

	"github.com/UnknownOlympus/pinpoint/internal/mapsurface"
	"github.com/UnknownOlympus/pinpoint/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()
	surface := mapsurface.NewMemorySurface()
	opts := mapsurface.DefaultOptions()

	require.NoError(t, mapsurface.Open(ctx, surface, opts))

	state, err := surface.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, opts.Center, state.Center)
	assert.Equal(t, 13, state.Zoom)
	assert.Equal(t, "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png", state.TileLayer.URLTemplate)
	assert.Equal(t, 20, state.TileLayer.MaxZoom)
	assert.Empty(t, state.Markers)
}

func TestOpen_Disposed(t *testing.T) {
	ctx := context.Background()
	surface := mapsurface.NewMemorySurface()
	require.NoError(t, surface.Dispose(ctx))

	err := mapsurface.Open(ctx, surface, mapsurface.DefaultOptions())

	require.ErrorIs(t, err, mapsurface.ErrDisposed)
	assert.Contains(t, err.Error(), "failed to clear markers")
}

func TestOpen_RemovesExistingMarkers(t *testing.T) {
	ctx := context.Background()
	surface := mapsurface.NewMemorySurface()
	opts := mapsurface.DefaultOptions()
	_, err := surface.AddMarker(ctx, models.Coordinate{Latitude: -23.5, Longitude: -46.6}, opts.Icon)
	require.NoError(t, err)

	require.NoError(t, mapsurface.Open(ctx, surface, opts))

	state, err := surface.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.Markers)

	handle, err := surface.AddMarker(ctx, models.Coordinate{Latitude: -24, Longitude: -46.4}, opts.Icon)
	require.NoError(t, err)
	assert.Equal(t, mapsurface.MarkerHandle(2), handle, "handles stay unique across a remount")
}

func TestMemorySurface_Markers(t *testing.T) {
	ctx := context.Background()
	surface := mapsurface.NewMemorySurface()
	icon := mapsurface.DefaultOptions().Icon
	first := models.Coordinate{Latitude: -23.5, Longitude: -46.6}
	second := models.Coordinate{Latitude: -24.0, Longitude: -46.4}

	h1, err := surface.AddMarker(ctx, first, icon)
	require.NoError(t, err)
	h2, err := surface.AddMarker(ctx, second, icon)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)

	state, err := surface.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, state.Markers, 2)
	assert.Equal(t, mapsurface.Marker{Handle: h1, Position: first, IconURL: icon.IconURL}, state.Markers[0])
	assert.Equal(t, h2, state.Markers[1].Handle)

	require.NoError(t, surface.RemoveMarker(ctx, h1))
	require.ErrorIs(t, surface.RemoveMarker(ctx, h1), mapsurface.ErrUnknownMarker)

	state, err = surface.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, state.Markers, 1)
	assert.Equal(t, second, state.Markers[0].Position)
}

func TestMemorySurface_SetView(t *testing.T) {
	ctx := context.Background()
	surface := mapsurface.NewMemorySurface()
	center := models.Coordinate{Latitude: -23.5, Longitude: -46.6}

	require.NoError(t, surface.SetView(ctx, center, 18))

	state, err := surface.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, center, state.Center)
	assert.Equal(t, 18, state.Zoom)
}

func TestMemorySurface_Dispose(t *testing.T) {
	ctx := context.Background()
	surface := mapsurface.NewMemorySurface()
	icon := mapsurface.DefaultOptions().Icon
	require.NoError(t, mapsurface.Open(ctx, surface, mapsurface.DefaultOptions()))
	handle, err := surface.AddMarker(ctx, models.Coordinate{Latitude: 1, Longitude: 2}, icon)
	require.NoError(t, err)

	require.NoError(t, surface.Dispose(ctx))
	require.NoError(t, surface.Dispose(ctx), "dispose must be idempotent")

	state, err := surface.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, state.Disposed)
	assert.Empty(t, state.Markers)
	assert.Equal(t, mapsurface.TileLayer{}, state.TileLayer)

	_, err = surface.AddMarker(ctx, models.Coordinate{}, icon)
	require.ErrorIs(t, err, mapsurface.ErrDisposed)
	require.ErrorIs(t, surface.RemoveMarker(ctx, handle), mapsurface.ErrDisposed)
	require.ErrorIs(t, surface.SetView(ctx, models.Coordinate{}, 13), mapsurface.ErrDisposed)
	require.ErrorIs(t, surface.AttachTileLayer(ctx, mapsurface.TileLayer{}), mapsurface.ErrDisposed)
	require.ErrorIs(t, surface.ClearMarkers(ctx), mapsurface.ErrDisposed)
}
