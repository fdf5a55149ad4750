package mapsurface

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/pinpoint/internal/models"
)

var (
	// ErrDisposed is returned by every mutation after the map was torn down.
	ErrDisposed = errors.New("map surface disposed")
	// ErrUnknownMarker is returned when removing a marker the surface does not hold.
	ErrUnknownMarker = errors.New("unknown marker")
)

// MarkerHandle is an opaque reference to a marker placed on a surface.
type MarkerHandle int64

// Surface is the part of the map the lookup pipeline drives.
type Surface interface {
	SetView(ctx context.Context, center models.Coordinate, zoom int) error
	AddMarker(ctx context.Context, position models.Coordinate, icon Icon) (MarkerHandle, error)
	RemoveMarker(ctx context.Context, handle MarkerHandle) error
}

// Map is a Surface with a lifecycle: it is mounted once, inspected and disposed.
type Map interface {
	Surface
	AttachTileLayer(ctx context.Context, layer TileLayer) error
	ClearMarkers(ctx context.Context) error
	Snapshot(ctx context.Context) (State, error)
	Dispose(ctx context.Context) error
}

// Marker is a placed marker as reported by Snapshot.
type Marker struct {
	Handle   MarkerHandle      `json:"handle"`
	Position models.Coordinate `json:"position"`
	IconURL  string            `json:"icon_url"`
}

// State is a point-in-time copy of the map.
type State struct {
	Center    models.Coordinate `json:"center"`
	Zoom      int               `json:"zoom"`
	TileLayer TileLayer         `json:"tile_layer"`
	Markers   []Marker          `json:"markers"`
	Disposed  bool              `json:"disposed"`
}

// Open mounts the map: no markers, initial view at the overview zoom and the base tile layer.
// It must run once before the map is handed to the pipeline. Markers left by an earlier
// process are removed, a fresh pipeline owns none of them.
func Open(ctx context.Context, m Map, opts Options) error {
	if err := m.ClearMarkers(ctx); err != nil {
		return fmt.Errorf("failed to clear markers: %w", err)
	}
	if err := m.SetView(ctx, opts.Center, opts.OverviewZoom); err != nil {
		return fmt.Errorf("failed to set initial view: %w", err)
	}
	if err := m.AttachTileLayer(ctx, opts.TileLayer); err != nil {
		return fmt.Errorf("failed to attach tile layer: %w", err)
	}

	return nil
}
