package mapsurface

import (
	"context"
	"sort"
	"sync"

	"github.com/UnknownOlympus/pinpoint/internal/models"
)

// MemorySurface keeps the map state in process memory.
type MemorySurface struct {
	mu       sync.Mutex
	center   models.Coordinate
	zoom     int
	tiles    TileLayer
	markers  map[MarkerHandle]Marker
	next     MarkerHandle
	disposed bool
}

// NewMemorySurface returns an empty, unmounted surface.
func NewMemorySurface() *MemorySurface {
	return &MemorySurface{markers: make(map[MarkerHandle]Marker)}
}

// SetView moves the view center and zoom.
func (ms *MemorySurface) SetView(_ context.Context, center models.Coordinate, zoom int) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.disposed {
		return ErrDisposed
	}
	ms.center, ms.zoom = center, zoom

	return nil
}

// AttachTileLayer replaces the base tile layer.
func (ms *MemorySurface) AttachTileLayer(_ context.Context, layer TileLayer) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.disposed {
		return ErrDisposed
	}
	ms.tiles = layer

	return nil
}

// AddMarker places a marker and returns its handle. Handles are never reused.
func (ms *MemorySurface) AddMarker(_ context.Context, position models.Coordinate, icon Icon) (MarkerHandle, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.disposed {
		return 0, ErrDisposed
	}
	ms.next++
	ms.markers[ms.next] = Marker{Handle: ms.next, Position: position, IconURL: icon.IconURL}

	return ms.next, nil
}

// RemoveMarker deletes a marker, ErrUnknownMarker if the surface does not hold it.
func (ms *MemorySurface) RemoveMarker(_ context.Context, handle MarkerHandle) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.disposed {
		return ErrDisposed
	}
	if _, ok := ms.markers[handle]; !ok {
		return ErrUnknownMarker
	}
	delete(ms.markers, handle)

	return nil
}

// ClearMarkers removes every marker.
func (ms *MemorySurface) ClearMarkers(_ context.Context) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.disposed {
		return ErrDisposed
	}
	clear(ms.markers)

	return nil
}

// Snapshot returns the current state with markers ordered by handle.
func (ms *MemorySurface) Snapshot(_ context.Context) (State, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	state := State{
		Center:    ms.center,
		Zoom:      ms.zoom,
		TileLayer: ms.tiles,
		Markers:   make([]Marker, 0, len(ms.markers)),
		Disposed:  ms.disposed,
	}
	for _, marker := range ms.markers {
		state.Markers = append(state.Markers, marker)
	}
	sort.Slice(state.Markers, func(i, j int) bool { return state.Markers[i].Handle < state.Markers[j].Handle })

	return state, nil
}

// Dispose drops every marker and the tile layer. It is idempotent.
func (ms *MemorySurface) Dispose(_ context.Context) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.markers = make(map[MarkerHandle]Marker)
	ms.tiles = TileLayer{}
	ms.disposed = true

	return nil
}
