package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/pinpoint/internal/mapsurface"
	"github.com/UnknownOlympus/pinpoint/internal/models"
)

// ErrNoView is returned when the tile layer is attached before the view row exists.
var ErrNoView = errors.New("map view is not initialised")

// EnsureSchema creates the map tables when they are missing.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	viewTable := `
		CREATE TABLE IF NOT EXISTS map_view (
			view_id       SMALLINT PRIMARY KEY DEFAULT 1 CHECK (view_id = 1),
			latitude      DOUBLE PRECISION NOT NULL,
			longitude     DOUBLE PRECISION NOT NULL,
			zoom          INTEGER NOT NULL,
			tile_url      TEXT NOT NULL DEFAULT '',
			tile_max_zoom INTEGER NOT NULL DEFAULT 0,
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`
	markersTable := `
		CREATE TABLE IF NOT EXISTS map_markers (
			marker_id  BIGSERIAL PRIMARY KEY,
			latitude   DOUBLE PRECISION NOT NULL,
			longitude  DOUBLE PRECISION NOT NULL,
			icon_url   TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`

	if _, err := r.db.Exec(ctx, viewTable); err != nil {
		return fmt.Errorf("failed to create map_view table: %w", err)
	}
	if _, err := r.db.Exec(ctx, markersTable); err != nil {
		return fmt.Errorf("failed to create map_markers table: %w", err)
	}

	return nil
}

// SetView stores the view center and zoom in the single map_view row.
func (r *Repository) SetView(ctx context.Context, center models.Coordinate, zoom int) error {
	if r.disposed.Load() {
		return mapsurface.ErrDisposed
	}
	query := `
		INSERT INTO map_view (view_id, latitude, longitude, zoom, updated_at)
		VALUES (1, $1, $2, $3, now())
		ON CONFLICT (view_id) DO UPDATE
		SET
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			zoom = EXCLUDED.zoom,
			updated_at = now();
	`

	_, err := r.db.Exec(ctx, query, center.Latitude, center.Longitude, zoom)
	if err != nil {
		return fmt.Errorf("failed to update map view: %w", err)
	}
	r.log.DebugContext(ctx, "Map view updated", "lat", center.Latitude, "lon", center.Longitude, "zoom", zoom)

	return nil
}

// AttachTileLayer records the base tile layer on the map_view row.
func (r *Repository) AttachTileLayer(ctx context.Context, layer mapsurface.TileLayer) error {
	if r.disposed.Load() {
		return mapsurface.ErrDisposed
	}
	query := `
		UPDATE map_view
		SET
			tile_url = $1,
			tile_max_zoom = $2
		WHERE view_id = 1;
	`

	tag, err := r.db.Exec(ctx, query, layer.URLTemplate, layer.MaxZoom)
	if err != nil {
		return fmt.Errorf("failed to attach tile layer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNoView
	}

	return nil
}

// AddMarker inserts a marker row and returns its id as the handle.
func (r *Repository) AddMarker(
	ctx context.Context,
	position models.Coordinate,
	icon mapsurface.Icon,
) (mapsurface.MarkerHandle, error) {
	if r.disposed.Load() {
		return 0, mapsurface.ErrDisposed
	}
	query := `
		INSERT INTO map_markers (latitude, longitude, icon_url)
		VALUES ($1, $2, $3)
		RETURNING marker_id;
	`

	var markerID int64
	if err := r.db.QueryRow(ctx, query, position.Latitude, position.Longitude, icon.IconURL).Scan(&markerID); err != nil {
		return 0, fmt.Errorf("failed to insert marker: %w", err)
	}
	r.log.DebugContext(ctx, "Marker stored", "marker", markerID)

	return mapsurface.MarkerHandle(markerID), nil
}

// RemoveMarker deletes the marker row behind handle.
func (r *Repository) RemoveMarker(ctx context.Context, handle mapsurface.MarkerHandle) error {
	if r.disposed.Load() {
		return mapsurface.ErrDisposed
	}
	query := `DELETE FROM map_markers WHERE marker_id = $1;`

	tag, err := r.db.Exec(ctx, query, int64(handle))
	if err != nil {
		return fmt.Errorf("failed to delete marker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return mapsurface.ErrUnknownMarker
	}

	return nil
}

// Snapshot reads the view row and every marker ordered by id.
func (r *Repository) Snapshot(ctx context.Context) (mapsurface.State, error) {
	state := mapsurface.State{Markers: []mapsurface.Marker{}, Disposed: r.disposed.Load()}
	if state.Disposed {
		return state, nil
	}

	viewQuery := `
		SELECT latitude, longitude, zoom, tile_url, tile_max_zoom
		FROM map_view
		WHERE view_id = 1;
	`
	err := r.db.QueryRow(ctx, viewQuery).Scan(
		&state.Center.Latitude, &state.Center.Longitude, &state.Zoom,
		&state.TileLayer.URLTemplate, &state.TileLayer.MaxZoom,
	)
	if err != nil {
		return mapsurface.State{}, fmt.Errorf("failed to read map view: %w", err)
	}

	markersQuery := `
		SELECT marker_id, latitude, longitude, icon_url
		FROM map_markers
		ORDER BY marker_id ASC;
	`
	rows, err := r.db.Query(ctx, markersQuery)
	if err != nil {
		return mapsurface.State{}, fmt.Errorf("failed to query markers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			markerID int64
			marker   mapsurface.Marker
		)
		if errScan := rows.Scan(&markerID, &marker.Position.Latitude, &marker.Position.Longitude, &marker.IconURL); errScan != nil {
			return mapsurface.State{}, fmt.Errorf("failed to scan marker: %w", errScan)
		}
		marker.Handle = mapsurface.MarkerHandle(markerID)
		state.Markers = append(state.Markers, marker)
	}

	if err = rows.Err(); err != nil {
		return mapsurface.State{}, fmt.Errorf("failed to read row: %w", err)
	}

	return state, nil
}

// ClearMarkers deletes every marker row, including rows left behind by an earlier process.
func (r *Repository) ClearMarkers(ctx context.Context) error {
	if r.disposed.Load() {
		return mapsurface.ErrDisposed
	}

	return r.deleteMarkers(ctx)
}

// Dispose removes every marker and the view row. Later mutations fail with ErrDisposed.
// A failed Dispose leaves the surface usable so that it can be retried.
func (r *Repository) Dispose(ctx context.Context) error {
	if r.disposed.Swap(true) {
		return nil
	}

	if err := r.deleteMarkers(ctx); err != nil {
		r.disposed.Store(false)
		return err
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM map_view;`); err != nil {
		r.disposed.Store(false)
		return fmt.Errorf("failed to delete map view: %w", err)
	}
	r.log.InfoContext(ctx, "Map surface disposed")

	return nil
}

func (r *Repository) deleteMarkers(ctx context.Context) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM map_markers;`)
	if err != nil {
		return fmt.Errorf("failed to delete markers: %w", err)
	}
	if tag.RowsAffected() > 0 {
		r.log.DebugContext(ctx, "Markers deleted", "count", tag.RowsAffected())
	}

	return nil
}
