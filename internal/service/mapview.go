package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/UnknownOlympus/pinpoint/internal/mapsurface"
	"github.com/UnknownOlympus/pinpoint/internal/models"
)

// Pipeline is the lookup behaviour the map view drives.
type Pipeline interface {
	Run(ctx context.Context, postalCode string) models.Outcome
	Close()
}

// MapView owns a mounted map for its whole life: it feeds postal code changes to the
// pipeline and tears the map down when its context ends.
type MapView struct {
	log      *slog.Logger
	pipeline Pipeline
	surface  mapsurface.Map
	changes  chan string
	inflight sync.WaitGroup
	done     chan struct{}
}

// changeBuffer bounds queued postal code changes, older pending ones are dropped first.
const changeBuffer = 16

// NewMapView creates a map view around a mounted surface and its pipeline.
func NewMapView(log *slog.Logger, pipeline Pipeline, surface mapsurface.Map) *MapView {
	return &MapView{
		log:      log,
		pipeline: pipeline,
		surface:  surface,
		changes:  make(chan string, changeBuffer),
		done:     make(chan struct{}),
	}
}

// SetPostalCode schedules a lookup for postalCode. It never blocks; when the queue is
// full the oldest pending change is dropped, it would be stale anyway.
func (mv *MapView) SetPostalCode(postalCode string) {
	for {
		select {
		case <-mv.done:
			return
		default:
		}

		select {
		case mv.changes <- postalCode:
			return
		default:
		}

		select {
		case dropped := <-mv.changes:
			mv.log.Debug("Dropping superseded postal code change", "postal_code", dropped)
		default:
		}
	}
}

// Lookup runs the pipeline synchronously and returns its outcome.
func (mv *MapView) Lookup(ctx context.Context, postalCode string) models.Outcome {
	return mv.pipeline.Run(ctx, postalCode)
}

// Run mounts the view with initialPostalCode and processes changes until ctx is cancelled.
// Each change runs in its own goroutine; the pipeline discards stale completions.
// On return the pipeline is closed and the surface disposed.
func (mv *MapView) Run(ctx context.Context, initialPostalCode string) {
	mv.log.InfoContext(ctx, "Map view started")

	if initialPostalCode != "" {
		mv.start(ctx, initialPostalCode)
	}

	for {
		select {
		case <-ctx.Done():
			mv.teardown(ctx)
			return
		case postalCode := <-mv.changes:
			if postalCode == "" {
				mv.log.DebugContext(ctx, "Ignoring empty postal code")
				continue
			}
			mv.start(ctx, postalCode)
		}
	}
}

// Done is closed once the view has been torn down.
func (mv *MapView) Done() <-chan struct{} {
	return mv.done
}

func (mv *MapView) start(ctx context.Context, postalCode string) {
	mv.inflight.Add(1)
	go func() {
		defer mv.inflight.Done()

		outcome := mv.pipeline.Run(ctx, postalCode)
		mv.log.DebugContext(ctx, "Lookup finished", "postal_code", postalCode, "outcome", outcome.Kind)
	}()
}

func (mv *MapView) teardown(ctx context.Context) {
	mv.log.InfoContext(ctx, "Tearing down map view...")

	mv.pipeline.Close()
	mv.inflight.Wait()

	if err := mv.surface.Dispose(context.WithoutCancel(ctx)); err != nil {
		mv.log.ErrorContext(ctx, "Failed to dispose map surface", "error", err)
	}
	close(mv.done)

	mv.log.InfoContext(ctx, "Map view stopped.")
}
