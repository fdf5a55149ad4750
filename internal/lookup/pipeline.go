package lookup

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/UnknownOlympus/pinpoint/internal/directory"
	"github.com/UnknownOlympus/pinpoint/internal/geocoding"
	"github.com/UnknownOlympus/pinpoint/internal/mapsurface"
	"github.com/UnknownOlympus/pinpoint/internal/metrics"
	"github.com/UnknownOlympus/pinpoint/internal/models"
	"github.com/UnknownOlympus/pinpoint/internal/notify"
)

// Phase is the position of the most recent run in the lookup state machine.
type Phase string

const (
	PhaseIdle                 Phase = "idle"
	PhaseResolvingAddress     Phase = "resolving_address"
	PhaseResolvingCoordinates Phase = "resolving_coordinates"
	PhaseDone                 Phase = "done"
)

// Options tunes the pipeline.
type Options struct {
	DirectoryName        string          // DirectoryName labels directory metrics.
	GeocoderName         string          // GeocoderName labels geocoding metrics.
	Icon                 mapsurface.Icon // Icon is used for the placed marker.
	CloseUpZoom          int             // CloseUpZoom is the zoom applied after a successful lookup.
	NotifyGeocoderErrors bool            // NotifyGeocoderErrors shows coordinate-stage transport errors to the user.
}

// Pipeline resolves a postal code into a marker on the map. It is the only writer
// of the surface markers and of the notification sink.
type Pipeline struct {
	log       *slog.Logger
	addresses directory.Provider
	geocoder  geocoding.Provider
	surface   mapsurface.Surface
	sink      notify.Sink
	metrics   *metrics.Metrics
	opts      Options

	seq   atomic.Uint64
	phase atomic.Value

	mu     sync.Mutex
	marker *mapsurface.MarkerHandle // at most one live marker, nil before the first success
	closed bool
}

// NewPipeline wires a pipeline. The surface must already be mounted.
func NewPipeline(
	log *slog.Logger,
	addresses directory.Provider,
	geocoder geocoding.Provider,
	surface mapsurface.Surface,
	sink notify.Sink,
	metrics *metrics.Metrics,
	opts Options,
) *Pipeline {
	p := &Pipeline{
		log:       log,
		addresses: addresses,
		geocoder:  geocoder,
		surface:   surface,
		sink:      sink,
		metrics:   metrics,
		opts:      opts,
	}
	p.phase.Store(PhaseIdle)

	return p
}

// Run resolves postalCode and updates the map. It never panics or returns an error:
// every failure ends the run and is routed to the notification sink and the log.
// An empty postal code is a no-op.
//
// Runs may overlap. Only the most recently started run may touch the map or the sink;
// an older run that completes later is reported as stale and has no effect.
func (p *Pipeline) Run(ctx context.Context, postalCode string) models.Outcome {
	if postalCode == "" {
		return models.Outcome{Kind: models.OutcomeSkipped}
	}

	seq := p.seq.Add(1)
	log := p.log.With("postal_code", postalCode, "run", seq)

	p.setPhase(seq, PhaseResolvingAddress)
	addr, err := p.resolveAddress(ctx, postalCode)
	if err != nil {
		return p.fail(ctx, log, seq, classify(models.StageAddress, err, directory.ErrNotFound))
	}

	if p.superseded(seq) {
		return p.stale(ctx, log, models.StageAddress)
	}

	p.setPhase(seq, PhaseResolvingCoordinates)
	coords, err := p.resolveCoordinates(ctx, addr)
	if err != nil {
		outcome := classify(models.StageCoordinates, err, geocoding.ErrNotFound)
		outcome.Address = &addr
		return p.fail(ctx, log, seq, outcome)
	}

	return p.place(ctx, log, seq, addr, *coords)
}

// Close detaches the pipeline from the map. Runs finishing afterwards are stale.
func (p *Pipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	p.phase.Store(PhaseIdle)
}

// Phase reports where the most recent run is.
func (p *Pipeline) Phase() Phase {
	phase, _ := p.phase.Load().(Phase)
	return phase
}

// Marker returns the live marker handle, if any.
func (p *Pipeline) Marker() (mapsurface.MarkerHandle, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.marker == nil {
		return 0, false
	}

	return *p.marker, true
}

func (p *Pipeline) resolveAddress(ctx context.Context, postalCode string) (models.Address, error) {
	start := time.Now()
	addr, err := p.addresses.Resolve(ctx, postalCode)
	p.metrics.ResolverSeconds.WithLabelValues(string(models.StageAddress), p.opts.DirectoryName).
		Observe(time.Since(start).Seconds())

	return addr, err
}

func (p *Pipeline) resolveCoordinates(ctx context.Context, addr models.Address) (*models.Coordinate, error) {
	start := time.Now()
	coords, err := p.geocoder.Geocode(ctx, addr.String())
	p.metrics.ResolverSeconds.WithLabelValues(string(models.StageCoordinates), p.opts.GeocoderName).
		Observe(time.Since(start).Seconds())
	if err == nil && coords == nil {
		err = errors.New("geocoder returned no coordinates and no error")
	}

	return coords, err
}

// fail routes a failed run to the log and, unless it is stale, to the sink.
// The previous marker is left in place.
func (p *Pipeline) fail(ctx context.Context, log *slog.Logger, seq uint64, outcome models.Outcome) models.Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.staleLocked(seq) || errors.Is(outcome.Err, context.Canceled) {
		return p.stale(ctx, log, outcome.Stage)
	}
	p.phase.Store(PhaseIdle)
	p.record(outcome)

	var message string
	switch {
	case outcome.Kind == models.OutcomeNotFound && outcome.Stage == models.StageAddress:
		log.InfoContext(ctx, "Postal code not found", "error", outcome.Err)
		message = notify.MsgPostalCodeNotFound
	case outcome.Kind == models.OutcomeNotFound:
		log.InfoContext(ctx, "Address has no coordinates", "address", outcome.Address.String(), "error", outcome.Err)
		message = notify.MsgAddressNotFound
	case outcome.Stage == models.StageAddress:
		log.ErrorContext(ctx, "Failed to resolve postal code", "error", outcome.Err)
		message = notify.MsgAddressLookupError
	default:
		log.ErrorContext(ctx, "Failed to resolve coordinates", "error", outcome.Err)
		if !p.opts.NotifyGeocoderErrors {
			return outcome
		}
		message = notify.MsgCoordinatesError
	}

	p.sink.Show(ctx, message)

	return outcome
}

// place replaces the live marker with one at coords and recenters the view.
func (p *Pipeline) place(
	ctx context.Context,
	log *slog.Logger,
	seq uint64,
	addr models.Address,
	coords models.Coordinate,
) models.Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.staleLocked(seq) {
		return p.stale(ctx, log, "")
	}

	if p.marker != nil {
		err := p.surface.RemoveMarker(ctx, *p.marker)
		if err != nil && !errors.Is(err, mapsurface.ErrUnknownMarker) {
			return p.surfaceFailure(ctx, log, addr, coords, "Failed to remove previous marker", err)
		}
		p.marker = nil
		p.metrics.LiveMarkers.Dec()
	}

	handle, err := p.surface.AddMarker(ctx, coords, p.opts.Icon)
	if err != nil {
		return p.surfaceFailure(ctx, log, addr, coords, "Failed to add marker", err)
	}
	p.marker = &handle
	p.metrics.LiveMarkers.Inc()

	if err = p.surface.SetView(ctx, coords, p.opts.CloseUpZoom); err != nil {
		return p.surfaceFailure(ctx, log, addr, coords, "Failed to recenter map", err)
	}
	p.phase.Store(PhaseDone)

	outcome := models.Success(addr, coords)
	p.record(outcome)
	log.InfoContext(ctx, "Marker placed", "address", addr.String(),
		"lat", coords.Latitude, "lon", coords.Longitude, "marker", handle)

	return outcome
}

func (p *Pipeline) surfaceFailure(
	ctx context.Context,
	log *slog.Logger,
	addr models.Address,
	coords models.Coordinate,
	msg string,
	err error,
) models.Outcome {
	p.phase.Store(PhaseIdle)
	if errors.Is(err, mapsurface.ErrDisposed) {
		return p.stale(ctx, log, "")
	}
	log.ErrorContext(ctx, msg, "error", err)
	p.metrics.SurfaceErrors.Inc()

	outcome := models.Outcome{Kind: models.OutcomeSurfaceError, Address: &addr, Coordinate: &coords, Err: err}
	p.record(outcome)

	return outcome
}

func (p *Pipeline) stale(ctx context.Context, log *slog.Logger, stage models.Stage) models.Outcome {
	log.DebugContext(ctx, "Discarding superseded lookup")
	outcome := models.Outcome{Kind: models.OutcomeStale, Stage: stage}
	p.record(outcome)

	return outcome
}

func (p *Pipeline) superseded(seq uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.staleLocked(seq)
}

// staleLocked reports whether a newer run started or the map went away. p.mu must be held.
func (p *Pipeline) staleLocked(seq uint64) bool {
	return p.closed || seq != p.seq.Load()
}

func (p *Pipeline) setPhase(seq uint64, phase Phase) {
	if seq == p.seq.Load() {
		p.phase.Store(phase)
	}
}

func (p *Pipeline) record(outcome models.Outcome) {
	p.metrics.Lookups.WithLabelValues(string(outcome.Kind), string(outcome.Stage)).Inc()
	if outcome.Kind == models.OutcomeTransportError {
		p.metrics.ResolverErrors.WithLabelValues(string(outcome.Stage)).Inc()
	}
}

func classify(stage models.Stage, err, notFound error) models.Outcome {
	if errors.Is(err, notFound) {
		return models.NotFound(stage, err)
	}

	return models.TransportError(stage, err)
}
