package service_test

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/UnknownOlympus/pinpoint/internal/mapsurface"
	"github.com/UnknownOlympus/pinpoint/internal/models"
	"github.com/UnknownOlympus/pinpoint/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePipeline struct {
	mu     sync.Mutex
	runs   []string
	closed bool
	ran    chan string
}

func newFakePipeline() *fakePipeline {
	return &fakePipeline{ran: make(chan string, 32)}
}

func (fp *fakePipeline) Run(_ context.Context, postalCode string) models.Outcome {
	fp.mu.Lock()
	fp.runs = append(fp.runs, postalCode)
	fp.mu.Unlock()
	fp.ran <- postalCode

	return models.Outcome{Kind: models.OutcomeSuccess}
}

func (fp *fakePipeline) Close() {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	fp.closed = true
}

func (fp *fakePipeline) isClosed() bool {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return fp.closed
}

func waitRun(t *testing.T, fp *fakePipeline) string {
	t.Helper()
	select {
	case postalCode := <-fp.ran:
		return postalCode
	case <-time.After(time.Second):
		t.Fatal("pipeline was not run")
		return ""
	}
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestMapView_Run(t *testing.T) {
	t.Run("initial postal code triggers a lookup", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		pipeline := newFakePipeline()
		view := service.NewMapView(newLogger(), pipeline, mapsurface.NewMemorySurface())

		go view.Run(ctx, "11250000")

		assert.Equal(t, "11250000", waitRun(t, pipeline))
	})

	t.Run("empty initial postal code does nothing", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		pipeline := newFakePipeline()
		view := service.NewMapView(newLogger(), pipeline, mapsurface.NewMemorySurface())

		go view.Run(ctx, "")
		view.SetPostalCode("")
		cancel()
		<-view.Done()

		assert.Empty(t, pipeline.runs)
	})

	t.Run("postal code changes are looked up", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		pipeline := newFakePipeline()
		view := service.NewMapView(newLogger(), pipeline, mapsurface.NewMemorySurface())

		go view.Run(ctx, "")
		view.SetPostalCode("01001000")

		assert.Equal(t, "01001000", waitRun(t, pipeline))
	})

	t.Run("teardown closes pipeline and disposes surface", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		pipeline := newFakePipeline()
		surface := mapsurface.NewMemorySurface()
		require.NoError(t, mapsurface.Open(t.Context(), surface, mapsurface.DefaultOptions()))
		_, err := surface.AddMarker(t.Context(), models.Coordinate{Latitude: -23.5, Longitude: -46.6}, mapsurface.Icon{})
		require.NoError(t, err)
		view := service.NewMapView(newLogger(), pipeline, surface)

		go view.Run(ctx, "")
		cancel()

		select {
		case <-view.Done():
		case <-time.After(time.Second):
			t.Fatal("map view did not stop")
		}

		assert.True(t, pipeline.isClosed())
		state, err := surface.Snapshot(t.Context())
		require.NoError(t, err)
		assert.True(t, state.Disposed)
		assert.Empty(t, state.Markers)

		// Changes after teardown are ignored.
		view.SetPostalCode("11250000")
		assert.Empty(t, pipeline.ran)
	})
}

func TestMapView_Lookup(t *testing.T) {
	pipeline := newFakePipeline()
	view := service.NewMapView(newLogger(), pipeline, mapsurface.NewMemorySurface())

	outcome := view.Lookup(t.Context(), "11250000")

	assert.Equal(t, models.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, []string{"11250000"}, pipeline.runs)
}
