package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/UnknownOlympus/pinpoint/internal/config"
	"github.com/UnknownOlympus/pinpoint/internal/mapsurface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupSurface(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, name := range []string{surfaceMemory, ""} {
		t.Run("memory surface "+name, func(t *testing.T) {
			surface, pinger, closeSurface, err := setupSurface(t.Context(), logger, &config.Config{Surface: name})

			require.NoError(t, err)
			assert.IsType(t, &mapsurface.MemorySurface{}, surface)
			assert.Nil(t, pinger)
			require.NotNil(t, closeSurface)
			closeSurface()
		})
	}

	t.Run("unsupported surface is an error", func(t *testing.T) {
		surface, pinger, closeSurface, err := setupSurface(t.Context(), logger, &config.Config{Surface: "redis"})

		require.ErrorContains(t, err, "unsupported map surface: redis")
		assert.Nil(t, surface)
		assert.Nil(t, pinger)
		assert.Nil(t, closeSurface)
	})

	t.Run("unreachable database is an error", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
		defer cancel()
		cfg := &config.Config{
			Surface: surfacePostgres,
			Database: config.PostgresConfig{
				Host: "127.0.0.1", Port: "1", User: "pinpoint", Password: "pinpoint", Name: "pinpoint",
			},
		}

		surface, _, closeSurface, err := setupSurface(ctx, logger, cfg)

		require.ErrorContains(t, err, "failed to connect to DB")
		assert.Nil(t, surface)
		assert.Nil(t, closeSurface)
	})
}
