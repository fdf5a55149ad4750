package directory_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/UnknownOlympus/pinpoint/internal/directory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	logger := slog.Default()

	t.Run("create ViaCEP provider successfully", func(t *testing.T) {
		provider, err := directory.NewProvider(directory.ProviderConfig{
			Type:    directory.ProviderTypeViaCEP,
			Timeout: time.Second,
			Logger:  logger,
		})

		require.NoError(t, err)
		_, ok := provider.(*directory.ViaCEPProvider)
		assert.True(t, ok, "expected provider to be *ViaCEPProvider")
	})

	t.Run("empty type defaults to ViaCEP", func(t *testing.T) {
		provider, err := directory.NewProvider(directory.ProviderConfig{Logger: logger})

		require.NoError(t, err)
		assert.IsType(t, &directory.ViaCEPProvider{}, provider)
	})

	t.Run("unsupported provider type", func(t *testing.T) {
		provider, err := directory.NewProvider(directory.ProviderConfig{Type: "correios", Logger: logger})

		require.Error(t, err)
		require.Nil(t, provider)
		assert.Contains(t, err.Error(), "unsupported directory type: correios")
	})
}
