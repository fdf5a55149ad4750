package directory

import (
	"fmt"
	"log/slog"
	"time"
)

// ProviderType represents the type of postal directory.
type ProviderType string

// ProviderTypeViaCEP represents the Brazilian ViaCEP directory.
const ProviderTypeViaCEP ProviderType = "viacep"

// ProviderConfig holds configuration for creating a directory provider.
type ProviderConfig struct {
	Type      ProviderType  // Type of provider to create
	BaseURL   string        // BaseURL overrides the public endpoint
	UserAgent string        // UserAgent sent with requests
	Timeout   time.Duration // Timeout for a single request
	Logger    *slog.Logger  // Logger for the provider
}

// NewProvider creates a directory provider based on the provided configuration.
// An empty type selects ViaCEP.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeViaCEP, "":
		return NewViaCEPProvider(config.BaseURL, config.UserAgent, config.Timeout, config.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported directory type: %s", config.Type)
	}
}
