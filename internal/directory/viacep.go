package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/UnknownOlympus/pinpoint/internal/models"
)

// ViaCEPBaseURL is the public ViaCEP web service root.
const ViaCEPBaseURL = "https://viacep.com.br/ws"

// ViaCEPProvider implements the Provider interface using the ViaCEP postal directory.
type ViaCEPProvider struct {
	client    HTTPClient   // HTTP client for making requests
	baseURL   string       // Base URL for the ViaCEP API
	userAgent string       // User-Agent sent with every request
	log       *slog.Logger // Logger for logging operations
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ErrViaCEPNotFound is returned when ViaCEP answers with an error marker or rejects the code format.
var ErrViaCEPNotFound = fmt.Errorf("viacep: %w", ErrNotFound)

// viacepResponse represents the JSON response from ViaCEP.
type viacepResponse struct {
	CEP        string   `json:"cep"`
	Logradouro string   `json:"logradouro"`
	Bairro     string   `json:"bairro"`
	Localidade string   `json:"localidade"`
	UF         string   `json:"uf"`
	Erro       flagBool `json:"erro"`
}

// flagBool accepts both `true` and `"true"`, ViaCEP has served either shape for the error marker.
type flagBool bool

func (f *flagBool) UnmarshalJSON(data []byte) error {
	raw := string(bytes.Trim(data, `"`))
	*f = flagBool(strings.EqualFold(raw, "true"))

	return nil
}

// NewViaCEPProvider creates a ViaCEP provider with its own HTTP client.
func NewViaCEPProvider(baseURL, userAgent string, timeout time.Duration, log *slog.Logger) *ViaCEPProvider {
	return NewViaCEPProviderWithClient(&http.Client{Timeout: timeout}, baseURL, userAgent, log)
}

// NewViaCEPProviderWithClient creates a ViaCEP provider with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewViaCEPProviderWithClient(client HTTPClient, baseURL, userAgent string, log *slog.Logger) *ViaCEPProvider {
	if baseURL == "" {
		baseURL = ViaCEPBaseURL
	}

	return &ViaCEPProvider{
		client:    client,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: userAgent,
		log:       log,
	}
}

// Resolve looks the postal code up in ViaCEP. The code is sent as given, ViaCEP itself
// decides whether it is valid. Exactly one request is made.
func (vp *ViaCEPProvider) Resolve(ctx context.Context, postalCode string) (models.Address, error) {
	reqURL := fmt.Sprintf("%s/%s/json/", vp.baseURL, url.PathEscape(postalCode))
	vp.log.DebugContext(ctx, "Resolving postal code using ViaCEP", "postal_code", postalCode, "url", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.Address{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if vp.userAgent != "" {
		req.Header.Set("User-Agent", vp.userAgent)
	}

	resp, err := vp.client.Do(req)
	if err != nil {
		return models.Address{}, fmt.Errorf("failed to execute directory request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusBadRequest:
		return models.Address{}, ErrViaCEPNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		vp.log.ErrorContext(ctx, "ViaCEP API error", "status", resp.StatusCode, "body", string(body))
		return models.Address{}, fmt.Errorf("viacep API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result viacepResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		if errors.Is(err, io.EOF) {
			return models.Address{}, errors.New("failed to decode viacep response: empty body")
		}
		return models.Address{}, fmt.Errorf("failed to decode viacep response: %w", err)
	}

	if result.Erro {
		vp.log.DebugContext(ctx, "ViaCEP does not know the postal code", "postal_code", postalCode)
		return models.Address{}, ErrViaCEPNotFound
	}

	vp.log.DebugContext(ctx, "ViaCEP found result", "postal_code", postalCode, "city", result.Localidade)

	return models.Address{
		PostalCode: postalCode,
		Street:     result.Logradouro,
		District:   result.Bairro,
		City:       result.Localidade,
		Region:     result.UF,
	}, nil
}
