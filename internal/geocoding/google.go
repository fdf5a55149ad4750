package geocoding

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/pinpoint/internal/models"
	"googlemaps.github.io/maps"
)

// Brazilian addresses are geocoded with region biasing and a country component filter,
// street names such as "Rua 1" exist in every country otherwise.
const (
	googleRegion   = "br"
	googleLanguage = "pt-BR"
	googleCountry  = "BR"
)

// GoogleAPIClient is the part of *maps.Client the provider calls.
type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// GoogleProvider resolves addresses through the Google Maps Geocoding API.
type GoogleProvider struct {
	client GoogleAPIClient
	log    *slog.Logger
}

// ErrEmptyResponse is returned when the Google Maps API responds with an empty result.
var ErrEmptyResponse = fmt.Errorf("get empty response from Google Maps API: %w", ErrNotFound)

// NewGoogleProvider wraps a Google Maps client.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// GoogleRequest builds the geocoding request sent for address.
func GoogleRequest(address string) *maps.GeocodingRequest {
	return &maps.GeocodingRequest{
		Address:    address,
		Region:     googleRegion,
		Language:   googleLanguage,
		Components: map[maps.Component]string{maps.ComponentCountry: googleCountry},
	}
}

// Geocode returns the coordinates of the first Google Maps match for the address.
func (gp *GoogleProvider) Geocode(ctx context.Context, address string) (*models.Coordinate, error) {
	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "address", address)

	results, err := gp.client.Geocode(ctx, GoogleRequest(address))
	if err != nil {
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrEmptyResponse
	}

	location := results[0].Geometry.Location
	gp.log.DebugContext(ctx, "Google Maps found result",
		"address", address, "formatted", results[0].FormattedAddress, "lat", location.Lat, "lon", location.Lng)

	return &models.Coordinate{Latitude: location.Lat, Longitude: location.Lng}, nil
}
