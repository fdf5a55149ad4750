package geocoding

import (
	"context"
	"errors"

	"github.com/UnknownOlympus/pinpoint/internal/models"
)

// ErrNotFound is returned (possibly wrapped) when the geocoder has no match for the address.
var ErrNotFound = errors.New("address has no coordinates")

// Provider is an interface that defines a method for geocoding an address.
// The Geocode method takes a context and an address string as input,
// and returns the corresponding coordinates and an error if any occurs.
// Any error that does not wrap ErrNotFound is a transport failure.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinate, error)
}
