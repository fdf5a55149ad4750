package directory

import (
	"context"
	"errors"

	"github.com/UnknownOlympus/pinpoint/internal/models"
)

// ErrNotFound is returned (possibly wrapped) when the directory does not know the postal code.
var ErrNotFound = errors.New("postal code not found")

// Provider is an interface that defines a method for resolving a postal code into an address.
// Any error that does not wrap ErrNotFound is a transport failure.
type Provider interface {
	Resolve(ctx context.Context, postalCode string) (models.Address, error)
}
