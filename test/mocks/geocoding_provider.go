package mocks

import (
	"context"

	"github.com/UnknownOlympus/pinpoint/internal/models"
	"github.com/stretchr/testify/mock"
)

// GeocodingProvider is a mock type for the geocoding.Provider type.
type GeocodingProvider struct {
	mock.Mock
}

// Geocode provides a mock function with given fields: ctx, address
func (_m *GeocodingProvider) Geocode(ctx context.Context, address string) (*models.Coordinate, error) {
	ret := _m.Called(ctx, address)

	var r0 *models.Coordinate
	if rf, ok := ret.Get(0).(func(context.Context, string) *models.Coordinate); ok {
		r0 = rf(ctx, address)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Coordinate)
	}

	return r0, ret.Error(1)
}

// NewGeocodingProvider creates a new instance of GeocodingProvider. It also registers a testing interface on the mock
// and a cleanup function to assert the mocks expectations.
func NewGeocodingProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *GeocodingProvider {
	m := &GeocodingProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
