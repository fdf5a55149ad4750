package mocks

import (
	"context"

	"github.com/UnknownOlympus/pinpoint/internal/mapsurface"
	"github.com/UnknownOlympus/pinpoint/internal/models"
	"github.com/stretchr/testify/mock"
)

// Surface is a mock type for the mapsurface.Surface type.
type Surface struct {
	mock.Mock
}

// SetView provides a mock function with given fields: ctx, center, zoom
func (_m *Surface) SetView(ctx context.Context, center models.Coordinate, zoom int) error {
	ret := _m.Called(ctx, center, zoom)

	return ret.Error(0)
}

// AddMarker provides a mock function with given fields: ctx, position, icon
func (_m *Surface) AddMarker(
	ctx context.Context,
	position models.Coordinate,
	icon mapsurface.Icon,
) (mapsurface.MarkerHandle, error) {
	ret := _m.Called(ctx, position, icon)

	var r0 mapsurface.MarkerHandle
	if rf, ok := ret.Get(0).(func(context.Context, models.Coordinate, mapsurface.Icon) mapsurface.MarkerHandle); ok {
		r0 = rf(ctx, position, icon)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(mapsurface.MarkerHandle)
	}

	return r0, ret.Error(1)
}

// RemoveMarker provides a mock function with given fields: ctx, handle
func (_m *Surface) RemoveMarker(ctx context.Context, handle mapsurface.MarkerHandle) error {
	ret := _m.Called(ctx, handle)

	return ret.Error(0)
}

// NewSurface creates a new instance of Surface. It also registers a testing interface on the mock
// and a cleanup function to assert the mocks expectations.
func NewSurface(t interface {
	mock.TestingT
	Cleanup(func())
}) *Surface {
	m := &Surface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
