package mocks

import (
	"context"

	"github.com/UnknownOlympus/pinpoint/internal/models"
	"github.com/stretchr/testify/mock"
)

// AddressProvider is a mock type for the directory.Provider type.
type AddressProvider struct {
	mock.Mock
}

// Resolve provides a mock function with given fields: ctx, postalCode
func (_m *AddressProvider) Resolve(ctx context.Context, postalCode string) (models.Address, error) {
	ret := _m.Called(ctx, postalCode)

	var r0 models.Address
	if rf, ok := ret.Get(0).(func(context.Context, string) models.Address); ok {
		r0 = rf(ctx, postalCode)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(models.Address)
	}

	return r0, ret.Error(1)
}

// NewAddressProvider creates a new instance of AddressProvider. It also registers a testing interface on the mock
// and a cleanup function to assert the mocks expectations.
func NewAddressProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *AddressProvider {
	m := &AddressProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
