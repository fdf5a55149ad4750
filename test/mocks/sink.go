package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Sink is a mock type for the notify.Sink type.
type Sink struct {
	mock.Mock
}

// Show provides a mock function with given fields: ctx, message
func (_m *Sink) Show(ctx context.Context, message string) {
	_m.Called(ctx, message)
}

// Hide provides a mock function with given fields: ctx
func (_m *Sink) Hide(ctx context.Context) {
	_m.Called(ctx)
}

// NewSink creates a new instance of Sink. It also registers a testing interface on the mock
// and a cleanup function to assert the mocks expectations.
func NewSink(t interface {
	mock.TestingT
	Cleanup(func())
}) *Sink {
	m := &Sink{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
