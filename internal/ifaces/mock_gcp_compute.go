package ifaces

import (
	"context"

	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/stretchr/testify/mock"
)

// MockGCPCompute is a mock implementation of GCPCompute.
type MockGCPCompute struct {
	mock.Mock
}

// GetInstanceGroupManager provides a mock function with given fields: ctx, project, location, name
func (_m *MockGCPCompute) GetInstanceGroupManager(ctx context.Context, project, location, name string) (*computepb.InstanceGroupManager, error) {
	ret := _m.Called(ctx, project, location, name)

	var r0 *computepb.InstanceGroupManager
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*computepb.InstanceGroupManager)
	}

	return r0, ret.Error(1)
}

// ResizeIGM provides a mock function with given fields: ctx, project, location, name, newSize
func (_m *MockGCPCompute) ResizeIGM(ctx context.Context, project, location, name string, newSize int64) error {
	ret := _m.Called(ctx, project, location, name, newSize)

	return ret.Error(0)
}

// Close provides a mock function with no fields
func (_m *MockGCPCompute) Close() error {
	ret := _m.Called()

	return ret.Error(0)
}
