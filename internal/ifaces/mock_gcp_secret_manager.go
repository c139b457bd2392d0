package ifaces

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGCPSecretManager is a mock implementation of GCPSecretManager.
type MockGCPSecretManager struct {
	mock.Mock
}

// AccessSecretVersion provides a mock function with given fields: ctx, name
func (_m *MockGCPSecretManager) AccessSecretVersion(ctx context.Context, name string) ([]byte, error) {
	ret := _m.Called(ctx, name)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}

	return r0, ret.Error(1)
}

// Close provides a mock function with no fields
func (_m *MockGCPSecretManager) Close() error {
	ret := _m.Called()

	return ret.Error(0)
}
