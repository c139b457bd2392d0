package ifaces

import (
	"context"

	"github.com/shurcooL/graphql"
	"github.com/stretchr/testify/mock"
)

// MockSpacelift is a mock implementation of Spacelift.
type MockSpacelift struct {
	mock.Mock
}

// Query provides a mock function with given fields: ctx, query, variables, opts
func (_m *MockSpacelift) Query(ctx context.Context, query interface{}, variables map[string]interface{}, opts ...graphql.RequestOption) error {
	ret := _m.Called(ctx, query, variables, opts)

	return ret.Error(0)
}
