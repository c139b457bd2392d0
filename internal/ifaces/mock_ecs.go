package ifaces

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/stretchr/testify/mock"
)

// MockECS is a mock implementation of ECS.
type MockECS struct {
	mock.Mock
}

// DescribeServices provides a mock function with given fields: ctx, params, optFns
func (_m *MockECS) DescribeServices(ctx context.Context, params *ecs.DescribeServicesInput, optFns ...func(*ecs.Options)) (*ecs.DescribeServicesOutput, error) {
	ret := _m.Called(ctx, params, optFns)

	var r0 *ecs.DescribeServicesOutput
	if rf, ok := ret.Get(0).(func(context.Context, *ecs.DescribeServicesInput, ...func(*ecs.Options)) *ecs.DescribeServicesOutput); ok {
		r0 = rf(ctx, params, optFns...)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*ecs.DescribeServicesOutput)
	}

	return r0, ret.Error(1)
}

// UpdateService provides a mock function with given fields: ctx, params, optFns
func (_m *MockECS) UpdateService(ctx context.Context, params *ecs.UpdateServiceInput, optFns ...func(*ecs.Options)) (*ecs.UpdateServiceOutput, error) {
	ret := _m.Called(ctx, params, optFns)

	var r0 *ecs.UpdateServiceOutput
	if rf, ok := ret.Get(0).(func(context.Context, *ecs.UpdateServiceInput, ...func(*ecs.Options)) *ecs.UpdateServiceOutput); ok {
		r0 = rf(ctx, params, optFns...)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*ecs.UpdateServiceOutput)
	}

	return r0, ret.Error(1)
}
