package ifaces

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/stretchr/testify/mock"
)

// MockAutoscaling is a mock implementation of Autoscaling.
type MockAutoscaling struct {
	mock.Mock
}

// DescribeAutoScalingGroups provides a mock function with given fields: ctx, params, optFns
func (_m *MockAutoscaling) DescribeAutoScalingGroups(ctx context.Context, params *autoscaling.DescribeAutoScalingGroupsInput, optFns ...func(*autoscaling.Options)) (*autoscaling.DescribeAutoScalingGroupsOutput, error) {
	ret := _m.Called(ctx, params, optFns)

	var r0 *autoscaling.DescribeAutoScalingGroupsOutput
	if rf, ok := ret.Get(0).(func(context.Context, *autoscaling.DescribeAutoScalingGroupsInput, ...func(*autoscaling.Options)) *autoscaling.DescribeAutoScalingGroupsOutput); ok {
		r0 = rf(ctx, params, optFns...)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*autoscaling.DescribeAutoScalingGroupsOutput)
	}

	return r0, ret.Error(1)
}

// SetDesiredCapacity provides a mock function with given fields: ctx, params, optFns
func (_m *MockAutoscaling) SetDesiredCapacity(ctx context.Context, params *autoscaling.SetDesiredCapacityInput, optFns ...func(*autoscaling.Options)) (*autoscaling.SetDesiredCapacityOutput, error) {
	ret := _m.Called(ctx, params, optFns)

	var r0 *autoscaling.SetDesiredCapacityOutput
	if rf, ok := ret.Get(0).(func(context.Context, *autoscaling.SetDesiredCapacityInput, ...func(*autoscaling.Options)) *autoscaling.SetDesiredCapacityOutput); ok {
		r0 = rf(ctx, params, optFns...)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*autoscaling.SetDesiredCapacityOutput)
	}

	return r0, ret.Error(1)
}
