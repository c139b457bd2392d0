package ifaces

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/stretchr/testify/mock"
)

// MockSSM is a mock implementation of SSM.
type MockSSM struct {
	mock.Mock
}

// GetParameter provides a mock function with given fields: ctx, params, optFns
func (_m *MockSSM) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	ret := _m.Called(ctx, params, optFns)

	var r0 *ssm.GetParameterOutput
	if rf, ok := ret.Get(0).(func(context.Context, *ssm.GetParameterInput, ...func(*ssm.Options)) *ssm.GetParameterOutput); ok {
		r0 = rf(ctx, params, optFns...)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*ssm.GetParameterOutput)
	}

	return r0, ret.Error(1)
}
