package ifaces

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/mock"
)

// MockSQS is a mock implementation of SQS.
type MockSQS struct {
	mock.Mock
}

// GetQueueAttributes provides a mock function with given fields: ctx, params, optFns
func (_m *MockSQS) GetQueueAttributes(ctx context.Context, params *sqs.GetQueueAttributesInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueAttributesOutput, error) {
	ret := _m.Called(ctx, params, optFns)

	var r0 *sqs.GetQueueAttributesOutput
	if rf, ok := ret.Get(0).(func(context.Context, *sqs.GetQueueAttributesInput, ...func(*sqs.Options)) *sqs.GetQueueAttributesOutput); ok {
		r0 = rf(ctx, params, optFns...)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*sqs.GetQueueAttributesOutput)
	}

	return r0, ret.Error(1)
}
