package ifaces

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/mock"
)

// MockDynamoDB is a mock implementation of DynamoDB.
type MockDynamoDB struct {
	mock.Mock
}

// GetItem provides a mock function with given fields: ctx, params, optFns
func (_m *MockDynamoDB) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	ret := _m.Called(ctx, params, optFns)

	var r0 *dynamodb.GetItemOutput
	if rf, ok := ret.Get(0).(func(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) *dynamodb.GetItemOutput); ok {
		r0 = rf(ctx, params, optFns...)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*dynamodb.GetItemOutput)
	}

	return r0, ret.Error(1)
}

// PutItem provides a mock function with given fields: ctx, params, optFns
func (_m *MockDynamoDB) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	ret := _m.Called(ctx, params, optFns)

	var r0 *dynamodb.PutItemOutput
	if rf, ok := ret.Get(0).(func(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) *dynamodb.PutItemOutput); ok {
		r0 = rf(ctx, params, optFns...)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*dynamodb.PutItemOutput)
	}

	return r0, ret.Error(1)
}

// DeleteItem provides a mock function with given fields: ctx, params, optFns
func (_m *MockDynamoDB) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	ret := _m.Called(ctx, params, optFns)

	var r0 *dynamodb.DeleteItemOutput
	if rf, ok := ret.Get(0).(func(context.Context, *dynamodb.DeleteItemInput, ...func(*dynamodb.Options)) *dynamodb.DeleteItemOutput); ok {
		r0 = rf(ctx, params, optFns...)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*dynamodb.DeleteItemOutput)
	}

	return r0, ret.Error(1)
}
