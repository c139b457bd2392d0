package ifaces

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v6"
	"github.com/stretchr/testify/mock"
)

// MockAzureCompute is a mock implementation of AzureCompute.
type MockAzureCompute struct {
	mock.Mock
}

// GetVMScaleSet provides a mock function with given fields: ctx, resourceGroupName, vmScaleSetName
func (_m *MockAzureCompute) GetVMScaleSet(ctx context.Context, resourceGroupName string, vmScaleSetName string) (*armcompute.VirtualMachineScaleSet, error) {
	ret := _m.Called(ctx, resourceGroupName, vmScaleSetName)

	var r0 *armcompute.VirtualMachineScaleSet
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*armcompute.VirtualMachineScaleSet)
	}

	return r0, ret.Error(1)
}

// UpdateVMScaleSetCapacity provides a mock function with given fields: ctx, resourceGroupName, vmScaleSetName, capacity
func (_m *MockAzureCompute) UpdateVMScaleSetCapacity(ctx context.Context, resourceGroupName string, vmScaleSetName string, capacity int64) error {
	ret := _m.Called(ctx, resourceGroupName, vmScaleSetName, capacity)

	return ret.Error(0)
}
