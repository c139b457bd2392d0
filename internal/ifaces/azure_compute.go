package ifaces

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v6"
)

// AzureCompute is the part of the Azure Compute API used to read and set the
// capacity of a Virtual Machine Scale Set.
//
//go:generate mockery --output ./ --name AzureCompute --filename mock_azure_compute.go --outpkg ifaces --structname MockAzureCompute
type AzureCompute interface {
	// GetVMScaleSet returns the scale set, whose SKU capacity is the desired count.
	GetVMScaleSet(ctx context.Context, resourceGroupName string, vmScaleSetName string) (*armcompute.VirtualMachineScaleSet, error)

	// UpdateVMScaleSetCapacity sets the SKU capacity and waits for the update
	// operation to finish.
	UpdateVMScaleSetCapacity(ctx context.Context, resourceGroupName string, vmScaleSetName string, capacity int64) error
}
