package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v6"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/spacelift-io/queuescalr/internal/ifaces"
)

// AzureController resizes an Azure Virtual Machine Scale Set by its SKU
// capacity. The target's cluster is the resource group, its service the
// scale set name.
type AzureController struct {
	// Clients.
	Compute ifaces.AzureCompute

	// Telemetry.
	Tracer trace.Tracer
}

// azureComputeClient wraps the Azure Compute SDK client to implement the AzureCompute interface.
type azureComputeClient struct {
	vmssClient *armcompute.VirtualMachineScaleSetsClient
}

func (c *azureComputeClient) GetVMScaleSet(ctx context.Context, resourceGroupName string, vmScaleSetName string) (*armcompute.VirtualMachineScaleSet, error) {
	resp, err := c.vmssClient.Get(ctx, resourceGroupName, vmScaleSetName, nil)
	if err != nil {
		return nil, err
	}
	return &resp.VirtualMachineScaleSet, nil
}

func (c *azureComputeClient) UpdateVMScaleSetCapacity(ctx context.Context, resourceGroupName string, vmScaleSetName string, capacity int64) error {
	// Only the SKU capacity is patched, the rest of the scale set is left alone.
	poller, err := c.vmssClient.BeginUpdate(ctx, resourceGroupName, vmScaleSetName, armcompute.VirtualMachineScaleSetUpdate{
		SKU: &armcompute.SKU{Capacity: &capacity},
	}, nil)
	if err != nil {
		return err
	}

	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

// azureVMSS holds the parsed components of a VMSS resource ID.
type azureVMSS struct {
	SubscriptionID string
	ResourceGroup  string
	Name           string
}

func (v azureVMSS) Target() Target {
	return Target{Cluster: v.ResourceGroup, Service: v.Name}
}

// parseAzureVMSSResourceID parses a resource ID of the form
// /subscriptions/{subscriptionId}/resourceGroups/{resourceGroupName}/providers/Microsoft.Compute/virtualMachineScaleSets/{vmssName}
func parseAzureVMSSResourceID(resourceID string) (out azureVMSS, err error) {
	resourceParts := strings.Split(resourceID, "/")
	if len(resourceParts) < 9 {
		return out, errors.New("could not parse Azure VMSS resource ID: invalid format")
	}

	for i, part := range resourceParts {
		if i+1 >= len(resourceParts) {
			break
		}

		switch strings.ToLower(part) {
		case "subscriptions":
			out.SubscriptionID = resourceParts[i+1]
		case "resourcegroups":
			out.ResourceGroup = resourceParts[i+1]
		case "virtualmachinescalesets":
			out.Name = resourceParts[i+1]
		}
	}

	if out.SubscriptionID == "" || out.ResourceGroup == "" || out.Name == "" {
		return azureVMSS{}, errors.New("could not parse Azure VMSS resource ID: missing required components")
	}

	return out, nil
}

// NewAzureController creates a new Azure controller instance.
func NewAzureController(cfg *RuntimeConfig) (*AzureController, error) {
	vmss, err := parseAzureVMSSResourceID(cfg.AzureVMSSResourceID)
	if err != nil {
		return nil, err
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("could not create Azure credential: %w", err)
	}

	vmssClient, err := armcompute.NewVirtualMachineScaleSetsClient(vmss.SubscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create Azure VMSS client: %w", err)
	}

	return &AzureController{
		Compute: &azureComputeClient{vmssClient: vmssClient},
		Tracer:  otel.Tracer(tracerName),
	}, nil
}

func (c *AzureController) GetDesiredCount(ctx context.Context, target Target) (count int, err error) {
	ctx, span := c.Tracer.Start(ctx, "azure.vmss.get")
	defer span.End()

	span.SetAttributes(
		attribute.String("resource_group", target.Cluster),
		attribute.String("vmss_name", target.Service),
	)

	var vmss *armcompute.VirtualMachineScaleSet

	vmss, err = c.Compute.GetVMScaleSet(ctx, target.Cluster, target.Service)
	if err != nil {
		err = fmt.Errorf("%w: could not get Azure VMSS details: %w", ErrFleetUnavailable, err)
		return 0, err
	}

	if vmss.SKU == nil || vmss.SKU.Capacity == nil {
		err = fmt.Errorf("%w: could not find capacity of Azure VMSS %s", ErrFleetUnavailable, target.Service)
		return 0, err
	}

	count = int(*vmss.SKU.Capacity)

	span.SetAttributes(attribute.Int("capacity", count))

	return count, nil
}

func (c *AzureController) SetDesiredCount(ctx context.Context, target Target, count int) (ack Acknowledgement, err error) {
	ctx, span := c.Tracer.Start(ctx, "azure.vmss.scale")
	defer span.End()

	span.SetAttributes(
		attribute.String("resource_group", target.Cluster),
		attribute.String("vmss_name", target.Service),
		attribute.Int("desired_capacity", count),
	)

	if err = c.Compute.UpdateVMScaleSetCapacity(ctx, target.Cluster, target.Service, int64(count)); err != nil {
		err = classifyAzureWrite(fmt.Errorf("could not update Azure VMSS capacity: %w", err))
		return ack, err
	}

	return Acknowledgement{DesiredCount: count}, nil
}

// classifyAzureWrite tells rejected requests apart from unreachable ARM.
func classifyAzureWrite(err error) error {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return classify(ErrActuationFailed, err)
	}

	return classify(ErrFleetUnavailable, err)
}
