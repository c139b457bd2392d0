package ifaces

import (
	"context"

	"cloud.google.com/go/compute/apiv1/computepb"
)

// GCPCompute reads and resizes Managed Instance Groups. One implementation
// exists per IGM scope, zonal or regional.
//
//go:generate mockery --output ./ --name GCPCompute --filename mock_gcp_compute.go --outpkg ifaces --structname MockGCPCompute
type GCPCompute interface {
	// GetInstanceGroupManager retrieves details about an Instance Group Manager.
	// For zonal IGMs, location is the zone (e.g., "us-central1-a").
	// For regional IGMs, location is the region (e.g., "us-central1").
	GetInstanceGroupManager(ctx context.Context, project, location, name string) (*computepb.InstanceGroupManager, error)

	// ResizeIGM changes the target size of the IGM. It waits for the resize
	// operation to complete.
	ResizeIGM(ctx context.Context, project, location, name string, newSize int64) error

	// Close releases resources held by the client.
	Close() error
}
