package internal

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	compute "cloud.google.com/go/compute/apiv1"
	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/googleapis/gax-go/v2/apierror"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/spacelift-io/queuescalr/internal/ifaces"
)

// gcpIGMSelfLinkRegex matches GCP IGM self-links in both zonal and regional formats.
// Formats:
//
//	Zonal: projects/{project}/zones/{zone}/instanceGroupManagers/{name}
//	Regional: projects/{project}/regions/{region}/instanceGroupManagers/{name}
var gcpIGMSelfLinkRegex = regexp.MustCompile(`^projects/([^/]+)/(zones|regions)/([^/]+)/instanceGroupManagers/([^/]+)$`)

// GCPController resizes a GCP Managed Instance Group through its target size.
// The target's cluster is the location path (projects/{project}/zones/{zone}
// or projects/{project}/regions/{region}), its service the IGM name.
type GCPController struct {
	// Clients.
	Compute ifaces.GCPCompute // zonal or regional, matching the configured IGM

	// Telemetry.
	Tracer trace.Tracer
}

// igmID holds parsed components of an IGM self-link.
type igmID struct {
	Project    string
	Location   string // Zone or Region
	Name       string
	IsRegional bool
}

func (i igmID) Target() Target {
	kind := "zones"
	if i.IsRegional {
		kind = "regions"
	}

	return Target{
		Cluster: fmt.Sprintf("projects/%s/%s/%s", i.Project, kind, i.Location),
		Service: i.Name,
	}
}

// gcpZonalComputeClient wraps the GCP Compute SDK client for zonal IGM operations.
type gcpZonalComputeClient struct {
	igmClient *compute.InstanceGroupManagersClient
}

// gcpRegionalComputeClient wraps the GCP Compute SDK client for regional IGM operations.
type gcpRegionalComputeClient struct {
	igmClient *compute.RegionInstanceGroupManagersClient
}

// NewGCPController creates a new GCP controller instance.
func NewGCPController(ctx context.Context, cfg *RuntimeConfig) (*GCPController, error) {
	parsedIGM, err := parseGCPIGMSelfLink(cfg.GCPIGMSelfLink)
	if err != nil {
		return nil, fmt.Errorf("could not parse GCP IGM self-link: %w", err)
	}

	ctrl := &GCPController{Tracer: otel.Tracer(tracerName)}

	if parsedIGM.IsRegional {
		regionIGMClient, err := compute.NewRegionInstanceGroupManagersRESTClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not create GCP Regional Instance Group Managers client: %w", err)
		}
		ctrl.Compute = &gcpRegionalComputeClient{igmClient: regionIGMClient}
	} else {
		zonalIGMClient, err := compute.NewInstanceGroupManagersRESTClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not create GCP Instance Group Managers client: %w", err)
		}
		ctrl.Compute = &gcpZonalComputeClient{igmClient: zonalIGMClient}
	}

	return ctrl, nil
}

func (c *GCPController) GetDesiredCount(ctx context.Context, target Target) (count int, err error) {
	ctx, span := c.Tracer.Start(ctx, "gcp.igm.get")
	defer span.End()

	span.SetAttributes(
		attribute.String("location", target.Cluster),
		attribute.String("igm_name", target.Service),
	)

	var igm *igmID

	if igm, err = parseGCPTarget(target); err != nil {
		err = fmt.Errorf("%w: %w", ErrFleetUnavailable, err)
		return 0, err
	}

	var out *computepb.InstanceGroupManager

	if out, err = c.Compute.GetInstanceGroupManager(ctx, igm.Project, igm.Location, igm.Name); err != nil {
		err = fmt.Errorf("%w: could not get GCP IGM details: %w", ErrFleetUnavailable, err)
		return 0, err
	}

	if out.TargetSize == nil {
		err = fmt.Errorf("%w: could not find target size of GCP IGM %s", ErrFleetUnavailable, igm.Name)
		return 0, err
	}

	count = int(*out.TargetSize)

	span.SetAttributes(attribute.Int("target_size", count))

	return count, nil
}

func (c *GCPController) SetDesiredCount(ctx context.Context, target Target, count int) (ack Acknowledgement, err error) {
	ctx, span := c.Tracer.Start(ctx, "gcp.igm.resize")
	defer span.End()

	span.SetAttributes(
		attribute.String("location", target.Cluster),
		attribute.String("igm_name", target.Service),
		attribute.Int("desired_capacity", count),
	)

	var igm *igmID

	if igm, err = parseGCPTarget(target); err != nil {
		err = fmt.Errorf("%w: %w", ErrActuationFailed, err)
		return ack, err
	}

	if err = c.Compute.ResizeIGM(ctx, igm.Project, igm.Location, igm.Name, int64(count)); err != nil {
		err = classifyGCPWrite(fmt.Errorf("could not resize GCP IGM: %w", err))
		return ack, err
	}

	return Acknowledgement{DesiredCount: count}, nil
}

// Close releases all client resources associated with the GCPController.
func (c *GCPController) Close() error {
	if c.Compute != nil {
		return c.Compute.Close()
	}
	return nil
}

// classifyGCPWrite tells rejected requests apart from an unreachable API.
func classifyGCPWrite(err error) error {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		return classify(ErrActuationFailed, err)
	}

	return classify(ErrFleetUnavailable, err)
}

// gcpZonalComputeClient methods

func (c *gcpZonalComputeClient) GetInstanceGroupManager(ctx context.Context, project, zone, name string) (*computepb.InstanceGroupManager, error) {
	req := &computepb.GetInstanceGroupManagerRequest{
		Project:              project,
		Zone:                 zone,
		InstanceGroupManager: name,
	}
	return c.igmClient.Get(ctx, req)
}

func (c *gcpZonalComputeClient) ResizeIGM(ctx context.Context, project, zone, name string, newSize int64) error {
	req := &computepb.ResizeInstanceGroupManagerRequest{
		Project:              project,
		Zone:                 zone,
		InstanceGroupManager: name,
		Size:                 int32(newSize),
	}
	op, err := c.igmClient.Resize(ctx, req)
	if err != nil {
		return err
	}
	return op.Wait(ctx)
}

// Close releases the underlying client resources.
func (c *gcpZonalComputeClient) Close() error {
	if c.igmClient != nil {
		return c.igmClient.Close()
	}
	return nil
}

// gcpRegionalComputeClient methods

func (c *gcpRegionalComputeClient) GetInstanceGroupManager(ctx context.Context, project, region, name string) (*computepb.InstanceGroupManager, error) {
	req := &computepb.GetRegionInstanceGroupManagerRequest{
		Project:              project,
		Region:               region,
		InstanceGroupManager: name,
	}
	return c.igmClient.Get(ctx, req)
}

func (c *gcpRegionalComputeClient) ResizeIGM(ctx context.Context, project, region, name string, newSize int64) error {
	req := &computepb.ResizeRegionInstanceGroupManagerRequest{
		Project:              project,
		Region:               region,
		InstanceGroupManager: name,
		Size:                 int32(newSize),
	}
	op, err := c.igmClient.Resize(ctx, req)
	if err != nil {
		return err
	}
	return op.Wait(ctx)
}

// Close releases the underlying client resources.
func (c *gcpRegionalComputeClient) Close() error {
	if c.igmClient != nil {
		return c.igmClient.Close()
	}
	return nil
}

// --- Helpers (in order of first reference) ---

// parseGCPIGMSelfLink parses a GCP Instance Group Manager self-link.
// Uses a single regex pattern to handle both zonal and regional formats:
//   - Zonal: projects/{project}/zones/{zone}/instanceGroupManagers/{name}
//   - Regional: projects/{project}/regions/{region}/instanceGroupManagers/{name}
func parseGCPIGMSelfLink(selfLink string) (*igmID, error) {
	if selfLink == "" {
		return nil, errors.New("IGM self-link cannot be empty")
	}

	matches := gcpIGMSelfLinkRegex.FindStringSubmatch(selfLink)
	if matches == nil {
		return nil, fmt.Errorf("invalid IGM self-link format: %q does not match expected pattern "+
			"projects/{project}/zones/{zone}/instanceGroupManagers/{name} or "+
			"projects/{project}/regions/{region}/instanceGroupManagers/{name}", selfLink)
	}

	return &igmID{
		Project:    matches[1],
		Location:   matches[3],
		Name:       matches[4],
		IsRegional: matches[2] == "regions",
	}, nil
}

// parseGCPTarget is the inverse of igmID.Target.
func parseGCPTarget(target Target) (*igmID, error) {
	return parseGCPIGMSelfLink(target.Cluster + "/instanceGroupManagers/" + target.Service)
}
