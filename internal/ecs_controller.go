package internal

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/spacelift-io/queuescalr/internal/ifaces"
)

const ecsServiceStatusActive = "ACTIVE"

// ECSController manages the desired count of ECS services. The target's
// Cluster is the ECS cluster and its Service the ECS service.
type ECSController struct {
	// Clients.
	ECS ifaces.ECS

	// Telemetry.
	Tracer trace.Tracer
}

// NewECSController creates a new ECS controller instance.
func NewECSController(ctx context.Context, cfg *RuntimeConfig) (*ECSController, error) {
	awsConfig, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &ECSController{
		ECS:    ecs.NewFromConfig(awsConfig),
		Tracer: otel.Tracer(tracerName),
	}, nil
}

// GetDesiredCount returns the desired count of the ECS service.
//
// It makes sure that the service exists and is active.
func (c *ECSController) GetDesiredCount(ctx context.Context, target Target) (count int, err error) {
	ctx, span := c.Tracer.Start(ctx, "aws.ecs.describeService")
	defer span.End()

	span.SetAttributes(
		attribute.String("cluster", target.Cluster),
		attribute.String("service", target.Service),
	)

	var output *ecs.DescribeServicesOutput

	output, err = c.ECS.DescribeServices(ctx, &ecs.DescribeServicesInput{
		Cluster:  aws.String(target.Cluster),
		Services: []string{target.Service},
	})

	if err != nil {
		err = fmt.Errorf("%w: could not describe ECS service: %w", ErrFleetUnavailable, err)
		return 0, err
	}

	if len(output.Services) == 0 {
		reason := "not found"
		if len(output.Failures) > 0 && output.Failures[0].Reason != nil {
			reason = *output.Failures[0].Reason
		}

		err = fmt.Errorf("%w: could not find ECS service %s: %s", ErrFleetUnavailable, target.ID(), reason)
		return 0, err
	} else if len(output.Services) > 1 {
		err = fmt.Errorf("%w: found more than one ECS service named %s", ErrFleetUnavailable, target.ID())
		return 0, err
	}

	service := output.Services[0]

	if status := aws.ToString(service.Status); status != ecsServiceStatusActive {
		err = fmt.Errorf("%w: ECS service %s is %s", ErrFleetUnavailable, target.ID(), status)
		return 0, err
	}

	span.SetAttributes(
		attribute.Int("desired_count", int(service.DesiredCount)),
		attribute.Int("running_count", int(service.RunningCount)),
	)

	return int(service.DesiredCount), nil
}

// SetDesiredCount updates the desired count of the ECS service.
func (c *ECSController) SetDesiredCount(ctx context.Context, target Target, count int) (ack Acknowledgement, err error) {
	ctx, span := c.Tracer.Start(ctx, "aws.ecs.updateService")
	defer span.End()

	span.SetAttributes(
		attribute.String("cluster", target.Cluster),
		attribute.String("service", target.Service),
		attribute.Int("desired_count", count),
	)

	var output *ecs.UpdateServiceOutput

	output, err = c.ECS.UpdateService(ctx, &ecs.UpdateServiceInput{
		Cluster:      aws.String(target.Cluster),
		Service:      aws.String(target.Service),
		DesiredCount: aws.Int32(int32(count)),
	})

	if err != nil {
		err = classifyAWSWrite(fmt.Errorf("could not update ECS service: %w", err))
		return ack, err
	}

	if output.Service == nil {
		err = fmt.Errorf("%w: ECS did not return the updated service", ErrActuationFailed)
		return ack, err
	}

	return Acknowledgement{
		DesiredCount: int(output.Service.DesiredCount),
		Reference:    aws.ToString(output.Service.ServiceArn),
	}, nil
}
