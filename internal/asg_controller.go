package internal

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/spacelift-io/queuescalr/internal/ifaces"
)

// ASGController manages the desired capacity of an EC2 autoscaling group. The
// target's Cluster is the AWS region and its Service the group name.
type ASGController struct {
	// Clients.
	Autoscaling ifaces.Autoscaling

	// Telemetry.
	Tracer trace.Tracer
}

// NewASGController creates a new autoscaling group controller instance.
func NewASGController(ctx context.Context, cfg *RuntimeConfig) (*ASGController, error) {
	region, _, err := parseAutoscalingGroupARN(cfg.AutoscalingGroupARN)
	if err != nil {
		return nil, err
	}

	if cfg.AWSRegion == "" {
		cfg.AWSRegion = region
	}

	awsConfig, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &ASGController{
		Autoscaling: autoscaling.NewFromConfig(awsConfig),
		Tracer:      otel.Tracer(tracerName),
	}, nil
}

// GetDesiredCount returns the desired capacity of the autoscaling group.
//
// It makes sure that the autoscaling group exists and that there is only
// one autoscaling group with the given name.
func (c *ASGController) GetDesiredCount(ctx context.Context, target Target) (count int, err error) {
	ctx, span := c.Tracer.Start(ctx, "aws.asg.get")
	defer span.End()

	span.SetAttributes(attribute.String("asg_name", target.Service))

	var output *autoscaling.DescribeAutoScalingGroupsOutput

	output, err = c.Autoscaling.DescribeAutoScalingGroups(ctx, &autoscaling.DescribeAutoScalingGroupsInput{
		AutoScalingGroupNames: []string{target.Service},
	})

	if err != nil {
		err = fmt.Errorf("%w: could not get autoscaling group details: %w", ErrFleetUnavailable, err)
		return 0, err
	}

	if len(output.AutoScalingGroups) == 0 {
		err = fmt.Errorf("%w: could not find autoscaling group %s", ErrFleetUnavailable, target.Service)
		return 0, err
	} else if len(output.AutoScalingGroups) > 1 {
		err = fmt.Errorf("%w: found more than one autoscaling group with name %s", ErrFleetUnavailable, target.Service)
		return 0, err
	}

	asg := output.AutoScalingGroups[0]

	if asg.DesiredCapacity == nil {
		err = fmt.Errorf("%w: autoscaling group %s has no desired capacity", ErrFleetUnavailable, target.Service)
		return 0, err
	}

	span.SetAttributes(attribute.Int("desired_capacity", int(*asg.DesiredCapacity)))

	return int(*asg.DesiredCapacity), nil
}

// SetDesiredCount sets the desired capacity of the autoscaling group.
func (c *ASGController) SetDesiredCount(ctx context.Context, target Target, count int) (ack Acknowledgement, err error) {
	ctx, span := c.Tracer.Start(ctx, "aws.asg.setDesiredCapacity")
	defer span.End()

	span.SetAttributes(
		attribute.String("asg_name", target.Service),
		attribute.Int("desired_capacity", count),
	)

	_, err = c.Autoscaling.SetDesiredCapacity(ctx, &autoscaling.SetDesiredCapacityInput{
		AutoScalingGroupName: aws.String(target.Service),
		DesiredCapacity:      aws.Int32(int32(count)),
	})

	if err != nil {
		err = classifyAWSWrite(fmt.Errorf("could not set desired capacity: %w", err))
		return ack, err
	}

	return Acknowledgement{DesiredCount: count}, nil
}

// parseAutoscalingGroupARN extracts the region and the group name from an ARN
// like arn:aws:autoscaling:{region}:{account}:autoScalingGroup:{uuid}:autoScalingGroupName/{name}.
func parseAutoscalingGroupARN(arn string) (region, name string, err error) {
	arnParts := strings.Split(arn, "/")
	if len(arnParts) != 2 || arnParts[1] == "" {
		return "", "", fmt.Errorf("could not parse autoscaling group ARN %q", arn)
	}

	fields := strings.Split(arnParts[0], ":")
	if len(fields) < 6 || fields[0] != "arn" || fields[2] != "autoscaling" || fields[3] == "" {
		return "", "", fmt.Errorf("could not parse autoscaling group ARN %q", arn)
	}

	return fields[3], arnParts[1], nil
}
