package ifaces

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ecs"
)

// ECS is an interface which mocks the subset of the ECS client that we use in
// the fleet controller.
//
//go:generate mockery --inpackage --name ECS --filename mock_ecs.go
type ECS interface {
	DescribeServices(context.Context, *ecs.DescribeServicesInput, ...func(*ecs.Options)) (*ecs.DescribeServicesOutput, error)
	UpdateService(context.Context, *ecs.UpdateServiceInput, ...func(*ecs.Options)) (*ecs.UpdateServiceOutput, error)
}
