package ifaces

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SQS is an interface which mocks the subset of the SQS client that we use to
// read queue depth.
//
//go:generate mockery --inpackage --name SQS --filename mock_sqs.go
type SQS interface {
	GetQueueAttributes(context.Context, *sqs.GetQueueAttributesInput, ...func(*sqs.Options)) (*sqs.GetQueueAttributesOutput, error)
}
