package internal

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/spacelift-io/queuescalr/internal/ifaces"
)

// SQSSource reads the number of visible messages of an SQS queue. The queue
// name is the queue URL; SQS has no vhosts.
type SQSSource struct {
	// Clients.
	SQS ifaces.SQS

	// Telemetry.
	Tracer trace.Tracer
}

// NewSQSSource creates a new SQS queue depth source.
func NewSQSSource(ctx context.Context, cfg *RuntimeConfig) (*SQSSource, error) {
	awsConfig, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &SQSSource{
		SQS:    sqs.NewFromConfig(awsConfig),
		Tracer: otel.Tracer(tracerName),
	}, nil
}

func (s *SQSSource) GetReadyCount(ctx context.Context, queueURL, _ string) (count int, err error) {
	ctx, span := s.Tracer.Start(ctx, "aws.sqs.getQueueAttributes")
	defer span.End()

	span.SetAttributes(attribute.String("queue_url", queueURL))

	var output *sqs.GetQueueAttributesOutput

	output, err = s.SQS.GetQueueAttributes(ctx, &sqs.GetQueueAttributesInput{
		QueueUrl:       aws.String(queueURL),
		AttributeNames: []sqstypes.QueueAttributeName{sqstypes.QueueAttributeNameApproximateNumberOfMessages},
	})

	if err != nil {
		err = fmt.Errorf("%w: could not get SQS queue attributes: %w", ErrSourceUnavailable, err)
		return 0, err
	}

	raw, ok := output.Attributes[string(sqstypes.QueueAttributeNameApproximateNumberOfMessages)]
	if !ok {
		err = fmt.Errorf("%w: SQS did not return the number of messages", ErrSourceUnavailable)
		return 0, err
	}

	if count, err = strconv.Atoi(raw); err != nil || count < 0 {
		err = fmt.Errorf("%w: invalid number of messages %q", ErrSourceUnavailable, raw)
		return 0, err
	}

	span.SetAttributes(attribute.Int("messages_ready", count))

	return count, nil
}
