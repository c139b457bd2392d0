package internal

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/smithy-go"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
)

// loadAWSConfig loads the default AWS configuration, instrumented for tracing.
// The region falls back to the SDK's own resolution when AWS_REGION is unset.
func loadAWSConfig(ctx context.Context, cfg *RuntimeConfig) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.AWSRegion != "" {
		opts = append(opts, config.WithRegion(cfg.AWSRegion))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("could not load AWS configuration: %w", err)
	}

	otelaws.AppendMiddlewares(&awsConfig.APIOptions)

	return awsConfig, nil
}

// classifyAWSWrite separates writes the API rejected from writes that never
// got an answer.
func classifyAWSWrite(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return classify(ErrActuationFailed, err)
	}

	return classify(ErrFleetUnavailable, err)
}
