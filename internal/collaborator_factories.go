package internal

import (
	"context"
	"fmt"
)

// NewQueueDepthSource builds the source selected by QUEUE_SOURCE.
func NewQueueDepthSource(ctx context.Context, cfg *RuntimeConfig) (QueueDepthSource, error) {
	switch cfg.QueueSource {
	case QueueSourceRabbitMQ:
		return NewRabbitMQSource(cfg), nil
	case QueueSourceSQS:
		return nonNil[QueueDepthSource](NewSQSSource(ctx, cfg))
	case QueueSourceSpacelift:
		return nonNil[QueueDepthSource](NewSpaceliftSource(ctx, cfg))
	default:
		return nil, fmt.Errorf("%w: unknown queue source %q", ErrConfigurationInvalid, cfg.QueueSource)
	}
}

// NewDelayStore builds the store selected by DELAY_STORE.
func NewDelayStore(ctx context.Context, cfg *RuntimeConfig) (DelayStore, error) {
	switch cfg.DelayStore {
	case DelayStoreRedis:
		return NewRedisDelayStore(cfg), nil
	case DelayStoreDynamoDB:
		return nonNil[DelayStore](NewDynamoDBDelayStore(ctx, cfg))
	default:
		return nil, fmt.Errorf("%w: unknown delay store %q", ErrConfigurationInvalid, cfg.DelayStore)
	}
}

// NewFleetController builds the controller for FLEET_PLATFORM.
func NewFleetController(ctx context.Context, cfg *RuntimeConfig) (FleetController, error) {
	switch cfg.Platform {
	case PlatformECS:
		return nonNil[FleetController](NewECSController(ctx, cfg))
	case PlatformASG:
		return nonNil[FleetController](NewASGController(ctx, cfg))
	case PlatformAzure:
		return nonNil[FleetController](NewAzureController(cfg))
	case PlatformGCP:
		return nonNil[FleetController](NewGCPController(ctx, cfg))
	default:
		return nil, fmt.Errorf("%w: unknown fleet platform %q", ErrConfigurationInvalid, cfg.Platform)
	}
}

// NewSecretReader builds the secret store native to FLEET_PLATFORM.
func NewSecretReader(ctx context.Context, cfg *RuntimeConfig) (SecretReader, error) {
	switch cfg.Platform {
	case PlatformECS, PlatformASG:
		return nonNil[SecretReader](NewSSMSecretReader(ctx, cfg))
	case PlatformAzure:
		return nonNil[SecretReader](NewKeyVaultSecretReader(cfg))
	case PlatformGCP:
		return nonNil[SecretReader](NewSecretManagerReader(ctx))
	default:
		return nil, fmt.Errorf("%w: unknown fleet platform %q", ErrConfigurationInvalid, cfg.Platform)
	}
}

// nonNil keeps a failed constructor from leaking a typed nil pointer into an
// interface value.
func nonNil[I any](v I, err error) (I, error) {
	if err != nil {
		var zero I
		return zero, err
	}
	return v, nil
}
