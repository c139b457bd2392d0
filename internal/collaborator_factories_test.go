package internal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacelift-io/queuescalr/internal"
)

func TestFactories_UnknownKinds(t *testing.T) {
	cfg := &internal.RuntimeConfig{Platform: "nomad", QueueSource: "kafka", DelayStore: "etcd"}

	source, err := internal.NewQueueDepthSource(t.Context(), cfg)
	require.ErrorIs(t, err, internal.ErrConfigurationInvalid)
	require.Nil(t, source)

	store, err := internal.NewDelayStore(t.Context(), cfg)
	require.ErrorIs(t, err, internal.ErrConfigurationInvalid)
	require.Nil(t, store)

	fleet, err := internal.NewFleetController(t.Context(), cfg)
	require.ErrorIs(t, err, internal.ErrConfigurationInvalid)
	require.Nil(t, fleet)

	secrets, err := internal.NewSecretReader(t.Context(), cfg)
	require.ErrorIs(t, err, internal.ErrConfigurationInvalid)
	require.Nil(t, secrets)
}

func TestFactories_FailedConstructorReturnsNilInterface(t *testing.T) {
	cfg := &internal.RuntimeConfig{Platform: internal.PlatformAzure}

	secrets, err := internal.NewSecretReader(t.Context(), cfg)

	require.ErrorIs(t, err, internal.ErrConfigurationInvalid)
	require.True(t, secrets == nil)
}

func TestFactories_SelfHostedBackends(t *testing.T) {
	cfg := &internal.RuntimeConfig{
		QueueSource:            internal.QueueSourceRabbitMQ,
		DelayStore:             internal.DelayStoreRedis,
		RabbitMQHost:           "rabbitmq",
		RabbitMQManagementPort: 15672,
		RedisHost:              "localhost",
		RedisPort:              6379,
	}

	source, err := internal.NewQueueDepthSource(t.Context(), cfg)
	require.NoError(t, err)
	require.IsType(t, &internal.RabbitMQSource{}, source)

	store, err := internal.NewDelayStore(t.Context(), cfg)
	require.NoError(t, err)
	require.IsType(t, &internal.RedisDelayStore{}, store)
	require.NoError(t, store.(*internal.RedisDelayStore).Close())
}
