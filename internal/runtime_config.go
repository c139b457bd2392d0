package internal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Platform is the kind of fleet being scaled.
type Platform string

const (
	PlatformECS   Platform = "ecs"
	PlatformASG   Platform = "asg"
	PlatformAzure Platform = "azure"
	PlatformGCP   Platform = "gcp"
)

// QueueSourceKind selects where the queue depth comes from.
type QueueSourceKind string

const (
	QueueSourceRabbitMQ  QueueSourceKind = "rabbitmq"
	QueueSourceSQS       QueueSourceKind = "sqs"
	QueueSourceSpacelift QueueSourceKind = "spacelift"
)

// DelayStoreKind selects where delay timers are persisted.
type DelayStoreKind string

const (
	DelayStoreRedis    DelayStoreKind = "redis"
	DelayStoreDynamoDB DelayStoreKind = "dynamodb"
)

type RuntimeConfig struct {
	// Common fields - used by all platforms
	Platform    Platform        `env:"FLEET_PLATFORM" envDefault:"ecs"`
	QueueSource QueueSourceKind `env:"QUEUE_SOURCE" envDefault:"rabbitmq"`
	DelayStore  DelayStoreKind  `env:"DELAY_STORE" envDefault:"redis"`

	MinWorkers     int           `env:"MIN_WORKERS" envDefault:"1"`
	MaxWorkers     int           `env:"MAX_WORKERS" envDefault:"20"`
	TasksPerWorker int           `env:"TASKS_PER_WORKER" envDefault:"200"`
	ScaleDownDelay int           `env:"SCALE_DOWN_DELAY" envDefault:"900"` // seconds
	DelayTimerTTL  time.Duration `env:"DELAY_TIMER_TTL" envDefault:"24h"`
	DryRun         bool          `env:"DRY_RUN" envDefault:"false"`
	CallTimeout    time.Duration `env:"CALL_TIMEOUT" envDefault:"10s"`

	AWSRegion         string `env:"AWS_REGION"`
	AzureKeyVaultName string `env:"AZURE_KEY_VAULT_NAME"`

	// RabbitMQ management API. All optional, with the broker's usual defaults.
	RabbitMQHost               string `env:"RABBITMQ_HOST" envDefault:"rabbitmq"`
	RabbitMQManagementPort     int    `env:"RABBITMQ_MANAGEMENT_PORT" envDefault:"80"`
	RabbitMQUser               string `env:"RABBITMQ_DEFAULT_USER" envDefault:"guest"`
	RabbitMQPassword           string `env:"RABBITMQ_DEFAULT_PASS" envDefault:"guest"`
	RabbitMQPasswordSecretName string `env:"RABBITMQ_PASSWORD_SECRET_NAME"`
	RabbitMQQueueName          string `env:"RABBITMQ_QUEUE_NAME" envDefault:"celery"`
	RabbitMQVHost              string `env:"RABBITMQ_VHOST" envDefault:"/"`

	// Redis delay store.
	RedisHost               string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort               int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisDB                 int    `env:"REDIS_DB" envDefault:"1"`
	RedisPassword           string `env:"REDIS_PASSWORD"`
	RedisPasswordSecretName string `env:"REDIS_PASSWORD_SECRET_NAME"`

	// ECS-specific fields - use ecsEnv tag
	ECSClusterName string `ecsEnv:"ECS_CLUSTER_NAME,notEmpty"`
	ECSServiceName string `ecsEnv:"ECS_WORKER_SERVICE,notEmpty"`

	// ASG-specific fields - use asgEnv tag
	AutoscalingGroupARN string `asgEnv:"AUTOSCALING_GROUP_ARN,notEmpty"`

	// Azure-specific fields - use azEnv tag
	AzureVMSSResourceID string `azEnv:"AZURE_VMSS_RESOURCE_ID,notEmpty"`

	// GCP-specific fields - use gcpEnv tag
	GCPIGMSelfLink string `gcpEnv:"GCP_IGM_SELF_LINK,notEmpty"`

	// SQS queue source - use sqsEnv tag
	SQSQueueURL string `sqsEnv:"SQS_QUEUE_URL,notEmpty"`

	// Spacelift queue source - use spaceliftEnv tag
	SpaceliftAPIKeyID      string `spaceliftEnv:"SPACELIFT_API_KEY_ID,notEmpty"`
	SpaceliftAPISecretName string `spaceliftEnv:"SPACELIFT_API_KEY_SECRET_NAME,notEmpty"`
	SpaceliftAPIEndpoint   string `spaceliftEnv:"SPACELIFT_API_KEY_ENDPOINT,notEmpty"`
	SpaceliftWorkerPoolID  string `spaceliftEnv:"SPACELIFT_WORKER_POOL_ID,notEmpty"`
	SpaceliftAPIKeySecret  string // resolved from SpaceliftAPISecretName

	// DynamoDB delay store - use dynamoEnv tag
	DynamoDBTableName string `dynamoEnv:"DYNAMODB_TABLE_NAME,notEmpty"`
}

// Parse parses environment variables into the config for the specified
// platform; an empty platform defers to FLEET_PLATFORM. The common fields
// decide which other tags are required, so they are read first. They are read
// again last because default values apply whichever tag is being parsed.
func (r *RuntimeConfig) Parse(platform Platform) error {
	if err := env.Parse(r); err != nil {
		return err
	}

	if platform != "" {
		r.Platform = platform
	}

	tags, err := r.tags()
	if err != nil {
		return err
	}

	var allErrors env.AggregateError

	for _, tag := range tags {
		if err := env.ParseWithOptions(r, env.Options{TagName: tag}); err != nil {
			var aggErr env.AggregateError
			if errors.As(err, &aggErr) {
				allErrors.Errors = append(allErrors.Errors, aggErr.Errors...)
			} else {
				allErrors.Errors = append(allErrors.Errors, err)
			}
		}
	}

	if len(allErrors.Errors) > 0 {
		return allErrors
	}

	if err := env.Parse(r); err != nil {
		return err
	}

	if platform != "" {
		r.Platform = platform
	}

	return nil
}

func (r *RuntimeConfig) tags() ([]string, error) {
	var tags []string
	var errs []error

	switch r.Platform {
	case PlatformECS:
		tags = append(tags, "ecsEnv")
	case PlatformASG:
		tags = append(tags, "asgEnv")
	case PlatformAzure:
		tags = append(tags, "azEnv")
	case PlatformGCP:
		tags = append(tags, "gcpEnv")
	default:
		errs = append(errs, fmt.Errorf("%w: unknown fleet platform %q", ErrConfigurationInvalid, r.Platform))
	}

	switch r.QueueSource {
	case QueueSourceRabbitMQ:
	case QueueSourceSQS:
		tags = append(tags, "sqsEnv")
	case QueueSourceSpacelift:
		tags = append(tags, "spaceliftEnv")
	default:
		errs = append(errs, fmt.Errorf("%w: unknown queue source %q", ErrConfigurationInvalid, r.QueueSource))
	}

	switch r.DelayStore {
	case DelayStoreRedis:
	case DelayStoreDynamoDB:
		tags = append(tags, "dynamoEnv")
	default:
		errs = append(errs, fmt.Errorf("%w: unknown delay store %q", ErrConfigurationInvalid, r.DelayStore))
	}

	return tags, errors.Join(errs...)
}

// Bounds returns the typed scaling bounds.
func (r RuntimeConfig) Bounds() ScalingBounds {
	return ScalingBounds{
		MinWorkers:     r.MinWorkers,
		MaxWorkers:     r.MaxWorkers,
		TasksPerWorker: r.TasksPerWorker,
		ScaleDownDelay: time.Duration(r.ScaleDownDelay) * time.Second,
	}
}

// Target returns the fleet identity for the configured platform.
func (r RuntimeConfig) Target() (Target, error) {
	switch r.Platform {
	case PlatformECS:
		return Target{Cluster: r.ECSClusterName, Service: r.ECSServiceName}, nil
	case PlatformASG:
		region, name, err := parseAutoscalingGroupARN(r.AutoscalingGroupARN)
		if err != nil {
			return Target{}, err
		}
		return Target{Cluster: region, Service: name}, nil
	case PlatformAzure:
		vmss, err := parseAzureVMSSResourceID(r.AzureVMSSResourceID)
		if err != nil {
			return Target{}, err
		}
		return vmss.Target(), nil
	case PlatformGCP:
		igm, err := parseGCPIGMSelfLink(r.GCPIGMSelfLink)
		if err != nil {
			return Target{}, err
		}
		return igm.Target(), nil
	default:
		return Target{}, fmt.Errorf("unknown fleet platform %q", r.Platform)
	}
}

// Queue returns the queue name and vhost for the configured queue source.
func (r RuntimeConfig) Queue() (name, vhost string) {
	switch r.QueueSource {
	case QueueSourceSQS:
		return r.SQSQueueURL, ""
	case QueueSourceSpacelift:
		return r.SpaceliftWorkerPoolID, ""
	default:
		return r.RabbitMQQueueName, r.RabbitMQVHost
	}
}

// ScalingConfig builds the explicit configuration handed to the AutoScaler.
func (r RuntimeConfig) ScalingConfig() (ScalingConfig, error) {
	target, err := r.Target()
	if err != nil {
		return ScalingConfig{}, fmt.Errorf("%w: %w", ErrConfigurationInvalid, err)
	}

	name, vhost := r.Queue()

	cfg := ScalingConfig{
		Target:      target,
		QueueName:   name,
		VHost:       vhost,
		Bounds:      r.Bounds(),
		DryRun:      r.DryRun,
		CallTimeout: r.CallTimeout,
	}

	if r.DelayTimerTTL < 0 || (r.DelayTimerTTL > 0 && r.DelayTimerTTL <= cfg.Bounds.ScaleDownDelay) {
		return cfg, fmt.Errorf("%w: DELAY_TIMER_TTL (%s) must be zero or longer than SCALE_DOWN_DELAY (%s)",
			ErrConfigurationInvalid, r.DelayTimerTTL, cfg.Bounds.ScaleDownDelay)
	}

	return cfg, cfg.Validate()
}

type namedSecret struct {
	name  string
	value *string
}

// ResolveSecrets replaces every secret given by name with its value.
func (r *RuntimeConfig) ResolveSecrets(ctx context.Context, reader SecretReader) error {
	secrets := []namedSecret{
		{r.RabbitMQPasswordSecretName, &r.RabbitMQPassword},
		{r.RedisPasswordSecretName, &r.RedisPassword},
	}

	if r.QueueSource == QueueSourceSpacelift {
		secrets = append(secrets, namedSecret{r.SpaceliftAPISecretName, &r.SpaceliftAPIKeySecret})
	}

	for _, secret := range secrets {
		if secret.name == "" {
			continue
		}

		value, err := reader.ReadSecret(ctx, secret.name)
		if err != nil {
			return fmt.Errorf("could not read secret %s: %w", secret.name, err)
		}

		*secret.value = value
	}

	return nil
}

// NeedsSecrets tells whether ResolveSecrets has anything to do.
func (r RuntimeConfig) NeedsSecrets() bool {
	return r.RabbitMQPasswordSecretName != "" ||
		r.RedisPasswordSecretName != "" ||
		r.QueueSource == QueueSourceSpacelift
}

// GroupKeyAndID returns the platform-appropriate log key and resource ID.
func (r RuntimeConfig) GroupKeyAndID() (string, string) {
	switch r.Platform {
	case PlatformASG:
		return "asg_arn", r.AutoscalingGroupARN
	case PlatformAzure:
		return "vmss_resource_id", r.AzureVMSSResourceID
	case PlatformGCP:
		return "igm_self_link", r.GCPIGMSelfLink
	default:
		return "ecs_service", fmt.Sprintf("%s/%s", r.ECSClusterName, r.ECSServiceName)
	}
}
