package internal

import (
	"context"
	"errors"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/spacelift-io/queuescalr/internal/ifaces"
)

// SSMSecretReader reads SecureString parameters from AWS Systems Manager.
type SSMSecretReader struct {
	SSM    ifaces.SSM
	Tracer trace.Tracer
}

// NewSSMSecretReader creates a secret reader backed by SSM Parameter Store.
func NewSSMSecretReader(ctx context.Context, cfg *RuntimeConfig) (*SSMSecretReader, error) {
	awsConfig, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &SSMSecretReader{
		SSM:    ssm.NewFromConfig(awsConfig),
		Tracer: otel.Tracer(tracerName),
	}, nil
}

func (r *SSMSecretReader) ReadSecret(ctx context.Context, name string) (value string, err error) {
	ctx, span := r.Tracer.Start(ctx, "aws.ssm.getParameter")
	defer span.End()

	span.SetAttributes(attribute.String("parameter_name", name))

	var output *ssm.GetParameterOutput

	output, err = r.SSM.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})

	if err != nil {
		err = fmt.Errorf("could not get secret from SSM: %w", err)
		return "", err
	}

	if output.Parameter == nil || output.Parameter.Value == nil {
		err = errors.New("could not find secret value in SSM")
		return "", err
	}

	return *output.Parameter.Value, nil
}

// azureKeyVaultClient wraps the Azure Key Vault SDK client to implement the AzureKeyVault interface.
type azureKeyVaultClient struct {
	client *azsecrets.Client
}

func (c *azureKeyVaultClient) GetSecret(ctx context.Context, secretName string) (azsecrets.GetSecretResponse, error) {
	return c.client.GetSecret(ctx, secretName, "", nil)
}

// KeyVaultSecretReader reads the latest version of secrets from an Azure Key
// Vault.
type KeyVaultSecretReader struct {
	KeyVault ifaces.AzureKeyVault
	Tracer   trace.Tracer
}

// NewKeyVaultSecretReader creates a secret reader for the vault named by
// AZURE_KEY_VAULT_NAME.
func NewKeyVaultSecretReader(cfg *RuntimeConfig) (*KeyVaultSecretReader, error) {
	if cfg.AzureKeyVaultName == "" {
		return nil, fmt.Errorf("%w: AZURE_KEY_VAULT_NAME is required to read secrets on Azure", ErrConfigurationInvalid)
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("could not create Azure credential: %w", err)
	}

	vaultURL := fmt.Sprintf("https://%s.vault.azure.net", cfg.AzureKeyVaultName)

	kvClient, err := azsecrets.NewClient(vaultURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create Azure Key Vault client: %w", err)
	}

	return &KeyVaultSecretReader{
		KeyVault: &azureKeyVaultClient{client: kvClient},
		Tracer:   otel.Tracer(tracerName),
	}, nil
}

func (r *KeyVaultSecretReader) ReadSecret(ctx context.Context, name string) (value string, err error) {
	ctx, span := r.Tracer.Start(ctx, "azure.keyvault.getSecret")
	defer span.End()

	span.SetAttributes(attribute.String("secret_name", name))

	var secret azsecrets.GetSecretResponse

	if secret, err = r.KeyVault.GetSecret(ctx, name); err != nil {
		err = fmt.Errorf("could not get secret from Key Vault: %w", err)
		return "", err
	}

	if secret.Value == nil {
		err = errors.New("could not find secret value in Key Vault")
		return "", err
	}

	return *secret.Value, nil
}

// gcpSecretManagerClient wraps the Secret Manager SDK client to implement the
// GCPSecretManager interface.
type gcpSecretManagerClient struct {
	client *secretmanager.Client
}

func (c *gcpSecretManagerClient) AccessSecretVersion(ctx context.Context, name string) ([]byte, error) {
	secret, err := c.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return nil, err
	}

	if secret.Payload == nil {
		return nil, nil
	}

	return secret.Payload.Data, nil
}

func (c *gcpSecretManagerClient) Close() error {
	return c.client.Close()
}

// SecretManagerReader reads secret versions from GCP Secret Manager. Names are
// full resource names: projects/{project}/secrets/{secret}/versions/{version}.
type SecretManagerReader struct {
	SecretManager ifaces.GCPSecretManager
	Tracer        trace.Tracer
}

// NewSecretManagerReader creates a secret reader backed by GCP Secret Manager.
func NewSecretManagerReader(ctx context.Context) (*SecretManagerReader, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not create GCP Secret Manager client: %w", err)
	}

	return &SecretManagerReader{
		SecretManager: &gcpSecretManagerClient{client: client},
		Tracer:        otel.Tracer(tracerName),
	}, nil
}

func (r *SecretManagerReader) ReadSecret(ctx context.Context, name string) (value string, err error) {
	ctx, span := r.Tracer.Start(ctx, "gcp.secretmanager.accessSecretVersion")
	defer span.End()

	span.SetAttributes(attribute.String("secret_name", name))

	var data []byte

	if data, err = r.SecretManager.AccessSecretVersion(ctx, name); err != nil {
		err = fmt.Errorf("could not get secret from Secret Manager: %w", err)
		return "", err
	}

	if data == nil {
		err = errors.New("could not find secret value in Secret Manager")
		return "", err
	}

	return string(data), nil
}

func (r *SecretManagerReader) Close() error {
	return r.SecretManager.Close()
}
