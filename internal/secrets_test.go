package internal_test

import (
	"errors"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spacelift-io/queuescalr/internal"
	"github.com/spacelift-io/queuescalr/internal/ifaces"
)

func TestSSMSecretReader_ReadSecret(t *testing.T) {
	const name = "/queuescalr/rabbitmq-password"

	isDecryptedRead := mock.MatchedBy(func(in *ssm.GetParameterInput) bool {
		return *in.Name == name && in.WithDecryption != nil && *in.WithDecryption
	})

	t.Run("OK", func(t *testing.T) {
		mockSSM := &ifaces.MockSSM{}
		defer mockSSM.AssertExpectations(t)

		tracer, recorder := testTracer()
		sut := &internal.SSMSecretReader{SSM: mockSSM, Tracer: tracer}

		mockSSM.On("GetParameter", mock.Anything, isDecryptedRead, mock.Anything).
			Return(&ssm.GetParameterOutput{Parameter: &types.Parameter{Value: ptr("hunter2")}}, nil)

		value, err := sut.ReadSecret(t.Context(), name)

		require.NoError(t, err)
		require.Equal(t, "hunter2", value)
		require.Equal(t, []string{"aws.ssm.getParameter"}, spanNames(recorder))
	})

	t.Run("API error", func(t *testing.T) {
		mockSSM := &ifaces.MockSSM{}
		defer mockSSM.AssertExpectations(t)

		tracer, _ := testTracer()
		sut := &internal.SSMSecretReader{SSM: mockSSM, Tracer: tracer}

		mockSSM.On("GetParameter", mock.Anything, isDecryptedRead, mock.Anything).
			Return(nil, errors.New("bacon"))

		_, err := sut.ReadSecret(t.Context(), name)

		require.EqualError(t, err, "could not get secret from SSM: bacon")
	})

	t.Run("no value", func(t *testing.T) {
		mockSSM := &ifaces.MockSSM{}
		defer mockSSM.AssertExpectations(t)

		tracer, _ := testTracer()
		sut := &internal.SSMSecretReader{SSM: mockSSM, Tracer: tracer}

		mockSSM.On("GetParameter", mock.Anything, isDecryptedRead, mock.Anything).
			Return(&ssm.GetParameterOutput{}, nil)

		_, err := sut.ReadSecret(t.Context(), name)

		require.EqualError(t, err, "could not find secret value in SSM")
	})
}

func TestKeyVaultSecretReader_ReadSecret(t *testing.T) {
	const name = "redis-password"

	t.Run("OK", func(t *testing.T) {
		mockKeyVault := &ifaces.MockAzureKeyVault{}
		defer mockKeyVault.AssertExpectations(t)

		tracer, recorder := testTracer()
		sut := &internal.KeyVaultSecretReader{KeyVault: mockKeyVault, Tracer: tracer}

		mockKeyVault.On("GetSecret", mock.Anything, name).
			Return(azsecrets.GetSecretResponse{Secret: azsecrets.Secret{Value: ptr("hunter2")}}, nil)

		value, err := sut.ReadSecret(t.Context(), name)

		require.NoError(t, err)
		require.Equal(t, "hunter2", value)
		require.Equal(t, []string{"azure.keyvault.getSecret"}, spanNames(recorder))
	})

	t.Run("API error", func(t *testing.T) {
		mockKeyVault := &ifaces.MockAzureKeyVault{}
		defer mockKeyVault.AssertExpectations(t)

		tracer, _ := testTracer()
		sut := &internal.KeyVaultSecretReader{KeyVault: mockKeyVault, Tracer: tracer}

		mockKeyVault.On("GetSecret", mock.Anything, name).
			Return(azsecrets.GetSecretResponse{}, errors.New("bacon"))

		_, err := sut.ReadSecret(t.Context(), name)

		require.EqualError(t, err, "could not get secret from Key Vault: bacon")
	})

	t.Run("no value", func(t *testing.T) {
		mockKeyVault := &ifaces.MockAzureKeyVault{}
		defer mockKeyVault.AssertExpectations(t)

		tracer, _ := testTracer()
		sut := &internal.KeyVaultSecretReader{KeyVault: mockKeyVault, Tracer: tracer}

		mockKeyVault.On("GetSecret", mock.Anything, name).Return(azsecrets.GetSecretResponse{}, nil)

		_, err := sut.ReadSecret(t.Context(), name)

		require.EqualError(t, err, "could not find secret value in Key Vault")
	})
}

func TestNewKeyVaultSecretReader_RequiresVaultName(t *testing.T) {
	_, err := internal.NewKeyVaultSecretReader(&internal.RuntimeConfig{Platform: internal.PlatformAzure})

	require.ErrorIs(t, err, internal.ErrConfigurationInvalid)
	require.ErrorContains(t, err, "AZURE_KEY_VAULT_NAME")
}

func TestSecretManagerReader_ReadSecret(t *testing.T) {
	const name = "projects/my-project/secrets/rabbitmq-password/versions/latest"

	t.Run("OK", func(t *testing.T) {
		mockSecretManager := &ifaces.MockGCPSecretManager{}
		defer mockSecretManager.AssertExpectations(t)

		tracer, recorder := testTracer()
		sut := &internal.SecretManagerReader{SecretManager: mockSecretManager, Tracer: tracer}

		mockSecretManager.On("AccessSecretVersion", mock.Anything, name).Return([]byte("hunter2"), nil)

		value, err := sut.ReadSecret(t.Context(), name)

		require.NoError(t, err)
		require.Equal(t, "hunter2", value)
		require.Equal(t, []string{"gcp.secretmanager.accessSecretVersion"}, spanNames(recorder))
	})

	t.Run("API error", func(t *testing.T) {
		mockSecretManager := &ifaces.MockGCPSecretManager{}
		defer mockSecretManager.AssertExpectations(t)

		tracer, _ := testTracer()
		sut := &internal.SecretManagerReader{SecretManager: mockSecretManager, Tracer: tracer}

		mockSecretManager.On("AccessSecretVersion", mock.Anything, name).Return(nil, errors.New("bacon"))

		_, err := sut.ReadSecret(t.Context(), name)

		require.EqualError(t, err, "could not get secret from Secret Manager: bacon")
	})

	t.Run("no payload", func(t *testing.T) {
		mockSecretManager := &ifaces.MockGCPSecretManager{}
		defer mockSecretManager.AssertExpectations(t)

		tracer, _ := testTracer()
		sut := &internal.SecretManagerReader{SecretManager: mockSecretManager, Tracer: tracer}

		mockSecretManager.On("AccessSecretVersion", mock.Anything, name).Return(nil, nil)

		_, err := sut.ReadSecret(t.Context(), name)

		require.EqualError(t, err, "could not find secret value in Secret Manager")
	})

	t.Run("Close", func(t *testing.T) {
		mockSecretManager := &ifaces.MockGCPSecretManager{}
		defer mockSecretManager.AssertExpectations(t)

		sut := &internal.SecretManagerReader{SecretManager: mockSecretManager}

		mockSecretManager.On("Close").Return(nil)

		require.NoError(t, sut.Close())
	})
}
