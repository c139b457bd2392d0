package ifaces

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/stretchr/testify/mock"
)

// MockAzureKeyVault is a mock implementation of AzureKeyVault.
type MockAzureKeyVault struct {
	mock.Mock
}

// GetSecret provides a mock function with given fields: ctx, secretName
func (_m *MockAzureKeyVault) GetSecret(ctx context.Context, secretName string) (azsecrets.GetSecretResponse, error) {
	ret := _m.Called(ctx, secretName)

	return ret.Get(0).(azsecrets.GetSecretResponse), ret.Error(1)
}
