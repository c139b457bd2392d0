package ifaces

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
)

// AzureKeyVault reads the latest version of a secret from a single vault.
//
//go:generate mockery --output ./ --name AzureKeyVault --filename mock_azure_keyvault.go --outpkg ifaces --structname MockAzureKeyVault
type AzureKeyVault interface {
	GetSecret(ctx context.Context, secretName string) (azsecrets.GetSecretResponse, error)
}
