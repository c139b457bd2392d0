package ifaces

import "context"

// GCPSecretManager is an interface for the GCP Secret Manager client.
//
//go:generate mockery --output ./ --name GCPSecretManager --filename mock_gcp_secret_manager.go --outpkg ifaces --structname MockGCPSecretManager
type GCPSecretManager interface {
	// AccessSecretVersion returns the payload of a secret version, addressed by
	// its full resource name (projects/{project}/secrets/{secret}/versions/{version}).
	AccessSecretVersion(ctx context.Context, name string) ([]byte, error)

	// Close releases resources held by the client.
	Close() error
}
