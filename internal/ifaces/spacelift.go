package ifaces

import (
	"context"

	"github.com/shurcooL/graphql"
)

// Spacelift is the GraphQL query surface of the Spacelift client, used to read
// the number of runs waiting for a worker pool.
//
//go:generate mockery --inpackage --name Spacelift --filename mock_spacelift.go
type Spacelift interface {
	Query(context.Context, interface{}, map[string]interface{}, ...graphql.RequestOption) error
}
