package ports

import (
	"context"
)

// HealthChecker is implemented by any dependency whose reachability is
// reported on the detailed health endpoint.
type HealthChecker interface {
	// Health checks if the dependency is reachable.
	Health(ctx context.Context) error
}
