// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra/repo. This ensures the core has no dependency on infrastructure.
package ports

import (
	"context"

	"employeeapi/src/core/domain"
)

// Repository is the base interface for all repositories.
// Concrete repositories should embed this and add entity-specific methods.
type Repository interface {
	// Health checks if the underlying storage is reachable.
	Health(ctx context.Context) error
}

// EmployeeRepository is the record store holding employees.
//
// Implementations assign identifiers on Create and enforce email uniqueness,
// returning a domain conflict error on violation. Lookups of unknown or
// malformed identifiers return a domain not found error.
type EmployeeRepository interface {
	Repository

	// List returns every employee ordered by creation time.
	List(ctx context.Context) ([]domain.Employee, error)

	// GetByID returns the employee with the given identifier.
	GetByID(ctx context.Context, id string) (*domain.Employee, error)

	// Create stores e under a newly assigned identifier and returns the stored record.
	Create(ctx context.Context, e domain.Employee) (*domain.Employee, error)

	// Update applies the set fields of patch to the employee and returns the
	// updated record. It returns a not found error if no row was updated.
	Update(ctx context.Context, id string, patch domain.EmployeePatch) (*domain.Employee, error)

	// Delete removes the employee. It returns a not found error if nothing was removed.
	Delete(ctx context.Context, id string) error
}
