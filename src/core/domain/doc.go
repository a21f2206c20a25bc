// Package domain contains the core domain model for the employee API.
//
// This package defines:
//   - Entities: Employee, the single record managed by the service
//   - Value Objects: EmployeePatch, a typed partial update over the mutable fields
//   - Domain Errors: sentinel errors, DomainError and the ErrorKind classification
//
// Rules for this package:
//   - No external dependencies except the standard library
//   - No infrastructure concerns (database, HTTP, etc.)
//   - Identifiers are assigned by the record store, never by callers
//
// Example:
//
//	name := "Ada"
//	patch := domain.EmployeePatch{Name: &name}
//	updated := patch.ApplyTo(existing)
//	fmt.Println(patch.Fields()) // [name]
package domain
