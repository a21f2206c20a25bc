// Package repo contains the record store implementations of the ports
// defined in src/core/ports.
//
//   - PostgresRepository keeps employees in the employees table through pgx.
//     Any type with the pgxpool.Pool query methods satisfies its Database
//     dependency, which lets tests substitute pgxmock.
//   - MemoryRepository keeps employees in a map guarded by a mutex and is
//     selected with APP_STORE=memory.
//
// Both assign identifiers with NewID and translate missing rows and email
// uniqueness violations into domain errors.
package repo
