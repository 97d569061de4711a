// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture:
// handlers read straight from the database with SQL and return flat read models
// instead of loading aggregates.
//
// Every query is built through its constructor, which validates input and arms a
// guard.ConstructorGuard. Handlers reject zero-value queries with the matching
// ErrXQueryIsNotConstructed error.
package queries
