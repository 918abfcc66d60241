// Package ports defines the persistence contracts of the assignment engine.
// Repositories load and store aggregates; the unit of work binds them to one
// transaction so that every command is atomic.
package ports
