// Package queries contains read operations. Handlers query the database directly
// with SQL and return read models shaped for the HTTP layer; they never lock rows
// and never mutate state.
package queries
