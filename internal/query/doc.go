// Package query defines the contract between the HTTP layer and the remote
// query-execution service: a named operation plus a context mapping goes in,
// and exactly one of a data payload or an error payload comes back.
//
// The package deliberately knows nothing about transport. Implementations of
// Executor live under internal/platform.
package query
