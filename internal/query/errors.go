package query

import "errors"

// Error definitions for the query package.
var (
	// ErrInvalidResult is returned when a response is not a result envelope,
	// or an executor produced no result at all.
	ErrInvalidResult = errors.New("invalid query result")

	// ErrMissingOperationID is returned when a request names no operation.
	ErrMissingOperationID = errors.New("operation ID cannot be empty")

	// ErrUnavailable is the root of every failure to obtain a result from the
	// query service. Executors wrap it so callers can classify errors without
	// knowing the transport.
	ErrUnavailable = errors.New("query service unavailable")
)
