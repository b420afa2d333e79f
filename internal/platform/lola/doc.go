// Package lola provides an implementation of the query.Executor interface
// backed by the Lola managed query service's HTTP API.
//
// This package is an infrastructure adapter: it knows how to authenticate,
// encode an operation request, and decode the {data, error} envelope the
// service answers with. It does not interpret operation IDs or payloads, and
// it never retries.
//
// Every call is wrapped in an OpenTelemetry client span and observed by a
// Prometheus histogram when the corresponding options are supplied.
package lola
