package lola

import (
	"errors"
	"fmt"

	"github.com/phrazzld/lola-users/internal/query"
)

// Error definitions for the lola package.
var (
	// ErrMissingAPIKey is returned by NewClient when no API key is configured.
	ErrMissingAPIKey = errors.New("lola API key cannot be empty")

	// ErrInvalidBaseURL is returned by NewClient when the base URL is unusable.
	ErrInvalidBaseURL = errors.New("invalid lola base URL")

	// ErrTransport wraps failures to reach the query service.
	ErrTransport = fmt.Errorf("%w: transport failure", query.ErrUnavailable)

	// ErrUnexpectedResponse wraps responses that are not a valid
	// {data, error} envelope.
	ErrUnexpectedResponse = fmt.Errorf("%w: unexpected response", query.ErrUnavailable)
)
