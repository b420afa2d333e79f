package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/phrazzld/lola-users/internal/api/shared"
)

// Pagination defaults applied when the query string omits a value.
const (
	DefaultOffset PageParam = "0"
	DefaultLimit  PageParam = "10"
)

var jsonNumberRegex = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// PageParam is a pagination value taken verbatim from the query string. It is
// not validated: numeric literals are sent to the query service as JSON
// numbers and anything else as the original string.
type PageParam string

// MarshalJSON implements json.Marshaler.
func (p PageParam) MarshalJSON() ([]byte, error) {
	if jsonNumberRegex.MatchString(string(p)) {
		return []byte(p), nil
	}
	return json.Marshal(string(p))
}

// ListUsersContext is the context for the list users operation.
type ListUsersContext struct {
	Offset PageParam `json:"offset"`
	Limit  PageParam `json:"limit"`
}

// UserIDContext is the context for operations addressing one user by path ID.
type UserIDContext struct {
	ID string `json:"id"`
}

// CreateUserContext is the context for the create user operation. Each field
// holds the raw JSON value the caller sent; absent fields are omitted.
type CreateUserContext struct {
	FirstName json.RawMessage `json:"firstName,omitempty"`
	LastName  json.RawMessage `json:"lastName,omitempty"`
	Email     json.RawMessage `json:"email,omitempty"`
	Password  json.RawMessage `json:"password,omitempty"`
}

// UpdateUserContext is the context for the update user operation: whichever
// of the four user columns the body carries, plus the user ID from the path.
// Other body properties are not forwarded.
type UpdateUserContext struct {
	FirstName json.RawMessage `json:"firstName,omitempty"`
	LastName  json.RawMessage `json:"lastName,omitempty"`
	Email     json.RawMessage `json:"email,omitempty"`
	Password  json.RawMessage `json:"password,omitempty"`
	UserID    string          `json:"userId"`
}

// pageParam reads a pagination value, falling back to def when the key is
// absent or empty.
func pageParam(r *http.Request, key string, def PageParam) PageParam {
	if v := r.URL.Query().Get(key); v != "" {
		return PageParam(v)
	}
	return def
}

// decodeBody decodes the request body into a T. Bodies are not validated: an
// empty or undecodable body yields the zero value and the request proceeds.
func decodeBody[T any](r *http.Request, log *slog.Logger) T {
	var v T
	if r.Body == nil {
		return v
	}

	if err := shared.DecodeJSON(r, &v); err != nil {
		if !errors.Is(err, io.EOF) {
			log.Debug("ignoring undecodable request body", slog.String("error", err.Error()))
		}
		var zero T
		return zero
	}
	return v
}
