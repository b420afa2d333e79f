package query

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Executor runs a pre-registered operation on the remote query service.
//
// A returned error means the call itself failed (transport, malformed
// response). A failure reported by the remote operation is not an error: it
// comes back as a Result whose Error payload is set.
type Executor interface {
	Execute(ctx context.Context, req Request) (*Result, error)
}

// Request names a remote operation and carries the values substituted into
// its definition.
type Request struct {
	// OperationID is opaque and externally configured.
	OperationID string

	// Context is a fixed-shape record that marshals to a JSON object.
	Context any
}

// Validate checks that the request names an operation.
func (r Request) Validate() error {
	if r.OperationID == "" {
		return ErrMissingOperationID
	}
	return nil
}

// Result is the outcome of a remote operation. The operation failed when
// Error holds a non-null payload; otherwise it succeeded and Data, which may
// be absent or null, is its payload.
type Result struct {
	Data  json.RawMessage `json:"data,omitempty"`
	Error json.RawMessage `json:"error,omitempty"`
}

// NewDataResult returns a successful result carrying data.
func NewDataResult(data json.RawMessage) *Result {
	return &Result{Data: data}
}

// NewErrorResult returns a failed result carrying the remote error payload.
func NewErrorResult(payload json.RawMessage) *Result {
	return &Result{Error: payload}
}

// DecodeResult decodes a {"data": ..., "error": ...} envelope. The error
// payload decides the outcome: a non-null error is a failure and any data
// next to it is dropped. Anything other than a JSON object is rejected with
// ErrInvalidResult.
func DecodeResult(raw []byte) (*Result, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResult, err)
	}
	if envelope == nil {
		return nil, fmt.Errorf("%w: envelope is null", ErrInvalidResult)
	}

	if errPayload := envelope["error"]; present(errPayload) {
		return NewErrorResult(errPayload), nil
	}
	return NewDataResult(envelope["data"]), nil
}

// Failed reports whether the remote operation reported an error.
func (r *Result) Failed() bool {
	return present(r.Error)
}

// Payload returns the error payload of a failed result, or the data payload
// of a successful one. Absent data is returned as a JSON null.
func (r *Result) Payload() json.RawMessage {
	if r.Failed() {
		return r.Error
	}
	if len(bytes.TrimSpace(r.Data)) == 0 {
		return json.RawMessage("null")
	}
	return r.Data
}

// present treats an absent payload and a JSON null the same way.
func present(payload json.RawMessage) bool {
	trimmed := bytes.TrimSpace(payload)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}
