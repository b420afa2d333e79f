package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/lola-users/internal/query"
)

// MockQueryExecutor implements query.Executor for testing.
type MockQueryExecutor struct {
	// ExecuteFn customizes behavior. When nil, Result and Err are returned.
	ExecuteFn func(ctx context.Context, req query.Request) (*query.Result, error)

	Result *query.Result
	Err    error

	mu       sync.Mutex
	requests []query.Request
}

// NewMockQueryExecutor returns a mock that answers every call with result.
func NewMockQueryExecutor(result *query.Result) *MockQueryExecutor {
	return &MockQueryExecutor{Result: result}
}

// Execute implements the query.Executor interface
func (m *MockQueryExecutor) Execute(ctx context.Context, req query.Request) (*query.Result, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx, req)
	}
	return m.Result, m.Err
}

// Requests returns a copy of every request received so far.
func (m *MockQueryExecutor) Requests() []query.Request {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]query.Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// LastRequest returns the most recent request, or false if there was none.
func (m *MockQueryExecutor) LastRequest() (query.Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.requests) == 0 {
		return query.Request{}, false
	}
	return m.requests[len(m.requests)-1], true
}
