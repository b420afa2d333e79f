// Package mocks provides centralized mock implementations for testing.
//
// Mocks follow one pattern: a struct with a function field per interface
// method for customizable behavior, plus simple canned return values for the
// common case.
//
//	executor := &mocks.MockQueryExecutor{
//	    ExecuteFn: func(ctx context.Context, req query.Request) (*query.Result, error) {
//	        return query.NewDataResult(json.RawMessage(`[]`)), nil
//	    },
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Document any helper methods or special functionality
package mocks
