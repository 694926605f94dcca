package testutil

import (
	"errors"
	"testing"

	"leaguerats/fetcher/requests"
)

const TransportError = "transport error occurred"

type OperationResult[T any] struct {
	Data T
	Err  error
}

// Return a generic typed error return for a backend call.
func GetMockTransportError[T any]() *OperationResult[T] {
	return NewErrorResult[T](TransportError)
}

func NewErrorResult[T any](err string) *OperationResult[T] {
	return &OperationResult[T]{
		Data: *new(T),
		Err:  errors.New(err),
	}
}

// Wrap a generic Data into a OperationResult struct.
func NewSuccessResult[T any](Data T) *OperationResult[T] {
	return &OperationResult[T]{
		Data: Data,
		Err:  nil,
	}
}

// Build a backend response from a JSON literal.
func JSONResponse(t *testing.T, status int, body string) *requests.Response {
	t.Helper()

	resp, err := requests.NewResponse(status, []byte(body))
	if err != nil {
		t.Fatalf("invalid response body %q: %v", body, err)
	}
	return resp
}
