package testutil

import (
	"context"
	"testing"

	"leaguerats/fetcher/docstore"
	"leaguerats/fetcher/requests"

	"github.com/stretchr/testify/mock"
)

// Assert the expectations of all mocks.
func VerifyAllMocks(t *testing.T, mocks ...any) {
	t.Helper()

	for _, m := range mocks {
		if mockObj, ok := m.(interface{ AssertExpectations(mock.TestingT) bool }); ok {
			mockObj.AssertExpectations(t)
		}
	}
}

// ============================================================================
// Backend and storage mocks shared by the store tests.
// ============================================================================

// HTTP client mock implementation.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendRequest(ctx context.Context, request requests.Request) *requests.Response {
	args := m.Called(ctx, request)
	resp, _ := args.Get(0).(*requests.Response)
	return resp
}

// Asset resolver mock implementation.
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) URL(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

// Document store mock implementation, for failure paths the memory store can't produce.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, path string) (docstore.Document, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(docstore.Document), args.Error(1)
}

func (m *MockStore) Query(ctx context.Context, query docstore.Query) ([]docstore.Document, error) {
	args := m.Called(ctx, query)
	docs, _ := args.Get(0).([]docstore.Document)
	return docs, args.Error(1)
}

func (m *MockStore) Add(ctx context.Context, collection string, data any) (docstore.Document, error) {
	args := m.Called(ctx, collection, data)
	return args.Get(0).(docstore.Document), args.Error(1)
}

func (m *MockStore) Set(ctx context.Context, path string, data any) error {
	args := m.Called(ctx, path, data)
	return args.Error(0)
}

func (m *MockStore) Listen(ctx context.Context, path string, onSnapshot func(docstore.Snapshot), onError func(error)) (docstore.Unsubscribe, error) {
	args := m.Called(ctx, path, onSnapshot, onError)
	unsubscribe, _ := args.Get(0).(docstore.Unsubscribe)
	return unsubscribe, args.Error(1)
}

// Event publisher mock implementation.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(subject string, data []byte) error {
	args := m.Called(subject, data)
	return args.Error(0)
}
