package mocks

import (
	"context"
	"sync"

	"loadmaster/internal/app"
	"loadmaster/internal/backend"
)

// MockBackendClient is a test double for the backend client. Generate
// responses and errors are consumed per call; when a sequence runs out the
// last element (or a 200) is reused.
type MockBackendClient struct {
	mu sync.Mutex

	// Scripted Generate outcomes, consumed per call
	GenerateResponses []*backend.Response
	GenerateErrors    []error

	// Scripted outcomes for the single-shot endpoints
	ResendResponse *backend.Response
	ResendError    error
	ClearResponse  *backend.Response
	ClearError     error
	HealthResponse *backend.Response
	HealthError    error

	// Optional hook invoked inside Generate, for panic injection
	GenerateHook func()

	// Call tracking
	GenerateCalls      int
	GenerateCalledWith []app.LoadsheetType
	ResendCalls        int
	ClearCalls         int
	HealthCalls        int
}

// NewMockBackendClient creates a mock whose every endpoint succeeds.
func NewMockBackendClient() *MockBackendClient {
	return &MockBackendClient{}
}

func (m *MockBackendClient) Generate(ctx context.Context, typ app.LoadsheetType) (*backend.Response, error) {
	m.mu.Lock()
	call := m.GenerateCalls
	m.GenerateCalls++
	m.GenerateCalledWith = append(m.GenerateCalledWith, typ)
	hook := m.GenerateHook
	m.mu.Unlock()

	if hook != nil {
		hook()
	}

	if err := pick(m.GenerateErrors, call); err != nil {
		return nil, err
	}
	if resp := pick(m.GenerateResponses, call); resp != nil {
		return resp, nil
	}
	return &backend.Response{StatusCode: 200}, nil
}

func (m *MockBackendClient) Resend(ctx context.Context) (*backend.Response, error) {
	m.mu.Lock()
	m.ResendCalls++
	m.mu.Unlock()

	if m.ResendError != nil {
		return nil, m.ResendError
	}
	if m.ResendResponse != nil {
		return m.ResendResponse, nil
	}
	return &backend.Response{StatusCode: 200}, nil
}

func (m *MockBackendClient) Clear(ctx context.Context) (*backend.Response, error) {
	m.mu.Lock()
	m.ClearCalls++
	m.mu.Unlock()

	if m.ClearError != nil {
		return nil, m.ClearError
	}
	if m.ClearResponse != nil {
		return m.ClearResponse, nil
	}
	return &backend.Response{StatusCode: 200}, nil
}

func (m *MockBackendClient) Health(ctx context.Context) (*backend.Response, error) {
	m.mu.Lock()
	m.HealthCalls++
	m.mu.Unlock()

	if m.HealthError != nil {
		return nil, m.HealthError
	}
	if m.HealthResponse != nil {
		return m.HealthResponse, nil
	}
	return &backend.Response{StatusCode: 200}, nil
}

// pick returns the call-th element, reusing the last one when the sequence
// is shorter than the call count.
func pick[T any](seq []T, call int) T {
	var zero T
	if len(seq) == 0 {
		return zero
	}
	if call >= len(seq) {
		return seq[len(seq)-1]
	}
	return seq[call]
}
