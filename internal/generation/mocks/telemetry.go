package mocks

import (
	"sync"

	"loadmaster/internal/telemetry"
)

// WriteRecord captures one telemetry write in order.
type WriteRecord struct {
	Key   string
	Value float64
}

// MockTelemetryProvider is a test double for the telemetry provider with
// write-order tracking and per-key scripted failures.
type MockTelemetryProvider struct {
	mu sync.Mutex

	Values      map[string]float64
	ReadErrors  map[string]error
	WriteErrors map[string]error

	Writes []WriteRecord
}

// NewMockTelemetryProvider creates an empty mock telemetry provider.
func NewMockTelemetryProvider() *MockTelemetryProvider {
	return &MockTelemetryProvider{
		Values:      make(map[string]float64),
		ReadErrors:  make(map[string]error),
		WriteErrors: make(map[string]error),
	}
}

func (m *MockTelemetryProvider) Read(key string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ReadErrors[key]; err != nil {
		return 0, err
	}
	value, ok := m.Values[key]
	if !ok {
		return 0, telemetry.ErrNotFound
	}
	return value, nil
}

func (m *MockTelemetryProvider) Write(key string, value float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.WriteErrors[key]; err != nil {
		return &telemetry.WriteError{Key: key, Err: err}
	}

	m.Values[key] = value
	m.Writes = append(m.Writes, WriteRecord{Key: key, Value: value})
	return nil
}

// WriteKeys returns the keys written so far, in order.
func (m *MockTelemetryProvider) WriteKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, len(m.Writes))
	for i, w := range m.Writes {
		keys[i] = w.Key
	}
	return keys
}
