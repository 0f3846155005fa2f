package telemetry

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// MemoryProvider is a mutex-guarded in-memory Provider. It stands in when no
// simulator bridge is attached (offline planning mode) and backs tests.
type MemoryProvider struct {
	mu     sync.Mutex
	values map[string]float64
}

// NewMemoryProvider creates an empty in-memory provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		values: make(map[string]float64),
	}
}

// Read returns the stored value for key, or ErrNotFound.
func (p *MemoryProvider) Read(key string) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	value, ok := p.values[key]
	if !ok {
		return 0, ErrNotFound
	}
	return value, nil
}

// Write stores value under key. Writes to an in-memory provider cannot fail.
func (p *MemoryProvider) Write(key string, value float64) error {
	p.mu.Lock()
	p.values[key] = value
	p.mu.Unlock()

	log.Trace().
		Str("key", key).
		Float64("value", value).
		Msg("Telemetry write")

	return nil
}

// Snapshot returns a copy of all stored values, for diagnostics.
func (p *MemoryProvider) Snapshot() map[string]float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[string]float64, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}
