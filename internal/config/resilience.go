package config

import "time"

// Retry configuration constants
const (
	// Loadsheet generation retry configuration. MaxAttempts counts the
	// initial attempt plus retries; backoff between attempts is linear,
	// attempt number times InitialWait, capped at MaxWait.
	GenerationMaxAttempts = 4
	GenerationInitialWait = 1 * time.Second
	GenerationMaxWait     = 10 * time.Second
	GenerationTimeout     = 10 * time.Second

	// Telemetry write retry configuration
	TelemetryWriteMaxAttempts = 2
	TelemetryWriteInitialWait = 250 * time.Millisecond
	TelemetryWriteMaxWait     = 1 * time.Second
	TelemetryWriteTimeout     = 5 * time.Second

	// Backend health check configuration
	HealthCheckMaxAttempts = 1
	HealthCheckInitialWait = 0 * time.Second
	HealthCheckMaxWait     = 0 * time.Second
	HealthCheckTimeout     = 5 * time.Second
)

// RetryConfig defines retry behavior for operations
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Timeout     time.Duration
}

// Backoff returns the wait before the next attempt after the given failed
// attempt (zero-based), linear in the attempt number and capped at MaxWait.
func (c RetryConfig) Backoff(attempt int) time.Duration {
	wait := time.Duration(attempt+1) * c.InitialWait
	if c.MaxWait > 0 && wait > c.MaxWait {
		wait = c.MaxWait
	}
	return wait
}

// ResilienceConfig contains all retry configurations
type ResilienceConfig struct {
	Generation     RetryConfig
	TelemetryWrite RetryConfig
	HealthCheck    RetryConfig
}

// DefaultResilienceConfig provides sensible defaults
var DefaultResilienceConfig = ResilienceConfig{
	Generation: RetryConfig{
		MaxAttempts: GenerationMaxAttempts,
		InitialWait: GenerationInitialWait,
		MaxWait:     GenerationMaxWait,
		Timeout:     GenerationTimeout,
	},
	TelemetryWrite: RetryConfig{
		MaxAttempts: TelemetryWriteMaxAttempts,
		InitialWait: TelemetryWriteInitialWait,
		MaxWait:     TelemetryWriteMaxWait,
		Timeout:     TelemetryWriteTimeout,
	},
	HealthCheck: RetryConfig{
		MaxAttempts: HealthCheckMaxAttempts,
		InitialWait: HealthCheckInitialWait,
		MaxWait:     HealthCheckMaxWait,
		Timeout:     HealthCheckTimeout,
	},
}
