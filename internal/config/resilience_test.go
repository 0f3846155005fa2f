package config

import (
	"testing"
	"time"
)

func TestRetryConfig(t *testing.T) {
	config := RetryConfig{
		MaxAttempts: 5,
		InitialWait: 2 * time.Second,
		MaxWait:     30 * time.Second,
		Timeout:     60 * time.Second,
	}

	if config.MaxAttempts != 5 {
		t.Errorf("Expected MaxAttempts 5, got %d", config.MaxAttempts)
	}

	if config.InitialWait != 2*time.Second {
		t.Errorf("Expected InitialWait 2s, got %v", config.InitialWait)
	}

	if config.MaxWait != 30*time.Second {
		t.Errorf("Expected MaxWait 30s, got %v", config.MaxWait)
	}

	if config.Timeout != 60*time.Second {
		t.Errorf("Expected Timeout 60s, got %v", config.Timeout)
	}
}

func TestRetryConfigBackoff(t *testing.T) {
	config := RetryConfig{
		MaxAttempts: 4,
		InitialWait: 1 * time.Second,
		MaxWait:     10 * time.Second,
		Timeout:     10 * time.Second,
	}

	testCases := []struct {
		name     string
		attempt  int
		expected time.Duration
	}{
		{"FirstRetry", 0, 1 * time.Second},
		{"SecondRetry", 1, 2 * time.Second},
		{"ThirdRetry", 2, 3 * time.Second},
		{"CappedAtMaxWait", 19, 10 * time.Second},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := config.Backoff(tc.attempt); got != tc.expected {
				t.Errorf("Expected backoff %v after attempt %d, got %v", tc.expected, tc.attempt, got)
			}
		})
	}
}

func TestRetryConfigBackoffUncapped(t *testing.T) {
	config := RetryConfig{
		MaxAttempts: 3,
		InitialWait: 500 * time.Millisecond,
	}

	// MaxWait of zero means no cap
	if got := config.Backoff(9); got != 5*time.Second {
		t.Errorf("Expected uncapped backoff 5s, got %v", got)
	}
}

func TestDefaultResilienceConfig(t *testing.T) {
	// Test that DefaultResilienceConfig has expected values
	if DefaultResilienceConfig.Generation.MaxAttempts != 4 {
		t.Errorf("Expected default Generation MaxAttempts 4, got %d", DefaultResilienceConfig.Generation.MaxAttempts)
	}

	if DefaultResilienceConfig.Generation.InitialWait != 1*time.Second {
		t.Errorf("Expected default Generation InitialWait 1s, got %v", DefaultResilienceConfig.Generation.InitialWait)
	}

	if DefaultResilienceConfig.Generation.MaxWait != 10*time.Second {
		t.Errorf("Expected default Generation MaxWait 10s, got %v", DefaultResilienceConfig.Generation.MaxWait)
	}

	if DefaultResilienceConfig.Generation.Timeout != 10*time.Second {
		t.Errorf("Expected default Generation Timeout 10s, got %v", DefaultResilienceConfig.Generation.Timeout)
	}

	// Test TelemetryWrite defaults
	if DefaultResilienceConfig.TelemetryWrite.MaxAttempts != 2 {
		t.Errorf("Expected default TelemetryWrite MaxAttempts 2, got %d", DefaultResilienceConfig.TelemetryWrite.MaxAttempts)
	}

	if DefaultResilienceConfig.TelemetryWrite.InitialWait != 250*time.Millisecond {
		t.Errorf("Expected default TelemetryWrite InitialWait 250ms, got %v", DefaultResilienceConfig.TelemetryWrite.InitialWait)
	}

	// Test HealthCheck defaults
	if DefaultResilienceConfig.HealthCheck.MaxAttempts != 1 {
		t.Errorf("Expected default HealthCheck MaxAttempts 1, got %d", DefaultResilienceConfig.HealthCheck.MaxAttempts)
	}

	if DefaultResilienceConfig.HealthCheck.Timeout != 5*time.Second {
		t.Errorf("Expected default HealthCheck Timeout 5s, got %v", DefaultResilienceConfig.HealthCheck.Timeout)
	}
}

func TestDefaultResilienceConfigImmutability(t *testing.T) {
	// Test that modifying the returned config doesn't affect the default
	original := DefaultResilienceConfig

	// Create a copy and modify it
	modified := DefaultResilienceConfig
	modified.Generation.MaxAttempts = 999

	// Verify original is unchanged
	if DefaultResilienceConfig.Generation.MaxAttempts != original.Generation.MaxAttempts {
		t.Error("DefaultResilienceConfig was unexpectedly modified")
	}

	if DefaultResilienceConfig.Generation.MaxAttempts == 999 {
		t.Error("DefaultResilienceConfig should not have been modified")
	}
}
