package generation

import (
	"context"

	"loadmaster/internal/app"
	"loadmaster/internal/backend"
)

// BackendAPI defines the backend client methods used by the Coordinator
type BackendAPI interface {
	Generate(ctx context.Context, typ app.LoadsheetType) (*backend.Response, error)
	Resend(ctx context.Context) (*backend.Response, error)
	Clear(ctx context.Context) (*backend.Response, error)
	Health(ctx context.Context) (*backend.Response, error)
}

// TelemetryProvider defines the telemetry provider methods used by the
// Coordinator
type TelemetryProvider interface {
	Read(key string) (float64, error)
	Write(key string, value float64) error
}
