// Package generation drives authoritative loadsheet generation through the
// external backend: per-edition state tracking, retry with linear backoff,
// idempotency, and asynchronous result notifications.
package generation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"loadmaster/internal/app"
	"loadmaster/internal/config"
	"loadmaster/internal/telemetry"

	"github.com/rs/zerolog/log"
)

// Result is the structured outcome of a generation call. Expected failures
// land in Err with a typed error from the app taxonomy; Result never carries
// a panic.
type Result struct {
	Success    bool
	StatusCode int
	Message    string
	RawBody    string
	Err        error
}

// Options tunes one GenerateLoadsheet call.
type Options struct {
	// MaxRetries is the number of retries after the initial attempt.
	// Negative values select the configured default.
	MaxRetries int

	// Force regenerates even when the edition is already Completed.
	Force bool
}

// DefaultOptions uses the configured retry budget without forcing.
var DefaultOptions = Options{MaxRetries: -1}

// Coordinator owns the per-edition generation state machine. The backend
// client and telemetry provider are externally owned singletons; the
// coordinator does not manage their lifecycle.
type Coordinator struct {
	backend    BackendAPI
	telemetry  TelemetryProvider
	resilience config.ResilienceConfig

	states map[app.LoadsheetType]*typeState

	planMu sync.Mutex
	plan   *app.FlightPlan
	dist   *app.LoadsheetData

	subMu         sync.Mutex
	subscriptions map[app.LoadsheetType]bool

	listenerMu sync.Mutex
	listeners  []func(LoadsheetReceived)

	// sleep is the suspension point between attempts; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewCoordinator creates a coordinator over the given collaborators. Missing
// collaborators are a construction-time contract violation.
func NewCoordinator(backendAPI BackendAPI, provider TelemetryProvider, resilience config.ResilienceConfig) *Coordinator {
	if backendAPI == nil {
		panic("generation: backend client is required")
	}
	if provider == nil {
		panic("generation: telemetry provider is required")
	}

	states := make(map[app.LoadsheetType]*typeState, len(app.LoadsheetTypes))
	for _, typ := range app.LoadsheetTypes {
		states[typ] = &typeState{}
	}

	return &Coordinator{
		backend:       backendAPI,
		telemetry:     provider,
		resilience:    resilience,
		states:        states,
		subscriptions: make(map[app.LoadsheetType]bool),
		sleep:         sleepContext,
	}
}

// SetFlightPlan installs the active flight plan and its computed passenger
// distribution, and resets both editions to NotStarted.
func (c *Coordinator) SetFlightPlan(plan *app.FlightPlan, dist *app.LoadsheetData) {
	c.planMu.Lock()
	c.plan = plan
	c.dist = dist
	c.planMu.Unlock()

	c.ResetStates()

	if plan != nil {
		log.Info().
			Str("flight", plan.FlightNumber).
			Int("passengers", plan.Passengers).
			Msg("Flight plan installed, generation states reset")
	}
}

// ResetStates returns both editions to NotStarted.
func (c *Coordinator) ResetStates() {
	for _, st := range c.states {
		st.set(StatusNotStarted, nil)
	}
}

// State returns a snapshot of one edition's generation state.
func (c *Coordinator) State(typ app.LoadsheetType) State {
	st, ok := c.states[typ]
	if !ok {
		return State{}
	}
	return st.snapshot()
}

// GenerateLoadsheet drives one edition through the backend. Calls for the
// same edition are strictly serialized; a concurrent call waits for the
// in-flight one and then observes its outcome (usually the Completed
// short-circuit). No failure mode escapes as a panic.
func (c *Coordinator) GenerateLoadsheet(ctx context.Context, typ app.LoadsheetType, opts Options) Result {
	st, ok := c.states[typ]
	if !ok {
		return Result{
			Message: fmt.Sprintf("unknown loadsheet type %q", typ),
			Err:     &app.ConfigurationError{Msg: fmt.Sprintf("unknown loadsheet type %q", typ)},
		}
	}

	st.opMu.Lock()
	defer st.opMu.Unlock()

	if st.snapshot().Status == StatusCompleted && !opts.Force {
		log.Debug().
			Str("type", string(typ)).
			Msg("Loadsheet already generated, skipping")
		return Result{Success: true, Message: "loadsheet already generated"}
	}

	if err := c.checkPreconditions(); err != nil {
		log.Warn().
			Err(err).
			Str("type", string(typ)).
			Msg("Loadsheet generation precondition not met")
		return Result{Message: err.Error(), Err: err}
	}

	st.set(StatusGenerating, nil)

	if err := c.pushInputs(); err != nil {
		st.set(StatusFailed, err)
		log.Error().
			Err(err).
			Str("type", string(typ)).
			Msg("Failed to push generation inputs to telemetry")
		return Result{Message: err.Error(), Err: err}
	}

	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = c.resilience.Generation.MaxAttempts - 1
	}

	result := c.attemptLoop(ctx, typ, maxRetries)

	if result.Success {
		st.set(StatusCompleted, nil)
		c.subscribe(typ)
		log.Info().
			Str("type", string(typ)).
			Int("status", result.StatusCode).
			Msg("Loadsheet generation accepted")
	} else {
		st.set(StatusFailed, result.Err)
		log.Error().
			Err(result.Err).
			Str("type", string(typ)).
			Msg("Loadsheet generation failed")
	}

	return result
}

// checkPreconditions verifies a flight plan is loaded and a fuel target has
// been established upstream. No retry, no network call on failure.
func (c *Coordinator) checkPreconditions() error {
	c.planMu.Lock()
	plan, dist := c.plan, c.dist
	c.planMu.Unlock()

	if plan == nil {
		return &app.PreconditionError{Msg: "flight plan not loaded"}
	}
	if dist == nil {
		return &app.PreconditionError{Msg: "passenger distribution not computed"}
	}

	target, err := c.telemetry.Read(telemetry.KeyRefuelTarget)
	if err != nil {
		return &app.PreconditionError{Msg: fmt.Sprintf("fuel target not readable: %v", err)}
	}
	if target <= 0 {
		return &app.PreconditionError{Msg: "fuel target not established"}
	}
	return nil
}

// pushInputs writes the generation inputs to the telemetry provider in fixed
// order: seat map, passenger statistics, planned cargo, fuel target. All
// writes must complete before the first backend attempt.
func (c *Coordinator) pushInputs() error {
	c.planMu.Lock()
	plan, dist := c.plan, c.dist
	c.planMu.Unlock()

	for i, count := range dist.PassengersByZone {
		if err := c.telemetry.Write(telemetry.ZoneAmountKey(i), float64(count)); err != nil {
			return err
		}
	}
	if err := c.telemetry.Write(telemetry.KeyPaxTotal, float64(dist.TotalPassengers)); err != nil {
		return err
	}
	if err := c.telemetry.Write(telemetry.KeyPlannedCargo, plan.CargoTotal); err != nil {
		return err
	}
	return c.telemetry.Write(telemetry.KeyRefuelTarget, plan.FuelTotal)
}

// attemptLoop runs the bounded attempt sequence against the backend. Panics
// are converted into a failure Result; they never propagate past the
// operation boundary.
func (c *Coordinator) attemptLoop(ctx context.Context, typ app.LoadsheetType, maxRetries int) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Str("type", string(typ)).
				Msg("Recovered panic during loadsheet generation")
			result = Result{
				Message: "internal error during loadsheet generation",
				Err:     fmt.Errorf("panic during loadsheet generation: %v", r),
			}
		}
	}()

	var lastErr error
	var lastStatus int
	var lastBody string

	for attempt := 0; attempt <= maxRetries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, c.resilience.Generation.Timeout)
		resp, err := c.backend.Generate(attemptCtx, typ)
		cancel()

		switch {
		case err != nil:
			lastErr = &app.TransientNetworkError{Op: "loadsheet generation", Err: err}
			log.Warn().
				Err(err).
				Str("type", string(typ)).
				Int("attempt", attempt).
				Int("max_retries", maxRetries).
				Msg("Loadsheet generation attempt failed")

		case resp.OK():
			return Result{
				Success:    true,
				StatusCode: resp.StatusCode,
				Message:    "loadsheet generation accepted",
			}

		default:
			lastStatus = resp.StatusCode
			lastBody = string(resp.Body)
			lastErr = &app.PermanentServerError{StatusCode: resp.StatusCode, Body: lastBody}
			log.Warn().
				Int("status", resp.StatusCode).
				Str("type", string(typ)).
				Int("attempt", attempt).
				Int("max_retries", maxRetries).
				Msg("Backend rejected loadsheet generation attempt")
		}

		if attempt < maxRetries {
			if err := c.sleep(ctx, c.resilience.Generation.Backoff(attempt)); err != nil {
				return Result{
					Message: "loadsheet generation aborted",
					Err:     fmt.Errorf("generation aborted during backoff: %w", err),
				}
			}
		}
	}

	return Result{
		StatusCode: lastStatus,
		Message:    fmt.Sprintf("loadsheet generation failed after %d attempts", maxRetries+1),
		RawBody:    lastBody,
		Err:        lastErr,
	}
}

// ResendLoadsheet asks the backend to re-deliver already generated
// loadsheets. True iff the backend accepted.
func (c *Coordinator) ResendLoadsheet(ctx context.Context) bool {
	resp, err := c.backend.Resend(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Loadsheet resend failed")
		return false
	}
	return resp.OK()
}

// ResetLoadsheets clears backend-held loadsheets; on success both editions
// return to NotStarted.
func (c *Coordinator) ResetLoadsheets(ctx context.Context) bool {
	resp, err := c.backend.Clear(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Loadsheet reset failed")
		return false
	}
	if !resp.OK() {
		log.Warn().Int("status", resp.StatusCode).Msg("Backend refused loadsheet reset")
		return false
	}

	c.ResetStates()
	log.Info().Msg("Backend loadsheets cleared, generation states reset")
	return true
}

// CheckServerStatus probes the backend health endpoint. Never returns an
// error; used as a pre-flight gate before generation.
func (c *Coordinator) CheckServerStatus(ctx context.Context) bool {
	healthCtx, cancel := context.WithTimeout(ctx, c.resilience.HealthCheck.Timeout)
	defer cancel()

	resp, err := c.backend.Health(healthCtx)
	if err != nil {
		log.Debug().Err(err).Msg("Backend health check failed")
		return false
	}
	return resp.OK()
}

// subscribe marks the edition's notification channel active. Subscribing
// twice is a no-op.
func (c *Coordinator) subscribe(typ app.LoadsheetType) {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	if c.subscriptions[typ] {
		return
	}
	c.subscriptions[typ] = true
	log.Debug().
		Str("type", string(typ)).
		Msg("Subscribed to loadsheet notifications")
}

// Subscribed reports whether the edition's notification channel is active.
func (c *Coordinator) Subscribed(typ app.LoadsheetType) bool {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	return c.subscriptions[typ]
}

// sleepContext waits for d or until the context is cancelled. Suspension
// point, not a busy-wait.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
