package generation

import (
	"encoding/json"
	"fmt"

	"loadmaster/internal/app"

	"github.com/rs/zerolog/log"
)

// LoadsheetReceived is raised when the backend pushes a generated loadsheet.
type LoadsheetReceived struct {
	Type   app.LoadsheetType
	Flight string
	Data   app.LoadsheetData
}

// notificationPayload is the backend push schema. Loadsheet is a pointer so
// a missing object is distinguishable from a zero one.
type notificationPayload struct {
	Flight    string             `json:"flight"`
	Loadsheet *app.LoadsheetData `json:"loadsheet"`
}

// AddListener registers a callback for received loadsheets. Listeners are
// invoked synchronously in registration order.
func (c *Coordinator) AddListener(fn func(LoadsheetReceived)) {
	c.listenerMu.Lock()
	c.listeners = append(c.listeners, fn)
	c.listenerMu.Unlock()
}

// OnNotification handles one backend push for the given edition. Malformed
// payloads are logged and dropped; the notification pipeline keeps
// processing subsequent messages either way. The returned error reports what
// was dropped, for callers that track parse failures.
func (c *Coordinator) OnNotification(typ app.LoadsheetType, raw []byte) error {
	var payload notificationPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		parseErr := &app.ParseError{Source: "loadsheet notification", Err: err}
		log.Warn().
			Err(err).
			Str("type", string(typ)).
			Msg("Dropping malformed loadsheet notification")
		return parseErr
	}

	if err := validateNotification(&payload); err != nil {
		parseErr := &app.ParseError{Source: "loadsheet notification", Err: err}
		log.Warn().
			Err(err).
			Str("type", string(typ)).
			Str("flight", payload.Flight).
			Msg("Dropping invalid loadsheet notification")
		return parseErr
	}

	event := LoadsheetReceived{
		Type:   typ,
		Flight: payload.Flight,
		Data:   *payload.Loadsheet,
	}

	log.Info().
		Str("type", string(typ)).
		Str("flight", payload.Flight).
		Float64("zfw", event.Data.ZeroFuelWeight).
		Float64("tow", event.Data.TakeoffWeight).
		Msg("Loadsheet received from backend")

	c.listenerMu.Lock()
	listeners := make([]func(LoadsheetReceived), len(c.listeners))
	copy(listeners, c.listeners)
	c.listenerMu.Unlock()

	for _, fn := range listeners {
		fn(event)
	}

	return nil
}

// validateNotification rejects payloads that would propagate garbage figures
// downstream.
func validateNotification(payload *notificationPayload) error {
	if payload.Loadsheet == nil {
		return fmt.Errorf("missing loadsheet object")
	}
	data := payload.Loadsheet
	if data.ZeroFuelWeight <= 0 {
		return fmt.Errorf("non-positive zero fuel weight %f", data.ZeroFuelWeight)
	}
	if data.TakeoffWeight < data.ZeroFuelWeight {
		return fmt.Errorf("takeoff weight %f below zero fuel weight %f", data.TakeoffWeight, data.ZeroFuelWeight)
	}
	if data.TotalPassengers < 0 {
		return fmt.Errorf("negative passenger count %d", data.TotalPassengers)
	}
	return nil
}
