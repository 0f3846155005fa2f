// Package telemetry defines the variable read/write contract between the
// loadsheet engine and the simulator bridge. The bridge itself (SimConnect,
// X-Plane UDP, WebSocket) is owned by the caller; this package only fixes the
// key catalog and the provider interface.
package telemetry

import (
	"errors"
	"fmt"

	"loadmaster/internal/app"
)

// Simulator variable keys. Amount keys are readable and writable; capacity
// keys are read-only on every known bridge.
const (
	KeyEmptyWeight  = "aircraft/empty_weight"
	KeyRefuelTarget = "fuel/refuel_target"

	KeyPaxTotal = "payload/pax/total"

	KeyFwdCargoCapacity = "payload/cargo/fwd/capacity"
	KeyFwdCargoAmount   = "payload/cargo/fwd/amount"
	KeyAftCargoCapacity = "payload/cargo/aft/capacity"
	KeyAftCargoAmount   = "payload/cargo/aft/amount"
	KeyPlannedCargo     = "payload/cargo/planned"
)

// ZoneCapacityKey returns the capacity key for a cabin zone (zero-based).
func ZoneCapacityKey(zone int) string {
	return fmt.Sprintf("payload/pax/zone%d/capacity", zone+1)
}

// ZoneAmountKey returns the occupancy key for a cabin zone (zero-based).
func ZoneAmountKey(zone int) string {
	return fmt.Sprintf("payload/pax/zone%d/amount", zone+1)
}

// TankAmountKey returns the fuel quantity key for a tank name from
// app.FuelTanks.
func TankAmountKey(tank string) string {
	return fmt.Sprintf("fuel/tank/%s/amount", tank)
}

// ErrNotFound is returned by Read for keys the bridge does not expose.
var ErrNotFound = errors.New("telemetry key not found")

// WriteError wraps a failed variable write with the key it targeted.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write telemetry key %s: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Provider reads and writes simulator variables. Implementations must be safe
// for concurrent use; the generation coordinator and the balance engine may
// access the same provider from different goroutines.
type Provider interface {
	Read(key string) (float64, error)
	Write(key string, value float64) error
}

// Prime seeds a provider with the static values derived from an aircraft
// profile so the capacity keys resolve before the first simulator sync.
func Prime(p Provider, profile app.AircraftProfile) error {
	writes := map[string]float64{
		KeyEmptyWeight:      profile.EmptyWeight,
		KeyFwdCargoCapacity: profile.ForwardCargoCapacity,
		KeyAftCargoCapacity: profile.AftCargoCapacity,
	}
	for i, cap := range profile.ZoneCapacities {
		writes[ZoneCapacityKey(i)] = float64(cap)
	}

	for key, value := range writes {
		if err := p.Write(key, value); err != nil {
			return err
		}
	}
	return nil
}
