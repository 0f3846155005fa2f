// Package balance implements the weight distribution engine: allocation of
// passengers, cargo and fuel across the aircraft, and derivation of
// ZFW/TOW/CG/MAC figures. All functions are pure given the injected random
// source; callers log, the engine returns values.
package balance

import (
	"fmt"
	"math"
	"math/rand"

	"loadmaster/internal/app"
	"loadmaster/internal/telemetry"
)

const (
	// Passenger and cargo jitter spreads for preliminary estimation.
	zoneJitterSpread  = 0.02
	cargoJitterSpread = 0.025

	// Nominal forward hold share of total cargo.
	forwardCargoRatio = 0.45

	// Preliminary landing weight assumes this fraction of fuel burned.
	assumedTripBurn = 0.15
)

// fuelShares is the fixed tank split: center 35%, wings 32.5% each.
var fuelShares = map[string]float64{
	"center": 0.35,
	"left":   0.325,
	"right":  0.325,
}

// TelemetryReader is the read side of the telemetry provider used by
// ComputeFinal.
type TelemetryReader interface {
	Read(key string) (float64, error)
}

// Engine computes loadsheet data for one aircraft profile. The random source
// is injected and seedable so estimates are reproducible.
type Engine struct {
	profile app.AircraftProfile
	rng     *rand.Rand
}

// NewEngine creates an engine for the given profile, seeding the internal
// random source.
func NewEngine(profile app.AircraftProfile, seed int64) *Engine {
	return &Engine{
		profile: profile,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// ConvertToMAC converts an absolute CG position to a percentage of the mean
// aerodynamic chord. Pure and monotonically decreasing in cg;
// ConvertToMAC(LeadingEdgeMAC) == 0.
func (e *Engine) ConvertToMAC(cg float64) float64 {
	return -100 * (cg - e.profile.LeadingEdgeMAC) / e.profile.MACSize
}

// jitter returns a multiplicative factor in [1-spread, 1+spread].
func (e *Engine) jitter(spread float64) float64 {
	return 1 + (e.rng.Float64()*2-1)*spread
}

// ComputePreliminary estimates a loadsheet from planned figures. Passengers
// are spread over the cabin zones by load factor with per-zone jitter, then
// corrected so the zone counts sum to the planned count exactly.
func (e *Engine) ComputePreliminary(plan app.FlightPlan) (*app.LoadsheetData, []app.Warning, error) {
	totalCap := e.profile.TotalZoneCapacity()
	if totalCap == 0 {
		return nil, nil, &app.ConfigurationError{Msg: "total zone capacity is zero"}
	}

	loadFactor := float64(plan.Passengers) / float64(totalCap)
	if loadFactor > 1 {
		loadFactor = 1
	}

	var zones [app.PassengerZones]int
	allocated := 0
	for i, capacity := range e.profile.ZoneCapacities {
		zones[i] = int(float64(capacity) * loadFactor * e.jitter(zoneJitterSpread))
		allocated += zones[i]
	}

	// Correction pass: zones 1-3 take a share of the difference proportional
	// to capacity (integer truncation), the last zone absorbs the exact
	// remainder so the sum always matches the planned count.
	diff := plan.Passengers - allocated
	distributed := 0
	for i := 0; i < app.PassengerZones-1; i++ {
		share := int(float64(diff) * float64(e.profile.ZoneCapacities[i]) / float64(totalCap))
		zones[i] += share
		distributed += share
	}
	zones[app.PassengerZones-1] += diff - distributed

	var warnings []app.Warning

	cargoTotal := plan.CargoTotal
	if combined := e.profile.CombinedCargoCapacity(); cargoTotal > combined {
		warnings = append(warnings, app.Warning{
			Code:    app.WarnCapacityExceeded,
			Message: fmt.Sprintf("planned cargo %.0f kg exceeds combined hold capacity %.0f kg, clamped", cargoTotal, combined),
		})
		cargoTotal = combined
	}

	forwardRatio := forwardCargoRatio + (e.jitter(cargoJitterSpread) - 1)
	fwdCargo := math.Min(cargoTotal*forwardRatio, e.profile.ForwardCargoCapacity)
	aftCargo := math.Min(cargoTotal-fwdCargo, e.profile.AftCargoCapacity)

	// One shared jitter factor keeps the tank proportions balanced.
	fuelJitter := e.jitter(zoneJitterSpread)
	fuelByTank := make(map[string]float64, len(app.FuelTanks))
	fuelTotal := 0.0
	for _, tank := range app.FuelTanks {
		amount := plan.FuelTotal * fuelShares[tank] * fuelJitter
		fuelByTank[tank] = amount
		fuelTotal += amount
	}

	data, err := e.derive(zones, plan.Passengers, fwdCargo, aftCargo, fuelByTank, fuelTotal)
	if err != nil {
		return nil, warnings, err
	}

	data.LandingWeight = data.ZeroFuelWeight + fuelTotal*(1-assumedTripBurn)

	return data, warnings, nil
}

// ComputeFinal builds a loadsheet from actual telemetry readings. Cargo
// readings over hold capacity are clamped with a warning; landing weight is
// TOW minus the planned trip fuel.
func (e *Engine) ComputeFinal(reader TelemetryReader, tripFuel float64) (*app.LoadsheetData, []app.Warning, error) {
	if e.profile.TotalZoneCapacity() == 0 {
		return nil, nil, &app.ConfigurationError{Msg: "total zone capacity is zero"}
	}

	var zones [app.PassengerZones]int
	totalPax := 0
	for i := range zones {
		value, err := reader.Read(telemetry.ZoneAmountKey(i))
		if err != nil {
			return nil, nil, &app.ParseError{Source: telemetry.ZoneAmountKey(i), Err: err}
		}
		zones[i] = int(math.Round(value))
		totalPax += zones[i]
	}

	var warnings []app.Warning

	fwdCargo, err := reader.Read(telemetry.KeyFwdCargoAmount)
	if err != nil {
		return nil, nil, &app.ParseError{Source: telemetry.KeyFwdCargoAmount, Err: err}
	}
	if fwdCargo > e.profile.ForwardCargoCapacity {
		warnings = append(warnings, app.Warning{
			Code:    app.WarnCapacityExceeded,
			Message: fmt.Sprintf("forward cargo reading %.0f kg exceeds capacity %.0f kg, clamped", fwdCargo, e.profile.ForwardCargoCapacity),
		})
		fwdCargo = e.profile.ForwardCargoCapacity
	}

	aftCargo, err := reader.Read(telemetry.KeyAftCargoAmount)
	if err != nil {
		return nil, nil, &app.ParseError{Source: telemetry.KeyAftCargoAmount, Err: err}
	}
	if aftCargo > e.profile.AftCargoCapacity {
		warnings = append(warnings, app.Warning{
			Code:    app.WarnCapacityExceeded,
			Message: fmt.Sprintf("aft cargo reading %.0f kg exceeds capacity %.0f kg, clamped", aftCargo, e.profile.AftCargoCapacity),
		})
		aftCargo = e.profile.AftCargoCapacity
	}

	fuelByTank := make(map[string]float64, len(app.FuelTanks))
	fuelTotal := 0.0
	for _, tank := range app.FuelTanks {
		amount, err := reader.Read(telemetry.TankAmountKey(tank))
		if err != nil {
			return nil, nil, &app.ParseError{Source: telemetry.TankAmountKey(tank), Err: err}
		}
		fuelByTank[tank] = amount
		fuelTotal += amount
	}

	data, err := e.derive(zones, totalPax, fwdCargo, aftCargo, fuelByTank, fuelTotal)
	if err != nil {
		return nil, warnings, err
	}

	data.LandingWeight = data.TakeoffWeight - tripFuel

	return data, warnings, nil
}

// derive computes weights, moments, CG and MAC figures from an allocation.
func (e *Engine) derive(zones [app.PassengerZones]int, totalPax int, fwdCargo, aftCargo float64, fuelByTank map[string]float64, fuelTotal float64) (*app.LoadsheetData, error) {
	p := e.profile

	zfw := p.EmptyWeight + float64(totalPax)*p.PassengerWeight + fwdCargo + aftCargo
	if zfw <= 0 {
		return nil, &app.ComputationError{Msg: "zero fuel weight must be positive to derive CG"}
	}

	zfwMoment := p.EmptyWeight * p.EmptyWeightCG
	for i, count := range zones {
		zfwMoment += float64(count) * p.PassengerWeight * p.ZoneArms[i]
	}
	zfwMoment += fwdCargo*p.ForwardCargoArm + aftCargo*p.AftCargoArm

	tow := zfw + fuelTotal
	towMoment := zfwMoment
	for tank, amount := range fuelByTank {
		towMoment += amount * p.TankArms[tank]
	}

	zfwCG := zfwMoment / zfw
	towCG := towMoment / tow

	return &app.LoadsheetData{
		ZeroFuelWeight:    zfw,
		ZeroFuelWeightCG:  zfwCG,
		ZeroFuelWeightMac: e.ConvertToMAC(zfwCG),

		TakeoffWeight:    tow,
		TakeoffWeightCG:  towCG,
		TakeoffWeightMac: e.ConvertToMAC(towCG),

		FuelWeight: fuelTotal,

		TotalPassengers:    totalPax,
		PassengersByZone:   zones,
		ForwardCargoWeight: fwdCargo,
		AftCargoWeight:     aftCargo,
		FuelByTank:         fuelByTank,
	}, nil
}
