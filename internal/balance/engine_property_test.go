package balance

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestWeightDistributionProperties uses property-based testing
func TestWeightDistributionProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: zone counts always sum to the planned passenger count,
	// regardless of seed
	properties.Property("zone counts sum to planned passengers", prop.ForAll(
		func(passengers int, seed int64) bool {
			engine := NewEngine(testProfile(), seed)
			plan := testPlan()
			plan.Passengers = passengers

			data, _, err := engine.ComputePreliminary(plan)
			if err != nil {
				return false
			}

			sum := 0
			for _, count := range data.PassengersByZone {
				sum += count
			}
			return sum == passengers && data.TotalPassengers == passengers
		},
		gen.IntRange(0, 180),
		gen.Int64(),
	))

	// Property: cargo never exceeds per-hold capacity and the combined total
	// is clamped to combined capacity
	properties.Property("cargo respects hold capacities", prop.ForAll(
		func(cargo float64, seed int64) bool {
			engine := NewEngine(testProfile(), seed)
			plan := testPlan()
			plan.CargoTotal = cargo

			data, warnings, err := engine.ComputePreliminary(plan)
			if err != nil {
				return false
			}

			if data.ForwardCargoWeight > 2500+1e-9 || data.AftCargoWeight > 2500+1e-9 {
				return false
			}
			if data.ForwardCargoWeight+data.AftCargoWeight > 5000+1e-9 {
				return false
			}
			// A clamp must be accompanied by a warning
			if cargo > 5000 && len(warnings) == 0 {
				return false
			}
			return true
		},
		gen.Float64Range(0, 12000),
		gen.Int64(),
	))

	// Property: ConvertToMAC is linear and monotonically decreasing in CG
	properties.Property("MAC conversion monotonically decreasing", prop.ForAll(
		func(cgA, cgB float64) bool {
			engine := NewEngine(testProfile(), 1)
			if cgA == cgB {
				return true
			}
			lower, higher := cgA, cgB
			if lower > higher {
				lower, higher = higher, lower
			}
			return engine.ConvertToMAC(lower) > engine.ConvertToMAC(higher)
		},
		gen.Float64Range(-30, 10),
		gen.Float64Range(-30, 10),
	))

	// Property: CG equals moment over weight for both ZFW and TOW
	properties.Property("CG is moment over weight", prop.ForAll(
		func(passengers int, seed int64) bool {
			profile := testProfile()
			engine := NewEngine(profile, seed)
			plan := testPlan()
			plan.Passengers = passengers

			data, _, err := engine.ComputePreliminary(plan)
			if err != nil {
				return false
			}

			moment := profile.EmptyWeight * profile.EmptyWeightCG
			for i, count := range data.PassengersByZone {
				moment += float64(count) * profile.PassengerWeight * profile.ZoneArms[i]
			}
			moment += data.ForwardCargoWeight*profile.ForwardCargoArm + data.AftCargoWeight*profile.AftCargoArm

			if math.Abs(data.ZeroFuelWeightCG-moment/data.ZeroFuelWeight) > 1e-9 {
				return false
			}

			for tank, amount := range data.FuelByTank {
				moment += amount * profile.TankArms[tank]
			}
			return math.Abs(data.TakeoffWeightCG-moment/data.TakeoffWeight) < 1e-9
		},
		gen.IntRange(1, 180),
		gen.Int64(),
	))

	// Property: fuel tanks keep the fixed proportions under the shared jitter
	properties.Property("fuel split preserves proportions", prop.ForAll(
		func(fuel float64, seed int64) bool {
			engine := NewEngine(testProfile(), seed)
			plan := testPlan()
			plan.FuelTotal = fuel

			data, _, err := engine.ComputePreliminary(plan)
			if err != nil {
				return false
			}

			if fuel == 0 {
				return data.FuelWeight == 0
			}
			if math.Abs(data.FuelByTank["left"]-data.FuelByTank["right"]) > 1e-9 {
				return false
			}
			// center / total must stay exactly 35% because the jitter factor
			// is shared across tanks
			return math.Abs(data.FuelByTank["center"]/data.FuelWeight-0.35) < 1e-9
		},
		gen.Float64Range(0, 18000),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
