package loadsheet

import (
	"testing"

	"loadmaster/internal/app"
)

func TestDetectWeightLimitation(t *testing.T) {
	testCases := []struct {
		name      string
		est       float64
		max       float64
		threshold float64
		expected  bool
	}{
		{"WellBelow", 60000, 64300, 1000, false},
		{"Exceeds", 64500, 64300, 1000, true},
		{"ExactlyAtMax", 64300, 64300, 1000, true},
		{"ExactlyAtThreshold", 63300, 64300, 1000, true}, // boundary inclusive
		{"InsideThreshold", 63500, 64300, 1000, true},
		{"JustOutsideThreshold", 63299, 64300, 1000, false},
		{"WellOutsideThreshold", 63200, 64300, 1000, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectWeightLimitation(tc.est, tc.max, tc.threshold); got != tc.expected {
				t.Errorf("DetectWeightLimitation(%f, %f, %f) = %v, expected %v", tc.est, tc.max, tc.threshold, got, tc.expected)
			}
		})
	}
}

func baseData() *app.LoadsheetData {
	return &app.LoadsheetData{
		ZeroFuelWeight:    57100,
		ZeroFuelWeightMac: 34.90,
		TakeoffWeight:     63100,
		TakeoffWeightMac:  34.50,
		LandingWeight:     58900,
		TotalPassengers:   150,
	}
}

func TestDetectChanges(t *testing.T) {
	t.Run("NoChanges", func(t *testing.T) {
		changes := DetectChanges(baseData(), baseData(), WeightChangeTolerance, MacChangeTolerance)

		if changes.Any {
			t.Errorf("Expected no changes, got %+v", changes)
		}
	})

	t.Run("WeightAtToleranceNotFlagged", func(t *testing.T) {
		final := baseData()
		final.ZeroFuelWeight += WeightChangeTolerance // exactly the tolerance

		changes := DetectChanges(baseData(), final, WeightChangeTolerance, MacChangeTolerance)

		if changes.ZeroFuelWeight {
			t.Error("Expected |delta| == tolerance to NOT flag (strict comparison)")
		}
		if changes.Any {
			t.Errorf("Expected no changes, got %+v", changes)
		}
	})

	t.Run("WeightOverToleranceFlagged", func(t *testing.T) {
		final := baseData()
		final.ZeroFuelWeight += WeightChangeTolerance + 1

		changes := DetectChanges(baseData(), final, WeightChangeTolerance, MacChangeTolerance)

		if !changes.ZeroFuelWeight {
			t.Error("Expected ZFW change to be flagged")
		}
		if !changes.Any {
			t.Error("Expected Any to be set")
		}
	})

	t.Run("MacAtToleranceNotFlagged", func(t *testing.T) {
		final := baseData()
		final.TakeoffWeightMac += MacChangeTolerance

		changes := DetectChanges(baseData(), final, WeightChangeTolerance, MacChangeTolerance)

		if changes.TakeoffMac {
			t.Error("Expected MAC delta == tolerance to NOT flag (strict comparison)")
		}
	})

	t.Run("MacOverToleranceFlagged", func(t *testing.T) {
		final := baseData()
		final.TakeoffWeightMac += MacChangeTolerance + 0.01

		changes := DetectChanges(baseData(), final, WeightChangeTolerance, MacChangeTolerance)

		if !changes.TakeoffMac {
			t.Error("Expected MAC change to be flagged")
		}
	})

	t.Run("PassengerCountExact", func(t *testing.T) {
		final := baseData()
		final.TotalPassengers = 151

		changes := DetectChanges(baseData(), final, WeightChangeTolerance, MacChangeTolerance)

		if !changes.Passengers {
			t.Error("Expected any passenger difference to be flagged")
		}
	})

	t.Run("MultipleChanges", func(t *testing.T) {
		final := baseData()
		final.TakeoffWeight += 2000
		final.LandingWeight += 2000
		final.TotalPassengers = 148

		changes := DetectChanges(baseData(), final, WeightChangeTolerance, MacChangeTolerance)

		if !changes.TakeoffWeight || !changes.LandingWeight || !changes.Passengers {
			t.Errorf("Expected TOW, LAW and passenger changes, got %+v", changes)
		}
		if changes.ZeroFuelWeight || changes.ZeroFuelMac || changes.TakeoffMac {
			t.Errorf("Expected unchanged fields to stay unflagged, got %+v", changes)
		}
	})
}
