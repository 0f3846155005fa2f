package loadsheet

import (
	"math"

	"loadmaster/internal/app"
)

// Default tolerances for limit flagging and preliminary/final comparison.
const (
	// WeightLimitThreshold flags weights within this margin of a maximum.
	WeightLimitThreshold = 1000.0

	// WeightChangeTolerance is the strict threshold for a weight revision.
	WeightChangeTolerance = 1000.0

	// MacChangeTolerance is the strict threshold for a MAC revision.
	MacChangeTolerance = 0.5
)

// DetectWeightLimitation reports whether an estimated weight exceeds its
// maximum or approaches it within threshold. The boundary is inclusive:
// max - est == threshold still flags.
func DetectWeightLimitation(est, max, threshold float64) bool {
	return est > max || max-est <= threshold
}

// ChangeSet records which fields changed materially between the preliminary
// and final loadsheet. Any selects the final header variant.
type ChangeSet struct {
	ZeroFuelWeight bool
	TakeoffWeight  bool
	LandingWeight  bool
	ZeroFuelMac    bool
	TakeoffMac     bool
	Passengers     bool
	Any            bool
}

// DetectChanges compares preliminary and final figures. Weight fields are
// flagged only when the difference strictly exceeds weightTol, MAC fields
// when it strictly exceeds macTol, passenger counts on any difference.
func DetectChanges(prelim, final *app.LoadsheetData, weightTol, macTol float64) ChangeSet {
	changes := ChangeSet{
		ZeroFuelWeight: math.Abs(prelim.ZeroFuelWeight-final.ZeroFuelWeight) > weightTol,
		TakeoffWeight:  math.Abs(prelim.TakeoffWeight-final.TakeoffWeight) > weightTol,
		LandingWeight:  math.Abs(prelim.LandingWeight-final.LandingWeight) > weightTol,
		ZeroFuelMac:    math.Abs(prelim.ZeroFuelWeightMac-final.ZeroFuelWeightMac) > macTol,
		TakeoffMac:     math.Abs(prelim.TakeoffWeightMac-final.TakeoffWeightMac) > macTol,
		Passengers:     prelim.TotalPassengers != final.TotalPassengers,
	}

	changes.Any = changes.ZeroFuelWeight ||
		changes.TakeoffWeight ||
		changes.LandingWeight ||
		changes.ZeroFuelMac ||
		changes.TakeoffMac ||
		changes.Passengers

	return changes
}
