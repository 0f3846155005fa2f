// Package loadsheet renders computed weight and balance data into the fixed
// airline loadsheet text format consumed by the ACARS composer and the EFB
// display, and classifies limit and revision conditions.
package loadsheet

import (
	"fmt"
	"math"
	"strings"
	"time"

	"loadmaster/internal/app"
)

// FormatPreliminary renders the preliminary loadsheet. The output is a pure
// function of its arguments; the crew block is cosmetic filler supplied by
// the caller.
func FormatPreliminary(data *app.LoadsheetData, limits app.OperatingLimits, plan app.FlightPlan, issuedAt time.Time, crew Crew) string {
	var b strings.Builder

	writeHeader(&b, "PRELIM", 1, "", issuedAt)
	writeFlightLine(&b, plan, issuedAt)
	writeBody(&b, data, limits, plan, crew, ChangeSet{})

	return b.String()
}

// FormatFinal renders the final loadsheet. The header announces either
// revisions to or compliance with the preliminary edition depending on
// whether any field changed materially.
func FormatFinal(final, prelim *app.LoadsheetData, limits app.OperatingLimits, plan app.FlightPlan, issuedAt time.Time, crew Crew) string {
	changes := DetectChanges(prelim, final, WeightChangeTolerance, MacChangeTolerance)

	variant := "COMPLIANCE WITH EDNO 1"
	if changes.Any {
		variant = "REVISIONS TO EDNO 1"
	}

	var b strings.Builder

	writeHeader(&b, "FINAL", 2, variant, issuedAt)
	writeFlightLine(&b, plan, issuedAt)
	writeBody(&b, final, limits, plan, crew, changes)

	return b.String()
}

func writeHeader(b *strings.Builder, edition string, edno int, variant string, issuedAt time.Time) {
	fmt.Fprintf(b, "- LOADSHEET %s %sZ\n", edition, issuedAt.UTC().Format("1504"))
	fmt.Fprintf(b, "EDNO %d\n", edno)
	if variant != "" {
		fmt.Fprintf(b, "%s\n", variant)
	}
}

func writeFlightLine(b *strings.Builder, plan app.FlightPlan, issuedAt time.Time) {
	day := issuedAt.UTC().Format("02")
	date := strings.ToUpper(issuedAt.UTC().Format("02Jan06"))
	fmt.Fprintf(b, "%s/%s %s\n", plan.FlightNumber, day, date)
	fmt.Fprintf(b, "%s %s %s 2/4\n", plan.Origin, plan.Destination, plan.TailNumber)
}

func writeBody(b *strings.Builder, data *app.LoadsheetData, limits app.OperatingLimits, plan app.FlightPlan, crew Crew, changes ChangeSet) {
	zfw := wholeKg(data.ZeroFuelWeight)
	tow := wholeKg(data.TakeoffWeight)
	law := wholeKg(data.LandingWeight)

	writeWeightLine(b, "ZFW", data.ZeroFuelWeight, limits.MaxZeroFuelWeight, changes.ZeroFuelWeight)
	fmt.Fprintf(b, "TOF  %d\n", tow-zfw)
	writeWeightLine(b, "TOW", data.TakeoffWeight, limits.MaxTakeoffWeight, changes.TakeoffWeight)
	fmt.Fprintf(b, "TIF  %d\n", tow-law)
	writeWeightLine(b, "LAW", data.LandingWeight, limits.MaxLandingWeight, changes.LandingWeight)
	fmt.Fprintf(b, "UNDLO  %d\n", wholeKg(limits.MaxLandingWeight)-law)

	pax := data.TotalPassengers
	fmt.Fprintf(b, "PAX/%d/%d TTL %d%s\n", plan.Infants, pax, plan.Infants+pax, marker(changes.Passengers))

	fmt.Fprintf(b, "MACZFW  %.2f%s\n", data.ZeroFuelWeightMac, marker(changes.ZeroFuelMac))
	fmt.Fprintf(b, "MACTOW  %.2f%s\n", data.TakeoffWeightMac, marker(changes.TakeoffMac))

	zones := data.PassengersByZone
	fmt.Fprintf(b, "A%d  B%d  C%d\n", zones[0], zones[1], zones[2]+zones[3])

	fmt.Fprintf(b, "PREPARED BY\n%s %s\n", crew.Name, crew.License)
	fmt.Fprintf(b, "FUEL IN TANKS %d\n", wholeKg(data.FuelWeight))
	b.WriteString("END\n")
}

func writeWeightLine(b *strings.Builder, label string, est, max float64, changed bool) {
	line := fmt.Sprintf("%s  %d%s  MAX  %d", label, wholeKg(est), marker(changed), wholeKg(max))
	if DetectWeightLimitation(est, max, WeightLimitThreshold) {
		line += "  L"
	}
	b.WriteString(line)
	b.WriteByte('\n')
}

// marker flags a field revised against the preliminary edition.
func marker(changed bool) string {
	if changed {
		return " //"
	}
	return ""
}

func wholeKg(v float64) int {
	return int(math.Round(v))
}
