package loadsheet

import (
	"fmt"
	"math/rand"
)

// Crew is the cosmetic preparer block printed at the bottom of a loadsheet.
type Crew struct {
	Name    string
	License string
}

// CrewSource supplies the preparer filler. Injected so the formatter stays a
// pure function of its inputs.
type CrewSource interface {
	Crew() Crew
}

// StaticCrew always returns the same crew, for tests and fixed rosters.
type StaticCrew struct {
	Value Crew
}

func (s StaticCrew) Crew() Crew {
	return s.Value
}

var rosterNames = []string{
	"M. WEBER",
	"K. TANAKA",
	"J. OKONKWO",
	"A. LINDQVIST",
	"R. FERREIRA",
	"S. KOWALSKI",
	"D. MARCHETTI",
	"L. BERGSTROM",
}

// RosterCrew draws a preparer from a fixed roster using a seeded source, so a
// given seed always produces the same crew sequence.
type RosterCrew struct {
	rng *rand.Rand
}

// NewRosterCrew creates a seeded roster crew source.
func NewRosterCrew(seed int64) *RosterCrew {
	return &RosterCrew{rng: rand.New(rand.NewSource(seed))}
}

func (r *RosterCrew) Crew() Crew {
	name := rosterNames[r.rng.Intn(len(rosterNames))]
	license := 100000 + r.rng.Intn(900000)
	return Crew{
		Name:    name,
		License: fmt.Sprintf("LIC %d", license),
	}
}
