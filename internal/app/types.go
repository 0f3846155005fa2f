package app

// LoadsheetType identifies which of the two loadsheet editions an operation
// refers to. The backend keys its generation state on the same values.
type LoadsheetType string

const (
	Preliminary LoadsheetType = "Preliminary"
	Final       LoadsheetType = "Final"
)

// LoadsheetTypes lists both editions in issue order.
var LoadsheetTypes = []LoadsheetType{Preliminary, Final}

// PassengerZones is the number of cabin zones the aircraft is divided into.
const PassengerZones = 4

// FuelTanks are the tank names used in LoadsheetData.FuelByTank.
var FuelTanks = []string{"center", "left", "right"}

// LoadsheetData holds the computed weight and balance figures for one
// loadsheet edition. Weights are kilograms, CG positions are meters from the
// reference datum, MAC values are percentages.
type LoadsheetData struct {
	ZeroFuelWeight    float64 `json:"zfw"`
	ZeroFuelWeightCG  float64 `json:"zfw_cg"`
	ZeroFuelWeightMac float64 `json:"zfw_mac"`

	TakeoffWeight    float64 `json:"tow"`
	TakeoffWeightCG  float64 `json:"tow_cg"`
	TakeoffWeightMac float64 `json:"tow_mac"`

	FuelWeight    float64 `json:"fuel"`
	LandingWeight float64 `json:"law"`

	TotalPassengers    int                 `json:"pax_total"`
	PassengersByZone   [PassengerZones]int `json:"pax_by_zone"`
	ForwardCargoWeight float64             `json:"cargo_fwd"`
	AftCargoWeight     float64             `json:"cargo_aft"`
	FuelByTank         map[string]float64  `json:"fuel_by_tank"`
}

// FlightPlan is the immutable planning input for one flight. It is created
// upstream (dispatch import) and read-only to this service.
type FlightPlan struct {
	FlightNumber string  `json:"flight_number"`
	Origin       string  `json:"origin"`
	Destination  string  `json:"destination"`
	TailNumber   string  `json:"tail_number"`
	Passengers   int     `json:"passengers"`
	Infants      int     `json:"infants"`
	CargoTotal   float64 `json:"cargo_total"`
	FuelTotal    float64 `json:"fuel_total"`
	TripFuel     float64 `json:"trip_fuel"`
}

// AircraftProfile carries the fixed reference constants and payload
// capacities for one aircraft type. Profiles are never mutated at runtime.
type AircraftProfile struct {
	Type string `json:"type"`

	EmptyWeight   float64 `json:"empty_weight"`
	EmptyWeightCG float64 `json:"empty_weight_cg"`

	// MAC geometry; CG-to-%MAC conversion is
	// -100 * (cg - LeadingEdgeMAC) / MACSize.
	LeadingEdgeMAC float64 `json:"leading_edge_mac"`
	MACSize        float64 `json:"mac_size"`

	ZoneArms       [PassengerZones]float64 `json:"zone_arms"`
	ZoneCapacities [PassengerZones]int     `json:"zone_capacities"`

	ForwardCargoArm      float64 `json:"fwd_cargo_arm"`
	ForwardCargoCapacity float64 `json:"fwd_cargo_capacity"`
	AftCargoArm          float64 `json:"aft_cargo_arm"`
	AftCargoCapacity     float64 `json:"aft_cargo_capacity"`

	// Tank arms keyed in FuelTanks order: center, left, right.
	TankArms map[string]float64 `json:"tank_arms"`

	// Standard passenger unit weight including carry-on, kilograms.
	PassengerWeight float64 `json:"passenger_weight"`
}

// TotalZoneCapacity sums the cabin zone capacities.
func (p AircraftProfile) TotalZoneCapacity() int {
	total := 0
	for _, c := range p.ZoneCapacities {
		total += c
	}
	return total
}

// CombinedCargoCapacity is the total hold capacity in kilograms.
func (p AircraftProfile) CombinedCargoCapacity() float64 {
	return p.ForwardCargoCapacity + p.AftCargoCapacity
}

// OperatingLimits are the certified maximum weights printed on the loadsheet
// and used for limit flagging.
type OperatingLimits struct {
	MaxZeroFuelWeight float64 `json:"max_zfw"`
	MaxTakeoffWeight  float64 `json:"max_tow"`
	MaxLandingWeight  float64 `json:"max_law"`
}

// DefaultProfile is the built-in A20N profile used when no profile file is
// configured. Arms are meters from the reference datum, negative aft.
var DefaultProfile = AircraftProfile{
	Type:           "A20N",
	EmptyWeight:    42500,
	EmptyWeightCG:  -9.55,
	LeadingEdgeMAC: -8.32,
	MACSize:        4.19,
	ZoneArms:       [PassengerZones]float64{-4.22, -7.93, -11.64, -15.31},
	ZoneCapacities: [PassengerZones]int{40, 40, 40, 60},

	ForwardCargoArm:      -6.91,
	ForwardCargoCapacity: 3402,
	AftCargoArm:          -14.09,
	AftCargoCapacity:     2426,

	TankArms: map[string]float64{
		"center": -9.37,
		"left":   -9.71,
		"right":  -9.71,
	},

	PassengerWeight: 84,
}

// DefaultLimits are the certified limits matching DefaultProfile.
var DefaultLimits = OperatingLimits{
	MaxZeroFuelWeight: 64300,
	MaxTakeoffWeight:  79000,
	MaxLandingWeight:  67400,
}

// Warning records a non-fatal condition detected during computation, such as
// requested cargo exceeding physical hold capacity.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Warning codes.
const (
	WarnCapacityExceeded = "capacity_exceeded"
)
