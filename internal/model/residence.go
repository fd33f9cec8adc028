package model

// Residence keys for the two houses the backend serves.
const (
	ResidenceMelodija   = "melodija"
	ResidenceSampeteris = "sampeteris"
)

// Residence carries the per-house contract numbering rules and the
// appendix policy.  Contract numbers are formatted PREFIX-dddd/yyyy;
// NumberStart is the suffix assigned to the first contract of a year
// when no earlier contract exists for that residence and year.
type Residence struct {
	Key               string
	Prefix            string
	NumberStart       int
	CareLevelAppendix bool // whether activation adds a care-level appendix
}

// residences holds the fixed configuration for both houses.  Melodija
// continues a numbering sequence taken over from a predecessor system,
// hence the non-zero start.
var residences = map[string]Residence{
	ResidenceMelodija:   {Key: ResidenceMelodija, Prefix: "AM", NumberStart: 2988},
	ResidenceSampeteris: {Key: ResidenceSampeteris, Prefix: "AŠ", NumberStart: 0, CareLevelAppendix: true},
}

// ResidenceByKey looks up a residence configuration by key.  The
// second result is false for unknown keys.
func ResidenceByKey(key string) (Residence, bool) {
	r, ok := residences[key]
	return r, ok
}

// Residences returns the configured residences.  Order is unspecified.
func Residences() []Residence {
	out := make([]Residence, 0, len(residences))
	for _, r := range residences {
		out = append(out, r)
	}
	return out
}
