package emission

import (
	"math"
	"sort"
	"strings"
)

// Factor converts an activity amount into kilograms of CO2
type Factor struct {
	Name   string  `json:"name"`
	Factor float64 `json:"factor"`
	Unit   string  `json:"unit"` // e.g. "kg CO2/km"
}

// factors is read-only after init
var factors = map[string]Factor{
	"car_petrol":   {Name: "car_petrol", Factor: 0.192, Unit: "kg CO2/km"},
	"flight_short": {Name: "flight_short", Factor: 0.255, Unit: "kg CO2/km"},
	"electricity":  {Name: "electricity", Factor: 0.233, Unit: "kg CO2/kWh"},
	"beef":         {Name: "beef", Factor: 27.0, Unit: "kg CO2/kg"},
	"chicken":      {Name: "chicken", Factor: 6.9, Unit: "kg CO2/kg"},
}

// Lookup returns the factor for an activity type
func Lookup(name string) (Factor, bool) {
	f, ok := factors[name]
	return f, ok
}

// All returns every factor sorted by name
func All() []Factor {
	out := make([]Factor, 0, len(factors))
	for _, f := range factors {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AmountUnit is the unit activity amounts are measured in ("km" for "kg CO2/km")
func (f Factor) AmountUnit() string {
	_, unit, ok := strings.Cut(f.Unit, "/")
	if !ok {
		return ""
	}
	return unit
}

// Emission returns kg CO2 for amount, rounded to two decimals
func (f Factor) Emission(amount float64) float64 {
	return Round2(amount * f.Factor)
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
