package types

import (
	"encoding/json"
	"math"
	"strconv"
)

// ExtendedNumber is a numeric field that accepts the encodings found in
// exported heatmap documents: a plain JSON number, or an extended-JSON
// wrapper carrying the value as a decimal string
// ({"$numberDouble": "12.5"} / {"$numberInt": "3"}).
// Anything else decodes to NaN so callers can discard the record instead of
// letting a bad value reach distance math or persistence.
type ExtendedNumber float64

// numberWrapper matches the tagged wrapper objects.
type numberWrapper struct {
	Double *string `json:"$numberDouble"`
	Int    *string `json:"$numberInt"`
}

func (n *ExtendedNumber) UnmarshalJSON(data []byte) error {
	// A bare null is not a number. json.Unmarshal would leave a plain
	// float64 at zero here, which downstream would mistake for a real
	// coordinate.
	if string(data) == "null" {
		*n = ExtendedNumber(math.NaN())
		return nil
	}

	var plain float64
	if err := json.Unmarshal(data, &plain); err == nil {
		*n = ExtendedNumber(plain)
		return nil
	}

	var wrapper numberWrapper
	if err := json.Unmarshal(data, &wrapper); err == nil {
		if wrapper.Double != nil {
			if v, err := strconv.ParseFloat(*wrapper.Double, 64); err == nil {
				*n = ExtendedNumber(v)
				return nil
			}
		}
		if wrapper.Int != nil {
			if v, err := strconv.ParseInt(*wrapper.Int, 10, 64); err == nil {
				*n = ExtendedNumber(v)
				return nil
			}
		}
	}

	// Unrecognized shape or unparseable string. Not an error: the record is
	// marked invalid and skipped downstream.
	*n = ExtendedNumber(math.NaN())
	return nil
}

func (n ExtendedNumber) MarshalJSON() ([]byte, error) {
	if !n.IsFinite() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(n))
}

func (n ExtendedNumber) Float64() float64 {
	return float64(n)
}

// IsFinite reports whether the value survived coercion.
func (n ExtendedNumber) IsFinite() bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
