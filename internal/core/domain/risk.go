package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// RiskPercentage is a 0-100 compliance risk score with three states.
//
// The zero value is unknown: no risk information exists. Null means the
// invoice was assessed but the backend reported no score. Unknown and
// null are distinct from a value of 0, which means assessed as zero risk.
type RiskPercentage struct {
	present bool
	valid   bool
	value   float64
}

// RiskUnknown returns a risk with no information.
func RiskUnknown() RiskPercentage {
	return RiskPercentage{}
}

// RiskNull returns an assessed risk with no score.
func RiskNull() RiskPercentage {
	return RiskPercentage{present: true}
}

// RiskOf returns an assessed risk with the given score.
func RiskOf(v float64) RiskPercentage {
	return RiskPercentage{present: true, valid: true, value: v}
}

// IsUnknown reports whether no risk information exists.
func (r RiskPercentage) IsUnknown() bool {
	return !r.present
}

// IsNull reports whether the risk was assessed without a score.
func (r RiskPercentage) IsNull() bool {
	return r.present && !r.valid
}

// Value returns the score and whether one exists.
func (r RiskPercentage) Value() (float64, bool) {
	return r.value, r.valid
}

// IsZero reports whether the risk is unknown. It lets encoding/json
// omit unknown risks via the omitzero tag option.
func (r RiskPercentage) IsZero() bool {
	return !r.present
}

// String formats the score with two decimals, or "-" without one.
func (r RiskPercentage) String() string {
	if !r.valid {
		return "-"
	}
	return strconv.FormatFloat(r.value, 'f', 2, 64) + "%"
}

// MarshalJSON implements json.Marshaler.
func (r RiskPercentage) MarshalJSON() ([]byte, error) {
	if !r.valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *RiskPercentage) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = RiskNull()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = RiskOf(v)
	return nil
}

// RiskLevel is the display bucket of a risk score.
type RiskLevel string

// Risk levels, ordered from least to most severe.
const (
	RiskLevelGood   RiskLevel = "Good"
	RiskLevelLow    RiskLevel = "Low"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelHigh   RiskLevel = "High"
)

// RiskLevels lists every level in display order.
var RiskLevels = []RiskLevel{RiskLevelGood, RiskLevelLow, RiskLevelMedium, RiskLevelHigh}

// Level buckets the risk. Upper bounds are inclusive:
// unknown, null or 0 is Good, (0,30] Low, (30,70] Medium, above 70 High.
func (r RiskPercentage) Level() RiskLevel {
	v, ok := r.Value()
	switch {
	case !ok || v == 0:
		return RiskLevelGood
	case v <= 30:
		return RiskLevelLow
	case v <= 70:
		return RiskLevelMedium
	default:
		return RiskLevelHigh
	}
}
