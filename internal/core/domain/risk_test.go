package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskPercentage_States(t *testing.T) {
	unknown := RiskUnknown()
	assert.True(t, unknown.IsUnknown())
	assert.False(t, unknown.IsNull())
	_, ok := unknown.Value()
	assert.False(t, ok)

	null := RiskNull()
	assert.False(t, null.IsUnknown())
	assert.True(t, null.IsNull())
	_, ok = null.Value()
	assert.False(t, ok)

	zero := RiskOf(0)
	assert.False(t, zero.IsUnknown())
	assert.False(t, zero.IsNull())
	v, ok := zero.Value()
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)
}

func TestRiskPercentage_String(t *testing.T) {
	assert.Equal(t, "-", RiskUnknown().String())
	assert.Equal(t, "-", RiskNull().String())
	assert.Equal(t, "45.67%", RiskOf(45.67).String())
	assert.Equal(t, "20.00%", RiskOf(20).String())
}

func TestRiskPercentage_JSONKeepsThreeStates(t *testing.T) {
	type row struct {
		Risk RiskPercentage `json:"risk_percentage,omitzero"`
	}

	tests := []struct {
		name string
		in   RiskPercentage
		json string
	}{
		{"unknown is omitted", RiskUnknown(), `{}`},
		{"null is null", RiskNull(), `{"risk_percentage":null}`},
		{"value is a number", RiskOf(45.67), `{"risk_percentage":45.67}`},
		{"zero is a number", RiskOf(0), `{"risk_percentage":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(row{Risk: tt.in})
			require.NoError(t, err)
			assert.JSONEq(t, tt.json, string(data))

			var back row
			require.NoError(t, json.Unmarshal(data, &back))
			assert.Equal(t, tt.in, back.Risk)
		})
	}
}

func TestRiskPercentage_UnmarshalRejectsStrings(t *testing.T) {
	var r RiskPercentage
	assert.Error(t, json.Unmarshal([]byte(`"high"`), &r))
}

func TestRiskPercentage_Level(t *testing.T) {
	tests := []struct {
		risk RiskPercentage
		want RiskLevel
	}{
		{RiskUnknown(), RiskLevelGood},
		{RiskNull(), RiskLevelGood},
		{RiskOf(0), RiskLevelGood},
		{RiskOf(0.01), RiskLevelLow},
		{RiskOf(30), RiskLevelLow},
		{RiskOf(31), RiskLevelMedium},
		{RiskOf(70), RiskLevelMedium},
		{RiskOf(71), RiskLevelHigh},
		{RiskOf(100), RiskLevelHigh},
	}

	for _, tt := range tests {
		t.Run(tt.risk.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.risk.Level())
		})
	}
}
