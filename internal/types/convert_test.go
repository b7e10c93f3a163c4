package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueString_Scalars(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected string
	}{
		{name: "string", input: "Parcels", expected: "Parcels"},
		{name: "bytes", input: []byte("roads"), expected: "roads"},
		{name: "int", input: 5, expected: "5"},
		{name: "int64", input: int64(-42), expected: "-42"},
		{name: "uint8", input: uint8(255), expected: "255"},
		{name: "float64 integral", input: float64(5), expected: "5"},
		{name: "float64 fraction", input: 5.5, expected: "5.5"},
		{name: "float32", input: float32(2.25), expected: "2.25"},
		{name: "json number", input: json.Number("10"), expected: "10"},
		{name: "json number with fraction", input: json.Number("5.0"), expected: "5"},
		{name: "json number exponent", input: json.Number("1e3"), expected: "1000"},
		{name: "bool", input: true, expected: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ValueString(tt.input)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestValueString_Nil(t *testing.T) {
	got, ok := ValueString(nil)
	assert.False(t, ok)
	assert.Equal(t, "", got)
}

func TestMatchKey(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected string
		ok       bool
	}{
		{name: "nil never participates", input: nil, ok: false},
		{name: "empty string", input: "", ok: false},
		{name: "whitespace only", input: "   ", ok: false},
		{name: "lower-cased", input: "SDE.Parcels", expected: "sde.parcels", ok: true},
		{name: "padding kept", input: " A ", expected: " a ", ok: true},
		{name: "number normalised", input: float64(5), expected: "5", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MatchKey(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMatchKey_NumericAndStringFieldsAgree(t *testing.T) {
	a, _ := MatchKey(float64(5))
	b, _ := MatchKey("5")
	assert.Equal(t, a, b)
}
