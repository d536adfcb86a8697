package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAirChargeableWeight(t *testing.T) {
	tests := []struct {
		name          string
		grossWeightKG float64
		volumeCBM     float64
		expected      string
	}{
		{"volumetric weight wins for light bulky cargo", 10, 0.2, "33.4"},
		{"actual weight wins for dense cargo", 500, 0.2, "500"},
		{"equal weights pick either", 167, 1, "167"},
		{"zero volume uses actual weight", 42, 0, "42"},
		{"zero weight uses volumetric weight", 0, 2, "334"},
		{"both absent charges nothing", 0, 0, "0"},
		{"negative inputs count as zero", -5, -1, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AirChargeableWeight(tt.grossWeightKG, tt.volumeCBM)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"got %s, want %s", got, tt.expected)
		})
	}
}

func TestLCLChargeableVolume(t *testing.T) {
	tests := []struct {
		name          string
		volumeCBM     float64
		grossWeightKG float64
		expected      string
	}{
		{"actual volume wins for bulky cargo", 2, 500, "2"},
		{"weight equivalent wins for dense cargo", 0.5, 3000, "3"},
		{"equal values pick either", 1, 1000, "1"},
		{"zero weight uses actual volume", 4, 0, "4"},
		{"zero volume uses weight equivalent", 0, 2500, "2.5"},
		{"both absent charges nothing", 0, 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LCLChargeableVolume(tt.volumeCBM, tt.grossWeightKG)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"got %s, want %s", got, tt.expected)
		})
	}
}
