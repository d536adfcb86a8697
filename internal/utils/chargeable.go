package utils

import "github.com/shopspring/decimal"

// AirVolumetricFactor is the industry W/M constant for air freight:
// 6000 cubic cm per kg, i.e. 167 kg per CBM.
const AirVolumetricFactor = 167

var (
	airVolumetricFactor = decimal.NewFromInt(AirVolumetricFactor)
	seaWeightDivisor    = decimal.NewFromInt(1000)
)

// AirChargeableWeight applies the Weight/Measurement rule for air freight:
// the higher of actual gross weight and volumetric weight (volume CBM * 167).
// Absent or non-positive inputs count as zero.
func AirChargeableWeight(grossWeightKG, volumeCBM float64) decimal.Decimal {
	actualWeight := decimal.Zero
	if grossWeightKG > 0 {
		actualWeight = decimal.NewFromFloat(grossWeightKG)
	}

	volumetricWeight := decimal.Zero
	if volumeCBM > 0 {
		volumetricWeight = decimal.NewFromFloat(volumeCBM).Mul(airVolumetricFactor)
	}

	if actualWeight.GreaterThan(volumetricWeight) {
		return actualWeight
	}
	return volumetricWeight
}

// LCLChargeableVolume applies the Weight/Measurement rule for LCL sea freight:
// the higher of actual volume and the volumetric equivalent of the weight
// (gross weight kg / 1000). Absent or non-positive inputs count as zero.
func LCLChargeableVolume(volumeCBM, grossWeightKG float64) decimal.Decimal {
	actualVolume := decimal.Zero
	if volumeCBM > 0 {
		actualVolume = decimal.NewFromFloat(volumeCBM)
	}

	weightEquivalent := decimal.Zero
	if grossWeightKG > 0 {
		weightEquivalent = decimal.NewFromFloat(grossWeightKG).Div(seaWeightDivisor)
	}

	if actualVolume.GreaterThan(weightEquivalent) {
		return actualVolume
	}
	return weightEquivalent
}
