package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContainerType struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Code             string             `json:"code" bson:"code" validate:"required,reference_code"` // e.g. "20GP", "40GP", "40HC"
	Name             string             `json:"name" bson:"name" validate:"required"`
	Description      string             `json:"description" bson:"description"`
	LengthMeters     float64            `json:"length_meters" bson:"length_meters" validate:"required,gt=0"`
	WidthMeters      float64            `json:"width_meters" bson:"width_meters" validate:"required,gt=0"`
	HeightMeters     float64            `json:"height_meters" bson:"height_meters" validate:"required,gt=0"`
	VolumeCBM        float64            `json:"volume_cbm" bson:"volume_cbm"`
	MaxGrossWeightKG float64            `json:"max_gross_weight_kg" bson:"max_gross_weight_kg" validate:"required,gt=0"`
	TareWeightKG     float64            `json:"tare_weight_kg" bson:"tare_weight_kg" validate:"required,gt=0"`
	MaxPayloadKG     float64            `json:"max_payload_kg" bson:"max_payload_kg"`
	IsActive         bool               `json:"is_active" bson:"is_active"`
	IsRefrigerated   bool               `json:"is_refrigerated" bson:"is_refrigerated"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
}

// RecalculateDerivedValues recomputes VolumeCBM (l*w*h) and MaxPayloadKG
// (max gross - tare). These are never accepted from input; every create and
// update goes through here.
func (ct *ContainerType) RecalculateDerivedValues() {
	length := decimal.NewFromFloat(ct.LengthMeters)
	width := decimal.NewFromFloat(ct.WidthMeters)
	height := decimal.NewFromFloat(ct.HeightMeters)
	ct.VolumeCBM, _ = length.Mul(width).Mul(height).Round(3).Float64()

	maxGross := decimal.NewFromFloat(ct.MaxGrossWeightKG)
	tare := decimal.NewFromFloat(ct.TareWeightKG)
	ct.MaxPayloadKG, _ = maxGross.Sub(tare).Round(2).Float64()
}

// CanFit reports whether a shipment of the given weight and volume fits
// within the container's payload and volume limits.
func (ct *ContainerType) CanFit(weightKG, volumeCBM float64) bool {
	return weightKG <= ct.MaxPayloadKG && volumeCBM <= ct.VolumeCBM
}
