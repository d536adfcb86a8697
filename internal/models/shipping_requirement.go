package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShippingRequirement is the customer's quote request. Every criterion is
// optional; an absent criterion matches all rates.
type ShippingRequirement struct {
	OriginID       *primitive.ObjectID `json:"origin_id,omitempty"`
	DestinationID  *primitive.ObjectID `json:"destination_id,omitempty"`
	ShippingMode   *ShippingMode       `json:"shipping_mode,omitempty" validate:"omitempty,oneof=AIR WATER"`
	SeaFreightMode *SeaFreightMode     `json:"sea_freight_mode,omitempty" validate:"omitempty,oneof=FCL LCL"`
	ShippingDate   *time.Time          `json:"shipping_date,omitempty"`
	GrossWeightKG  *float64            `json:"gross_weight_kg,omitempty" validate:"omitempty,gte=0"`
	VolumeCBM      *float64            `json:"volume_cbm,omitempty" validate:"omitempty,gte=0"`
	// ContainerCount maps container type hex id to requested count (FCL only).
	ContainerCount map[string]int `json:"container_count,omitempty"`
}

// GrossWeight returns the requested gross weight in kg, 0 when absent.
func (s *ShippingRequirement) GrossWeight() float64 {
	if s == nil || s.GrossWeightKG == nil {
		return 0
	}
	return *s.GrossWeightKG
}

// Volume returns the requested volume in CBM, 0 when absent.
func (s *ShippingRequirement) Volume() float64 {
	if s == nil || s.VolumeCBM == nil {
		return 0
	}
	return *s.VolumeCBM
}

// CountFor returns the requested container count for a container type, 0 when
// the type was not requested.
func (s *ShippingRequirement) CountFor(containerTypeID primitive.ObjectID) int {
	if s == nil {
		return 0
	}
	return s.ContainerCount[containerTypeID.Hex()]
}

// WantsFCLContainers reports whether the requirement carries a non-empty
// container count map for an FCL request.
func (s *ShippingRequirement) WantsFCLContainers() bool {
	return s != nil && len(s.ContainerCount) > 0
}

// Quote is the response-only pairing of a matched rate with its computed
// amount. A nil Amount means the rate structurally matched but is not
// applicable to the requested cargo (distinct from a zero amount).
type Quote struct {
	RateID         primitive.ObjectID `json:"rate_id"`
	CourierName    string             `json:"courier_name"`
	OriginID       primitive.ObjectID `json:"origin_id"`
	DestinationID  primitive.ObjectID `json:"destination_id"`
	ShippingMode   ShippingMode       `json:"shipping_mode"`
	SeaFreightMode SeaFreightMode     `json:"sea_freight_mode,omitempty"`
	EffectiveFrom  time.Time          `json:"effective_from"`
	EffectiveTo    time.Time          `json:"effective_to"`
	TransitDays    *int               `json:"transit_days,omitempty"`
	Currency       string             `json:"currency"`
	Description    string             `json:"description,omitempty"`
	Amount         *decimal.Decimal   `json:"amount,omitempty"`
}

// NewQuote builds a Quote from a rate and its computed amount.
func NewQuote(rate *Rate, amount *decimal.Decimal) *Quote {
	currency := rate.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Quote{
		RateID:         rate.ID,
		CourierName:    rate.CourierName,
		OriginID:       rate.OriginID,
		DestinationID:  rate.DestinationID,
		ShippingMode:   rate.ShippingMode,
		SeaFreightMode: rate.SeaFreightMode,
		EffectiveFrom:  rate.EffectiveFrom,
		EffectiveTo:    rate.EffectiveTo,
		TransitDays:    rate.TransitDays,
		Currency:       currency,
		Description:    rate.Description,
		Amount:         amount,
	}
}
