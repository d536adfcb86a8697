package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ShippingMode string

const (
	ShippingModeAir   ShippingMode = "AIR"
	ShippingModeWater ShippingMode = "WATER"
)

type SeaFreightMode string

const (
	SeaFreightModeFCL SeaFreightMode = "FCL"
	SeaFreightModeLCL SeaFreightMode = "LCL"
)

const DefaultCurrency = "INR"

// Rate is one courier's offering for an origin/destination/mode combination.
// The shipping mode tag (plus sea freight mode for WATER) selects which of
// AirFreight, LCLFreight or FCLFreight is populated; exactly one must be set
// and it must agree with the tags.
type Rate struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CourierName    string             `json:"courier_name" bson:"courier_name" validate:"required"`
	OriginID       primitive.ObjectID `json:"origin_id" bson:"origin_id" validate:"required"`
	DestinationID  primitive.ObjectID `json:"destination_id" bson:"destination_id" validate:"required"`
	ShippingMode   ShippingMode       `json:"shipping_mode" bson:"shipping_mode" validate:"required,oneof=AIR WATER"`
	SeaFreightMode SeaFreightMode     `json:"sea_freight_mode,omitempty" bson:"sea_freight_mode,omitempty" validate:"omitempty,oneof=FCL LCL"`

	AirFreight *AirFreightDetail `json:"air_freight,omitempty" bson:"air_freight,omitempty"`
	LCLFreight *LCLFreightDetail `json:"lcl_freight,omitempty" bson:"lcl_freight,omitempty"`
	// FCLFreight is keyed by container type hex id; at most one line item per
	// container type.
	FCLFreight map[string]*FCLLineItem `json:"fcl_freight,omitempty" bson:"fcl_freight,omitempty"`

	EffectiveFrom  time.Time `json:"effective_from" bson:"effective_from" validate:"required"`
	EffectiveTo    time.Time `json:"effective_to" bson:"effective_to" validate:"required"`
	IsActive       bool      `json:"is_active" bson:"is_active"`
	TransitDays    *int      `json:"transit_days,omitempty" bson:"transit_days,omitempty"`
	DimensionLimit string    `json:"dimension_limit,omitempty" bson:"dimension_limit,omitempty"` // e.g. "100x100x100 cm"
	Currency       string    `json:"currency" bson:"currency" validate:"omitempty,currency_code"`
	Description    string    `json:"description,omitempty" bson:"description,omitempty" validate:"max=500"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

// AirFreightDetail prices air freight per chargeable kilogram.
type AirFreightDetail struct {
	RatePerKG         float64  `json:"rate_per_kg" bson:"rate_per_kg" validate:"required,gt=0"`
	MinimumCharge     float64  `json:"minimum_charge" bson:"minimum_charge" validate:"gte=0"`
	FuelSurchargeRate float64  `json:"fuel_surcharge_rate" bson:"fuel_surcharge_rate" validate:"gte=0"` // fraction, e.g. 0.1
	SecuritySurcharge float64  `json:"security_surcharge" bson:"security_surcharge" validate:"gte=0"`
	WeightLimitKG     *float64 `json:"weight_limit_kg,omitempty" bson:"weight_limit_kg,omitempty"`
}

// LCLFreightDetail prices less-than-container-load sea freight per chargeable
// cubic meter.
type LCLFreightDetail struct {
	RatePerCBM           float64 `json:"rate_per_cbm" bson:"rate_per_cbm" validate:"required,gt=0"`
	DocumentationFee     float64 `json:"documentation_fee" bson:"documentation_fee" validate:"gte=0"`
	BunkerAdjustmentRate float64 `json:"bunker_adjustment_rate" bson:"bunker_adjustment_rate" validate:"gte=0"`
	ServiceCharge        float64 `json:"service_charge" bson:"service_charge" validate:"gte=0"`
}

// FCLLineItem prices full containers of a single container type.
type FCLLineItem struct {
	ContainerTypeID        primitive.ObjectID `json:"container_type_id" bson:"container_type_id" validate:"required"`
	RatePerContainer       float64            `json:"rate_per_container" bson:"rate_per_container" validate:"required,gt=0"`
	DocumentationFee       float64            `json:"documentation_fee" bson:"documentation_fee" validate:"gte=0"`
	BunkerAdjustmentRate   float64            `json:"bunker_adjustment_rate" bson:"bunker_adjustment_rate" validate:"gte=0"`
	TerminalHandlingCharge float64            `json:"terminal_handling_charge" bson:"terminal_handling_charge" validate:"gte=0"`
}

// ValidateModeDetails checks that the populated freight detail agrees with the
// shipping mode tags: AIR carries air details only, WATER/FCL carries FCL line
// items only, WATER/LCL carries LCL details only. A WATER rate without a sea
// freight mode is invalid.
func (r *Rate) ValidateModeDetails() error {
	switch r.ShippingMode {
	case ShippingModeAir:
		if r.SeaFreightMode != "" {
			return &ValidationError{Field: "sea_freight_mode", Message: "sea freight mode is only valid for WATER shipping"}
		}
		if r.AirFreight == nil {
			return &ValidationError{Field: "air_freight", Message: "air freight details are required for AIR shipping"}
		}
		if r.LCLFreight != nil || len(r.FCLFreight) > 0 {
			return &ValidationError{Field: "shipping_mode", Message: "sea freight details are not valid for AIR shipping"}
		}
	case ShippingModeWater:
		if r.AirFreight != nil {
			return &ValidationError{Field: "air_freight", Message: "air freight details are not valid for WATER shipping"}
		}
		switch r.SeaFreightMode {
		case SeaFreightModeFCL:
			if len(r.FCLFreight) == 0 {
				return &ValidationError{Field: "fcl_freight", Message: "at least one FCL line item is required for FCL shipping"}
			}
			if r.LCLFreight != nil {
				return &ValidationError{Field: "lcl_freight", Message: "LCL details are not valid for FCL shipping"}
			}
			for key, item := range r.FCLFreight {
				if item == nil || item.ContainerTypeID.IsZero() || item.ContainerTypeID.Hex() != key {
					return &ValidationError{Field: "fcl_freight", Message: "FCL line items must be keyed by their container type id"}
				}
			}
		case SeaFreightModeLCL:
			if r.LCLFreight == nil {
				return &ValidationError{Field: "lcl_freight", Message: "LCL freight details are required for LCL shipping"}
			}
			if len(r.FCLFreight) > 0 {
				return &ValidationError{Field: "fcl_freight", Message: "FCL line items are not valid for LCL shipping"}
			}
		default:
			return &ValidationError{Field: "sea_freight_mode", Message: "sea freight mode (FCL or LCL) is required for WATER shipping"}
		}
	default:
		return &ValidationError{Field: "shipping_mode", Message: "shipping mode must be AIR or WATER"}
	}
	return nil
}

// ValidateDates checks the effective date interval ordering.
func (r *Rate) ValidateDates() error {
	if r.EffectiveFrom.IsZero() || r.EffectiveTo.IsZero() {
		return &ValidationError{Field: "effective_from", Message: "effective from and to dates are required"}
	}
	if r.EffectiveFrom.After(r.EffectiveTo) {
		return &ValidationError{Field: "effective_from", Message: "effective from date must not be after effective to date"}
	}
	return nil
}

// FCLLineItemFor returns the line item priced for the given container type, or
// nil when the rate does not cover it.
func (r *Rate) FCLLineItemFor(containerTypeID primitive.ObjectID) *FCLLineItem {
	return r.FCLFreight[containerTypeID.Hex()]
}

// ContainerTypeIDs lists the container types this FCL rate covers.
func (r *Rate) ContainerTypeIDs() []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(r.FCLFreight))
	for _, item := range r.FCLFreight {
		ids = append(ids, item.ContainerTypeID)
	}
	return ids
}
