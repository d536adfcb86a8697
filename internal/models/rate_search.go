package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RateSearchCriteria carries the optional filters for admin-side rate search.
// Absent criteria match everything.
type RateSearchCriteria struct {
	CourierName     string              `json:"courier_name,omitempty" form:"courier_name"`
	ShippingMode    *ShippingMode       `json:"shipping_mode,omitempty" form:"shipping_mode"`
	SeaFreightMode  *SeaFreightMode     `json:"sea_freight_mode,omitempty" form:"sea_freight_mode"`
	OriginID        *primitive.ObjectID `json:"origin_id,omitempty"`
	DestinationID   *primitive.ObjectID `json:"destination_id,omitempty"`
	ActiveOnDate    *time.Time          `json:"active_on_date,omitempty"`
	ContainerTypeID *primitive.ObjectID `json:"container_type_id,omitempty"`
	MaxTransitDays  *int                `json:"max_transit_days,omitempty" form:"max_transit_days"`
	IsActive        *bool               `json:"is_active,omitempty" form:"is_active"`
}
