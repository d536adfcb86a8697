package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LocationType string

const (
	LocationTypeSeaPort    LocationType = "SEA_PORT"
	LocationTypeAirport    LocationType = "AIRPORT"
	LocationTypeCity       LocationType = "CITY"
	LocationTypeInlandPort LocationType = "INLAND_PORT"
)

type Location struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" validate:"required"`
	Code        string             `json:"code" bson:"code" validate:"required,reference_code"`
	Country     string             `json:"country" bson:"country" validate:"required"`
	CountryCode string             `json:"country_code" bson:"country_code" validate:"omitempty,len=3"`
	Type        LocationType       `json:"type" bson:"type" validate:"omitempty,oneof=SEA_PORT AIRPORT CITY INLAND_PORT"`
	IsActive    bool               `json:"is_active" bson:"is_active"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// Description returns a short human-readable identifier for error messages,
// preferring the location code over the raw id.
func (l *Location) Description() string {
	if l == nil {
		return "Unknown"
	}
	switch {
	case l.Code != "" && l.Country != "":
		return l.Code + ", " + l.Country
	case l.Code != "":
		return l.Code
	default:
		return "Location ID: " + l.ID.Hex()
	}
}
