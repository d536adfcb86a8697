package models

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrRateNotFound          = errors.New("rate not found")
	ErrLocationNotFound      = errors.New("location not found")
	ErrContainerTypeNotFound = errors.New("container type not found")
)

// ValidationError reports a malformed or missing field on input. It is always
// surfaced to the caller, never retried.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RateConflictError reports that an overlapping rate already exists for the
// same courier/route/mode identity. It carries the conflicting rate's id and
// date range so the caller can adjust dates or update the existing record.
type RateConflictError struct {
	Message           string             `json:"message"`
	ConflictingRateID primitive.ObjectID `json:"conflicting_rate_id"`
	EffectiveFrom     time.Time          `json:"effective_from"`
	EffectiveTo       time.Time          `json:"effective_to"`
}

func (e *RateConflictError) Error() string {
	return e.Message
}

func (e *RateConflictError) Is(target error) bool {
	_, ok := target.(*RateConflictError)
	return ok
}

// NewRateConflictError describes a conflict with an existing rate. origin and
// destination are human-readable location descriptions; containerTypeName is
// set for FCL conflicts only.
func NewRateConflictError(rate *Rate, existing *Rate, origin, destination, containerTypeName string) *RateConflictError {
	var message string
	if containerTypeName != "" {
		message = fmt.Sprintf(
			"an FCL rate already exists for courier '%s' from '%s' to '%s' for container type '%s' with overlapping dates (%s to %s); existing rate %s is effective from %s to %s",
			rate.CourierName, origin, destination, containerTypeName,
			rate.EffectiveFrom.Format("2006-01-02"), rate.EffectiveTo.Format("2006-01-02"),
			existing.ID.Hex(),
			existing.EffectiveFrom.Format("2006-01-02"), existing.EffectiveTo.Format("2006-01-02"))
	} else {
		mode := string(rate.ShippingMode)
		if rate.ShippingMode == ShippingModeWater {
			mode += " (" + string(rate.SeaFreightMode) + ")"
		}
		message = fmt.Sprintf(
			"a rate already exists for courier '%s' from '%s' to '%s' for %s shipping with overlapping dates (%s to %s); existing rate %s is effective from %s to %s",
			rate.CourierName, origin, destination, mode,
			rate.EffectiveFrom.Format("2006-01-02"), rate.EffectiveTo.Format("2006-01-02"),
			existing.ID.Hex(),
			existing.EffectiveFrom.Format("2006-01-02"), existing.EffectiveTo.Format("2006-01-02"))
	}

	return &RateConflictError{
		Message:           message,
		ConflictingRateID: existing.ID,
		EffectiveFrom:     existing.EffectiveFrom,
		EffectiveTo:       existing.EffectiveTo,
	}
}
