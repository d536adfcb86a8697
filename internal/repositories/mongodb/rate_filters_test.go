package mongodb

import (
	"testing"
	"time"

	"freightquote/internal/models"
	"freightquote/internal/repositories/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestConflictFilter(t *testing.T) {
	origin := primitive.NewObjectID()
	destination := primitive.NewObjectID()
	from := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)

	t.Run("air conflict filter", func(t *testing.T) {
		filter := ConflictFilter(&interfaces.RateConflictQuery{
			CourierName:   "SkyCargo",
			OriginID:      origin,
			DestinationID: destination,
			ShippingMode:  models.ShippingModeAir,
			EffectiveFrom: from,
			EffectiveTo:   to,
		})

		assert.Equal(t, origin, filter["origin_id"])
		assert.Equal(t, destination, filter["destination_id"])
		assert.Equal(t, models.ShippingModeAir, filter["shipping_mode"])

		// courier matches whole-string, case-insensitively
		courier, ok := filter["courier_name"].(bson.M)
		require.True(t, ok)
		assert.Equal(t, "^SkyCargo$", courier["$regex"])
		assert.Equal(t, "i", courier["$options"])

		// overlap: existing.from <= new.to AND existing.to >= new.from
		assert.Equal(t, bson.M{"$lte": to}, filter["effective_from"])
		assert.Equal(t, bson.M{"$gte": from}, filter["effective_to"])

		_, hasSeaMode := filter["sea_freight_mode"]
		assert.False(t, hasSeaMode)
	})

	t.Run("regex metacharacters in courier name are escaped", func(t *testing.T) {
		filter := ConflictFilter(&interfaces.RateConflictQuery{
			CourierName:   "A+B (Express)",
			OriginID:      origin,
			DestinationID: destination,
			ShippingMode:  models.ShippingModeAir,
			EffectiveFrom: from,
			EffectiveTo:   to,
		})

		courier := filter["courier_name"].(bson.M)
		assert.Equal(t, `^A\+B \(Express\)$`, courier["$regex"])
	})

	t.Run("fcl conflict filter scopes to sub-mode and container type", func(t *testing.T) {
		containerTypeID := primitive.NewObjectID()
		filter := ConflictFilter(&interfaces.RateConflictQuery{
			CourierName:     "OceanLine",
			OriginID:        origin,
			DestinationID:   destination,
			ShippingMode:    models.ShippingModeWater,
			SeaFreightMode:  models.SeaFreightModeFCL,
			ContainerTypeID: &containerTypeID,
			EffectiveFrom:   from,
			EffectiveTo:     to,
		})

		assert.Equal(t, models.SeaFreightModeFCL, filter["sea_freight_mode"])
		assert.Equal(t, bson.M{"$exists": true},
			filter["fcl_freight."+containerTypeID.Hex()])
	})
}

func TestQuoteFilter(t *testing.T) {
	t.Run("empty requirement still filters on active", func(t *testing.T) {
		filter := QuoteFilter(&models.ShippingRequirement{})

		conditions, ok := filter["$and"].([]bson.M)
		require.True(t, ok)
		require.Len(t, conditions, 1)
		assert.Equal(t, bson.M{"is_active": true}, conditions[0])
	})

	t.Run("each present criterion adds one condition", func(t *testing.T) {
		origin := primitive.NewObjectID()
		destination := primitive.NewObjectID()
		date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		mode := models.ShippingModeAir

		filter := QuoteFilter(&models.ShippingRequirement{
			OriginID:      &origin,
			DestinationID: &destination,
			ShippingDate:  &date,
			ShippingMode:  &mode,
		})

		conditions := filter["$and"].([]bson.M)
		assert.Len(t, conditions, 5)
		assert.Contains(t, conditions, bson.M{"origin_id": origin})
		assert.Contains(t, conditions, bson.M{"destination_id": destination})
		assert.Contains(t, conditions, bson.M{"shipping_mode": models.ShippingModeAir})
		assert.Contains(t, conditions, bson.M{
			"effective_from": bson.M{"$lte": date},
			"effective_to":   bson.M{"$gte": date},
		})
	})

	t.Run("sub-mode only applies under water mode", func(t *testing.T) {
		seaMode := models.SeaFreightModeLCL

		filter := QuoteFilter(&models.ShippingRequirement{
			SeaFreightMode: &seaMode,
		})

		conditions := filter["$and"].([]bson.M)
		assert.Len(t, conditions, 1)
	})

	t.Run("fcl requirement ORs across requested container types", func(t *testing.T) {
		mode := models.ShippingModeWater
		seaMode := models.SeaFreightModeFCL
		typeA := primitive.NewObjectID().Hex()
		typeB := primitive.NewObjectID().Hex()

		filter := QuoteFilter(&models.ShippingRequirement{
			ShippingMode:   &mode,
			SeaFreightMode: &seaMode,
			ContainerCount: map[string]int{typeA: 2, typeB: 1},
		})

		conditions := filter["$and"].([]bson.M)
		var orCondition []bson.M
		for _, cond := range conditions {
			if or, ok := cond["$or"].([]bson.M); ok {
				orCondition = or
			}
		}
		require.NotNil(t, orCondition)
		assert.Len(t, orCondition, 2)
		assert.Contains(t, orCondition, bson.M{"fcl_freight." + typeA: bson.M{"$exists": true}})
		assert.Contains(t, orCondition, bson.M{"fcl_freight." + typeB: bson.M{"$exists": true}})
	})

	t.Run("weight and volume never filter", func(t *testing.T) {
		weight := 5000.0
		volume := 12.0

		filter := QuoteFilter(&models.ShippingRequirement{
			GrossWeightKG: &weight,
			VolumeCBM:     &volume,
		})

		conditions := filter["$and"].([]bson.M)
		assert.Len(t, conditions, 1)
	})
}

func TestSearchFilter(t *testing.T) {
	t.Run("empty criteria match everything", func(t *testing.T) {
		filter := SearchFilter(&models.RateSearchCriteria{})
		assert.Empty(t, filter)
	})

	t.Run("courier name is a partial case-insensitive match", func(t *testing.T) {
		filter := SearchFilter(&models.RateSearchCriteria{CourierName: "ocean"})

		conditions := filter["$and"].([]bson.M)
		require.Len(t, conditions, 1)
		courier := conditions[0]["courier_name"].(bson.M)
		assert.Equal(t, "ocean", courier["$regex"])
		assert.Equal(t, "i", courier["$options"])
	})

	t.Run("transit and active filters", func(t *testing.T) {
		maxTransit := 10
		active := true

		filter := SearchFilter(&models.RateSearchCriteria{
			MaxTransitDays: &maxTransit,
			IsActive:       &active,
		})

		conditions := filter["$and"].([]bson.M)
		assert.Contains(t, conditions, bson.M{"transit_days": bson.M{"$lte": 10}})
		assert.Contains(t, conditions, bson.M{"is_active": true})
	})
}
