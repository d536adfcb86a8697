package services

import (
	"context"
	"testing"
	"time"

	"freightquote/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type quoteServiceFixture struct {
	service   QuoteService
	rateRepo  *fakeRateRepo
	origin    primitive.ObjectID
	dest      primitive.ObjectID
	fclTypeID primitive.ObjectID
	air       *models.Rate
	lcl       *models.Rate
	fcl       *models.Rate
}

func newQuoteServiceFixture(t *testing.T) *quoteServiceFixture {
	t.Helper()

	origin := primitive.NewObjectID()
	dest := primitive.NewObjectID()
	fclTypeID := primitive.NewObjectID()

	air := &models.Rate{
		ID:            primitive.NewObjectID(),
		CourierName:   "SkyCargo",
		OriginID:      origin,
		DestinationID: dest,
		ShippingMode:  models.ShippingModeAir,
		AirFreight:    &models.AirFreightDetail{RatePerKG: 500},
		EffectiveFrom: jan1,
		EffectiveTo:   feb28,
		IsActive:      true,
	}
	lcl := &models.Rate{
		ID:             primitive.NewObjectID(),
		CourierName:    "OceanLine",
		OriginID:       origin,
		DestinationID:  dest,
		ShippingMode:   models.ShippingModeWater,
		SeaFreightMode: models.SeaFreightModeLCL,
		LCLFreight:     &models.LCLFreightDetail{RatePerCBM: 8000},
		EffectiveFrom:  jan1,
		EffectiveTo:    feb28,
		IsActive:       true,
	}
	fcl := &models.Rate{
		ID:             primitive.NewObjectID(),
		CourierName:    "OceanLine",
		OriginID:       origin,
		DestinationID:  dest,
		ShippingMode:   models.ShippingModeWater,
		SeaFreightMode: models.SeaFreightModeFCL,
		FCLFreight: map[string]*models.FCLLineItem{
			fclTypeID.Hex(): {ContainerTypeID: fclTypeID, RatePerContainer: 40000},
		},
		EffectiveFrom: jan1,
		EffectiveTo:   feb28,
		IsActive:      true,
	}
	inactive := &models.Rate{
		ID:            primitive.NewObjectID(),
		CourierName:   "Retired",
		OriginID:      origin,
		DestinationID: dest,
		ShippingMode:  models.ShippingModeAir,
		AirFreight:    &models.AirFreightDetail{RatePerKG: 100},
		EffectiveFrom: jan1,
		EffectiveTo:   feb28,
		IsActive:      false,
	}

	rateRepo := &fakeRateRepo{rates: []*models.Rate{air, lcl, fcl, inactive}}
	return &quoteServiceFixture{
		service:   NewQuoteService(rateRepo, testLogger(t)),
		rateRepo:  rateRepo,
		origin:    origin,
		dest:      dest,
		fclTypeID: fclTypeID,
		air:       air,
		lcl:       lcl,
		fcl:       fcl,
	}
}

func quoteByRateID(quotes []*models.Quote, rateID primitive.ObjectID) *models.Quote {
	for _, quote := range quotes {
		if quote.RateID == rateID {
			return quote
		}
	}
	return nil
}

func TestComputeQuotes(t *testing.T) {
	ctx := context.Background()

	t.Run("empty requirement matches every active rate", func(t *testing.T) {
		fx := newQuoteServiceFixture(t)

		quotes, err := fx.service.ComputeQuotes(ctx, &models.ShippingRequirement{})
		require.NoError(t, err)
		assert.Len(t, quotes, 3)
		assert.Nil(t, quoteByRateID(quotes, fx.rateRepo.rates[3].ID))
	})

	t.Run("mode filter narrows to air", func(t *testing.T) {
		fx := newQuoteServiceFixture(t)

		mode := models.ShippingModeAir
		weight := 100.0
		quotes, err := fx.service.ComputeQuotes(ctx, &models.ShippingRequirement{
			ShippingMode:  &mode,
			GrossWeightKG: &weight,
		})
		require.NoError(t, err)
		require.Len(t, quotes, 1)

		quote := quotes[0]
		assert.Equal(t, fx.air.ID, quote.RateID)
		require.NotNil(t, quote.Amount)
		assert.True(t, quote.Amount.Equal(decimal.NewFromInt(50000)),
			"got %s", quote.Amount)
		assert.Equal(t, models.DefaultCurrency, quote.Currency)
	})

	t.Run("fcl rate matched without container counts has nil amount", func(t *testing.T) {
		fx := newQuoteServiceFixture(t)

		mode := models.ShippingModeWater
		seaMode := models.SeaFreightModeFCL
		quotes, err := fx.service.ComputeQuotes(ctx, &models.ShippingRequirement{
			ShippingMode:   &mode,
			SeaFreightMode: &seaMode,
		})
		require.NoError(t, err)
		require.Len(t, quotes, 1)
		assert.Equal(t, fx.fcl.ID, quotes[0].RateID)
		assert.Nil(t, quotes[0].Amount)
	})

	t.Run("fcl matches rates carrying a requested container type", func(t *testing.T) {
		fx := newQuoteServiceFixture(t)

		mode := models.ShippingModeWater
		seaMode := models.SeaFreightModeFCL
		quotes, err := fx.service.ComputeQuotes(ctx, &models.ShippingRequirement{
			ShippingMode:   &mode,
			SeaFreightMode: &seaMode,
			ContainerCount: map[string]int{fx.fclTypeID.Hex(): 2},
		})
		require.NoError(t, err)
		require.Len(t, quotes, 1)

		quote := quotes[0]
		assert.Equal(t, fx.fcl.ID, quote.RateID)
		require.NotNil(t, quote.Amount)
		assert.True(t, quote.Amount.Equal(decimal.NewFromInt(80000)),
			"got %s", quote.Amount)
	})

	t.Run("fcl requirement for an uncarried container type matches nothing", func(t *testing.T) {
		fx := newQuoteServiceFixture(t)

		mode := models.ShippingModeWater
		seaMode := models.SeaFreightModeFCL
		quotes, err := fx.service.ComputeQuotes(ctx, &models.ShippingRequirement{
			ShippingMode:   &mode,
			SeaFreightMode: &seaMode,
			ContainerCount: map[string]int{primitive.NewObjectID().Hex(): 1},
		})
		require.NoError(t, err)
		assert.Empty(t, quotes)
	})

	t.Run("shipping date outside validity excludes the rate", func(t *testing.T) {
		fx := newQuoteServiceFixture(t)

		late := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		quotes, err := fx.service.ComputeQuotes(ctx, &models.ShippingRequirement{ShippingDate: &late})
		require.NoError(t, err)
		assert.Empty(t, quotes)
	})

	t.Run("cargo size never filters matches", func(t *testing.T) {
		fx := newQuoteServiceFixture(t)

		weight := 1e9
		volume := 1e9
		quotes, err := fx.service.ComputeQuotes(ctx, &models.ShippingRequirement{
			GrossWeightKG: &weight,
			VolumeCBM:     &volume,
		})
		require.NoError(t, err)
		assert.Len(t, quotes, 3)
	})

	t.Run("negative container count is rejected", func(t *testing.T) {
		fx := newQuoteServiceFixture(t)

		_, err := fx.service.ComputeQuotes(ctx, &models.ShippingRequirement{
			ContainerCount: map[string]int{fx.fclTypeID.Hex(): -1},
		})

		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "container_count", validationErr.Field)
	})
}
