package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"freightquote/internal/models"
	"freightquote/internal/repositories/interfaces"
	"freightquote/internal/utils"
	"freightquote/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- in-memory fakes ---

type fakeRateRepo struct {
	rates []*models.Rate
}

func (f *fakeRateRepo) Create(ctx context.Context, rate *models.Rate) error {
	if rate.ID.IsZero() {
		rate.ID = primitive.NewObjectID()
	}
	stored := *rate
	f.rates = append(f.rates, &stored)
	return nil
}

func (f *fakeRateRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Rate, error) {
	for _, rate := range f.rates {
		if rate.ID == id {
			found := *rate
			return &found, nil
		}
	}
	return nil, models.ErrRateNotFound
}

func (f *fakeRateRepo) Update(ctx context.Context, rate *models.Rate) error {
	for i, existing := range f.rates {
		if existing.ID == rate.ID {
			stored := *rate
			f.rates[i] = &stored
			return nil
		}
	}
	return models.ErrRateNotFound
}

func (f *fakeRateRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	for i, rate := range f.rates {
		if rate.ID == id {
			f.rates = append(f.rates[:i], f.rates[i+1:]...)
			return nil
		}
	}
	return models.ErrRateNotFound
}

func (f *fakeRateRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Rate, int64, error) {
	return f.rates, int64(len(f.rates)), nil
}

func (f *fakeRateRepo) GetByShippingMode(ctx context.Context, mode models.ShippingMode, seaMode models.SeaFreightMode, params *utils.PaginationParams) ([]*models.Rate, int64, error) {
	var matched []*models.Rate
	for _, rate := range f.rates {
		if rate.ShippingMode == mode && (seaMode == "" || rate.SeaFreightMode == seaMode) {
			matched = append(matched, rate)
		}
	}
	return matched, int64(len(matched)), nil
}

// FindConflicting mirrors the mongo overlap predicate: same courier
// (case-insensitive), route and mode, intervals overlapping with boundary
// touch counting as overlap.
func (f *fakeRateRepo) FindConflicting(ctx context.Context, query *interfaces.RateConflictQuery) ([]*models.Rate, error) {
	var conflicting []*models.Rate
	for _, rate := range f.rates {
		if !strings.EqualFold(rate.CourierName, query.CourierName) {
			continue
		}
		if rate.OriginID != query.OriginID || rate.DestinationID != query.DestinationID {
			continue
		}
		if rate.ShippingMode != query.ShippingMode {
			continue
		}
		if query.SeaFreightMode != "" && rate.SeaFreightMode != query.SeaFreightMode {
			continue
		}
		if query.ContainerTypeID != nil {
			if _, ok := rate.FCLFreight[query.ContainerTypeID.Hex()]; !ok {
				continue
			}
		}
		if rate.EffectiveTo.Before(query.EffectiveFrom) || rate.EffectiveFrom.After(query.EffectiveTo) {
			continue
		}
		conflicting = append(conflicting, rate)
	}
	return conflicting, nil
}

func (f *fakeRateRepo) FindMatching(ctx context.Context, req *models.ShippingRequirement) ([]*models.Rate, error) {
	var matched []*models.Rate
	for _, rate := range f.rates {
		if !rate.IsActive {
			continue
		}
		if req.OriginID != nil && rate.OriginID != *req.OriginID {
			continue
		}
		if req.DestinationID != nil && rate.DestinationID != *req.DestinationID {
			continue
		}
		if req.ShippingDate != nil &&
			(rate.EffectiveFrom.After(*req.ShippingDate) || rate.EffectiveTo.Before(*req.ShippingDate)) {
			continue
		}
		if req.ShippingMode != nil {
			if rate.ShippingMode != *req.ShippingMode {
				continue
			}
			if *req.ShippingMode == models.ShippingModeWater && req.SeaFreightMode != nil {
				if rate.SeaFreightMode != *req.SeaFreightMode {
					continue
				}
				if *req.SeaFreightMode == models.SeaFreightModeFCL && req.WantsFCLContainers() {
					any := false
					for containerTypeID := range req.ContainerCount {
						if _, ok := rate.FCLFreight[containerTypeID]; ok {
							any = true
							break
						}
					}
					if !any {
						continue
					}
				}
			}
		}
		matched = append(matched, rate)
	}
	return matched, nil
}

func (f *fakeRateRepo) Search(ctx context.Context, criteria *models.RateSearchCriteria, params *utils.PaginationParams) ([]*models.Rate, int64, error) {
	return f.rates, int64(len(f.rates)), nil
}

type fakeLocationRepo struct {
	locations map[primitive.ObjectID]*models.Location
}

func newFakeLocationRepo(locations ...*models.Location) *fakeLocationRepo {
	repo := &fakeLocationRepo{locations: make(map[primitive.ObjectID]*models.Location)}
	for _, location := range locations {
		repo.locations[location.ID] = location
	}
	return repo
}

func (f *fakeLocationRepo) Create(ctx context.Context, location *models.Location) error {
	if location.ID.IsZero() {
		location.ID = primitive.NewObjectID()
	}
	f.locations[location.ID] = location
	return nil
}

func (f *fakeLocationRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Location, error) {
	if location, ok := f.locations[id]; ok {
		return location, nil
	}
	return nil, models.ErrLocationNotFound
}

func (f *fakeLocationRepo) Update(ctx context.Context, location *models.Location) error {
	f.locations[location.ID] = location
	return nil
}

func (f *fakeLocationRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.locations, id)
	return nil
}

func (f *fakeLocationRepo) GetByCode(ctx context.Context, code string) (*models.Location, error) {
	for _, location := range f.locations {
		if location.Code == code {
			return location, nil
		}
	}
	return nil, models.ErrLocationNotFound
}

func (f *fakeLocationRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	_, err := f.GetByCode(ctx, code)
	return err == nil, nil
}

func (f *fakeLocationRepo) GetActive(ctx context.Context) ([]*models.Location, error) {
	var active []*models.Location
	for _, location := range f.locations {
		if location.IsActive {
			active = append(active, location)
		}
	}
	return active, nil
}

func (f *fakeLocationRepo) GetByType(ctx context.Context, locationType models.LocationType) ([]*models.Location, error) {
	var matched []*models.Location
	for _, location := range f.locations {
		if location.Type == locationType {
			matched = append(matched, location)
		}
	}
	return matched, nil
}

func (f *fakeLocationRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Location, int64, error) {
	var all []*models.Location
	for _, location := range f.locations {
		all = append(all, location)
	}
	return all, int64(len(all)), nil
}

func (f *fakeLocationRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.locations)), nil
}

type fakeContainerTypeRepo struct {
	containerTypes map[primitive.ObjectID]*models.ContainerType
}

func newFakeContainerTypeRepo(containerTypes ...*models.ContainerType) *fakeContainerTypeRepo {
	repo := &fakeContainerTypeRepo{containerTypes: make(map[primitive.ObjectID]*models.ContainerType)}
	for _, containerType := range containerTypes {
		repo.containerTypes[containerType.ID] = containerType
	}
	return repo
}

func (f *fakeContainerTypeRepo) Create(ctx context.Context, containerType *models.ContainerType) error {
	if containerType.ID.IsZero() {
		containerType.ID = primitive.NewObjectID()
	}
	f.containerTypes[containerType.ID] = containerType
	return nil
}

func (f *fakeContainerTypeRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ContainerType, error) {
	if containerType, ok := f.containerTypes[id]; ok {
		return containerType, nil
	}
	return nil, models.ErrContainerTypeNotFound
}

func (f *fakeContainerTypeRepo) Update(ctx context.Context, containerType *models.ContainerType) error {
	f.containerTypes[containerType.ID] = containerType
	return nil
}

func (f *fakeContainerTypeRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.containerTypes, id)
	return nil
}

func (f *fakeContainerTypeRepo) GetByCode(ctx context.Context, code string) (*models.ContainerType, error) {
	for _, containerType := range f.containerTypes {
		if containerType.Code == code {
			return containerType, nil
		}
	}
	return nil, models.ErrContainerTypeNotFound
}

func (f *fakeContainerTypeRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	_, err := f.GetByCode(ctx, code)
	return err == nil, nil
}

func (f *fakeContainerTypeRepo) GetActive(ctx context.Context) ([]*models.ContainerType, error) {
	var active []*models.ContainerType
	for _, containerType := range f.containerTypes {
		if containerType.IsActive {
			active = append(active, containerType)
		}
	}
	return active, nil
}

func (f *fakeContainerTypeRepo) GetSuitable(ctx context.Context, weightKG, volumeCBM float64) ([]*models.ContainerType, error) {
	var suitable []*models.ContainerType
	for _, containerType := range f.containerTypes {
		if containerType.IsActive && containerType.CanFit(weightKG, volumeCBM) {
			suitable = append(suitable, containerType)
		}
	}
	return suitable, nil
}

func (f *fakeContainerTypeRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.ContainerType, int64, error) {
	var all []*models.ContainerType
	for _, containerType := range f.containerTypes {
		all = append(all, containerType)
	}
	return all, int64(len(all)), nil
}

func (f *fakeContainerTypeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.containerTypes)), nil
}

// --- fixtures ---

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: "stderr"})
	require.NoError(t, err)
	return log
}

type rateServiceFixture struct {
	service       RateService
	rateRepo      *fakeRateRepo
	origin        *models.Location
	destination   *models.Location
	containerType *models.ContainerType
}

func newRateServiceFixture(t *testing.T) *rateServiceFixture {
	t.Helper()

	origin := &models.Location{
		ID: primitive.NewObjectID(), Name: "JNPT Mumbai", Code: "SHP_INMUN",
		Country: "India", Type: models.LocationTypeSeaPort, IsActive: true,
	}
	destination := &models.Location{
		ID: primitive.NewObjectID(), Name: "Port of Singapore", Code: "SHP_SGSIN",
		Country: "Singapore", Type: models.LocationTypeSeaPort, IsActive: true,
	}
	containerType := &models.ContainerType{
		ID: primitive.NewObjectID(), Code: "20GP", Name: "20ft General Purpose",
		LengthMeters: 5.90, WidthMeters: 2.35, HeightMeters: 2.39,
		MaxGrossWeightKG: 30480, TareWeightKG: 2230, IsActive: true,
	}
	containerType.RecalculateDerivedValues()

	rateRepo := &fakeRateRepo{}
	service := NewRateService(
		rateRepo,
		newFakeLocationRepo(origin, destination),
		newFakeContainerTypeRepo(containerType),
		nil,
		testLogger(t),
		nil,
	)

	return &rateServiceFixture{
		service:       service,
		rateRepo:      rateRepo,
		origin:        origin,
		destination:   destination,
		containerType: containerType,
	}
}

func (fx *rateServiceFixture) airRate(from, to time.Time) *models.Rate {
	return &models.Rate{
		CourierName:   "SkyCargo",
		OriginID:      fx.origin.ID,
		DestinationID: fx.destination.ID,
		ShippingMode:  models.ShippingModeAir,
		AirFreight:    &models.AirFreightDetail{RatePerKG: 500, MinimumCharge: 5000},
		EffectiveFrom: from,
		EffectiveTo:   to,
		IsActive:      true,
	}
}

func (fx *rateServiceFixture) fclRate(from, to time.Time, containerTypes ...*models.ContainerType) *models.Rate {
	items := make(map[string]*models.FCLLineItem, len(containerTypes))
	for _, containerType := range containerTypes {
		items[containerType.ID.Hex()] = &models.FCLLineItem{
			ContainerTypeID:  containerType.ID,
			RatePerContainer: 40000,
		}
	}
	return &models.Rate{
		CourierName:    "OceanLine",
		OriginID:       fx.origin.ID,
		DestinationID:  fx.destination.ID,
		ShippingMode:   models.ShippingModeWater,
		SeaFreightMode: models.SeaFreightModeFCL,
		FCLFreight:     items,
		EffectiveFrom:  from,
		EffectiveTo:    to,
		IsActive:       true,
	}
}

var (
	jan1  = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	jan15 = time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	jan31 = time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	feb1  = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	feb15 = time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	feb28 = time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
)

// --- tests ---

func TestCreateRate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a valid rate", func(t *testing.T) {
		fx := newRateServiceFixture(t)

		created, err := fx.service.CreateRate(ctx, fx.airRate(jan1, jan31))
		require.NoError(t, err)
		assert.False(t, created.ID.IsZero())
		assert.Len(t, fx.rateRepo.rates, 1)
	})

	t.Run("rejects an overlapping rate", func(t *testing.T) {
		fx := newRateServiceFixture(t)

		existing, err := fx.service.CreateRate(ctx, fx.airRate(jan1, jan31))
		require.NoError(t, err)

		_, err = fx.service.CreateRate(ctx, fx.airRate(jan15, feb15))
		require.Error(t, err)

		var conflictErr *models.RateConflictError
		require.ErrorAs(t, err, &conflictErr)
		assert.Equal(t, existing.ID, conflictErr.ConflictingRateID)
		assert.Equal(t, jan1, conflictErr.EffectiveFrom)
		assert.Equal(t, jan31, conflictErr.EffectiveTo)
		assert.Contains(t, conflictErr.Message, "SkyCargo")
		assert.Len(t, fx.rateRepo.rates, 1)
	})

	t.Run("boundary touch counts as overlap", func(t *testing.T) {
		fx := newRateServiceFixture(t)

		_, err := fx.service.CreateRate(ctx, fx.airRate(jan1, jan31))
		require.NoError(t, err)

		_, err = fx.service.CreateRate(ctx, fx.airRate(jan31, feb28))
		var conflictErr *models.RateConflictError
		assert.ErrorAs(t, err, &conflictErr)
	})

	t.Run("adjacent intervals do not conflict", func(t *testing.T) {
		fx := newRateServiceFixture(t)

		_, err := fx.service.CreateRate(ctx, fx.airRate(jan1, jan31))
		require.NoError(t, err)

		_, err = fx.service.CreateRate(ctx, fx.airRate(feb1, feb28))
		assert.NoError(t, err)
	})

	t.Run("courier match ignores case", func(t *testing.T) {
		fx := newRateServiceFixture(t)

		_, err := fx.service.CreateRate(ctx, fx.airRate(jan1, jan31))
		require.NoError(t, err)

		shouting := fx.airRate(jan15, feb15)
		shouting.CourierName = "SKYCARGO"
		_, err = fx.service.CreateRate(ctx, shouting)

		var conflictErr *models.RateConflictError
		assert.ErrorAs(t, err, &conflictErr)
	})

	t.Run("different couriers never conflict", func(t *testing.T) {
		fx := newRateServiceFixture(t)

		_, err := fx.service.CreateRate(ctx, fx.airRate(jan1, jan31))
		require.NoError(t, err)

		other := fx.airRate(jan15, feb15)
		other.CourierName = "JetFreight"
		_, err = fx.service.CreateRate(ctx, other)
		assert.NoError(t, err)
	})

	t.Run("rejects a rate whose origin does not exist", func(t *testing.T) {
		fx := newRateServiceFixture(t)

		orphan := fx.airRate(jan1, jan31)
		orphan.OriginID = primitive.NewObjectID()
		_, err := fx.service.CreateRate(ctx, orphan)

		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "origin_id", validationErr.Field)
	})

	t.Run("rejects reversed dates", func(t *testing.T) {
		fx := newRateServiceFixture(t)

		_, err := fx.service.CreateRate(ctx, fx.airRate(jan31, jan1))
		var validationErr *models.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestCreateRateFCLConflicts(t *testing.T) {
	ctx := context.Background()

	t.Run("same container type conflicts", func(t *testing.T) {
		fx := newRateServiceFixture(t)

		_, err := fx.service.CreateRate(ctx, fx.fclRate(jan1, jan31, fx.containerType))
		require.NoError(t, err)

		_, err = fx.service.CreateRate(ctx, fx.fclRate(jan15, feb15, fx.containerType))
		var conflictErr *models.RateConflictError
		require.ErrorAs(t, err, &conflictErr)
		assert.Contains(t, conflictErr.Message, "20ft General Purpose")
	})

	t.Run("different container types are independent", func(t *testing.T) {
		fx := newRateServiceFixture(t)

		otherType := &models.ContainerType{
			ID: primitive.NewObjectID(), Code: "40GP", Name: "40ft General Purpose",
			LengthMeters: 12.03, WidthMeters: 2.35, HeightMeters: 2.39,
			MaxGrossWeightKG: 30480, TareWeightKG: 3740, IsActive: true,
		}
		containerTypeRepo := newFakeContainerTypeRepo(fx.containerType, otherType)
		fx.service = NewRateService(
			fx.rateRepo,
			newFakeLocationRepo(fx.origin, fx.destination),
			containerTypeRepo,
			nil,
			testLogger(t),
			nil,
		)

		_, err := fx.service.CreateRate(ctx, fx.fclRate(jan1, jan31, fx.containerType))
		require.NoError(t, err)

		_, err = fx.service.CreateRate(ctx, fx.fclRate(jan15, feb15, otherType))
		assert.NoError(t, err)
	})

	t.Run("lcl and fcl on the same route are independent", func(t *testing.T) {
		fx := newRateServiceFixture(t)

		fcl := fx.fclRate(jan1, jan31, fx.containerType)
		_, err := fx.service.CreateRate(ctx, fcl)
		require.NoError(t, err)

		lcl := &models.Rate{
			CourierName:    fcl.CourierName,
			OriginID:       fcl.OriginID,
			DestinationID:  fcl.DestinationID,
			ShippingMode:   models.ShippingModeWater,
			SeaFreightMode: models.SeaFreightModeLCL,
			LCLFreight:     &models.LCLFreightDetail{RatePerCBM: 8000},
			EffectiveFrom:  jan15,
			EffectiveTo:    feb15,
			IsActive:       true,
		}
		_, err = fx.service.CreateRate(ctx, lcl)
		assert.NoError(t, err)
	})
}

func TestUpdateRate(t *testing.T) {
	ctx := context.Background()

	t.Run("matching only itself is not a conflict", func(t *testing.T) {
		fx := newRateServiceFixture(t)

		created, err := fx.service.CreateRate(ctx, fx.airRate(jan1, jan31))
		require.NoError(t, err)

		update := &models.Rate{EffectiveFrom: jan15, EffectiveTo: feb15, IsActive: true}
		updated, err := fx.service.UpdateRate(ctx, created.ID, update)
		require.NoError(t, err)
		assert.Equal(t, jan15, updated.EffectiveFrom)
		assert.Equal(t, feb15, updated.EffectiveTo)
	})

	t.Run("overlapping another rate conflicts", func(t *testing.T) {
		fx := newRateServiceFixture(t)

		_, err := fx.service.CreateRate(ctx, fx.airRate(jan1, jan31))
		require.NoError(t, err)
		second, err := fx.service.CreateRate(ctx, fx.airRate(feb1, feb28))
		require.NoError(t, err)

		update := &models.Rate{EffectiveFrom: jan15, EffectiveTo: feb15, IsActive: true}
		_, err = fx.service.UpdateRate(ctx, second.ID, update)

		var conflictErr *models.RateConflictError
		assert.ErrorAs(t, err, &conflictErr)
	})

	t.Run("unknown rate id", func(t *testing.T) {
		fx := newRateServiceFixture(t)

		_, err := fx.service.UpdateRate(ctx, primitive.NewObjectID(), &models.Rate{IsActive: true})
		assert.ErrorIs(t, err, models.ErrRateNotFound)
	})

	t.Run("identity fields are immutable", func(t *testing.T) {
		fx := newRateServiceFixture(t)

		created, err := fx.service.CreateRate(ctx, fx.airRate(jan1, jan31))
		require.NoError(t, err)

		update := &models.Rate{
			CourierName:   "Impostor",
			OriginID:      primitive.NewObjectID(),
			EffectiveFrom: jan1,
			EffectiveTo:   jan31,
			IsActive:      true,
		}
		updated, err := fx.service.UpdateRate(ctx, created.ID, update)
		require.NoError(t, err)
		assert.Equal(t, "SkyCargo", updated.CourierName)
		assert.Equal(t, fx.origin.ID, updated.OriginID)
	})
}

func TestDeleteRate(t *testing.T) {
	ctx := context.Background()
	fx := newRateServiceFixture(t)

	created, err := fx.service.CreateRate(ctx, fx.airRate(jan1, jan31))
	require.NoError(t, err)

	require.NoError(t, fx.service.DeleteRate(ctx, created.ID))
	assert.Empty(t, fx.rateRepo.rates)

	assert.ErrorIs(t, fx.service.DeleteRate(ctx, created.ID), models.ErrRateNotFound)
}
