package services

import (
	"context"
	"errors"

	"freightquote/internal/models"
	"freightquote/internal/repositories/interfaces"
	"freightquote/internal/utils"
	"freightquote/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionRunner executes fn inside a single store transaction so the
// conflict check and the subsequent write commit as one atomic unit. Two
// concurrent creates must not both pass the check before either commits.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type RateService interface {
	// Conflict-checked write path
	CreateRate(ctx context.Context, rate *models.Rate) (*models.Rate, error)
	UpdateRate(ctx context.Context, id primitive.ObjectID, rate *models.Rate) (*models.Rate, error)

	// Reads
	GetRate(ctx context.Context, id primitive.ObjectID) (*models.Rate, error)
	ListRates(ctx context.Context, params *utils.PaginationParams) ([]*models.Rate, int64, error)
	ListRatesByMode(ctx context.Context, mode models.ShippingMode, seaMode models.SeaFreightMode, params *utils.PaginationParams) ([]*models.Rate, int64, error)
	SearchRates(ctx context.Context, criteria *models.RateSearchCriteria, params *utils.PaginationParams) ([]*models.Rate, int64, error)

	// Removal
	DeleteRate(ctx context.Context, id primitive.ObjectID) error
}

type rateService struct {
	rateRepo          interfaces.RateRepository
	locationRepo      interfaces.LocationRepository
	containerTypeRepo interfaces.ContainerTypeRepository
	tx                TransactionRunner
	logger            *logger.Logger
	audit             *logger.AuditLogger
}

func NewRateService(
	rateRepo interfaces.RateRepository,
	locationRepo interfaces.LocationRepository,
	containerTypeRepo interfaces.ContainerTypeRepository,
	tx TransactionRunner,
	log *logger.Logger,
	audit *logger.AuditLogger,
) RateService {
	return &rateService{
		rateRepo:          rateRepo,
		locationRepo:      locationRepo,
		containerTypeRepo: containerTypeRepo,
		tx:                tx,
		logger:            log,
		audit:             audit,
	}
}

func (s *rateService) CreateRate(ctx context.Context, rate *models.Rate) (*models.Rate, error) {
	if err := s.validateRate(ctx, rate); err != nil {
		return nil, err
	}

	err := s.runInTransaction(ctx, func(txCtx context.Context) error {
		if err := s.checkConflicts(txCtx, rate, nil); err != nil {
			return err
		}
		return s.rateRepo.Create(txCtx, rate)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithRateID(rate.ID).WithField("courier", rate.CourierName).Info("rate created")
	s.auditRateChange("create", rate)
	return rate, nil
}

func (s *rateService) UpdateRate(ctx context.Context, id primitive.ObjectID, rate *models.Rate) (*models.Rate, error) {
	existing, err := s.rateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := mergeRateUpdate(existing, rate)
	if err := s.validateRate(ctx, updated); err != nil {
		return nil, err
	}

	err = s.runInTransaction(ctx, func(txCtx context.Context) error {
		if err := s.checkConflicts(txCtx, updated, &id); err != nil {
			return err
		}
		return s.rateRepo.Update(txCtx, updated)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithRateID(id).Info("rate updated")
	s.auditRateChange("update", updated)
	return updated, nil
}

func (s *rateService) GetRate(ctx context.Context, id primitive.ObjectID) (*models.Rate, error) {
	return s.rateRepo.GetByID(ctx, id)
}

func (s *rateService) ListRates(ctx context.Context, params *utils.PaginationParams) ([]*models.Rate, int64, error) {
	return s.rateRepo.List(ctx, params)
}

func (s *rateService) ListRatesByMode(ctx context.Context, mode models.ShippingMode, seaMode models.SeaFreightMode, params *utils.PaginationParams) ([]*models.Rate, int64, error) {
	return s.rateRepo.GetByShippingMode(ctx, mode, seaMode, params)
}

func (s *rateService) SearchRates(ctx context.Context, criteria *models.RateSearchCriteria, params *utils.PaginationParams) ([]*models.Rate, int64, error) {
	return s.rateRepo.Search(ctx, criteria, params)
}

func (s *rateService) DeleteRate(ctx context.Context, id primitive.ObjectID) error {
	rate, err := s.rateRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.rateRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithRateID(id).Info("rate deleted")
	s.auditRateChange("delete", rate)
	return nil
}

// validateRate checks structural validity before the conflict check: date
// ordering, mode/payload agreement, and that the referenced locations and
// container types exist.
func (s *rateService) validateRate(ctx context.Context, rate *models.Rate) error {
	if err := utils.ValidateStruct(rate); err != nil {
		return &models.ValidationError{Message: err.Error()}
	}
	if err := rate.ValidateDates(); err != nil {
		return err
	}
	if err := rate.ValidateModeDetails(); err != nil {
		return err
	}

	if _, err := s.locationRepo.GetByID(ctx, rate.OriginID); err != nil {
		if errors.Is(err, models.ErrLocationNotFound) {
			return &models.ValidationError{Field: "origin_id", Message: "origin location does not exist"}
		}
		return err
	}
	if _, err := s.locationRepo.GetByID(ctx, rate.DestinationID); err != nil {
		if errors.Is(err, models.ErrLocationNotFound) {
			return &models.ValidationError{Field: "destination_id", Message: "destination location does not exist"}
		}
		return err
	}

	for _, item := range rate.FCLFreight {
		if _, err := s.containerTypeRepo.GetByID(ctx, item.ContainerTypeID); err != nil {
			if errors.Is(err, models.ErrContainerTypeNotFound) {
				return &models.ValidationError{Field: "fcl_freight", Message: "container type " + item.ContainerTypeID.Hex() + " does not exist"}
			}
			return err
		}
	}

	return nil
}

// checkConflicts raises a RateConflictError when an existing rate overlaps
// the candidate's identity and date interval. FCL rates are checked once per
// container-type line item: each container type is an independent quotable
// unit, so a conflict on one does not involve the others. excludeID is the
// rate being updated; a match that is only the rate itself is not a conflict.
func (s *rateService) checkConflicts(ctx context.Context, rate *models.Rate, excludeID *primitive.ObjectID) error {
	if rate.ShippingMode == models.ShippingModeWater && rate.SeaFreightMode == models.SeaFreightModeFCL {
		for _, item := range rate.FCLFreight {
			containerTypeID := item.ContainerTypeID
			if err := s.checkSingleConflict(ctx, rate, &containerTypeID, excludeID); err != nil {
				return err
			}
		}
		return nil
	}
	return s.checkSingleConflict(ctx, rate, nil, excludeID)
}

func (s *rateService) checkSingleConflict(ctx context.Context, rate *models.Rate, containerTypeID, excludeID *primitive.ObjectID) error {
	query := &interfaces.RateConflictQuery{
		CourierName:     rate.CourierName,
		OriginID:        rate.OriginID,
		DestinationID:   rate.DestinationID,
		ShippingMode:    rate.ShippingMode,
		SeaFreightMode:  rate.SeaFreightMode,
		ContainerTypeID: containerTypeID,
		EffectiveFrom:   rate.EffectiveFrom,
		EffectiveTo:     rate.EffectiveTo,
	}

	conflicting, err := s.rateRepo.FindConflicting(ctx, query)
	if err != nil {
		return err
	}

	// Updating a rate without moving its dates matches itself; that is not a
	// conflict.
	if excludeID != nil {
		filtered := conflicting[:0]
		for _, candidate := range conflicting {
			if candidate.ID != *excludeID {
				filtered = append(filtered, candidate)
			}
		}
		conflicting = filtered
	}
	if len(conflicting) == 0 {
		return nil
	}

	existing := conflicting[0]
	origin, destination := s.describeRoute(ctx, rate)

	var containerTypeName string
	if containerTypeID != nil {
		containerTypeName = s.describeContainerType(ctx, *containerTypeID)
	}

	if s.audit != nil {
		s.audit.LogConflictRejection(rate.CourierName, existing.ID, existing.EffectiveFrom, existing.EffectiveTo)
	}

	return models.NewRateConflictError(rate, existing, origin, destination, containerTypeName)
}

func (s *rateService) describeRoute(ctx context.Context, rate *models.Rate) (string, string) {
	origin := "Location ID: " + rate.OriginID.Hex()
	if loc, err := s.locationRepo.GetByID(ctx, rate.OriginID); err == nil {
		origin = loc.Description()
	}
	destination := "Location ID: " + rate.DestinationID.Hex()
	if loc, err := s.locationRepo.GetByID(ctx, rate.DestinationID); err == nil {
		destination = loc.Description()
	}
	return origin, destination
}

func (s *rateService) describeContainerType(ctx context.Context, id primitive.ObjectID) string {
	if containerType, err := s.containerTypeRepo.GetByID(ctx, id); err == nil {
		return containerType.Name
	}
	return "Unknown Container Type"
}

func (s *rateService) auditRateChange(action string, rate *models.Rate) {
	if s.audit == nil {
		return
	}
	s.audit.LogRateChange(action, rate.ID, rate.CourierName, map[string]interface{}{
		"shipping_mode":  rate.ShippingMode,
		"effective_from": rate.EffectiveFrom.Format("2006-01-02"),
		"effective_to":   rate.EffectiveTo.Format("2006-01-02"),
	})
}

func (s *rateService) runInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx.RunInTransaction(ctx, fn)
}

// mergeRateUpdate applies the mutable fields of an update onto the stored
// rate. Identity fields (courier, route, mode tags) are fixed at creation.
func mergeRateUpdate(existing, update *models.Rate) *models.Rate {
	merged := *existing

	if !update.EffectiveFrom.IsZero() {
		merged.EffectiveFrom = update.EffectiveFrom
	}
	if !update.EffectiveTo.IsZero() {
		merged.EffectiveTo = update.EffectiveTo
	}
	if update.Description != "" {
		merged.Description = update.Description
	}
	if update.TransitDays != nil {
		merged.TransitDays = update.TransitDays
	}
	if update.DimensionLimit != "" {
		merged.DimensionLimit = update.DimensionLimit
	}
	if update.Currency != "" {
		merged.Currency = update.Currency
	}
	merged.IsActive = update.IsActive

	// Freight details replace wholesale when provided; the mode tags never
	// change.
	if update.AirFreight != nil {
		merged.AirFreight = update.AirFreight
	}
	if update.LCLFreight != nil {
		merged.LCLFreight = update.LCLFreight
	}
	if len(update.FCLFreight) > 0 {
		merged.FCLFreight = update.FCLFreight
	}

	return &merged
}
