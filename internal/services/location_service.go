package services

import (
	"context"

	"freightquote/internal/models"
	"freightquote/internal/repositories/interfaces"
	"freightquote/internal/utils"
	"freightquote/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LocationService interface {
	CreateLocation(ctx context.Context, location *models.Location) (*models.Location, error)
	GetLocation(ctx context.Context, id primitive.ObjectID) (*models.Location, error)
	GetLocationByCode(ctx context.Context, code string) (*models.Location, error)
	UpdateLocation(ctx context.Context, id primitive.ObjectID, location *models.Location) (*models.Location, error)
	DeleteLocation(ctx context.Context, id primitive.ObjectID) error
	ListLocations(ctx context.Context, params *utils.PaginationParams) ([]*models.Location, int64, error)
	GetActiveLocations(ctx context.Context) ([]*models.Location, error)
	GetLocationsByType(ctx context.Context, locationType models.LocationType) ([]*models.Location, error)
}

type locationService struct {
	locationRepo interfaces.LocationRepository
	logger       *logger.Logger
	audit        *logger.AuditLogger
}

func NewLocationService(locationRepo interfaces.LocationRepository, log *logger.Logger, audit *logger.AuditLogger) LocationService {
	return &locationService{
		locationRepo: locationRepo,
		logger:       log,
		audit:        audit,
	}
}

func (s *locationService) auditChange(action string, location *models.Location) {
	if s.audit == nil {
		return
	}
	s.audit.LogReferenceDataChange("locations", action, location.Code, location.ID)
}

func (s *locationService) CreateLocation(ctx context.Context, location *models.Location) (*models.Location, error) {
	if err := utils.ValidateStruct(location); err != nil {
		return nil, &models.ValidationError{Message: err.Error()}
	}

	exists, err := s.locationRepo.ExistsByCode(ctx, location.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &models.ValidationError{Field: "code", Message: utils.ErrDuplicateLocationCode}
	}

	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}

	s.logger.WithField("code", location.Code).Info("location created")
	s.auditChange("create", location)
	return location, nil
}

func (s *locationService) GetLocation(ctx context.Context, id primitive.ObjectID) (*models.Location, error) {
	return s.locationRepo.GetByID(ctx, id)
}

func (s *locationService) GetLocationByCode(ctx context.Context, code string) (*models.Location, error) {
	return s.locationRepo.GetByCode(ctx, code)
}

func (s *locationService) UpdateLocation(ctx context.Context, id primitive.ObjectID, location *models.Location) (*models.Location, error) {
	existing, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	location.ID = existing.ID
	location.CreatedAt = existing.CreatedAt
	if err := utils.ValidateStruct(location); err != nil {
		return nil, &models.ValidationError{Message: err.Error()}
	}

	// A changed code must stay unique
	if location.Code != existing.Code {
		exists, err := s.locationRepo.ExistsByCode(ctx, location.Code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, &models.ValidationError{Field: "code", Message: utils.ErrDuplicateLocationCode}
		}
	}

	if err := s.locationRepo.Update(ctx, location); err != nil {
		return nil, err
	}

	s.logger.WithField("code", location.Code).Info("location updated")
	s.auditChange("update", location)
	return location, nil
}

func (s *locationService) DeleteLocation(ctx context.Context, id primitive.ObjectID) error {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.locationRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditChange("delete", location)
	return nil
}

func (s *locationService) ListLocations(ctx context.Context, params *utils.PaginationParams) ([]*models.Location, int64, error) {
	return s.locationRepo.List(ctx, params)
}

func (s *locationService) GetActiveLocations(ctx context.Context) ([]*models.Location, error) {
	return s.locationRepo.GetActive(ctx)
}

func (s *locationService) GetLocationsByType(ctx context.Context, locationType models.LocationType) ([]*models.Location, error) {
	return s.locationRepo.GetByType(ctx, locationType)
}
