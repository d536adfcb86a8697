package services

import (
	"context"

	"freightquote/internal/models"
	"freightquote/internal/repositories/interfaces"
	"freightquote/internal/utils"
	"freightquote/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContainerTypeService interface {
	CreateContainerType(ctx context.Context, containerType *models.ContainerType) (*models.ContainerType, error)
	GetContainerType(ctx context.Context, id primitive.ObjectID) (*models.ContainerType, error)
	GetContainerTypeByCode(ctx context.Context, code string) (*models.ContainerType, error)
	UpdateContainerType(ctx context.Context, id primitive.ObjectID, containerType *models.ContainerType) (*models.ContainerType, error)
	DeleteContainerType(ctx context.Context, id primitive.ObjectID) error
	ListContainerTypes(ctx context.Context, params *utils.PaginationParams) ([]*models.ContainerType, int64, error)
	GetActiveContainerTypes(ctx context.Context) ([]*models.ContainerType, error)
	FindSuitableContainers(ctx context.Context, weightKG, volumeCBM *float64) ([]*models.ContainerType, error)
}

type containerTypeService struct {
	containerTypeRepo interfaces.ContainerTypeRepository
	logger            *logger.Logger
	audit             *logger.AuditLogger
}

func NewContainerTypeService(containerTypeRepo interfaces.ContainerTypeRepository, log *logger.Logger, audit *logger.AuditLogger) ContainerTypeService {
	return &containerTypeService{
		containerTypeRepo: containerTypeRepo,
		logger:            log,
		audit:             audit,
	}
}

func (s *containerTypeService) auditChange(action string, containerType *models.ContainerType) {
	if s.audit == nil {
		return
	}
	s.audit.LogReferenceDataChange("container_types", action, containerType.Code, containerType.ID)
}

func (s *containerTypeService) CreateContainerType(ctx context.Context, containerType *models.ContainerType) (*models.ContainerType, error) {
	if err := utils.ValidateStruct(containerType); err != nil {
		return nil, &models.ValidationError{Message: err.Error()}
	}

	exists, err := s.containerTypeRepo.ExistsByCode(ctx, containerType.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &models.ValidationError{Field: "code", Message: utils.ErrDuplicateContainerCode}
	}

	// Volume and payload are derived, never taken from input
	containerType.RecalculateDerivedValues()

	if err := s.containerTypeRepo.Create(ctx, containerType); err != nil {
		return nil, err
	}

	s.logger.WithField("code", containerType.Code).Info("container type created")
	s.auditChange("create", containerType)
	return containerType, nil
}

func (s *containerTypeService) GetContainerType(ctx context.Context, id primitive.ObjectID) (*models.ContainerType, error) {
	return s.containerTypeRepo.GetByID(ctx, id)
}

func (s *containerTypeService) GetContainerTypeByCode(ctx context.Context, code string) (*models.ContainerType, error) {
	return s.containerTypeRepo.GetByCode(ctx, code)
}

func (s *containerTypeService) UpdateContainerType(ctx context.Context, id primitive.ObjectID, containerType *models.ContainerType) (*models.ContainerType, error) {
	existing, err := s.containerTypeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	containerType.ID = existing.ID
	containerType.CreatedAt = existing.CreatedAt
	if err := utils.ValidateStruct(containerType); err != nil {
		return nil, &models.ValidationError{Message: err.Error()}
	}

	if containerType.Code != existing.Code {
		exists, err := s.containerTypeRepo.ExistsByCode(ctx, containerType.Code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, &models.ValidationError{Field: "code", Message: utils.ErrDuplicateContainerCode}
		}
	}

	containerType.RecalculateDerivedValues()

	if err := s.containerTypeRepo.Update(ctx, containerType); err != nil {
		return nil, err
	}

	s.logger.WithField("code", containerType.Code).Info("container type updated")
	s.auditChange("update", containerType)
	return containerType, nil
}

func (s *containerTypeService) DeleteContainerType(ctx context.Context, id primitive.ObjectID) error {
	containerType, err := s.containerTypeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.containerTypeRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditChange("delete", containerType)
	return nil
}

func (s *containerTypeService) ListContainerTypes(ctx context.Context, params *utils.PaginationParams) ([]*models.ContainerType, int64, error) {
	return s.containerTypeRepo.List(ctx, params)
}

func (s *containerTypeService) GetActiveContainerTypes(ctx context.Context) ([]*models.ContainerType, error) {
	return s.containerTypeRepo.GetActive(ctx)
}

// FindSuitableContainers returns active container types able to hold the
// shipment; with no constraints given it falls back to all active types.
func (s *containerTypeService) FindSuitableContainers(ctx context.Context, weightKG, volumeCBM *float64) ([]*models.ContainerType, error) {
	if weightKG == nil || volumeCBM == nil {
		return s.containerTypeRepo.GetActive(ctx)
	}
	return s.containerTypeRepo.GetSuitable(ctx, *weightKG, *volumeCBM)
}
