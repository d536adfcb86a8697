package interfaces

import (
	"context"

	"freightquote/internal/models"
	"freightquote/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContainerTypeRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, containerType *models.ContainerType) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ContainerType, error)
	Update(ctx context.Context, containerType *models.ContainerType) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Lookup
	GetByCode(ctx context.Context, code string) (*models.ContainerType, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	GetActive(ctx context.Context) ([]*models.ContainerType, error)
	GetSuitable(ctx context.Context, weightKG, volumeCBM float64) ([]*models.ContainerType, error)

	// Listing
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.ContainerType, int64, error)

	// Bootstrap
	Count(ctx context.Context) (int64, error)
}
