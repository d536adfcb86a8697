package interfaces

import (
	"context"

	"freightquote/internal/models"
	"freightquote/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LocationRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, location *models.Location) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Location, error)
	Update(ctx context.Context, location *models.Location) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Lookup
	GetByCode(ctx context.Context, code string) (*models.Location, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	GetActive(ctx context.Context) ([]*models.Location, error)
	GetByType(ctx context.Context, locationType models.LocationType) ([]*models.Location, error)

	// Listing
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Location, int64, error)

	// Bootstrap
	Count(ctx context.Context) (int64, error)
}
