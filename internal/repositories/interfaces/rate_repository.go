package interfaces

import (
	"context"
	"time"

	"freightquote/internal/models"
	"freightquote/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RateConflictQuery carries the identity fields of a candidate rate for
// overlap detection. ContainerTypeID is set only for FCL checks, which run
// once per line item. Self-exclusion on updates is the conflict detector's
// concern, not the query's.
type RateConflictQuery struct {
	CourierName     string
	OriginID        primitive.ObjectID
	DestinationID   primitive.ObjectID
	ShippingMode    models.ShippingMode
	SeaFreightMode  models.SeaFreightMode
	ContainerTypeID *primitive.ObjectID
	EffectiveFrom   time.Time
	EffectiveTo     time.Time
}

type RateRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, rate *models.Rate) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Rate, error)
	Update(ctx context.Context, rate *models.Rate) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Rate, int64, error)

	// Mode listing
	GetByShippingMode(ctx context.Context, mode models.ShippingMode, seaMode models.SeaFreightMode, params *utils.PaginationParams) ([]*models.Rate, int64, error)

	// Conflict detection (overlap predicate execution)
	FindConflicting(ctx context.Context, query *RateConflictQuery) ([]*models.Rate, error)

	// Quote matching and admin search
	FindMatching(ctx context.Context, req *models.ShippingRequirement) ([]*models.Rate, error)
	Search(ctx context.Context, criteria *models.RateSearchCriteria, params *utils.PaginationParams) ([]*models.Rate, int64, error)
}
