package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"freightquote/internal/models"
	"freightquote/internal/repositories/interfaces"
	"freightquote/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type containerTypeRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewContainerTypeRepository(db *mongo.Database, cache CacheService) interfaces.ContainerTypeRepository {
	return &containerTypeRepository{
		collection: db.Collection("container_types"),
		cache:      cache,
	}
}

// Basic CRUD operations
func (r *containerTypeRepository) Create(ctx context.Context, containerType *models.ContainerType) error {
	containerType.ID = primitive.NewObjectID()
	containerType.CreatedAt = time.Now()
	containerType.UpdatedAt = time.Now()

	// Normalize container code to uppercase
	containerType.Code = strings.ToUpper(containerType.Code)

	_, err := r.collection.InsertOne(ctx, containerType)
	if err != nil {
		return fmt.Errorf("failed to create container type: %w", err)
	}

	return nil
}

func (r *containerTypeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ContainerType, error) {
	// Try cache first
	if containerType := r.getContainerTypeFromCache(ctx, id.Hex()); containerType != nil {
		return containerType, nil
	}

	var containerType models.ContainerType
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&containerType)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrContainerTypeNotFound
		}
		return nil, fmt.Errorf("failed to get container type: %w", err)
	}

	r.cacheContainerType(ctx, &containerType)

	return &containerType, nil
}

func (r *containerTypeRepository) Update(ctx context.Context, containerType *models.ContainerType) error {
	containerType.UpdatedAt = time.Now()
	containerType.Code = strings.ToUpper(containerType.Code)

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": containerType.ID}, containerType)
	if err != nil {
		return fmt.Errorf("failed to update container type: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrContainerTypeNotFound
	}

	r.invalidateContainerTypeCache(ctx, containerType.ID.Hex())

	return nil
}

func (r *containerTypeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete container type: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrContainerTypeNotFound
	}

	r.invalidateContainerTypeCache(ctx, id.Hex())

	return nil
}

// Lookup
func (r *containerTypeRepository) GetByCode(ctx context.Context, code string) (*models.ContainerType, error) {
	var containerType models.ContainerType
	err := r.collection.FindOne(ctx, bson.M{"code": strings.ToUpper(code)}).Decode(&containerType)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrContainerTypeNotFound
		}
		return nil, fmt.Errorf("failed to get container type by code: %w", err)
	}
	return &containerType, nil
}

func (r *containerTypeRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"code": strings.ToUpper(code)})
	if err != nil {
		return false, fmt.Errorf("failed to check container type code: %w", err)
	}
	return count > 0, nil
}

func (r *containerTypeRepository) GetActive(ctx context.Context) ([]*models.ContainerType, error) {
	return r.find(ctx, bson.M{"is_active": true})
}

// GetSuitable returns active container types whose payload and volume can hold
// the given shipment.
func (r *containerTypeRepository) GetSuitable(ctx context.Context, weightKG, volumeCBM float64) ([]*models.ContainerType, error) {
	return r.find(ctx, bson.M{
		"is_active":      true,
		"max_payload_kg": bson.M{"$gte": weightKG},
		"volume_cbm":     bson.M{"$gte": volumeCBM},
	})
}

// Listing
func (r *containerTypeRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.ContainerType, int64, error) {
	filter := params.GetSearchFilter([]string{"name", "code", "description"})

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count container types: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list container types: %w", err)
	}
	defer cursor.Close(ctx)

	var containerTypes []*models.ContainerType
	if err := cursor.All(ctx, &containerTypes); err != nil {
		return nil, 0, fmt.Errorf("failed to decode container types: %w", err)
	}

	return containerTypes, total, nil
}

func (r *containerTypeRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *containerTypeRepository) find(ctx context.Context, filter bson.M) ([]*models.ContainerType, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "volume_cbm", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find container types: %w", err)
	}
	defer cursor.Close(ctx)

	var containerTypes []*models.ContainerType
	if err := cursor.All(ctx, &containerTypes); err != nil {
		return nil, fmt.Errorf("failed to decode container types: %w", err)
	}

	return containerTypes, nil
}

// Cache helpers
func (r *containerTypeRepository) cacheContainerType(ctx context.Context, containerType *models.ContainerType) {
	if r.cache == nil {
		return
	}
	r.cache.Set(ctx, utils.CacheContainerTypePrefix+containerType.ID.Hex(), containerType, utils.ReferenceDataCacheTTL)
}

func (r *containerTypeRepository) getContainerTypeFromCache(ctx context.Context, id string) *models.ContainerType {
	if r.cache == nil {
		return nil
	}
	var containerType models.ContainerType
	if err := r.cache.Get(ctx, utils.CacheContainerTypePrefix+id, &containerType); err != nil {
		return nil
	}
	return &containerType
}

func (r *containerTypeRepository) invalidateContainerTypeCache(ctx context.Context, id string) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, utils.CacheContainerTypePrefix+id)
}
