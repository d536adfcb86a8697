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

type locationRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewLocationRepository(db *mongo.Database, cache CacheService) interfaces.LocationRepository {
	return &locationRepository{
		collection: db.Collection("locations"),
		cache:      cache,
	}
}

// Basic CRUD operations
func (r *locationRepository) Create(ctx context.Context, location *models.Location) error {
	location.ID = primitive.NewObjectID()
	location.CreatedAt = time.Now()
	location.UpdatedAt = time.Now()

	// Normalize location code to uppercase
	location.Code = strings.ToUpper(location.Code)

	_, err := r.collection.InsertOne(ctx, location)
	if err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}

	return nil
}

func (r *locationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Location, error) {
	// Try cache first
	if location := r.getLocationFromCache(ctx, id.Hex()); location != nil {
		return location, nil
	}

	var location models.Location
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&location)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrLocationNotFound
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	r.cacheLocation(ctx, &location)

	return &location, nil
}

func (r *locationRepository) Update(ctx context.Context, location *models.Location) error {
	location.UpdatedAt = time.Now()
	location.Code = strings.ToUpper(location.Code)

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": location.ID}, location)
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrLocationNotFound
	}

	r.invalidateLocationCache(ctx, location.ID.Hex())

	return nil
}

func (r *locationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrLocationNotFound
	}

	r.invalidateLocationCache(ctx, id.Hex())

	return nil
}

// Lookup
func (r *locationRepository) GetByCode(ctx context.Context, code string) (*models.Location, error) {
	var location models.Location
	err := r.collection.FindOne(ctx, bson.M{"code": strings.ToUpper(code)}).Decode(&location)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrLocationNotFound
		}
		return nil, fmt.Errorf("failed to get location by code: %w", err)
	}
	return &location, nil
}

func (r *locationRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"code": strings.ToUpper(code)})
	if err != nil {
		return false, fmt.Errorf("failed to check location code: %w", err)
	}
	return count > 0, nil
}

func (r *locationRepository) GetActive(ctx context.Context) ([]*models.Location, error) {
	return r.find(ctx, bson.M{"is_active": true})
}

func (r *locationRepository) GetByType(ctx context.Context, locationType models.LocationType) ([]*models.Location, error) {
	return r.find(ctx, bson.M{"type": locationType, "is_active": true})
}

// Listing
func (r *locationRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Location, int64, error) {
	filter := params.GetSearchFilter([]string{"name", "code", "country"})

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count locations: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list locations: %w", err)
	}
	defer cursor.Close(ctx)

	var locations []*models.Location
	if err := cursor.All(ctx, &locations); err != nil {
		return nil, 0, fmt.Errorf("failed to decode locations: %w", err)
	}

	return locations, total, nil
}

func (r *locationRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *locationRepository) find(ctx context.Context, filter bson.M) ([]*models.Location, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find locations: %w", err)
	}
	defer cursor.Close(ctx)

	var locations []*models.Location
	if err := cursor.All(ctx, &locations); err != nil {
		return nil, fmt.Errorf("failed to decode locations: %w", err)
	}

	return locations, nil
}

// Cache helpers
func (r *locationRepository) cacheLocation(ctx context.Context, location *models.Location) {
	if r.cache == nil {
		return
	}
	r.cache.Set(ctx, utils.CacheLocationPrefix+location.ID.Hex(), location, utils.ReferenceDataCacheTTL)
}

func (r *locationRepository) getLocationFromCache(ctx context.Context, id string) *models.Location {
	if r.cache == nil {
		return nil
	}
	var location models.Location
	if err := r.cache.Get(ctx, utils.CacheLocationPrefix+id, &location); err != nil {
		return nil
	}
	return &location
}

func (r *locationRepository) invalidateLocationCache(ctx context.Context, id string) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, utils.CacheLocationPrefix+id)
}
