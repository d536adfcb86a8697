package mongodb

import (
	"context"
	"fmt"
	"time"

	"freightquote/internal/models"
	"freightquote/internal/repositories/interfaces"
	"freightquote/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type rateRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewRateRepository(db *mongo.Database, cache CacheService) interfaces.RateRepository {
	return &rateRepository{
		collection: db.Collection("rates"),
		cache:      cache,
	}
}

// Basic CRUD operations
func (r *rateRepository) Create(ctx context.Context, rate *models.Rate) error {
	rate.ID = primitive.NewObjectID()
	rate.CreatedAt = time.Now()
	rate.UpdatedAt = time.Now()

	if rate.Currency == "" {
		rate.Currency = models.DefaultCurrency
	}

	_, err := r.collection.InsertOne(ctx, rate)
	if err != nil {
		return fmt.Errorf("failed to create rate: %w", err)
	}

	return nil
}

func (r *rateRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Rate, error) {
	// Try cache first
	if rate := r.getRateFromCache(ctx, id.Hex()); rate != nil {
		return rate, nil
	}

	var rate models.Rate
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rate)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrRateNotFound
		}
		return nil, fmt.Errorf("failed to get rate: %w", err)
	}

	r.cacheRate(ctx, &rate)

	return &rate, nil
}

func (r *rateRepository) Update(ctx context.Context, rate *models.Rate) error {
	rate.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": rate.ID}, rate)
	if err != nil {
		return fmt.Errorf("failed to update rate: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrRateNotFound
	}

	r.invalidateRateCache(ctx, rate.ID.Hex())

	return nil
}

func (r *rateRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete rate: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrRateNotFound
	}

	r.invalidateRateCache(ctx, id.Hex())

	return nil
}

func (r *rateRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Rate, int64, error) {
	filter := params.GetSearchFilter([]string{"courier_name", "description"})
	return r.findPaginated(ctx, filter, params)
}

// Mode listing
func (r *rateRepository) GetByShippingMode(ctx context.Context, mode models.ShippingMode, seaMode models.SeaFreightMode, params *utils.PaginationParams) ([]*models.Rate, int64, error) {
	filter := bson.M{"shipping_mode": mode}
	if seaMode != "" {
		filter["sea_freight_mode"] = seaMode
	}
	return r.findPaginated(ctx, filter, params)
}

// Conflict detection
func (r *rateRepository) FindConflicting(ctx context.Context, query *interfaces.RateConflictQuery) ([]*models.Rate, error) {
	cursor, err := r.collection.Find(ctx, ConflictFilter(query), options.Find().SetSort(bson.D{{Key: "effective_from", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find conflicting rates: %w", err)
	}
	defer cursor.Close(ctx)

	var rates []*models.Rate
	if err := cursor.All(ctx, &rates); err != nil {
		return nil, fmt.Errorf("failed to decode conflicting rates: %w", err)
	}

	return rates, nil
}

// Quote matching
func (r *rateRepository) FindMatching(ctx context.Context, req *models.ShippingRequirement) ([]*models.Rate, error) {
	cursor, err := r.collection.Find(ctx, QuoteFilter(req))
	if err != nil {
		return nil, fmt.Errorf("failed to find matching rates: %w", err)
	}
	defer cursor.Close(ctx)

	var rates []*models.Rate
	if err := cursor.All(ctx, &rates); err != nil {
		return nil, fmt.Errorf("failed to decode matching rates: %w", err)
	}

	return rates, nil
}

// Admin search
func (r *rateRepository) Search(ctx context.Context, criteria *models.RateSearchCriteria, params *utils.PaginationParams) ([]*models.Rate, int64, error) {
	return r.findPaginated(ctx, SearchFilter(criteria), params)
}

func (r *rateRepository) findPaginated(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Rate, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count rates: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list rates: %w", err)
	}
	defer cursor.Close(ctx)

	var rates []*models.Rate
	if err := cursor.All(ctx, &rates); err != nil {
		return nil, 0, fmt.Errorf("failed to decode rates: %w", err)
	}

	return rates, total, nil
}

// Cache helpers
func (r *rateRepository) cacheRate(ctx context.Context, rate *models.Rate) {
	if r.cache == nil {
		return
	}
	r.cache.Set(ctx, utils.CacheRatePrefix+rate.ID.Hex(), rate, utils.RateCacheTTL)
}

func (r *rateRepository) getRateFromCache(ctx context.Context, id string) *models.Rate {
	if r.cache == nil {
		return nil
	}
	var rate models.Rate
	if err := r.cache.Get(ctx, utils.CacheRatePrefix+id, &rate); err != nil {
		return nil
	}
	return &rate
}

func (r *rateRepository) invalidateRateCache(ctx context.Context, id string) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, utils.CacheRatePrefix+id)
}
