package utils

import (
	"math"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// allowedSortFields are the fields list endpoints may sort by. Anything else
// falls back to created_at so clients cannot probe unindexed fields.
var allowedSortFields = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"courier_name":   true,
	"effective_from": true,
	"effective_to":   true,
	"code":           true,
	"name":           true,
	"country":        true,
}

type PaginationParams struct {
	Page     int    `json:"page" form:"page"`
	PageSize int    `json:"page_size" form:"page_size"`
	Sort     string `json:"sort" form:"sort"`
	Order    string `json:"order" form:"order"`
	Search   string `json:"search" form:"search"`
}

type PaginationMeta struct {
	Page         int   `json:"page"`
	PageSize     int   `json:"page_size"`
	Total        int64 `json:"total"`
	TotalPages   int   `json:"total_pages"`
	HasNext      bool  `json:"has_next"`
	HasPrevious  bool  `json:"has_previous"`
	NextPage     *int  `json:"next_page,omitempty"`
	PreviousPage *int  `json:"previous_page,omitempty"`
}

func GetPaginationParams(c *gin.Context) *PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))
	if pageSize < MinPageSize {
		pageSize = MinPageSize
	} else if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	sort := c.DefaultQuery("sort", "created_at")
	if !allowedSortFields[sort] {
		sort = "created_at"
	}

	order := c.DefaultQuery("order", "desc")
	if order != "asc" {
		order = "desc"
	}

	return &PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Sort:     sort,
		Order:    order,
		Search:   c.Query("search"),
	}
}

func (p *PaginationParams) GetSkip() int {
	return (p.Page - 1) * p.PageSize
}

func (p *PaginationParams) GetLimit() int {
	return p.PageSize
}

// GetSortOptions builds the find options for a paginated query. A nil
// receiver (repositories called outside the HTTP path) returns unsorted,
// unbounded options.
func (p *PaginationParams) GetSortOptions() *options.FindOptions {
	opts := options.Find()
	if p == nil {
		return opts
	}

	opts.SetSkip(int64(p.GetSkip()))
	opts.SetLimit(int64(p.GetLimit()))

	sortOrder := -1
	if p.Order == "asc" {
		sortOrder = 1
	}
	opts.SetSort(bson.D{{Key: p.Sort, Value: sortOrder}})

	return opts
}

// GetSearchFilter builds a case-insensitive substring match across the given
// fields. The search term is regex-escaped; a raw term like "A+B" must match
// literally.
func (p *PaginationParams) GetSearchFilter(fields []string) bson.M {
	if p == nil || p.Search == "" || len(fields) == 0 {
		return bson.M{}
	}

	pattern := regexp.QuoteMeta(p.Search)
	orConditions := make([]bson.M, 0, len(fields))
	for _, field := range fields {
		orConditions = append(orConditions, bson.M{
			field: bson.M{"$regex": pattern, "$options": "i"},
		})
	}

	return bson.M{"$or": orConditions}
}

func CreatePaginationMeta(params *PaginationParams, total int64) *PaginationMeta {
	totalPages := int(math.Ceil(float64(total) / float64(params.PageSize)))

	meta := &PaginationMeta{
		Page:        params.Page,
		PageSize:    params.PageSize,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     params.Page < totalPages,
		HasPrevious: params.Page > 1,
	}

	if meta.HasNext {
		nextPage := params.Page + 1
		meta.NextPage = &nextPage
	}
	if meta.HasPrevious {
		previousPage := params.Page - 1
		meta.PreviousPage = &previousPage
	}

	return meta
}
