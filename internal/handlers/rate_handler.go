package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"freightquote/internal/models"
	"freightquote/internal/services"
	"freightquote/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RateHandler struct {
	rateService services.RateService
}

func NewRateHandler(rateService services.RateService) *RateHandler {
	return &RateHandler{
		rateService: rateService,
	}
}

// CreateRate creates a new shipping rate. Returns 409 when an existing rate
// for the same courier/route/mode overlaps the effective date range.
func (h *RateHandler) CreateRate(c *gin.Context) {
	var rate models.Rate
	if err := c.ShouldBindJSON(&rate); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.rateService.CreateRate(c.Request.Context(), &rate)
	if err != nil {
		respondServiceError(c, err, "Rate")
		return
	}

	utils.CreatedResponse(c, "Rate created successfully", created)
}

// GetRate retrieves a single rate by id
func (h *RateHandler) GetRate(c *gin.Context) {
	rateID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid rate ID")
		return
	}

	rate, err := h.rateService.GetRate(c.Request.Context(), rateID)
	if err != nil {
		respondServiceError(c, err, "Rate")
		return
	}

	utils.SuccessResponse(c, "Rate retrieved successfully", rate)
}

// UpdateRate updates an existing rate. The conflict check excludes the rate
// being updated, so shrinking or shifting its own date range never conflicts
// with itself.
func (h *RateHandler) UpdateRate(c *gin.Context) {
	rateID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid rate ID")
		return
	}

	var rate models.Rate
	if err := c.ShouldBindJSON(&rate); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := h.rateService.UpdateRate(c.Request.Context(), rateID, &rate)
	if err != nil {
		respondServiceError(c, err, "Rate")
		return
	}

	utils.SuccessResponse(c, "Rate updated successfully", updated)
}

// DeleteRate removes a rate
func (h *RateHandler) DeleteRate(c *gin.Context) {
	rateID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid rate ID")
		return
	}

	if err := h.rateService.DeleteRate(c.Request.Context(), rateID); err != nil {
		respondServiceError(c, err, "Rate")
		return
	}

	utils.NoContentResponse(c)
}

// ListRates lists rates with pagination, optionally narrowed to a shipping
// mode via the "mode" and "sea_freight_mode" query parameters.
func (h *RateHandler) ListRates(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var (
		rates []*models.Rate
		total int64
		err   error
	)

	if modeStr := c.Query("mode"); modeStr != "" {
		mode := models.ShippingMode(modeStr)
		seaMode := models.SeaFreightMode(c.Query("sea_freight_mode"))
		rates, total, err = h.rateService.ListRatesByMode(c.Request.Context(), mode, seaMode, params)
	} else {
		rates, total, err = h.rateService.ListRates(c.Request.Context(), params)
	}
	if err != nil {
		respondServiceError(c, err, "Rate")
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	}

	response := map[string]interface{}{
		"rates": rates,
	}

	utils.SuccessResponseWithMeta(c, "Rates retrieved successfully", response, meta)
}

// SearchRates filters rates by the query-string criteria; absent criteria
// match everything.
func (h *RateHandler) SearchRates(c *gin.Context) {
	criteria, err := parseSearchCriteria(c)
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	params := utils.GetPaginationParams(c)
	rates, total, err := h.rateService.SearchRates(c.Request.Context(), criteria, params)
	if err != nil {
		respondServiceError(c, err, "Rate")
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	}

	response := map[string]interface{}{
		"rates": rates,
	}

	utils.SuccessResponseWithMeta(c, "Rates retrieved successfully", response, meta)
}

func parseSearchCriteria(c *gin.Context) (*models.RateSearchCriteria, error) {
	criteria := &models.RateSearchCriteria{
		CourierName: utils.SanitizeString(c.Query("courier_name")),
	}

	if modeStr := c.Query("shipping_mode"); modeStr != "" {
		mode := models.ShippingMode(modeStr)
		criteria.ShippingMode = &mode
	}
	if seaModeStr := c.Query("sea_freight_mode"); seaModeStr != "" {
		seaMode := models.SeaFreightMode(seaModeStr)
		criteria.SeaFreightMode = &seaMode
	}
	if originStr := c.Query("origin_id"); originStr != "" {
		originID, err := primitive.ObjectIDFromHex(originStr)
		if err != nil {
			return nil, errors.New("invalid origin_id")
		}
		criteria.OriginID = &originID
	}
	if destStr := c.Query("destination_id"); destStr != "" {
		destID, err := primitive.ObjectIDFromHex(destStr)
		if err != nil {
			return nil, errors.New("invalid destination_id")
		}
		criteria.DestinationID = &destID
	}
	if dateStr := c.Query("active_on_date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, errors.New("invalid active_on_date, expected YYYY-MM-DD")
		}
		criteria.ActiveOnDate = &date
	}
	if containerStr := c.Query("container_type_id"); containerStr != "" {
		containerID, err := primitive.ObjectIDFromHex(containerStr)
		if err != nil {
			return nil, errors.New("invalid container_type_id")
		}
		criteria.ContainerTypeID = &containerID
	}
	if transitStr := c.Query("max_transit_days"); transitStr != "" {
		transit, err := strconv.Atoi(transitStr)
		if err != nil || transit < 0 {
			return nil, errors.New("invalid max_transit_days")
		}
		criteria.MaxTransitDays = &transit
	}
	if activeStr := c.Query("is_active"); activeStr != "" {
		active, err := strconv.ParseBool(activeStr)
		if err != nil {
			return nil, errors.New("invalid is_active")
		}
		criteria.IsActive = &active
	}

	return criteria, nil
}

// respondServiceError translates service-layer errors into HTTP responses:
// validation failures map to 400, rate conflicts to 409 with the conflicting
// rate's id and date range, missing records to 404.
// respondBindError renders a request-body binding failure. Tag-level
// validation failures surface as a per-field detail map.
func respondBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		utils.ValidationErrorResponse(c, utils.ValidationErrorDetails(validationErrs))
		return
	}
	utils.BadRequestResponse(c, "Invalid request: "+err.Error())
}

func respondServiceError(c *gin.Context, err error, resource string) {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		details := map[string]string{}
		if validationErr.Field != "" {
			details[validationErr.Field] = validationErr.Message
		}
		utils.ErrorResponseWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", validationErr.Error(), details)
		return
	}

	var conflictErr *models.RateConflictError
	if errors.As(err, &conflictErr) {
		details := map[string]string{
			"conflicting_rate_id": conflictErr.ConflictingRateID.Hex(),
			"effective_from":      conflictErr.EffectiveFrom.Format("2006-01-02"),
			"effective_to":        conflictErr.EffectiveTo.Format("2006-01-02"),
		}
		utils.ErrorResponseWithDetails(c, http.StatusConflict, "RATE_CONFLICT", conflictErr.Message, details)
		return
	}

	switch {
	case errors.Is(err, models.ErrRateNotFound),
		errors.Is(err, models.ErrLocationNotFound),
		errors.Is(err, models.ErrContainerTypeNotFound):
		utils.NotFoundResponse(c, resource)
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Request failed: "+err.Error())
	}
}
