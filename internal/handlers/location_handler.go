package handlers

import (
	"freightquote/internal/models"
	"freightquote/internal/services"
	"freightquote/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LocationHandler struct {
	locationService services.LocationService
}

func NewLocationHandler(locationService services.LocationService) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
	}
}

// CreateLocation creates a new port, airport or city
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var location models.Location
	if err := c.ShouldBindJSON(&location); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.locationService.CreateLocation(c.Request.Context(), &location)
	if err != nil {
		respondServiceError(c, err, "Location")
		return
	}

	utils.CreatedResponse(c, "Location created successfully", created)
}

// GetLocation retrieves a location by id
func (h *LocationHandler) GetLocation(c *gin.Context) {
	locationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid location ID")
		return
	}

	location, err := h.locationService.GetLocation(c.Request.Context(), locationID)
	if err != nil {
		respondServiceError(c, err, "Location")
		return
	}

	utils.SuccessResponse(c, "Location retrieved successfully", location)
}

// GetLocationByCode retrieves a location by its code, e.g. SHP_INMUN
func (h *LocationHandler) GetLocationByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		utils.BadRequestResponse(c, "Location code is required")
		return
	}

	location, err := h.locationService.GetLocationByCode(c.Request.Context(), code)
	if err != nil {
		respondServiceError(c, err, "Location")
		return
	}

	utils.SuccessResponse(c, "Location retrieved successfully", location)
}

// UpdateLocation updates an existing location
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	locationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid location ID")
		return
	}

	var location models.Location
	if err := c.ShouldBindJSON(&location); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := h.locationService.UpdateLocation(c.Request.Context(), locationID, &location)
	if err != nil {
		respondServiceError(c, err, "Location")
		return
	}

	utils.SuccessResponse(c, "Location updated successfully", updated)
}

// DeleteLocation removes a location
func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	locationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid location ID")
		return
	}

	if err := h.locationService.DeleteLocation(c.Request.Context(), locationID); err != nil {
		respondServiceError(c, err, "Location")
		return
	}

	utils.NoContentResponse(c)
}

// ListLocations lists locations with pagination. The "type" query parameter
// narrows to a location type, "active=true" returns only active locations
// without pagination.
func (h *LocationHandler) ListLocations(c *gin.Context) {
	if c.Query("active") == "true" {
		locations, err := h.locationService.GetActiveLocations(c.Request.Context())
		if err != nil {
			respondServiceError(c, err, "Location")
			return
		}
		utils.SuccessResponse(c, "Locations retrieved successfully", locations)
		return
	}

	if typeStr := c.Query("type"); typeStr != "" {
		locations, err := h.locationService.GetLocationsByType(c.Request.Context(), models.LocationType(typeStr))
		if err != nil {
			respondServiceError(c, err, "Location")
			return
		}
		utils.SuccessResponse(c, "Locations retrieved successfully", locations)
		return
	}

	params := utils.GetPaginationParams(c)
	locations, total, err := h.locationService.ListLocations(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Location")
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	}

	response := map[string]interface{}{
		"locations": locations,
	}

	utils.SuccessResponseWithMeta(c, "Locations retrieved successfully", response, meta)
}
