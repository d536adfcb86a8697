package handlers

import (
	"strconv"

	"freightquote/internal/models"
	"freightquote/internal/services"
	"freightquote/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContainerTypeHandler struct {
	containerTypeService services.ContainerTypeService
}

func NewContainerTypeHandler(containerTypeService services.ContainerTypeService) *ContainerTypeHandler {
	return &ContainerTypeHandler{
		containerTypeService: containerTypeService,
	}
}

// CreateContainerType creates a new container type. Volume and max payload
// are computed from the dimensions, never taken from the request body.
func (h *ContainerTypeHandler) CreateContainerType(c *gin.Context) {
	var containerType models.ContainerType
	if err := c.ShouldBindJSON(&containerType); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.containerTypeService.CreateContainerType(c.Request.Context(), &containerType)
	if err != nil {
		respondServiceError(c, err, "Container type")
		return
	}

	utils.CreatedResponse(c, "Container type created successfully", created)
}

// GetContainerType retrieves a container type by id
func (h *ContainerTypeHandler) GetContainerType(c *gin.Context) {
	containerTypeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid container type ID")
		return
	}

	containerType, err := h.containerTypeService.GetContainerType(c.Request.Context(), containerTypeID)
	if err != nil {
		respondServiceError(c, err, "Container type")
		return
	}

	utils.SuccessResponse(c, "Container type retrieved successfully", containerType)
}

// GetContainerTypeByCode retrieves a container type by its code, e.g. 20GP
func (h *ContainerTypeHandler) GetContainerTypeByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		utils.BadRequestResponse(c, "Container type code is required")
		return
	}

	containerType, err := h.containerTypeService.GetContainerTypeByCode(c.Request.Context(), code)
	if err != nil {
		respondServiceError(c, err, "Container type")
		return
	}

	utils.SuccessResponse(c, "Container type retrieved successfully", containerType)
}

// UpdateContainerType updates an existing container type
func (h *ContainerTypeHandler) UpdateContainerType(c *gin.Context) {
	containerTypeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid container type ID")
		return
	}

	var containerType models.ContainerType
	if err := c.ShouldBindJSON(&containerType); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := h.containerTypeService.UpdateContainerType(c.Request.Context(), containerTypeID, &containerType)
	if err != nil {
		respondServiceError(c, err, "Container type")
		return
	}

	utils.SuccessResponse(c, "Container type updated successfully", updated)
}

// DeleteContainerType removes a container type
func (h *ContainerTypeHandler) DeleteContainerType(c *gin.Context) {
	containerTypeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid container type ID")
		return
	}

	if err := h.containerTypeService.DeleteContainerType(c.Request.Context(), containerTypeID); err != nil {
		respondServiceError(c, err, "Container type")
		return
	}

	utils.NoContentResponse(c)
}

// ListContainerTypes lists container types with pagination; "active=true"
// returns only active types without pagination.
func (h *ContainerTypeHandler) ListContainerTypes(c *gin.Context) {
	if c.Query("active") == "true" {
		containerTypes, err := h.containerTypeService.GetActiveContainerTypes(c.Request.Context())
		if err != nil {
			respondServiceError(c, err, "Container type")
			return
		}
		utils.SuccessResponse(c, "Container types retrieved successfully", containerTypes)
		return
	}

	params := utils.GetPaginationParams(c)
	containerTypes, total, err := h.containerTypeService.ListContainerTypes(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Container type")
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	}

	response := map[string]interface{}{
		"container_types": containerTypes,
	}

	utils.SuccessResponseWithMeta(c, "Container types retrieved successfully", response, meta)
}

// GetSuitableContainers returns active container types able to carry the
// weight and volume given as query parameters.
func (h *ContainerTypeHandler) GetSuitableContainers(c *gin.Context) {
	var weightKG, volumeCBM *float64

	if weightStr := c.Query("weight_kg"); weightStr != "" {
		weight, err := strconv.ParseFloat(weightStr, 64)
		if err != nil || weight < 0 {
			utils.BadRequestResponse(c, "Invalid weight_kg")
			return
		}
		weightKG = &weight
	}
	if volumeStr := c.Query("volume_cbm"); volumeStr != "" {
		volume, err := strconv.ParseFloat(volumeStr, 64)
		if err != nil || volume < 0 {
			utils.BadRequestResponse(c, "Invalid volume_cbm")
			return
		}
		volumeCBM = &volume
	}

	containerTypes, err := h.containerTypeService.FindSuitableContainers(c.Request.Context(), weightKG, volumeCBM)
	if err != nil {
		respondServiceError(c, err, "Container type")
		return
	}

	utils.SuccessResponse(c, "Suitable container types retrieved successfully", containerTypes)
}
