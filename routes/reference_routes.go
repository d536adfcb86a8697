package routes

import (
	"freightquote/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupLocationRoutes sets up routes for location reference data
func SetupLocationRoutes(r *gin.RouterGroup, locationHandler *handlers.LocationHandler) {
	locations := r.Group("/locations")
	{
		locations.POST("", locationHandler.CreateLocation)
		locations.GET("", locationHandler.ListLocations)
		locations.GET("/code/:code", locationHandler.GetLocationByCode)
		locations.GET("/:id", locationHandler.GetLocation)
		locations.PUT("/:id", locationHandler.UpdateLocation)
		locations.DELETE("/:id", locationHandler.DeleteLocation)
	}
}

// SetupContainerTypeRoutes sets up routes for container type reference data
func SetupContainerTypeRoutes(r *gin.RouterGroup, containerTypeHandler *handlers.ContainerTypeHandler) {
	containerTypes := r.Group("/container-types")
	{
		containerTypes.POST("", containerTypeHandler.CreateContainerType)
		containerTypes.GET("", containerTypeHandler.ListContainerTypes)
		containerTypes.GET("/suitable", containerTypeHandler.GetSuitableContainers)
		containerTypes.GET("/code/:code", containerTypeHandler.GetContainerTypeByCode)
		containerTypes.GET("/:id", containerTypeHandler.GetContainerType)
		containerTypes.PUT("/:id", containerTypeHandler.UpdateContainerType)
		containerTypes.DELETE("/:id", containerTypeHandler.DeleteContainerType)
	}
}
