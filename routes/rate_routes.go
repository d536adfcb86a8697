package routes

import (
	"freightquote/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRateRoutes sets up routes for rate management
func SetupRateRoutes(r *gin.RouterGroup, rateHandler *handlers.RateHandler) {
	rates := r.Group("/rates")
	{
		rates.POST("", rateHandler.CreateRate)
		rates.GET("", rateHandler.ListRates)
		rates.GET("/search", rateHandler.SearchRates)
		rates.GET("/:id", rateHandler.GetRate)
		rates.PUT("/:id", rateHandler.UpdateRate)
		rates.DELETE("/:id", rateHandler.DeleteRate)
	}
}
