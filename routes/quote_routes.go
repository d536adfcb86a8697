package routes

import (
	"freightquote/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupQuoteRoutes sets up the quotation endpoint
func SetupQuoteRoutes(r *gin.RouterGroup, quoteHandler *handlers.QuoteHandler) {
	quotes := r.Group("/quotes")
	{
		quotes.POST("", quoteHandler.GetQuotes)
	}
}
