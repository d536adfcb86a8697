package handlers

import (
	"freightquote/internal/models"
	"freightquote/internal/services"
	"freightquote/internal/utils"

	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	quoteService services.QuoteService
}

func NewQuoteHandler(quoteService services.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
	}
}

// GetQuotes computes quotations for every active rate matching the shipping
// requirement. Rates whose pricing does not apply to the cargo are returned
// with a null amount rather than dropped.
func (h *QuoteHandler) GetQuotes(c *gin.Context) {
	var request models.ShippingRequirement
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBindError(c, err)
		return
	}

	quotes, err := h.quoteService.ComputeQuotes(c.Request.Context(), &request)
	if err != nil {
		respondServiceError(c, err, "Quote")
		return
	}

	meta := &utils.Meta{
		Count: len(quotes),
	}

	response := map[string]interface{}{
		"quotes": quotes,
	}

	utils.SuccessResponseWithMeta(c, "Quotes computed successfully", response, meta)
}
