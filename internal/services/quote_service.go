package services

import (
	"context"
	"time"

	"freightquote/internal/models"
	"freightquote/internal/repositories/interfaces"
	"freightquote/internal/utils"
	"freightquote/pkg/logger"
)

type QuoteService interface {
	// ComputeQuotes finds every active rate matching the requirement and
	// prices it. Structurally matching rates are always returned; a nil
	// amount marks a rate that matched but is not applicable to the cargo.
	ComputeQuotes(ctx context.Context, req *models.ShippingRequirement) ([]*models.Quote, error)
}

type quoteService struct {
	rateRepo interfaces.RateRepository
	logger   *logger.Logger
}

func NewQuoteService(rateRepo interfaces.RateRepository, log *logger.Logger) QuoteService {
	return &quoteService{
		rateRepo: rateRepo,
		logger:   log,
	}
}

func (s *quoteService) ComputeQuotes(ctx context.Context, req *models.ShippingRequirement) ([]*models.Quote, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, &models.ValidationError{Message: err.Error()}
	}
	for containerTypeID, count := range req.ContainerCount {
		if count < 0 {
			return nil, &models.ValidationError{Field: "container_count", Message: "container count for " + containerTypeID + " must not be negative"}
		}
	}

	start := time.Now()
	rates, err := s.rateRepo.FindMatching(ctx, req)
	if err != nil {
		return nil, err
	}

	quotes := make([]*models.Quote, 0, len(rates))
	for _, rate := range rates {
		quotes = append(quotes, models.NewQuote(rate, rate.Quotation(req)))
	}

	s.logger.LogQuoteComputation(len(rates), models.DefaultCurrency, time.Since(start))

	return quotes, nil
}
