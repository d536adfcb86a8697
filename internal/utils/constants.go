package utils

import "time"

// Application Constants
const (
	AppName = "FreightQuote"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Caching
	ReferenceDataCacheTTL = 1 * time.Hour
	RateCacheTTL          = 15 * time.Minute
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrValidationFailed       = "validation failed"
	ErrDuplicateLocationCode  = "location code already exists"
	ErrDuplicateContainerCode = "container type code already exists"
)

// Cache Keys
const (
	CacheLocationPrefix      = "location:"
	CacheContainerTypePrefix = "container_type:"
	CacheRatePrefix          = "rate:"
)
