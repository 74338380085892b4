package domain

import "errors"

var (
	// Sale price errors
	ErrSalePriceNotFound = errors.New("sale price not found")
	ErrMissingPrice      = errors.New("sale price must reference a price")
	ErrInvalidSaleValue  = errors.New("sale price value cannot be negative")
	ErrInvalidWindow     = errors.New("sale price end_at must be after start_at")
	ErrAlreadyDestroyed  = errors.New("sale price is already destroyed")

	// ErrUnresolvedPrice means no base price exists, not even a soft-deleted one.
	ErrUnresolvedPrice = errors.New("base price cannot be resolved")

	// Catalog errors
	ErrProductNotFound = errors.New("product not found")
	ErrNoSaleablePrice = errors.New("product has no price in the requested currency")

	// Outbox errors
	ErrEventNotFound = errors.New("outbox event not found")

	// ErrPersistence wraps every storage failure; the underlying error stays in the chain.
	ErrPersistence = errors.New("persistence error")
)
