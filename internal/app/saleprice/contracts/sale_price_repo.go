package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/saleprice-service/internal/app/saleprice/domain"
)

// SalePriceRepository defines the interface for sale price persistence.
// Repositories return mutations, they don't apply them (Golden Mutation Pattern).
type SalePriceRepository interface {
	// InsertMut creates a mutation for inserting a new sale price
	InsertMut(salePrice *domain.SalePrice) (*spanner.Mutation, error)

	// UpdateMut creates a mutation for the dirty fields of a sale price, bumping its version.
	// Soft deletion goes through here too. Returns nil when nothing changed.
	UpdateMut(salePrice *domain.SalePrice) *spanner.Mutation

	// GetByID retrieves a sale price. Soft-deleted rows are ErrSalePriceNotFound unless includeDeleted.
	GetByID(ctx context.Context, salePriceID string, includeDeleted bool) (*domain.SalePrice, error)

	// ListAll retrieves every sale price in storage order.
	ListAll(ctx context.Context, includeDeleted bool) ([]*domain.SalePrice, error)

	// ListByPriceIDs retrieves the sale prices attached to any of the given prices.
	ListByPriceIDs(ctx context.Context, priceIDs []string, includeDeleted bool) ([]*domain.SalePrice, error)
}
