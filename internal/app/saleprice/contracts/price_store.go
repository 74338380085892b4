package contracts

import (
	"context"

	"github.com/light-bringer/saleprice-service/internal/app/saleprice/domain"
)

// PriceStore resolves base prices. The two resolvers differ only in how they treat soft
// deletion; neither returns an error for a missing price.
type PriceStore interface {
	// ResolveActive returns nil when the price is missing or soft-deleted.
	ResolveActive(ctx context.Context, priceID string) (*domain.Price, error)

	// ResolveIncludingDeleted returns nil only when no row exists.
	ResolveIncludingDeleted(ctx context.Context, priceID string) (*domain.Price, error)

	// ListByVariantIDs returns all prices of the given variants, soft-deleted ones included.
	ListByVariantIDs(ctx context.Context, variantIDs []string) ([]*domain.Price, error)
}
