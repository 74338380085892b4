package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/saleprice-service/internal/app/saleprice/domain"
)

// CatalogRepository reads the variant and product parts of the catalog and writes product touches.
type CatalogRepository interface {
	// GetVariant returns nil when the variant does not exist. Soft-deleted variants are returned.
	GetVariant(ctx context.Context, variantID string) (*domain.Variant, error)

	// GetProduct returns nil when the product does not exist. Soft-deleted products are returned.
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)

	// ListVariants returns every variant of a product, soft-deleted ones included.
	ListVariants(ctx context.Context, productID string) ([]*domain.Variant, error)

	// TouchMut persists a product touch. Returns nil when the product was not touched.
	TouchMut(product *domain.Product) *spanner.Mutation
}
