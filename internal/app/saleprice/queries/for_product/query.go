package for_product

import (
	"context"

	"github.com/light-bringer/saleprice-service/internal/app/saleprice/contracts"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/domain"
	"github.com/light-bringer/saleprice-service/internal/pkg/clock"
)

// Request identifies the product whose sale prices are listed.
type Request struct {
	ProductID string
	// IncludeDeleted also returns soft-deleted sale prices.
	IncludeDeleted bool
}

// Query lists every sale price of a product across its variants, master last.
type Query struct {
	catalog contracts.CatalogRepository
	prices  contracts.PriceStore
	repo    contracts.SalePriceRepository
	clock   clock.Clock
}

// NewQuery creates a new for product query.
func NewQuery(
	catalog contracts.CatalogRepository,
	prices contracts.PriceStore,
	repo contracts.SalePriceRepository,
	clock clock.Clock,
) *Query {
	return &Query{
		catalog: catalog,
		prices:  prices,
		repo:    repo,
		clock:   clock,
	}
}

// Execute returns the sale prices of the product. Sale prices whose price was
// soft-deleted are included.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*contracts.SalePriceDTO, error) {
	product, err := q.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	variants, err := q.catalog.ListVariants(ctx, product.ID())
	if err != nil {
		return nil, err
	}

	variantIDs := make([]string, 0, len(variants))
	for _, v := range variants {
		variantIDs = append(variantIDs, v.ID())
	}
	prices, err := q.prices.ListByVariantIDs(ctx, variantIDs)
	if err != nil {
		return nil, err
	}

	priceIDs := make([]string, 0, len(prices))
	for _, p := range prices {
		priceIDs = append(priceIDs, p.ID())
	}
	salePrices, err := q.repo.ListByPriceIDs(ctx, priceIDs, req.IncludeDeleted)
	if err != nil {
		return nil, err
	}

	return contracts.NewSalePriceDTOs(domain.CollectForProduct(variants, prices, salePrices), q.clock.Now()), nil
}
