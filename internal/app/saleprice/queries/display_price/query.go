package display_price

import (
	"context"

	"github.com/light-bringer/saleprice-service/internal/app/saleprice/contracts"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/domain"
)

// Request identifies the sale price to display.
type Request struct {
	SalePriceID string
}

// Query resolves the display price of a sale price.
type Query struct {
	repo   contracts.SalePriceRepository
	prices contracts.PriceStore
}

// NewQuery creates a new display price query.
func NewQuery(repo contracts.SalePriceRepository, prices contracts.PriceStore) *Query {
	return &Query{
		repo:   repo,
		prices: prices,
	}
}

// Execute returns the amount and currency of the sale price's base price. A soft-deleted
// base price still resolves; ErrUnresolvedPrice means it no longer exists at all.
func (q *Query) Execute(ctx context.Context, req *Request) (domain.DisplayPrice, error) {
	salePrice, err := q.repo.GetByID(ctx, req.SalePriceID, false)
	if err != nil {
		return domain.DisplayPrice{}, err
	}

	price, err := q.prices.ResolveIncludingDeleted(ctx, salePrice.PriceID())
	if err != nil {
		return domain.DisplayPrice{}, err
	}

	return salePrice.DisplayPrice(price)
}
