// Package touch_product resolves the ownership chain of a sale price and plans the
// product cache-marker touch that follows every sale price mutation.
package touch_product

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/light-bringer/saleprice-service/internal/app/saleprice/contracts"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/domain"
)

// Touch is a planned product touch: the mutation plus the event announcing it.
type Touch struct {
	Product  *domain.Product
	Mutation *spanner.Mutation
	Event    *domain.ProductTouchedEvent
}

// Planner computes product touches.
type Planner struct {
	prices  contracts.PriceStore
	catalog contracts.CatalogRepository
	logger  *zap.Logger
}

// NewPlanner creates a new touch planner.
func NewPlanner(prices contracts.PriceStore, catalog contracts.CatalogRepository, logger *zap.Logger) *Planner {
	return &Planner{
		prices:  prices,
		catalog: catalog,
		logger:  logger,
	}
}

// ResolveChain walks SalePrice -> Price -> Variant -> Product, stopping at the first
// missing link. The price comes from the active accessor.
func (p *Planner) ResolveChain(ctx context.Context, priceID string) (domain.Chain, error) {
	var chain domain.Chain

	price, err := p.prices.ResolveActive(ctx, priceID)
	if err != nil || price == nil {
		return chain, err
	}
	chain.Price = price

	variant, err := p.catalog.GetVariant(ctx, price.VariantID())
	if err != nil || variant == nil {
		return chain, err
	}
	chain.Variant = variant

	if !variant.HasProduct() {
		return chain, nil
	}

	product, err := p.catalog.GetProduct(ctx, variant.ProductID())
	if err != nil {
		return chain, err
	}
	chain.Product = product

	return chain, nil
}

// Plan returns the touch for the product owning salePrice, or nil when the chain is broken.
// A broken chain is not an error.
func (p *Planner) Plan(ctx context.Context, salePrice *domain.SalePrice, now time.Time) (*Touch, error) {
	chain, err := p.ResolveChain(ctx, salePrice.PriceID())
	if err != nil {
		return nil, err
	}

	product := domain.ComputeTouchTarget(chain)
	if product == nil {
		p.logger.Debug("product touch skipped",
			zap.String("sale_price_id", salePrice.ID()),
			zap.String("price_id", salePrice.PriceID()),
			zap.String("broken_link", string(chain.BrokenLink())),
		)
		return nil, nil
	}

	product.Touch(now)

	return &Touch{
		Product:  product,
		Mutation: p.catalog.TouchMut(product),
		Event: &domain.ProductTouchedEvent{
			ProductID:   product.ID(),
			SalePriceID: salePrice.ID(),
			TouchedAt:   now,
		},
	}, nil
}
