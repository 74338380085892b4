package put_on_sale

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/light-bringer/saleprice-service/internal/app/saleprice/contracts"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/domain"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/usecases/touch_product"
	"github.com/light-bringer/saleprice-service/internal/pkg/clock"
	"github.com/light-bringer/saleprice-service/internal/pkg/committer"
)

// Request contains the data to put every variant of a product on sale.
type Request struct {
	ProductID string
	Value     string // decimal amount applied to every price
	Currency  string // empty: every currency
	EndAt     *time.Time
}

// Response lists the created sale prices, non-master variants first.
type Response struct {
	SalePriceIDs []string
}

// Interactor handles the put on sale use case.
type Interactor struct {
	repo       contracts.SalePriceRepository
	prices     contracts.PriceStore
	catalog    contracts.CatalogRepository
	outboxRepo contracts.OutboxRepository
	touches    *touch_product.Planner
	committer  contracts.Committer
	clock      clock.Clock
	logger     *zap.Logger
}

// NewInteractor creates a new put on sale interactor.
func NewInteractor(
	repo contracts.SalePriceRepository,
	prices contracts.PriceStore,
	catalog contracts.CatalogRepository,
	outboxRepo contracts.OutboxRepository,
	touches *touch_product.Planner,
	committer contracts.Committer,
	clock clock.Clock,
	logger *zap.Logger,
) *Interactor {
	return &Interactor{
		repo:       repo,
		prices:     prices,
		catalog:    catalog,
		outboxRepo: outboxRepo,
		touches:    touches,
		committer:  committer,
		clock:      clock,
		logger:     logger,
	}
}

// Execute creates and starts one sale price per active price of every live variant of
// the product, master included, in a single commit. The product is touched once.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	value, err := domain.ParseMoney(req.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidSaleValue, err)
	}

	// 1. Load the product and its prices
	product, err := i.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.IsDeleted() {
		return nil, domain.ErrProductNotFound
	}

	variants, err := i.catalog.ListVariants(ctx, product.ID())
	if err != nil {
		return nil, err
	}
	variants = saleableVariants(variants)

	variantIDs := make([]string, 0, len(variants))
	for _, v := range variants {
		variantIDs = append(variantIDs, v.ID())
	}
	prices, err := i.prices.ListByVariantIDs(ctx, variantIDs)
	if err != nil {
		return nil, err
	}
	pricesByVariant := make(map[string][]*domain.Price)
	for _, p := range prices {
		if p.IsDeleted() || (req.Currency != "" && p.Currency() != req.Currency) {
			continue
		}
		pricesByVariant[p.VariantID()] = append(pricesByVariant[p.VariantID()], p)
	}

	// 2. Create and start the sale prices
	now := i.clock.Now()
	plan := committer.NewPlan()
	var created []*domain.SalePrice

	for _, v := range variants {
		for _, price := range pricesByVariant[v.ID()] {
			salePrice, err := domain.NewSalePrice(uuid.New().String(), price.ID(), value, now)
			if err != nil {
				return nil, err
			}
			if err := salePrice.Start(now, req.EndAt); err != nil {
				return nil, err
			}

			mut, err := i.repo.InsertMut(salePrice)
			if err != nil {
				return nil, err
			}
			plan.Add(mut)
			created = append(created, salePrice)
		}
	}

	if len(created) == 0 {
		return nil, domain.ErrNoSaleablePrice
	}

	// 3. Touch the product once; every created sale price shares its chain
	touch, err := i.touches.Plan(ctx, created[0], now)
	if err != nil {
		return nil, err
	}

	var events []domain.DomainEvent
	for _, salePrice := range created {
		events = append(events, salePrice.DomainEvents()...)
	}
	if touch != nil {
		plan.Add(touch.Mutation)
		events = append(events, touch.Event)
	}

	// 4. Add outbox events
	for _, event := range events {
		payload, err := serializeEvent(event)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize event: %w", err)
		}
		plan.Add(i.outboxRepo.InsertMut(i.outboxRepo.EnrichEvent(event, payload)))
	}

	// 5. Apply plan
	if err := i.committer.Apply(ctx, plan); err != nil {
		return nil, fmt.Errorf("%w: failed to commit transaction: %w", domain.ErrPersistence, err)
	}

	resp := &Response{SalePriceIDs: make([]string, 0, len(created))}
	for _, salePrice := range created {
		salePrice.ClearEvents()
		resp.SalePriceIDs = append(resp.SalePriceIDs, salePrice.ID())
	}

	i.logger.Info("product put on sale",
		zap.String("product_id", product.ID()),
		zap.Int("sale_prices", len(created)),
		zap.String("value", value.String()),
	)

	return resp, nil
}

// saleableVariants drops deleted variants and moves the master last, keeping the
// relative order of the others.
func saleableVariants(variants []*domain.Variant) []*domain.Variant {
	out := make([]*domain.Variant, 0, len(variants))
	var masters []*domain.Variant
	for _, v := range variants {
		switch {
		case v.IsDeleted():
		case v.IsMaster():
			masters = append(masters, v)
		default:
			out = append(out, v)
		}
	}
	return append(out, masters...)
}

// serializeEvent converts a domain event to JSON payload.
func serializeEvent(event domain.DomainEvent) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
