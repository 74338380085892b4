package create_sale_price

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

// Request contains the data to create a sale price.
type Request struct {
	PriceID string
	Value   string // decimal amount, e.g. "10.95"
	Start   bool   // open the window immediately
	EndAt   *time.Time
}

// Interactor handles the create sale price use case.
type Interactor struct {
	repo       contracts.SalePriceRepository
	prices     contracts.PriceStore
	outboxRepo contracts.OutboxRepository
	touches    *touch_product.Planner
	committer  contracts.Committer
	clock      clock.Clock
	logger     *zap.Logger
}

// NewInteractor creates a new create sale price interactor.
func NewInteractor(
	repo contracts.SalePriceRepository,
	prices contracts.PriceStore,
	outboxRepo contracts.OutboxRepository,
	touches *touch_product.Planner,
	committer contracts.Committer,
	clock clock.Clock,
	logger *zap.Logger,
) *Interactor {
	return &Interactor{
		repo:       repo,
		prices:     prices,
		outboxRepo: outboxRepo,
		touches:    touches,
		committer:  committer,
		clock:      clock,
		logger:     logger,
	}
}

// Execute creates a sale price following the Golden Mutation Pattern and returns its ID.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	// 1. The base price must exist, even if it was soft-deleted
	price, err := i.prices.ResolveIncludingDeleted(ctx, req.PriceID)
	if err != nil {
		return "", err
	}
	if price == nil {
		return "", domain.ErrUnresolvedPrice
	}

	value, err := domain.ParseMoney(req.Value)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidSaleValue, err)
	}

	// 2. Create aggregate
	now := i.clock.Now()
	salePrice, err := domain.NewSalePrice(uuid.New().String(), price.ID(), value, now)
	if err != nil {
		return "", err
	}
	if req.Start {
		if err := salePrice.Start(now, req.EndAt); err != nil {
			return "", err
		}
	}

	// 3. Create commit plan
	plan := committer.NewPlan()

	mut, err := i.repo.InsertMut(salePrice)
	if err != nil {
		return "", err
	}
	plan.Add(mut)

	// 4. Touch the owning product
	touch, err := i.touches.Plan(ctx, salePrice, now)
	if err != nil {
		return "", err
	}

	events := append([]domain.DomainEvent(nil), salePrice.DomainEvents()...)
	if touch != nil {
		plan.Add(touch.Mutation)
		events = append(events, touch.Event)
	}

	// 5. Add outbox events
	for _, event := range events {
		payload, err := serializeEvent(event)
		if err != nil {
			return "", fmt.Errorf("failed to serialize event: %w", err)
		}
		plan.Add(i.outboxRepo.InsertMut(i.outboxRepo.EnrichEvent(event, payload)))
	}

	// 6. Apply plan
	if err := i.committer.Apply(ctx, plan); err != nil {
		return "", fmt.Errorf("%w: failed to commit transaction: %w", domain.ErrPersistence, err)
	}
	salePrice.ClearEvents()

	i.logger.Info("sale price created",
		zap.String("sale_price_id", salePrice.ID()),
		zap.String("price_id", salePrice.PriceID()),
		zap.Bool("started", req.Start),
	)

	return salePrice.ID(), nil
}

// serializeEvent converts a domain event to JSON payload.
func serializeEvent(event domain.DomainEvent) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
