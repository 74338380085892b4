package destroy_sale_price

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/light-bringer/saleprice-service/internal/app/saleprice/contracts"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/domain"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/usecases/touch_product"
	"github.com/light-bringer/saleprice-service/internal/models/m_sale_price"
	"github.com/light-bringer/saleprice-service/internal/pkg/clock"
	"github.com/light-bringer/saleprice-service/internal/pkg/committer"
)

// Request contains the data to destroy a sale price.
type Request struct {
	SalePriceID string
	// ExpectedVersion, when set, makes the commit fail with
	// committer.ErrOptimisticLockConflict if the row changed since it was read.
	ExpectedVersion *int64
}

// Interactor handles the destroy sale price use case.
type Interactor struct {
	repo       contracts.SalePriceRepository
	outboxRepo contracts.OutboxRepository
	touches    *touch_product.Planner
	committer  contracts.Committer
	clock      clock.Clock
	logger     *zap.Logger
}

// NewInteractor creates a new destroy sale price interactor.
func NewInteractor(
	repo contracts.SalePriceRepository,
	outboxRepo contracts.OutboxRepository,
	touches *touch_product.Planner,
	committer contracts.Committer,
	clock clock.Clock,
	logger *zap.Logger,
) *Interactor {
	return &Interactor{
		repo:       repo,
		outboxRepo: outboxRepo,
		touches:    touches,
		committer:  committer,
		clock:      clock,
		logger:     logger,
	}
}

// Execute soft-deletes the sale price following the Golden Mutation Pattern.
// The base price is never deleted.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	// 1. Load aggregate, soft-deleted included so a second destroy reports ErrAlreadyDestroyed
	salePrice, err := i.repo.GetByID(ctx, req.SalePriceID, true)
	if err != nil {
		return err
	}

	// 2. Call domain method
	now := i.clock.Now()
	if err := salePrice.Destroy(now); err != nil {
		return err
	}

	// 3. Create commit plan
	plan := committer.NewPlan()
	plan.Add(i.repo.UpdateMut(salePrice))

	// 4. Touch the owning product
	touch, err := i.touches.Plan(ctx, salePrice, now)
	if err != nil {
		return err
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
			return fmt.Errorf("failed to serialize event: %w", err)
		}
		plan.Add(i.outboxRepo.InsertMut(i.outboxRepo.EnrichEvent(event, payload)))
	}

	// 6. Apply plan
	if req.ExpectedVersion != nil {
		check := committer.VersionCheck{
			Table:    m_sale_price.TableName,
			Key:      spanner.Key{salePrice.ID()},
			Expected: *req.ExpectedVersion,
		}
		err = i.committer.ApplyWithVersionCheck(ctx, check, plan)
	} else {
		err = i.committer.Apply(ctx, plan)
	}
	if err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %w", domain.ErrPersistence, err)
	}
	salePrice.ClearEvents()

	i.logger.Info("sale price destroyed",
		zap.String("sale_price_id", salePrice.ID()),
	)

	return nil
}

// serializeEvent converts a domain event to JSON payload.
func serializeEvent(event domain.DomainEvent) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
