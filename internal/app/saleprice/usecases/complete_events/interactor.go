package complete_events

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/saleprice-service/internal/app/saleprice/contracts"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/domain"
	"github.com/light-bringer/saleprice-service/internal/pkg/committer"
)

// ErrNoEvents is returned when the request names no event.
var ErrNoEvents = errors.New("no event IDs given")

// Request lists the outbox events a consumer has processed.
type Request struct {
	EventIDs []string
}

// Interactor marks outbox events as completed so the retention cleanup can purge them.
type Interactor struct {
	outboxRepo contracts.OutboxRepository
	committer  contracts.Committer
	logger     *zap.Logger
}

// NewInteractor creates a new complete events interactor.
func NewInteractor(outboxRepo contracts.OutboxRepository, committer contracts.Committer, logger *zap.Logger) *Interactor {
	return &Interactor{
		outboxRepo: outboxRepo,
		committer:  committer,
		logger:     logger,
	}
}

// Execute marks every listed event completed in one commit. Either all of them are
// marked or none is.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	seen := make(map[string]struct{}, len(req.EventIDs))
	muts := make([]*spanner.Mutation, 0, len(req.EventIDs))
	for _, id := range req.EventIDs {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		muts = append(muts, i.outboxRepo.MarkCompletedMut(id))
	}
	if len(muts) == 0 {
		return ErrNoEvents
	}

	plan := committer.NewPlan()
	plan.AddMultiple(muts)

	if err := i.committer.Apply(ctx, plan); err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return fmt.Errorf("%w: %w", domain.ErrEventNotFound, err)
		}
		return fmt.Errorf("%w: failed to commit transaction: %w", domain.ErrPersistence, err)
	}

	i.logger.Info("outbox events completed", zap.Int("events", plan.Count()))

	return nil
}
