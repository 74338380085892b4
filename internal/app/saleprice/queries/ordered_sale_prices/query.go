package ordered_sale_prices

import (
	"context"

	"github.com/light-bringer/saleprice-service/internal/app/saleprice/contracts"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/domain"
	"github.com/light-bringer/saleprice-service/internal/pkg/clock"
)

// Request contains the options for listing ordered sale prices.
type Request struct {
	IncludeDeleted bool
}

// Query lists sale prices as forever, past, present then future, evaluated at call time.
type Query struct {
	repo  contracts.SalePriceRepository
	clock clock.Clock
}

// NewQuery creates a new ordered sale prices query.
func NewQuery(repo contracts.SalePriceRepository, clock clock.Clock) *Query {
	return &Query{
		repo:  repo,
		clock: clock,
	}
}

// Execute returns the ordered sale prices.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*contracts.SalePriceDTO, error) {
	salePrices, err := q.repo.ListAll(ctx, req.IncludeDeleted)
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	return contracts.NewSalePriceDTOs(domain.Ordered(salePrices, now), now), nil
}
