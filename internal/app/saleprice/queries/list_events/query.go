package list_events

import (
	"context"

	"github.com/light-bringer/saleprice-service/internal/models/m_outbox"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// Request contains filtering parameters for listing events.
type Request struct {
	EventType   *string // Filter by event type (e.g., "sale_price.started")
	AggregateID *string // Filter by aggregate ID
	Status      *string // Filter by status ("pending", "completed", "failed")
	Limit       int     // Max number of events to return (default: 100)
	Offset      int     // Number of newest events to skip, for paging
}

// EventsReadModel defines the interface for reading events.
type EventsReadModel interface {
	ListEvents(ctx context.Context, req *Request) ([]*m_outbox.Data, error)
}

// Query handles the list events query use case.
type Query struct {
	readModel EventsReadModel
}

// NewQuery creates a new list events query.
func NewQuery(readModel EventsReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves a list of events with filtering, newest first.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*m_outbox.Data, error) {
	normalized := *req
	if normalized.Limit <= 0 {
		normalized.Limit = defaultLimit
	}
	if normalized.Limit > maxLimit {
		normalized.Limit = maxLimit
	}
	if normalized.Offset < 0 {
		normalized.Offset = 0
	}

	return q.readModel.ListEvents(ctx, &normalized)
}
