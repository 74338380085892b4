package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/saleprice-service/internal/app/saleprice/domain"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/queries/list_events"
	"github.com/light-bringer/saleprice-service/internal/models/m_outbox"
	"github.com/light-bringer/saleprice-service/internal/pkg/query"
)

// EventsReadModel implements the list_events.EventsReadModel interface for Spanner.
type EventsReadModel struct {
	client *spanner.Client
	model  *m_outbox.Model
}

// NewEventsReadModel creates a new EventsReadModel.
func NewEventsReadModel(client *spanner.Client) *EventsReadModel {
	return &EventsReadModel{
		client: client,
		model:  m_outbox.NewModel(),
	}
}

// ListEvents retrieves events from the outbox_events table with filtering.
func (r *EventsReadModel) ListEvents(ctx context.Context, req *list_events.Request) ([]*m_outbox.Data, error) {
	q := query.From(m_outbox.TableName).Select(r.model.ReadColumns()...)

	if req.EventType != nil {
		q = q.Where(query.Eq(m_outbox.EventType, *req.EventType))
	}
	if req.AggregateID != nil {
		q = q.Where(query.Eq(m_outbox.AggregateID, *req.AggregateID))
	}
	if req.Status != nil {
		q = q.Where(query.Eq(m_outbox.Status, *req.Status))
	}

	stmt := q.OrderBy(m_outbox.CreatedAt, query.Desc).
		OrderBy(m_outbox.EventID, query.Asc).
		Limit(int64(req.Limit)).
		Offset(int64(req.Offset)).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var events []*m_outbox.Data
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to iterate events: %w", domain.ErrPersistence, err)
		}

		var event m_outbox.Data
		if err := row.ToStruct(&event); err != nil {
			return nil, fmt.Errorf("%w: failed to scan event: %w", domain.ErrPersistence, err)
		}
		events = append(events, &event)
	}

	return events, nil
}
