//go:build integration

package repo

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/saleprice-service/internal/app/saleprice/domain"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/queries/list_events"
	"github.com/light-bringer/saleprice-service/internal/models/m_outbox"
	"github.com/light-bringer/saleprice-service/internal/testutil"
)

func TestOutboxRepository_InsertAndList(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	outbox := NewOutboxRepo(client)
	readModel := NewEventsReadModel(client)

	started := outbox.EnrichEvent(&domain.SalePriceStartedEvent{
		SalePriceID: "sp-1",
		StartAt:     time.Now().UTC(),
	}, `{"sale_price_id":"sp-1"}`)
	stopped := outbox.EnrichEvent(&domain.SalePriceStoppedEvent{
		SalePriceID: "sp-2",
		EndAt:       time.Now().UTC(),
	}, `{"sale_price_id":"sp-2"}`)

	_, err := client.Apply(ctx, []*spanner.Mutation{outbox.InsertMut(started), outbox.InsertMut(stopped)})
	require.NoError(t, err)
	testutil.AssertRowCount(t, client, m_outbox.TableName, 2)

	all, err := readModel.ListEvents(ctx, &list_events.Request{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	eventType := "sale_price.started"
	filtered, err := readModel.ListEvents(ctx, &list_events.Request{EventType: &eventType, Limit: 10})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "sp-1", filtered[0].AggregateID)
	assert.Equal(t, m_outbox.StatusPending, filtered[0].Status)
	assert.True(t, filtered[0].Payload.Valid)

	aggregate := "sp-2"
	byAggregate, err := readModel.ListEvents(ctx, &list_events.Request{AggregateID: &aggregate, Limit: 10})
	require.NoError(t, err)
	require.Len(t, byAggregate, 1)
	assert.Equal(t, "sale_price.stopped", byAggregate[0].EventType)

	limited, err := readModel.ListEvents(ctx, &list_events.Request{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	nextPage, err := readModel.ListEvents(ctx, &list_events.Request{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, nextPage, 1)
	assert.NotEqual(t, limited[0].EventID, nextPage[0].EventID)

	beyond, err := readModel.ListEvents(ctx, &list_events.Request{Limit: 10, Offset: 2})
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestOutboxRepository_MarkCompleted(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	outbox := NewOutboxRepo(client)
	readModel := NewEventsReadModel(client)

	event := outbox.EnrichEvent(&domain.SalePriceStoppedEvent{SalePriceID: "sp-1", EndAt: time.Now().UTC()}, `{}`)
	_, err := client.Apply(ctx, []*spanner.Mutation{outbox.InsertMut(event)})
	require.NoError(t, err)

	_, err = client.Apply(ctx, []*spanner.Mutation{outbox.MarkCompletedMut(event.EventID)})
	require.NoError(t, err)

	completed := m_outbox.StatusCompleted
	got, err := readModel.ListEvents(ctx, &list_events.Request{Status: &completed, Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, event.EventID, got[0].EventID)
	assert.True(t, got[0].ProcessedAt.Valid)

	_, err = client.Apply(ctx, []*spanner.Mutation{outbox.MarkCompletedMut("missing")})
	assert.Equal(t, codes.NotFound, spanner.ErrCode(err))
}
