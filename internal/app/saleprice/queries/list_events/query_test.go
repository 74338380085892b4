package list_events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/saleprice-service/internal/models/m_outbox"
)

type recordingReadModel struct {
	got *Request
}

func (r *recordingReadModel) ListEvents(_ context.Context, req *Request) ([]*m_outbox.Data, error) {
	r.got = req
	return []*m_outbox.Data{{EventID: "e1", EventType: "sale_price.created"}}, nil
}

func TestQuery_Execute_Limits(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"default", 0, defaultLimit},
		{"negative", -3, defaultLimit},
		{"kept", 25, 25},
		{"capped", 5000, maxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rm := &recordingReadModel{}
			req := &Request{Limit: tt.limit}

			events, err := NewQuery(rm).Execute(context.Background(), req)
			require.NoError(t, err)
			assert.Len(t, events, 1)
			assert.Equal(t, tt.want, rm.got.Limit)
			assert.Equal(t, tt.limit, req.Limit, "caller request is not modified")
		})
	}
}

func TestQuery_Execute_PassesFilters(t *testing.T) {
	rm := &recordingReadModel{}
	eventType := "product.touched"
	aggregate := "product-1"

	_, err := NewQuery(rm).Execute(context.Background(), &Request{EventType: &eventType, AggregateID: &aggregate})
	require.NoError(t, err)

	require.NotNil(t, rm.got.EventType)
	assert.Equal(t, eventType, *rm.got.EventType)
	assert.Equal(t, aggregate, *rm.got.AggregateID)
	assert.Nil(t, rm.got.Status)
}

func TestQuery_Execute_Offset(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		want   int
	}{
		{"first page", 0, 0},
		{"next page", 100, 100},
		{"negative", -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rm := &recordingReadModel{}

			_, err := NewQuery(rm).Execute(context.Background(), &Request{Limit: 10, Offset: tt.offset})
			require.NoError(t, err)
			assert.Equal(t, tt.want, rm.got.Offset)
		})
	}
}
