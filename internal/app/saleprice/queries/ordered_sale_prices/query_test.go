package ordered_sale_prices

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/saleprice-service/internal/app/saleprice/contracts"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/domain"
	"github.com/light-bringer/saleprice-service/internal/pkg/clock"
	"github.com/light-bringer/saleprice-service/internal/testutil"
)

var now = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func seed(t *testing.T, store *testutil.MemStore, id string, start, end *time.Time, deleted bool) {
	t.Helper()
	var deletedAt *time.Time
	if deleted {
		deletedAt = testutil.TimePtr(now.Add(-time.Minute))
	}
	store.PutSalePrice(domain.ReconstructSalePrice(id, "price-1", testutil.MustMoney(t, "10"), start, end, 1, now, now, deletedAt))
}

func ids(dtos []*contracts.SalePriceDTO) []string {
	out := make([]string, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.SalePriceID)
	}
	return out
}

func TestExecute_OrdersByBucket(t *testing.T) {
	store := testutil.NewMemStore()
	day := 24 * time.Hour
	seed(t, store, "future", testutil.TimePtr(now.Add(10*day)), nil, false)
	seed(t, store, "present", testutil.TimePtr(now.Add(-time.Hour)), testutil.TimePtr(now.Add(day)), false)
	seed(t, store, "past", testutil.TimePtr(now.Add(-10*day)), testutil.TimePtr(now.Add(-5*day)), false)
	seed(t, store, "forever", testutil.TimePtr(now.Add(-day)), nil, false)
	seed(t, store, "destroyed", testutil.TimePtr(now.Add(-day)), nil, true)

	clk := clock.NewMockClock(now)
	q := NewQuery(store.SalePriceRepo(), clk)

	got, err := q.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.Equal(t, []string{"forever", "past", "present", "future"}, ids(got))

	buckets := make([]string, 0, len(got))
	for _, d := range got {
		buckets = append(buckets, d.Bucket)
	}
	assert.Equal(t, []string{"forever", "past", "present", "future"}, buckets)
	assert.True(t, got[0].Enabled)
	assert.False(t, got[1].Enabled)

	withDeleted, err := q.Execute(context.Background(), &Request{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Len(t, withDeleted, 5)
}

func TestExecute_ReevaluatesAtCallTime(t *testing.T) {
	store := testutil.NewMemStore()
	seed(t, store, "present", testutil.TimePtr(now.Add(-time.Hour)), testutil.TimePtr(now.Add(time.Hour)), false)

	clk := clock.NewMockClock(now)
	q := NewQuery(store.SalePriceRepo(), clk)

	first, err := q.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.Equal(t, "present", first[0].Bucket)

	clk.Advance(2 * time.Hour)
	second, err := q.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.Equal(t, "past", second[0].Bucket)
	assert.False(t, second[0].Enabled)
}

func TestExecute_PropagatesReadErrors(t *testing.T) {
	store := testutil.NewMemStore()
	store.FailReads = errors.New("read failed")

	_, err := NewQuery(store.SalePriceRepo(), clock.NewMockClock(now)).Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, store.FailReads)
}
