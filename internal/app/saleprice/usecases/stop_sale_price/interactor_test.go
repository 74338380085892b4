package stop_sale_price

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/saleprice-service/internal/app/saleprice/domain"
	"github.com/light-bringer/saleprice-service/internal/app/saleprice/usecases/touch_product"
	"github.com/light-bringer/saleprice-service/internal/pkg/clock"
	"github.com/light-bringer/saleprice-service/internal/pkg/committer"
	"github.com/light-bringer/saleprice-service/internal/testutil"
)

var now = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func newInteractor(store *testutil.MemStore) *Interactor {
	planner := touch_product.NewPlanner(store.PriceStore(), store.CatalogRepo(), zap.NewNop())
	return NewInteractor(store.SalePriceRepo(), store.OutboxRepo(), planner, store.Committer(), clock.NewMockClock(now), zap.NewNop())
}

func TestExecute_StopsActiveSale(t *testing.T) {
	store := testutil.NewMemStore()
	catalog := testutil.SeedCatalog(t, store, now)
	start := now.Add(-2 * time.Hour)
	store.PutSalePrice(domain.ReconstructSalePrice("sp-1", catalog.MasterPriceID, testutil.MustMoney(t, "10"),
		&start, testutil.TimePtr(now.Add(time.Hour)), 3, start, start, nil))

	err := newInteractor(store).Execute(context.Background(), &Request{SalePriceID: "sp-1"})
	require.NoError(t, err)

	sp := store.SalePrice("sp-1")
	assert.False(t, sp.Enabled(now))
	assert.Equal(t, now, *sp.EndAt())
	assert.Equal(t, start, *sp.StartAt())
	assert.Equal(t, int64(4), sp.Version())

	assert.Equal(t, now, store.Product(catalog.ProductID).UpdatedAt())
	assert.Equal(t, []string{"sale_price.stopped", "product.touched"}, store.EventTypes())
}

func TestExecute_StopUnstartedLeavesEmptyWindow(t *testing.T) {
	store := testutil.NewMemStore()
	catalog := testutil.SeedCatalog(t, store, now)
	store.PutSalePrice(domain.ReconstructSalePrice("sp-1", catalog.VariantPriceID, testutil.MustMoney(t, "10"), nil, nil, 1, now, now, nil))

	require.NoError(t, newInteractor(store).Execute(context.Background(), &Request{SalePriceID: "sp-1"}))

	sp := store.SalePrice("sp-1")
	assert.Nil(t, sp.StartAt())
	assert.False(t, sp.Enabled(now.Add(time.Hour)))
}

func TestExecute_StaleVersion(t *testing.T) {
	store := testutil.NewMemStore()
	catalog := testutil.SeedCatalog(t, store, now)
	store.PutSalePrice(domain.ReconstructSalePrice("sp-1", catalog.VariantPriceID, testutil.MustMoney(t, "10"),
		testutil.TimePtr(now.Add(-time.Hour)), nil, 5, now, now, nil))
	stale := int64(4)

	err := newInteractor(store).Execute(context.Background(), &Request{SalePriceID: "sp-1", ExpectedVersion: &stale})

	assert.ErrorIs(t, err, committer.ErrOptimisticLockConflict)
	assert.True(t, store.SalePrice("sp-1").Enabled(now))
	assert.Empty(t, store.Events())
}
