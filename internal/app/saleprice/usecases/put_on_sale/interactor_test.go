package put_on_sale

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
	"github.com/light-bringer/saleprice-service/internal/testutil"
)

var now = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func newInteractor(store *testutil.MemStore) *Interactor {
	planner := touch_product.NewPlanner(store.PriceStore(), store.CatalogRepo(), zap.NewNop())
	return NewInteractor(
		store.SalePriceRepo(),
		store.PriceStore(),
		store.CatalogRepo(),
		store.OutboxRepo(),
		planner,
		store.Committer(),
		clock.NewMockClock(now),
		zap.NewNop(),
	)
}

func priceIDs(t *testing.T, store *testutil.MemStore, ids []string) []string {
	t.Helper()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		sp := store.SalePrice(id)
		require.NotNil(t, sp)
		out = append(out, sp.PriceID())
	}
	return out
}

func TestExecute_AllVariantsMasterLast(t *testing.T) {
	store := testutil.NewMemStore()
	catalog := testutil.SeedCatalog(t, store, now)

	resp, err := newInteractor(store).Execute(context.Background(), &Request{ProductID: catalog.ProductID, Value: "12"})
	require.NoError(t, err)

	assert.Equal(t,
		[]string{catalog.VariantPriceID, catalog.VariantEURPriceID, catalog.MasterPriceID},
		priceIDs(t, store, resp.SalePriceIDs),
	)
	for _, id := range resp.SalePriceIDs {
		sp := store.SalePrice(id)
		assert.True(t, sp.Enabled(now))
		assert.Nil(t, sp.EndAt())
		assert.Equal(t, "12.00", sp.Value().String())
	}

	assert.Equal(t, now, store.Product(catalog.ProductID).UpdatedAt())
	assert.Equal(t, 1, store.Commits())

	touches := 0
	for _, eventType := range store.EventTypes() {
		if eventType == "product.touched" {
			touches++
		}
	}
	assert.Equal(t, 1, touches)
}

func TestExecute_FiltersCurrencyAndDeletedRows(t *testing.T) {
	store := testutil.NewMemStore()
	catalog := testutil.SeedCatalog(t, store, now)
	gone := testutil.TimePtr(now.Add(-time.Hour))
	store.PutVariant(domain.ReconstructVariant("variant-removed", catalog.ProductID, false, 2, gone))
	store.PutPrice(domain.ReconstructPrice("price-removed-variant", "variant-removed", testutil.MustMoney(t, "5"), "USD", nil))
	store.PutPrice(domain.ReconstructPrice("price-old", catalog.MasterID, testutil.MustMoney(t, "5"), "USD", gone))
	end := now.Add(72 * time.Hour)

	resp, err := newInteractor(store).Execute(context.Background(), &Request{
		ProductID: catalog.ProductID,
		Value:     "15",
		Currency:  "USD",
		EndAt:     &end,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{catalog.VariantPriceID, catalog.MasterPriceID}, priceIDs(t, store, resp.SalePriceIDs))
	assert.Equal(t, end, *store.SalePrice(resp.SalePriceIDs[0]).EndAt())
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"unknown product", &Request{ProductID: "missing", Value: "1"}, domain.ErrProductNotFound},
		{"no price in currency", &Request{ProductID: "product-1", Value: "1", Currency: "JPY"}, domain.ErrNoSaleablePrice},
		{"bad value", &Request{ProductID: "product-1", Value: "x"}, domain.ErrInvalidSaleValue},
		{"bad window", &Request{ProductID: "product-1", Value: "1", EndAt: testutil.TimePtr(now.Add(-time.Hour))}, domain.ErrInvalidWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewMemStore()
			testutil.SeedCatalog(t, store, now)

			_, err := newInteractor(store).Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, store.SalePriceCount())
		})
	}
}
