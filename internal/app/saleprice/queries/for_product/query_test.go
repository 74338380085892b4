package for_product

import (
	"context"
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

func newQuery(store *testutil.MemStore) *Query {
	return NewQuery(store.CatalogRepo(), store.PriceStore(), store.SalePriceRepo(), clock.NewMockClock(now))
}

func seedSale(t *testing.T, store *testutil.MemStore, id, priceID string, createdAt time.Time, deleted bool) {
	t.Helper()
	var deletedAt *time.Time
	if deleted {
		deletedAt = testutil.TimePtr(now)
	}
	store.PutSalePrice(domain.ReconstructSalePrice(id, priceID, testutil.MustMoney(t, "5"),
		testutil.TimePtr(createdAt), nil, 1, createdAt, createdAt, deletedAt))
}

func ids(dtos []*contracts.SalePriceDTO) []string {
	out := make([]string, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.SalePriceID)
	}
	return out
}

func TestExecute_MasterLast(t *testing.T) {
	store := testutil.NewMemStore()
	catalog := testutil.SeedCatalog(t, store, now)
	seedSale(t, store, "s-master", catalog.MasterPriceID, now.Add(-3*time.Hour), false)
	seedSale(t, store, "s-variant", catalog.VariantPriceID, now.Add(-2*time.Hour), false)
	seedSale(t, store, "s-variant-eur", catalog.VariantEURPriceID, now.Add(-time.Hour), false)
	seedSale(t, store, "s-other", "price-of-another-product", now, false)

	got, err := newQuery(store).Execute(context.Background(), &Request{ProductID: catalog.ProductID})
	require.NoError(t, err)

	assert.Equal(t, []string{"s-variant", "s-variant-eur", "s-master"}, ids(got))
}

func TestExecute_OnlyMaster(t *testing.T) {
	store := testutil.NewMemStore()
	store.PutProduct(domain.ReconstructProduct("solo", "Mug", now, nil))
	store.PutVariant(domain.ReconstructVariant("solo-master", "solo", true, 0, nil))
	store.PutPrice(domain.ReconstructPrice("solo-price", "solo-master", testutil.MustMoney(t, "8"), "USD", nil))
	seedSale(t, store, "s-1", "solo-price", now, false)

	got, err := newQuery(store).Execute(context.Background(), &Request{ProductID: "solo"})
	require.NoError(t, err)
	assert.Equal(t, []string{"s-1"}, ids(got))
}

func TestExecute_DeletedPricesAndSales(t *testing.T) {
	store := testutil.NewMemStore()
	catalog := testutil.SeedCatalog(t, store, now)
	store.PutPrice(domain.ReconstructPrice("price-retired", catalog.MasterID, testutil.MustMoney(t, "30"), "USD", testutil.TimePtr(now.Add(-time.Hour))))
	seedSale(t, store, "s-retired", "price-retired", now.Add(-time.Hour), false)
	seedSale(t, store, "s-destroyed", catalog.MasterPriceID, now.Add(-time.Hour), true)

	got, err := newQuery(store).Execute(context.Background(), &Request{ProductID: catalog.ProductID})
	require.NoError(t, err)
	assert.Equal(t, []string{"s-retired"}, ids(got), "sale of a soft-deleted price is kept")

	got, err = newQuery(store).Execute(context.Background(), &Request{ProductID: catalog.ProductID, IncludeDeleted: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"s-retired", "s-destroyed"}, ids(got))
}

func TestExecute_UnknownProduct(t *testing.T) {
	_, err := newQuery(testutil.NewMemStore()).Execute(context.Background(), &Request{ProductID: "nope"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
