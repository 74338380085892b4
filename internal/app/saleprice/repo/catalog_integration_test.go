//go:build integration

package repo

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/saleprice-service/internal/testutil"
)

func TestPriceStore_ResolveAccessors(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	store := NewPriceStore(client)
	now := testutil.NewMockClock().Now()

	productID := testutil.CreateTestProduct(t, client, "Shirt", now)
	variantID := testutil.CreateTestVariant(t, client, productID, true, 0)
	priceID := testutil.CreateTestPrice(t, client, variantID, 1999, 100, "USD")

	active, err := store.ResolveActive(ctx, priceID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "19.99", active.Amount().String())

	testutil.SoftDeletePrice(t, client, priceID, now)

	active, err = store.ResolveActive(ctx, priceID)
	require.NoError(t, err)
	assert.Nil(t, active)

	withDeleted, err := store.ResolveIncludingDeleted(ctx, priceID)
	require.NoError(t, err)
	require.NotNil(t, withDeleted)
	assert.True(t, withDeleted.IsDeleted())

	listed, err := store.ListByVariantIDs(ctx, []string{variantID})
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	testutil.HardDeletePrice(t, client, priceID)
	gone, err := store.ResolveIncludingDeleted(ctx, priceID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestCatalogRepository_VariantsAndTouch(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	catalog := NewCatalogRepo(client)
	clk := testutil.NewMockClock()

	productID := testutil.CreateTestProduct(t, client, "Shirt", clk.Now())
	master := testutil.CreateTestVariant(t, client, productID, true, 0)
	second := testutil.CreateTestVariant(t, client, productID, false, 2)
	first := testutil.CreateTestVariant(t, client, productID, false, 1)

	variants, err := catalog.ListVariants(ctx, productID)
	require.NoError(t, err)
	require.Len(t, variants, 3)
	assert.Equal(t, []string{master, first, second}, []string{variants[0].ID(), variants[1].ID(), variants[2].ID()})

	testutil.UnlinkVariant(t, client, second)
	unlinked, err := catalog.GetVariant(ctx, second)
	require.NoError(t, err)
	assert.False(t, unlinked.HasProduct())

	missing, err := catalog.GetProduct(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)

	product, err := catalog.GetProduct(ctx, productID)
	require.NoError(t, err)
	assert.Nil(t, catalog.TouchMut(product), "untouched product has no mutation")

	clk.Advance(time.Hour)
	product.Touch(clk.Now())
	_, err = client.Apply(ctx, []*spanner.Mutation{catalog.TouchMut(product)})
	require.NoError(t, err)

	assert.True(t, testutil.ProductUpdatedAt(t, client, productID).Equal(clk.Now()))
}
