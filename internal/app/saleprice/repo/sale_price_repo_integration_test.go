//go:build integration

package repo

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/saleprice-service/internal/app/saleprice/domain"
	"github.com/light-bringer/saleprice-service/internal/testutil"
)

func TestSalePriceRepository_InsertAndGet(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	repository := NewSalePriceRepo(client)
	now := testutil.NewMockClock().Now()

	value, _ := domain.NewMoney(1095, 100)
	sp, err := domain.NewSalePrice("sp-int-1", "price-1", value, now)
	require.NoError(t, err)
	end := now.Add(time.Hour)
	require.NoError(t, sp.Start(now, &end))

	mut, err := repository.InsertMut(sp)
	require.NoError(t, err)
	_, err = client.Apply(ctx, []*spanner.Mutation{mut})
	require.NoError(t, err)

	testutil.AssertRowCount(t, client, "sale_prices", 1)

	got, err := repository.GetByID(ctx, "sp-int-1", false)
	require.NoError(t, err)
	assert.Equal(t, "price-1", got.PriceID())
	assert.Equal(t, 0, got.Value().Rat().Cmp(value.Rat()))
	assert.True(t, got.StartAt().Equal(now))
	assert.True(t, got.EndAt().Equal(end))
	assert.True(t, got.Enabled(now))
}

func TestSalePriceRepository_UpdateMutBumpsVersion(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	repository := NewSalePriceRepo(client)
	clk := testutil.NewMockClock()

	value, _ := domain.NewMoney(5, 1)
	sp, _ := domain.NewSalePrice("sp-int-2", "price-1", value, clk.Now())
	mut, _ := repository.InsertMut(sp)
	_, err := client.Apply(ctx, []*spanner.Mutation{mut})
	require.NoError(t, err)

	loaded, err := repository.GetByID(ctx, "sp-int-2", false)
	require.NoError(t, err)
	assert.Nil(t, repository.UpdateMut(loaded), "no changes, no mutation")

	clk.Advance(time.Minute)
	require.NoError(t, loaded.Stop(clk.Now()))
	_, err = client.Apply(ctx, []*spanner.Mutation{repository.UpdateMut(loaded)})
	require.NoError(t, err)

	reloaded, err := repository.GetByID(ctx, "sp-int-2", false)
	require.NoError(t, err)
	assert.Equal(t, loaded.Version()+1, reloaded.Version())
	assert.True(t, reloaded.EndAt().Equal(clk.Now()))
	assert.Nil(t, reloaded.StartAt())
}

func TestSalePriceRepository_SoftDelete(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	repository := NewSalePriceRepo(client)
	now := testutil.NewMockClock().Now()

	value, _ := domain.NewMoney(5, 1)
	sp, _ := domain.NewSalePrice("sp-int-3", "price-1", value, now)
	mut, _ := repository.InsertMut(sp)
	_, err := client.Apply(ctx, []*spanner.Mutation{mut})
	require.NoError(t, err)

	loaded, _ := repository.GetByID(ctx, "sp-int-3", false)
	require.NoError(t, loaded.Destroy(now))
	_, err = client.Apply(ctx, []*spanner.Mutation{repository.UpdateMut(loaded)})
	require.NoError(t, err)

	_, err = repository.GetByID(ctx, "sp-int-3", false)
	assert.ErrorIs(t, err, domain.ErrSalePriceNotFound)

	deleted, err := repository.GetByID(ctx, "sp-int-3", true)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted())

	all, err := repository.ListAll(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, all)

	byPrice, err := repository.ListByPriceIDs(ctx, []string{"price-1"}, true)
	require.NoError(t, err)
	assert.Len(t, byPrice, 1)
}

func TestSalePriceRepository_GetByIDNotFound(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	_, err := NewSalePriceRepo(client).GetByID(context.Background(), "missing", true)
	assert.ErrorIs(t, err, domain.ErrSalePriceNotFound)
}
