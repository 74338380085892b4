package testutil

import (
	"context"
	"math/big"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/saleprice-service/internal/models/m_price"
	"github.com/light-bringer/saleprice-service/internal/models/m_product"
	"github.com/light-bringer/saleprice-service/internal/models/m_variant"
)

// CreateTestProduct inserts a product and returns its ID.
func CreateTestProduct(t *testing.T, client *spanner.Client, name string, updatedAt time.Time) string {
	t.Helper()

	productID := uuid.New().String()
	mut := m_product.NewModel().InsertMut(&m_product.Data{
		ProductID: productID,
		Name:      name,
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	})
	apply(t, client, mut)

	return productID
}

// CreateTestVariant inserts a variant of productID and returns its ID.
func CreateTestVariant(t *testing.T, client *spanner.Client, productID string, isMaster bool, position int64) string {
	t.Helper()

	variantID := uuid.New().String()
	mut, err := m_variant.NewModel().InsertMut(&m_variant.Data{
		VariantID: variantID,
		ProductID: spanner.NullString{StringVal: productID, Valid: productID != ""},
		IsMaster:  isMaster,
		Position:  position,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	apply(t, client, mut)

	return variantID
}

// CreateTestPrice inserts a price of num/den in currency and returns its ID.
func CreateTestPrice(t *testing.T, client *spanner.Client, variantID string, num, den int64, currency string) string {
	t.Helper()

	priceID := uuid.New().String()
	mut, err := m_price.NewModel().InsertMut(&m_price.Data{
		PriceID:   priceID,
		VariantID: variantID,
		Amount:    spanner.NullNumeric{Numeric: *big.NewRat(num, den), Valid: true},
		Currency:  currency,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	apply(t, client, mut)

	return priceID
}

// SoftDeletePrice marks a price as deleted.
func SoftDeletePrice(t *testing.T, client *spanner.Client, priceID string, at time.Time) {
	t.Helper()
	apply(t, client, m_price.NewModel().SoftDeleteMut(priceID, at))
}

// SoftDeleteVariant marks a variant as deleted.
func SoftDeleteVariant(t *testing.T, client *spanner.Client, variantID string, at time.Time) {
	t.Helper()
	apply(t, client, m_variant.NewModel().SoftDeleteMut(variantID, at))
}

// UnlinkVariant removes the product reference of a variant.
func UnlinkVariant(t *testing.T, client *spanner.Client, variantID string) {
	t.Helper()
	apply(t, client, m_variant.NewModel().UnlinkProductMut(variantID))
}

// SoftDeleteProduct marks a product as deleted.
func SoftDeleteProduct(t *testing.T, client *spanner.Client, productID string, at time.Time) {
	t.Helper()
	apply(t, client, m_product.NewModel().SoftDeleteMut(productID, at))
}

// HardDeletePrice removes a price row.
func HardDeletePrice(t *testing.T, client *spanner.Client, priceID string) {
	t.Helper()
	apply(t, client, spanner.Delete(m_price.TableName, spanner.Key{priceID}))
}

// ProductUpdatedAt reads the product's updated_at.
func ProductUpdatedAt(t *testing.T, client *spanner.Client, productID string) time.Time {
	t.Helper()

	row, err := client.Single().ReadRow(context.Background(), m_product.TableName, spanner.Key{productID}, []string{m_product.UpdatedAt})
	require.NoError(t, err)

	var updatedAt time.Time
	require.NoError(t, row.Columns(&updatedAt))
	return updatedAt
}

func apply(t *testing.T, client *spanner.Client, muts ...*spanner.Mutation) {
	t.Helper()
	_, err := client.Apply(context.Background(), muts)
	require.NoError(t, err)
}
