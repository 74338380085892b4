package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/light-bringer/saleprice-service/internal/app/saleprice/domain"
)

// Catalog holds the IDs seeded by SeedCatalog.
type Catalog struct {
	ProductID         string
	MasterID          string
	VariantID         string
	MasterPriceID     string
	VariantPriceID    string
	VariantEURPriceID string
	// ProductUpdatedAt is the product's marker before any touch.
	ProductUpdatedAt  time.Time
}

// SeedCatalog seeds one product with a master variant (one USD price) and a regular
// variant (one USD and one EUR price).
func SeedCatalog(t *testing.T, store *MemStore, now time.Time) Catalog {
	t.Helper()

	c := Catalog{
		ProductID:         "product-1",
		MasterID:          "master-1",
		VariantID:         "variant-1",
		MasterPriceID:     "price-master",
		VariantPriceID:    "price-variant",
		VariantEURPriceID: "price-variant-eur",
		ProductUpdatedAt:  now.Add(-24 * time.Hour),
	}

	store.PutProduct(domain.ReconstructProduct(c.ProductID, "T-Shirt", c.ProductUpdatedAt, nil))
	store.PutVariant(domain.ReconstructVariant(c.MasterID, c.ProductID, true, 0, nil))
	store.PutVariant(domain.ReconstructVariant(c.VariantID, c.ProductID, false, 1, nil))
	store.PutPrice(domain.ReconstructPrice(c.MasterPriceID, c.MasterID, MustMoney(t, "20.00"), "USD", nil))
	store.PutPrice(domain.ReconstructPrice(c.VariantPriceID, c.VariantID, MustMoney(t, "21.00"), "USD", nil))
	store.PutPrice(domain.ReconstructPrice(c.VariantEURPriceID, c.VariantID, MustMoney(t, "19.50"), "EUR", nil))

	return c
}

// MustMoney parses a decimal amount or fails the test.
func MustMoney(t *testing.T, amount string) *domain.Money {
	t.Helper()
	m, err := domain.ParseMoney(amount)
	require.NoError(t, err)
	return m
}

// TimePtr returns a pointer to t.
func TimePtr(t time.Time) *time.Time {
	return &t
}
