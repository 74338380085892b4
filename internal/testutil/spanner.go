package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/saleprice-service/internal/models/m_outbox"
	"github.com/light-bringer/saleprice-service/internal/models/m_price"
	"github.com/light-bringer/saleprice-service/internal/models/m_product"
	"github.com/light-bringer/saleprice-service/internal/models/m_sale_price"
	"github.com/light-bringer/saleprice-service/internal/models/m_variant"
)

// SetupSpannerTest creates a test Spanner client against the emulator and returns a
// cleanup function. Tests are skipped when SPANNER_EMULATOR_HOST is unset.
func SetupSpannerTest(t *testing.T) (*spanner.Client, func()) {
	t.Helper()

	if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
		t.Skip("SPANNER_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	client, err := spanner.NewClient(ctx, GetTestSpannerDB())
	require.NoError(t, err, "failed to create Spanner client")

	// Clean database before test
	CleanDatabase(t, client)

	cleanup := func() {
		CleanDatabase(t, client)
		client.Close()
	}

	return client, cleanup
}

// GetTestSpannerDB returns the test Spanner database string.
func GetTestSpannerDB() string {
	if db := os.Getenv("TEST_SPANNER_DATABASE"); db != "" {
		return db
	}
	return "projects/test-project/instances/test-instance/databases/saleprice-test"
}

// CleanDatabase truncates all tables for test isolation.
func CleanDatabase(t *testing.T, client *spanner.Client) {
	t.Helper()

	mutations := []*spanner.Mutation{
		spanner.Delete(m_outbox.TableName, spanner.AllKeys()),
		spanner.Delete(m_sale_price.TableName, spanner.AllKeys()),
		spanner.Delete(m_price.TableName, spanner.AllKeys()),
		spanner.Delete(m_variant.TableName, spanner.AllKeys()),
		spanner.Delete(m_product.TableName, spanner.AllKeys()),
	}

	_, err := client.Apply(context.Background(), mutations)
	require.NoError(t, err, "failed to clean database")
}

// AssertRowCount asserts the number of rows in a table.
func AssertRowCount(t *testing.T, client *spanner.Client, table string, expectedCount int) {
	t.Helper()

	stmt := spanner.Statement{SQL: fmt.Sprintf("SELECT COUNT(*) FROM %s", table)}

	iter := client.Single().Query(context.Background(), stmt)
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "failed to query row count")

	var count int64
	require.NoError(t, row.Columns(&count), "failed to parse count")

	require.Equal(t, int64(expectedCount), count, "unexpected row count in table %s", table)
}
