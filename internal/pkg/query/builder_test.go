package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BasicSelect(t *testing.T) {
	stmt := From("sale_prices").
		Select("sale_price_id", "price_id", "start_at").
		Build()

	assert.Equal(t, "SELECT sale_price_id, price_id, start_at FROM sale_prices", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_SelectAllColumns(t *testing.T) {
	stmt := From("prices").Build()

	assert.Equal(t, "SELECT * FROM prices", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_MultipleWhereConditions(t *testing.T) {
	stmt := From("variants").
		Select("variant_id").
		Where(Eq("product_id", "p-1")).
		Where(IsNull("deleted_at")).
		Where(Eq("is_master", false)).
		Build()

	assert.Equal(t, "SELECT variant_id FROM variants WHERE product_id = @p0 AND deleted_at IS NULL AND is_master = @p1", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": "p-1",
		"p1": false,
	}, stmt.Params)
}

func TestBuilder_InCondition(t *testing.T) {
	ids := []string{"price-1", "price-2"}
	stmt := From("sale_prices").
		Select("sale_price_id").
		Where(In("price_id", ids)).
		Where(IsNull("deleted_at")).
		Build()

	assert.Equal(t, "SELECT sale_price_id FROM sale_prices WHERE price_id IN UNNEST(@p0) AND deleted_at IS NULL", stmt.SQL)
	assert.Equal(t, map[string]interface{}{"p0": ids}, stmt.Params)
}

func TestBuilder_MultipleOrderings(t *testing.T) {
	stmt := From("variants").
		Select("variant_id").
		OrderBy("is_master", Asc).
		OrderBy("position", Asc).
		OrderBy("created_at", Desc).
		Build()

	assert.Equal(t, "SELECT variant_id FROM variants ORDER BY is_master ASC, position ASC, created_at DESC", stmt.SQL)
}

func TestBuilder_LimitAndOffset(t *testing.T) {
	stmt := From("outbox_events").
		Select("event_id").
		Limit(10).
		Offset(20).
		Build()

	assert.Equal(t, "SELECT event_id FROM outbox_events LIMIT @limit OFFSET @offset", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"limit":  int64(10),
		"offset": int64(20),
	}, stmt.Params)
}

func TestBuilder_Immutability(t *testing.T) {
	base := From("sale_prices").Select("sale_price_id")

	stmt1 := base.Where(IsNull("deleted_at")).OrderBy("start_at", Asc).Build()
	stmt2 := base.Where(Eq("price_id", "price-1")).Build()

	assert.Contains(t, stmt1.SQL, "deleted_at IS NULL")
	assert.Contains(t, stmt1.SQL, "ORDER BY start_at ASC")
	assert.NotContains(t, stmt2.SQL, "deleted_at")
	assert.NotContains(t, stmt2.SQL, "ORDER BY")
	assert.Equal(t, "SELECT sale_price_id FROM sale_prices", base.Build().SQL)
}

func TestConditions(t *testing.T) {
	sql, params := Eq("currency", "USD").SQL(5)
	assert.Equal(t, "currency = @p5", sql)
	assert.Equal(t, map[string]interface{}{"p5": "USD"}, params)

	sql, params = IsNull("end_at").SQL(0)
	assert.Equal(t, "end_at IS NULL", sql)
	assert.Empty(t, params)
}

func TestBuilder_String(t *testing.T) {
	str := From("sale_prices").Where(Eq("price_id", "x")).String()
	require.NotEmpty(t, str)
	assert.Contains(t, str, "SQL:")
	assert.Contains(t, str, "Params:")
}
