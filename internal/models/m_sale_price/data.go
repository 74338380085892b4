package m_sale_price

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data is a row of the sale_prices table.
type Data struct {
	SalePriceID string              `spanner:"sale_price_id"`
	PriceID     string              `spanner:"price_id"`
	Value       spanner.NullNumeric `spanner:"value"`
	StartAt     spanner.NullTime    `spanner:"start_at"`
	EndAt       spanner.NullTime    `spanner:"end_at"`
	Version     int64               `spanner:"version"`
	CreatedAt   time.Time           `spanner:"created_at"`
	UpdatedAt   time.Time           `spanner:"updated_at"`
	DeletedAt   spanner.NullTime    `spanner:"deleted_at"`
}
