package m_sale_price

// Field name constants for the sale_prices table.
const (
	TableName = "sale_prices"

	SalePriceID = "sale_price_id"
	PriceID     = "price_id"
	Value       = "value"
	StartAt     = "start_at"
	EndAt       = "end_at"
	Version     = "version"
	CreatedAt   = "created_at"
	UpdatedAt   = "updated_at"
	DeletedAt   = "deleted_at"
)
