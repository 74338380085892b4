package m_price

// Table name constant
const TableName = "prices"

// Field name constants for type-safe database access
const (
	PriceID   = "price_id"
	VariantID = "variant_id"
	Amount    = "amount"
	Currency  = "currency"
	CreatedAt = "created_at"
	DeletedAt = "deleted_at"
)
