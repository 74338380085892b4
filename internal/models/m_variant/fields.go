package m_variant

// Table name constant
const TableName = "variants"

// Field name constants for the variants table.
const (
	VariantID = "variant_id"
	ProductID = "product_id"
	IsMaster  = "is_master"
	Position  = "position"
	CreatedAt = "created_at"
	DeletedAt = "deleted_at"
)
