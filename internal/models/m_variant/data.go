package m_variant

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data is a row of the variants table. A NULL ProductID means the variant lost its product.
type Data struct {
	VariantID string             `spanner:"variant_id"`
	ProductID spanner.NullString `spanner:"product_id"`
	IsMaster  bool               `spanner:"is_master"`
	Position  int64              `spanner:"position"`
	CreatedAt time.Time          `spanner:"created_at"`
	DeletedAt spanner.NullTime   `spanner:"deleted_at"`
}

// Model provides type-safe database operations for variants.
type Model struct{}

// NewModel creates a new variant model.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation inserting a variant row.
func (m *Model) InsertMut(data *Data) (*spanner.Mutation, error) {
	return spanner.InsertStruct(TableName, data)
}

// SoftDeleteMut marks a variant as deleted.
func (m *Model) SoftDeleteMut(variantID string, at time.Time) *spanner.Mutation {
	return spanner.Update(TableName, []string{VariantID, DeletedAt}, []interface{}{variantID, at})
}

// UnlinkProductMut clears the product reference of a variant.
func (m *Model) UnlinkProductMut(variantID string) *spanner.Mutation {
	return spanner.Update(TableName, []string{VariantID, ProductID}, []interface{}{variantID, spanner.NullString{}})
}

// ReadColumns returns the column names for reading variants.
func (m *Model) ReadColumns() []string {
	return []string{
		VariantID,
		ProductID,
		IsMaster,
		Position,
		CreatedAt,
		DeletedAt,
	}
}
