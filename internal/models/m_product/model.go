package m_product

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the products table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a product.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{
			ProductID,
			Name,
			CreatedAt,
			UpdatedAt,
			DeletedAt,
		},
		[]interface{}{
			data.ProductID,
			data.Name,
			data.CreatedAt,
			data.UpdatedAt,
			data.DeletedAt,
		},
	)
}

// TouchMut creates a Spanner mutation that only bumps updated_at.
func (m *Model) TouchMut(productID string, at time.Time) *spanner.Mutation {
	return spanner.Update(TableName, []string{ProductID, UpdatedAt}, []interface{}{productID, at})
}

// SoftDeleteMut marks a product as deleted.
func (m *Model) SoftDeleteMut(productID string, at time.Time) *spanner.Mutation {
	return spanner.Update(TableName, []string{ProductID, DeletedAt}, []interface{}{productID, at})
}

// ReadColumns returns the column names for reading products.
func (m *Model) ReadColumns() []string {
	return []string{ProductID, Name, CreatedAt, UpdatedAt, DeletedAt}
}
