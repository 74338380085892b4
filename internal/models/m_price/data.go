package m_price

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data is a row of the prices table. Rows are soft-deleted through DeletedAt.
type Data struct {
	PriceID   string              `spanner:"price_id"`
	VariantID string              `spanner:"variant_id"`
	Amount    spanner.NullNumeric `spanner:"amount"`
	Currency  string              `spanner:"currency"`
	CreatedAt time.Time           `spanner:"created_at"`
	DeletedAt spanner.NullTime    `spanner:"deleted_at"`
}

// Model provides type-safe database operations for prices.
type Model struct{}

// NewModel creates a new price model.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation inserting a price row.
func (m *Model) InsertMut(data *Data) (*spanner.Mutation, error) {
	return spanner.InsertStruct(TableName, data)
}

// SoftDeleteMut marks a price as deleted while keeping its row.
func (m *Model) SoftDeleteMut(priceID string, at time.Time) *spanner.Mutation {
	return spanner.Update(TableName, []string{PriceID, DeletedAt}, []interface{}{priceID, at})
}

// ReadColumns returns the column names for reading prices.
func (m *Model) ReadColumns() []string {
	return []string{
		PriceID,
		VariantID,
		Amount,
		Currency,
		CreatedAt,
		DeletedAt,
	}
}
