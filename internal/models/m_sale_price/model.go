package m_sale_price

import (
	"cloud.google.com/go/spanner"
)

// Model provides type-safe mutations for the sale_prices table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation inserting a full sale price row.
func (m *Model) InsertMut(data *Data) (*spanner.Mutation, error) {
	return spanner.InsertStruct(TableName, data)
}

// UpdateMut creates a mutation writing only the given columns of one sale price.
// Columns are applied in the order given.
func (m *Model) UpdateMut(salePriceID string, columns []string, values []interface{}) *spanner.Mutation {
	if len(columns) == 0 {
		return nil
	}

	cols := append([]string{SalePriceID}, columns...)
	vals := append([]interface{}{salePriceID}, values...)

	return spanner.Update(TableName, cols, vals)
}

// ReadColumns returns the columns matching Data, in declaration order.
func (m *Model) ReadColumns() []string {
	return []string{
		SalePriceID,
		PriceID,
		Value,
		StartAt,
		EndAt,
		Version,
		CreatedAt,
		UpdatedAt,
		DeletedAt,
	}
}
