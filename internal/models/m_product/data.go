package m_product

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the products table.
// UpdatedAt doubles as the cache-invalidation marker bumped by touches.
type Data struct {
	ProductID string           `spanner:"product_id"`
	Name      string           `spanner:"name"`
	CreatedAt time.Time        `spanner:"created_at"`
	UpdatedAt time.Time        `spanner:"updated_at"`
	DeletedAt spanner.NullTime `spanner:"deleted_at"`
}
