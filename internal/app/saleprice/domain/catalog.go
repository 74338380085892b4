package domain

import "time"

// Price is a base currency amount owned by a variant. Sale prices hang off a Price.
// Prices are soft-deleted: a deleted Price keeps its row and its sale prices.
type Price struct {
	id        string
	variantID string
	amount    *Money
	currency  string
	deletedAt *time.Time
}

// ReconstructPrice rebuilds a Price from storage.
func ReconstructPrice(id, variantID string, amount *Money, currency string, deletedAt *time.Time) *Price {
	return &Price{
		id:        id,
		variantID: variantID,
		amount:    amount,
		currency:  currency,
		deletedAt: deletedAt,
	}
}

func (p *Price) ID() string            { return p.id }
func (p *Price) VariantID() string     { return p.variantID }
func (p *Price) Amount() *Money        { return p.amount.Copy() }
func (p *Price) Currency() string      { return p.currency }
func (p *Price) DeletedAt() *time.Time { return p.deletedAt }
func (p *Price) IsDeleted() bool       { return p.deletedAt != nil }

// Variant is a purchasable configuration of a product. Exactly one variant per product
// is the master. The product reference may be cleared, leaving an orphaned variant.
type Variant struct {
	id        string
	productID string
	isMaster  bool
	position  int64
	deletedAt *time.Time
}

// ReconstructVariant rebuilds a Variant from storage. An empty productID means the
// product link was removed.
func ReconstructVariant(id, productID string, isMaster bool, position int64, deletedAt *time.Time) *Variant {
	return &Variant{
		id:        id,
		productID: productID,
		isMaster:  isMaster,
		position:  position,
		deletedAt: deletedAt,
	}
}

func (v *Variant) ID() string            { return v.id }
func (v *Variant) ProductID() string     { return v.productID }
func (v *Variant) IsMaster() bool        { return v.isMaster }
func (v *Variant) Position() int64       { return v.position }
func (v *Variant) DeletedAt() *time.Time { return v.deletedAt }
func (v *Variant) IsDeleted() bool       { return v.deletedAt != nil }
func (v *Variant) HasProduct() bool      { return v.productID != "" }

// Product is the catalog entry owning variants. This service only ever writes its
// updated_at, the cache-invalidation marker.
type Product struct {
	id        string
	name      string
	updatedAt time.Time
	deletedAt *time.Time
	touched   bool
}

// ReconstructProduct rebuilds a Product from storage.
func ReconstructProduct(id, name string, updatedAt time.Time, deletedAt *time.Time) *Product {
	return &Product{
		id:        id,
		name:      name,
		updatedAt: updatedAt,
		deletedAt: deletedAt,
	}
}

func (p *Product) ID() string            { return p.id }
func (p *Product) Name() string          { return p.name }
func (p *Product) UpdatedAt() time.Time  { return p.updatedAt }
func (p *Product) DeletedAt() *time.Time { return p.deletedAt }
func (p *Product) IsDeleted() bool       { return p.deletedAt != nil }

// Touched reports whether Touch was called since the product was loaded.
func (p *Product) Touched() bool { return p.touched }

// Touch moves the cache-invalidation marker to now.
func (p *Product) Touch(now time.Time) {
	p.updatedAt = now
	p.touched = true
}
