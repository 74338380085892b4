package domain

// Link names the first missing link of an ownership chain.
type Link string

const (
	LinkNone    Link = ""
	LinkPrice   Link = "price"
	LinkVariant Link = "variant"
	LinkProduct Link = "product"
)

// Chain is the ownership path SalePrice -> Price -> Variant -> Product as resolved at
// the time of a mutation. Price must come from the active (non-deleted) accessor; any
// element may be nil.
type Chain struct {
	Price   *Price
	Variant *Variant
	Product *Product
}

// BrokenLink returns the first link that is missing, deleted or mismatched, or
// LinkNone when the chain is intact.
func (c Chain) BrokenLink() Link {
	switch {
	case c.Price == nil || c.Price.IsDeleted():
		return LinkPrice
	case c.Variant == nil || c.Variant.IsDeleted() || c.Variant.id != c.Price.variantID:
		return LinkVariant
	case !c.Variant.HasProduct() || c.Product == nil || c.Product.IsDeleted() || c.Product.id != c.Variant.productID:
		return LinkProduct
	default:
		return LinkNone
	}
}

// ComputeTouchTarget returns the product whose cache marker must be touched after a
// sale price mutation, or nil when the chain is broken and propagation is skipped.
func ComputeTouchTarget(chain Chain) *Product {
	if chain.BrokenLink() != LinkNone {
		return nil
	}
	return chain.Product
}
