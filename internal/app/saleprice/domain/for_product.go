package domain

import (
	"cmp"
	"slices"
	"strings"
)

// CollectForProduct assembles every sale price of a product from its variants, their
// prices and the sale prices hanging off those prices.
//
// Non-master variants come first (by position, then id) and the master variant last.
// Within a variant, prices are taken in id order and each price's sale prices by
// created_at then id. Soft-deleted variants are skipped; soft-deleted prices are not,
// because a sale price outlives its price. Each sale price appears once.
func CollectForProduct(variants []*Variant, prices []*Price, sales []*SalePrice) []*SalePrice {
	ordered := slices.Clone(variants)
	slices.SortStableFunc(ordered, func(a, b *Variant) int {
		if a.isMaster != b.isMaster {
			if a.isMaster {
				return 1
			}
			return -1
		}
		if c := cmp.Compare(a.position, b.position); c != 0 {
			return c
		}
		return strings.Compare(a.id, b.id)
	})

	pricesByVariant := make(map[string][]*Price)
	for _, p := range prices {
		pricesByVariant[p.variantID] = append(pricesByVariant[p.variantID], p)
	}
	for _, ps := range pricesByVariant {
		slices.SortFunc(ps, func(a, b *Price) int { return strings.Compare(a.id, b.id) })
	}

	salesByPrice := make(map[string][]*SalePrice)
	for _, s := range sales {
		salesByPrice[s.priceID] = append(salesByPrice[s.priceID], s)
	}
	for _, ss := range salesByPrice {
		slices.SortStableFunc(ss, func(a, b *SalePrice) int {
			if c := a.createdAt.Compare(b.createdAt); c != 0 {
				return c
			}
			return strings.Compare(a.id, b.id)
		})
	}

	out := make([]*SalePrice, 0, len(sales))
	seen := make(map[string]struct{}, len(sales))
	for _, v := range ordered {
		if v.IsDeleted() {
			continue
		}
		for _, p := range pricesByVariant[v.id] {
			for _, s := range salesByPrice[p.id] {
				if _, dup := seen[s.id]; dup {
					continue
				}
				seen[s.id] = struct{}{}
				out = append(out, s)
			}
		}
	}
	return out
}
