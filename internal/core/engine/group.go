package engine

import "github.com/custodia-labs/agricatalog/internal/core/domain"

// GroupProducts partitions an already filtered list for display.
//
// GroupNone yields exactly one group labelled domain.AllProductsGroup,
// even when the list is empty. GroupByType and GroupByCompany partition
// by the exact field value; the empty string is a valid key. Groups are
// returned in the order their key first appears, and products keep their
// relative order inside each group. Unknown modes behave like GroupNone.
func GroupProducts(filtered []domain.Product, mode domain.GroupingMode) []domain.Group {
	var key func(domain.Product) string
	switch mode {
	case domain.GroupByType:
		key = func(p domain.Product) string { return p.ProductType }
	case domain.GroupByCompany:
		key = func(p domain.Product) string { return p.CompanyName }
	default:
		all := make([]domain.Product, len(filtered))
		copy(all, filtered)
		return []domain.Group{{Key: domain.AllProductsGroup, Products: all}}
	}

	groups := make([]domain.Group, 0)
	index := make(map[string]int)
	for _, p := range filtered {
		k := key(p)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, domain.Group{Key: k})
		}
		groups[i].Products = append(groups[i].Products, p)
	}
	return groups
}
