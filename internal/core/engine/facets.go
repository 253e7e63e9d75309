package engine

import (
	"sort"

	"github.com/custodia-labs/agricatalog/internal/core/domain"
)

// ExtractFacets collects the distinct non-empty company names, product
// types and states of a catalog. States are split from AvailableIn on
// commas. Each list is sorted by byte order.
func ExtractFacets(products []domain.Product) domain.Facets {
	companies := newSet()
	types := newSet()
	states := newSet()

	for _, p := range products {
		companies.add(p.CompanyName)
		types.add(p.ProductType)
		for _, s := range p.States() {
			states.add(s)
		}
	}

	return domain.Facets{
		Companies:    companies.sorted(),
		ProductTypes: types.sorted(),
		States:       states.sorted(),
	}
}

type set map[string]struct{}

func newSet() set { return make(set) }

func (s set) add(v string) {
	if v != "" {
		s[v] = struct{}{}
	}
}

func (s set) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
