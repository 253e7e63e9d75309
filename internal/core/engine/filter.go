package engine

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/custodia-labs/agricatalog/internal/core/domain"
)

// folder lower-cases text for case-insensitive comparison. A
// cases.Caser is not safe for concurrent use, so each filter call owns one.
type folder struct {
	caser cases.Caser
}

func newFolder() *folder {
	return &folder{caser: cases.Lower(language.Und)}
}

func (f *folder) fold(s string) string {
	return f.caser.String(s)
}

type compiled struct {
	field func(domain.Product) string
	value string
}

// compile keeps the criteria that restrict the result, folded for
// matching. Unset criteria match every product and are dropped.
func compile(f *folder, c domain.FilterCriteria) []compiled {
	pairs := []struct {
		value string
		field func(domain.Product) string
	}{
		{c.ProductType, func(p domain.Product) string { return p.ProductType }},
		{c.CompanyName, func(p domain.Product) string { return p.CompanyName }},
		{c.AvailableIn, func(p domain.Product) string { return p.AvailableIn }},
		{c.SuitableCrops, func(p domain.Product) string { return p.SuitableCrops }},
		{c.ProductName, func(p domain.Product) string { return p.ProductName }},
		{c.BrandName, func(p domain.Product) string { return p.BrandName }},
	}

	out := make([]compiled, 0, len(pairs))
	for _, pair := range pairs {
		if domain.IsUnset(pair.value) {
			continue
		}
		out = append(out, compiled{field: pair.field, value: f.fold(pair.value)})
	}
	return out
}

func (m compiled) match(f *folder, p domain.Product) bool {
	return strings.Contains(f.fold(m.field(p)), m.value)
}

// matches reports whether a single product passes every criterion.
func matches(p domain.Product, c domain.FilterCriteria) bool {
	f := newFolder()
	for _, m := range compile(f, c) {
		if !m.match(f, p) {
			return false
		}
	}
	return true
}

// FilterProducts returns the products that pass every criterion, in their
// original order. Each field is a case-insensitive substring match; an
// empty or "all" criterion matches everything. Categorical fields use the
// same substring rule, so "Seed" also selects "Seed Treatment".
//
// The result is always a new, non-nil slice.
func FilterProducts(products []domain.Product, c domain.FilterCriteria) []domain.Product {
	f := newFolder()
	matchers := compile(f, c)
	out := make([]domain.Product, 0, len(products))

next:
	for _, p := range products {
		for _, m := range matchers {
			if !m.match(f, p) {
				continue next
			}
		}
		out = append(out, p)
	}
	return out
}
