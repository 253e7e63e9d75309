package domain

// Facets holds the distinct values available for categorical filters.
// Each list is sorted ascending and contains no empty strings.
type Facets struct {
	Companies    []string `json:"companies"`
	ProductTypes []string `json:"productTypes"`
	States       []string `json:"states"`
}

// IsEmpty reports whether no facet has any value.
func (f Facets) IsEmpty() bool {
	return len(f.Companies) == 0 && len(f.ProductTypes) == 0 && len(f.States) == 0
}
