package domain

// MatchAny is the categorical selector value that matches every product.
// It is equivalent to leaving the field unset.
const MatchAny = "all"

// FilterCriteria is the set of filter values applied conjunctively to a
// catalog. ProductType, CompanyName and AvailableIn are categorical
// (populated from facets, MatchAny allowed); the others are free text.
// Every field is matched as a case-insensitive substring.
type FilterCriteria struct {
	ProductType   string `json:"productType"`
	CompanyName   string `json:"companyName"`
	AvailableIn   string `json:"availableIn"`
	SuitableCrops string `json:"suitableCrops"`
	ProductName   string `json:"productName"`
	BrandName     string `json:"brandName"`
}

// DefaultFilterCriteria returns the initial criteria of a catalog view:
// categorical fields set to MatchAny, text fields empty.
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		ProductType: MatchAny,
		CompanyName: MatchAny,
		AvailableIn: MatchAny,
	}
}

// ClearedFilterCriteria returns criteria with every field empty.
// This is what the clear-filters action produces; it matches everything,
// exactly like DefaultFilterCriteria.
func ClearedFilterCriteria() FilterCriteria {
	return FilterCriteria{}
}

// IsUnset reports whether a criterion value matches every product.
func IsUnset(value string) bool {
	return value == "" || value == MatchAny
}

// HasActiveFilters reports whether any field narrows the result.
func (c FilterCriteria) HasActiveFilters() bool {
	for _, v := range c.values() {
		if !IsUnset(v) {
			return true
		}
	}
	return false
}

// ActiveCount returns the number of fields that narrow the result.
func (c FilterCriteria) ActiveCount() int {
	n := 0
	for _, v := range c.values() {
		if !IsUnset(v) {
			n++
		}
	}
	return n
}

func (c FilterCriteria) values() []string {
	return []string{
		c.ProductType,
		c.CompanyName,
		c.AvailableIn,
		c.SuitableCrops,
		c.ProductName,
		c.BrandName,
	}
}
