package domain

import (
	"fmt"
	"strings"
)

// AllProductsGroup is the label of the single group produced by GroupNone.
const AllProductsGroup = "All Products"

// GroupingMode determines how filtered products are partitioned for display.
// It never affects which products pass the filter.
type GroupingMode string

// Available grouping modes.
const (
	// GroupNone puts every filtered product in one group.
	GroupNone GroupingMode = "none"

	// GroupByType partitions by exact ProductType value.
	GroupByType GroupingMode = "type"

	// GroupByCompany partitions by exact CompanyName value.
	GroupByCompany GroupingMode = "company"
)

// IsValid returns true if the grouping mode is recognised.
func (m GroupingMode) IsValid() bool {
	switch m {
	case GroupNone, GroupByType, GroupByCompany:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m GroupingMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m GroupingMode) Description() string {
	switch m {
	case GroupNone:
		return "No grouping"
	case GroupByType:
		return "By product type"
	case GroupByCompany:
		return "By company"
	default:
		return "Unknown"
	}
}

// Next returns the following mode in cycle order.
func (m GroupingMode) Next() GroupingMode {
	switch m {
	case GroupNone:
		return GroupByType
	case GroupByType:
		return GroupByCompany
	default:
		return GroupNone
	}
}

// AllGroupingModes returns all grouping modes in cycle order.
func AllGroupingModes() []GroupingMode {
	return []GroupingMode{GroupNone, GroupByType, GroupByCompany}
}

// ParseGroupingMode converts user input to a GroupingMode.
// Accepts "none", "type", "by-type", "byType", "company", "by-company"
// and "byCompany"; matching is case-insensitive.
func ParseGroupingMode(s string) (GroupingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return GroupNone, nil
	case "type", "by-type", "bytype":
		return GroupByType, nil
	case "company", "by-company", "bycompany":
		return GroupByCompany, nil
	default:
		return "", fmt.Errorf("%w: grouping mode %q", ErrInvalidInput, s)
	}
}

// Group is one named partition of a filtered product list.
type Group struct {
	Key      string    `json:"key"`
	Products []Product `json:"products"`
}

// Label returns the display label for the group key.
func (g Group) Label() string {
	if g.Key == "" {
		return "(Unspecified)"
	}
	return g.Key
}
