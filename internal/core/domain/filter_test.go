package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultFilterCriteria(t *testing.T) {
	c := DefaultFilterCriteria()

	assert.Equal(t, MatchAny, c.ProductType)
	assert.Equal(t, MatchAny, c.CompanyName)
	assert.Equal(t, MatchAny, c.AvailableIn)
	assert.Empty(t, c.SuitableCrops)
	assert.False(t, c.HasActiveFilters())
	assert.Equal(t, 0, c.ActiveCount())
}

func TestClearedFilterCriteria(t *testing.T) {
	c := ClearedFilterCriteria()

	assert.Equal(t, FilterCriteria{}, c)
	assert.False(t, c.HasActiveFilters())
}

func TestFilterCriteria_ActiveCount(t *testing.T) {
	c := DefaultFilterCriteria()
	c.CompanyName = "Acme"
	c.ProductName = "grow"

	assert.True(t, c.HasActiveFilters())
	assert.Equal(t, 2, c.ActiveCount())
}

func TestIsUnset(t *testing.T) {
	assert.True(t, IsUnset(""))
	assert.True(t, IsUnset("all"))
	assert.False(t, IsUnset("All"))
	assert.False(t, IsUnset("x"))
}
