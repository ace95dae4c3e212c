package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticCatalogGet(t *testing.T) {
	c := NewStaticCatalog()
	p, ok := c.Get("P001")
	require.True(t, ok)
	assert.Equal(t, "iPhone 16", p.Name)

	_, ok = c.Get("P999")
	assert.False(t, ok)
}

func TestStaticCatalogListSorted(t *testing.T) {
	c := NewStaticCatalog()
	items := c.List()
	require.NotEmpty(t, items)
	for i := 1; i < len(items); i++ {
		assert.Less(t, items[i-1].ID, items[i].ID)
	}
}

func TestStaticCatalogSearch(t *testing.T) {
	c := NewStaticCatalog()

	got := c.Search("iphone")
	require.Len(t, got, 1)
	assert.Equal(t, "P001", got[0].ID)

	got = c.Search("samsung")
	assert.GreaterOrEqual(t, len(got), 3)

	assert.Empty(t, c.Search("   "))
	assert.Empty(t, c.Search("walkman"))
}

func TestStaticCatalogByCategory(t *testing.T) {
	c := NewStaticCatalog()
	phones := c.ByCategory("smartphones")
	require.NotEmpty(t, phones)
	for _, p := range phones {
		assert.Equal(t, "Smartphones", p.Category)
	}
}
