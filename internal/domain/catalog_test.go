package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogFixture() []Product {
	return []Product{
		{ID: 1, Name: "Pearl Ring", Description: "A classic pearl ring", Price: 500, CategorySlug: "rings"},
		{ID: 2, Name: "Gold Chain", Description: "A fine gold chain", Price: 1000, CategorySlug: "chains"},
	}
}

func TestCatalogFilterByCategory(t *testing.T) {
	products := catalogFixture()

	got := ApplyCatalogFilter(products, CatalogFilter{Category: "rings", ShowAll: true}, 0)
	require.Len(t, got, 1)
	assert.Equal(t, "Pearl Ring", got[0].Name)

	got = ApplyCatalogFilter(products, CatalogFilter{Category: CategoryAll, ShowAll: true}, 0)
	assert.Len(t, got, 2)
}

func TestCatalogFilterCategoryCaseInsensitive(t *testing.T) {
	got := ApplyCatalogFilter(catalogFixture(), CatalogFilter{Category: "RINGS", ShowAll: true}, 0)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestCatalogSearchCaseInsensitive(t *testing.T) {
	got := ApplyCatalogFilter(catalogFixture(), CatalogFilter{Category: CategoryAll, Query: "pearl", ShowAll: true}, 0)
	require.Len(t, got, 1)
	assert.Equal(t, "Pearl Ring", got[0].Name)
}

func TestCatalogSearchMatchesDescription(t *testing.T) {
	got := ApplyCatalogFilter(catalogFixture(), CatalogFilter{Category: CategoryAll, Query: "fine gold", ShowAll: true}, 0)
	require.Len(t, got, 1)
	assert.Equal(t, "Gold Chain", got[0].Name)
}

func TestCatalogSortAscending(t *testing.T) {
	products := []Product{
		{ID: 1, Name: "A", Price: 1000},
		{ID: 2, Name: "B", Price: 500},
		{ID: 3, Name: "C", Price: 750},
	}

	got := ApplyCatalogFilter(products, CatalogFilter{Category: CategoryAll, Sort: SortPriceAsc, ShowAll: true}, 0)
	require.Len(t, got, 3)
	assert.Equal(t, []int64{500, 750, 1000}, []int64{got[0].Price, got[1].Price, got[2].Price})
}

func TestCatalogSortDescending(t *testing.T) {
	products := []Product{
		{ID: 1, Name: "A", Price: 1000},
		{ID: 2, Name: "B", Price: 500},
		{ID: 3, Name: "C", Price: 750},
	}

	got := ApplyCatalogFilter(products, CatalogFilter{Category: CategoryAll, Sort: SortPriceDesc, ShowAll: true}, 0)
	require.Len(t, got, 3)
	assert.Equal(t, []int64{1000, 750, 500}, []int64{got[0].Price, got[1].Price, got[2].Price})
}

func TestCatalogSortUsesEffectivePrice(t *testing.T) {
	// 1000 со скидкой 400 должен встать раньше 500
	products := []Product{
		{ID: 1, Name: "A", Price: 500},
		{ID: 2, Name: "B", Price: 1000, DiscountPrice: ptrInt64(400)},
	}

	got := ApplyCatalogFilter(products, CatalogFilter{Category: CategoryAll, Sort: SortPriceAsc, ShowAll: true}, 0)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestCatalogSortIsStable(t *testing.T) {
	products := []Product{
		{ID: 1, Name: "A", Price: 500},
		{ID: 2, Name: "B", Price: 500},
		{ID: 3, Name: "C", Price: 500},
	}

	got := ApplyCatalogFilter(products, CatalogFilter{Category: CategoryAll, Sort: SortPriceAsc, ShowAll: true}, 0)
	require.Len(t, got, 3)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
	assert.Equal(t, int64(3), got[2].ID)
}

func TestCatalogRevealTruncation(t *testing.T) {
	products := make([]Product, 10)
	for i := range products {
		products[i] = Product{ID: int64(i + 1), Name: "P", Price: 100}
	}

	got := ApplyCatalogFilter(products, CatalogFilter{Category: CategoryAll}, 4)
	assert.Len(t, got, 4)

	got = ApplyCatalogFilter(products, CatalogFilter{Category: CategoryAll, ShowAll: true}, 4)
	assert.Len(t, got, 10)
}

func TestCatalogStageOrderSearchBeforeSortBeforeReveal(t *testing.T) {
	products := []Product{
		{ID: 1, Name: "Pearl Ring", Price: 900, CategorySlug: "rings"},
		{ID: 2, Name: "Pearl Pendant", Price: 300, CategorySlug: "pendants"},
		{ID: 3, Name: "Gold Chain", Price: 100, CategorySlug: "chains"},
		{ID: 4, Name: "Pearl Necklace", Price: 600, CategorySlug: "necklaces"},
	}

	got := ApplyCatalogFilter(products, CatalogFilter{
		Category: CategoryAll,
		Query:    "pearl",
		Sort:     SortPriceAsc,
	}, 2)

	// Поиск оставляет 3 товара, сортировка упорядочивает, усечение даёт 2 дешёвых
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(4), got[1].ID)
}

func TestCatalogEmptyResultIsValid(t *testing.T) {
	got := ApplyCatalogFilter(catalogFixture(), CatalogFilter{Category: "bracelets", ShowAll: true}, 0)
	assert.Empty(t, got)
}

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, SortPriceAsc, ParseSortMode("low-high"))
	assert.Equal(t, SortPriceDesc, ParseSortMode("high-low"))
	assert.Equal(t, SortNone, ParseSortMode("none"))
	assert.Equal(t, SortNone, ParseSortMode(""))
	assert.Equal(t, SortNone, ParseSortMode("garbage"))
}
