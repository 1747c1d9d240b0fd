package domain

import (
	"sort"
	"strings"
)

// CategoryAll — сентинел «все категории» в фильтре каталога.
const CategoryAll = "all"

// SortMode задаёт режим сортировки каталога по эффективной цене.
type SortMode string

const (
	SortNone      SortMode = "none"
	SortPriceAsc  SortMode = "low-high"
	SortPriceDesc SortMode = "high-low"
)

// ParseSortMode разбирает режим сортировки; неизвестные значения трактуются как SortNone.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	default:
		return SortNone
	}
}

// CatalogFilter описывает состояние фильтра каталога.
type CatalogFilter struct {
	Category string // slug категории или CategoryAll
	Query    string // поисковая строка, может быть пустой
	Sort     SortMode
	ShowAll  bool // показывать весь список вместо первых N
}

// ApplyCatalogFilter прогоняет список товаров через четыре стадии фильтра,
// каждая стадия работает с результатом предыдущей:
//  1. категория ("all" пропускает всё, иначе сравнение без учёта регистра);
//  2. поиск по подстроке в названии и описании без учёта регистра;
//  3. устойчивая сортировка по эффективной цене;
//  4. усечение до revealLimit, если полный список не запрошен.
//
// Порог revealLimit — обычный параметр, вычисленный вызывающей стороной
// по ширине вьюпорта один раз на проход фильтра.
func ApplyCatalogFilter(products []Product, f CatalogFilter, revealLimit int) []Product {
	filtered := make([]Product, 0, len(products))

	for i := range products {
		if !matchesCategory(&products[i], f.Category) {
			continue
		}
		if !matchesQuery(&products[i], f.Query) {
			continue
		}
		filtered = append(filtered, products[i])
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].EffectivePrice() < filtered[j].EffectivePrice()
		})
	case SortPriceDesc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].EffectivePrice() > filtered[j].EffectivePrice()
		})
	}

	if !f.ShowAll && revealLimit > 0 && len(filtered) > revealLimit {
		filtered = filtered[:revealLimit]
	}

	return filtered
}

func matchesCategory(p *Product, category string) bool {
	if category == "" || strings.EqualFold(category, CategoryAll) {
		return true
	}

	return strings.EqualFold(p.CategorySlug, category)
}

func matchesQuery(p *Product, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}

	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}
