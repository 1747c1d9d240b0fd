package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrInt64(v int64) *int64 { return &v }

func testProduct(id int64, price int64, discount *int64) *Product {
	return &Product{
		ID:            id,
		Name:          "Pearl Ring",
		Slug:          "pearl-ring",
		Price:         price,
		DiscountPrice: discount,
		Images:        []string{"pearl-ring.jpg"},
		InStock:       true,
	}
}

func TestCartAddDistinctProducts(t *testing.T) {
	cart := NewCart()
	cart.Add(testProduct(1, 500, nil))
	cart.Add(testProduct(2, 1000, nil))
	cart.Add(testProduct(3, 750, nil))

	assert.Equal(t, int64(3), cart.TotalCount())
	assert.Len(t, cart.Lines, 3)
}

func TestCartAddSameProductMergesLine(t *testing.T) {
	cart := NewCart()
	cart.Add(testProduct(1, 500, nil))
	cart.Add(testProduct(1, 500, nil))

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, int64(2), cart.Lines[0].Quantity)
	assert.Equal(t, int64(2), cart.TotalCount())
}

func TestCartAddRefreshesPriceSnapshot(t *testing.T) {
	cart := NewCart()
	cart.Add(testProduct(1, 1000, nil))

	// Повторное добавление подтягивает актуальные цены товара
	cart.Add(testProduct(1, 1200, ptrInt64(900)))

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, int64(1200), cart.Lines[0].Price)
	require.NotNil(t, cart.Lines[0].DiscountPrice)
	assert.Equal(t, int64(900), *cart.Lines[0].DiscountPrice)
}

func TestCartSetQuantityZeroRemovesLine(t *testing.T) {
	cart := NewCart()
	cart.Add(testProduct(1, 500, nil))
	cart.Add(testProduct(2, 1000, nil))

	cart.SetQuantity(1, 0)

	assert.Len(t, cart.Lines, 1)
	assert.Equal(t, int64(2), cart.Lines[0].ProductID)
	assert.Equal(t, int64(1), cart.TotalCount())
}

func TestCartSetQuantityUnknownProductIsNoop(t *testing.T) {
	cart := NewCart()
	cart.Add(testProduct(1, 500, nil))

	cart.SetQuantity(42, 5)

	assert.Equal(t, int64(1), cart.TotalCount())
}

func TestCartRemoveAbsentLineIsNoop(t *testing.T) {
	cart := NewCart()
	cart.Add(testProduct(1, 500, nil))

	cart.Remove(42)

	assert.Len(t, cart.Lines, 1)
}

func TestCartTotalPriceUsesDiscountedPrice(t *testing.T) {
	cart := NewCart()
	cart.Add(testProduct(1, 1000, ptrInt64(800)))
	cart.SetQuantity(1, 3)

	assert.Equal(t, int64(2400), cart.TotalPrice())
}

func TestCartTotalPriceWithoutDiscount(t *testing.T) {
	cart := NewCart()
	cart.Add(testProduct(1, 1000, nil))
	cart.SetQuantity(1, 2)

	assert.Equal(t, int64(2000), cart.TotalPrice())
}

func TestCartTotalPriceIgnoresHigherDiscount(t *testing.T) {
	// Скидка выше базовой цены не применяется
	cart := NewCart()
	cart.Add(testProduct(1, 1000, ptrInt64(1500)))

	assert.Equal(t, int64(1000), cart.TotalPrice())
}

func TestCartClear(t *testing.T) {
	cart := NewCart()
	cart.Add(testProduct(1, 500, nil))
	cart.Add(testProduct(2, 1000, nil))

	cart.Clear()

	assert.Empty(t, cart.Lines)
	assert.Equal(t, int64(0), cart.TotalCount())
	assert.Equal(t, int64(0), cart.TotalPrice())
}

func TestCartExpandProducesUnitQuantityLines(t *testing.T) {
	cart := NewCart()
	cart.Add(testProduct(1, 500, nil))
	cart.SetQuantity(1, 3)

	expanded := cart.Expand()

	require.Len(t, expanded, 3)
	for _, line := range expanded {
		assert.Equal(t, int64(1), line.Quantity)
		assert.Equal(t, int64(1), line.ProductID)
		assert.Equal(t, "Pearl Ring", line.Name)
	}
}

func TestCartExpandPreservesLineOrder(t *testing.T) {
	cart := NewCart()
	cart.Add(testProduct(1, 500, nil))
	cart.Add(testProduct(2, 1000, nil))
	cart.SetQuantity(1, 2)

	expanded := cart.Expand()

	require.Len(t, expanded, 3)
	assert.Equal(t, int64(1), expanded[0].ProductID)
	assert.Equal(t, int64(1), expanded[1].ProductID)
	assert.Equal(t, int64(2), expanded[2].ProductID)
}
