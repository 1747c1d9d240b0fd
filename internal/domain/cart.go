package domain

// CartLine описывает одну позицию корзины: товар и запрошенное количество.
// Цены фиксируются на момент добавления и обновляются при повторном добавлении.
type CartLine struct {
	ProductID     int64
	Name          string
	Slug          string
	Image         string
	Price         int64
	DiscountPrice *int64
	Quantity      int64
}

// EffectivePrice возвращает цену позиции с учётом скидки.
func (l *CartLine) EffectivePrice() int64 {
	if l.DiscountPrice != nil && *l.DiscountPrice < l.Price {
		return *l.DiscountPrice
	}

	return l.Price
}

// Cart хранит упорядоченный список позиций покупателя.
// Все мутации — чистые операции над срезом; персистентность живёт уровнем выше.
type Cart struct {
	Lines []CartLine
}

func NewCart() *Cart {
	return &Cart{Lines: make([]CartLine, 0)}
}

// Add добавляет товар в корзину. Если позиция с таким ProductID уже есть,
// количество увеличивается на 1, а снимок цены обновляется текущими данными
// товара. Иначе в конец добавляется новая позиция с количеством 1.
func (c *Cart) Add(product *Product) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == product.ID {
			c.Lines[i].Quantity++
			c.Lines[i].Price = product.Price
			c.Lines[i].DiscountPrice = product.DiscountPrice
			return
		}
	}

	var image string
	if len(product.Images) > 0 {
		image = product.Images[0]
	}

	c.Lines = append(c.Lines, CartLine{
		ProductID:     product.ID,
		Name:          product.Name,
		Slug:          product.Slug,
		Image:         image,
		Price:         product.Price,
		DiscountPrice: product.DiscountPrice,
		Quantity:      1,
	})
}

// SetQuantity выставляет количество позиции. Ноль удаляет позицию,
// нулевые строки в корзине не хранятся. Отсутствующий ProductID игнорируется.
func (c *Cart) SetQuantity(productID int64, quantity int64) {
	if quantity == 0 {
		c.Remove(productID)
		return
	}

	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

// Remove удаляет позицию, если она есть; иначе — no-op.
func (c *Cart) Remove(productID int64) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Clear опустошает корзину.
func (c *Cart) Clear() {
	c.Lines = c.Lines[:0]
}

// TotalCount возвращает суммарное количество единиц по всем позициям.
func (c *Cart) TotalCount() int64 {
	var total int64
	for i := range c.Lines {
		total += c.Lines[i].Quantity
	}

	return total
}

// TotalPrice возвращает сумму quantity × effectivePrice по всем позициям.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for i := range c.Lines {
		total += c.Lines[i].Quantity * c.Lines[i].EffectivePrice()
	}

	return total
}

// Expand разворачивает корзину в плоскую последовательность единичных позиций:
// строка с количеством N превращается в N строк с количеством 1.
// Верхней границы нет: очень большое количество даст пропорционально большой
// срез. Это известная неэффективность формата передачи на оформление заказа.
func (c *Cart) Expand() []CartLine {
	result := make([]CartLine, 0, c.TotalCount())
	for i := range c.Lines {
		for n := int64(0); n < c.Lines[i].Quantity; n++ {
			unit := c.Lines[i]
			unit.Quantity = 1
			result = append(result, unit)
		}
	}

	return result
}
