package models

// CartItem is a menu item with the quantity ordered
type CartItem struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Price    Cents  `json:"price_cents"`
	Quantity int    `json:"quantity"`
}

// Subtotal is the item price times its quantity
func (i CartItem) Subtotal() Cents {
	return i.Price * Cents(i.Quantity)
}

// Cart holds the items picked at one restaurant, in the order they were added
type Cart struct {
	Restaurant string     `json:"restaurant"`
	Items      []CartItem `json:"items"`
}

// Total sums the cart's subtotals
func (c Cart) Total() Cents {
	var total Cents
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// Count is the number of units in the cart
func (c Cart) Count() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Carts maps a restaurant slug to its cart. Empty carts are never stored.
type Carts map[string]Cart
