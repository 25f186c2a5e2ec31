package models

// CartLine is a menu item with the quantity being ordered.
type CartLine struct {
	MenuItem
	Quantity int `json:"quantity"`
}

// Cart is the in-progress order for one table. It is never persisted.
type Cart struct {
	lines []CartLine
}

// Add puts one unit of item into the cart.
func (c *Cart) Add(item MenuItem) {
	for i := range c.lines {
		if c.lines[i].ID == item.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, CartLine{MenuItem: item, Quantity: 1})
}

func (c *Cart) Remove(menuItemID string) {
	kept := c.lines[:0]
	for _, line := range c.lines {
		if line.ID != menuItemID {
			kept = append(kept, line)
		}
	}
	c.lines = kept
}

// SetQuantity replaces the quantity of a line; zero or less drops it.
func (c *Cart) SetQuantity(menuItemID string, quantity int) {
	if quantity <= 0 {
		c.Remove(menuItemID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ID == menuItemID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

func (c *Cart) ItemCount() int {
	var count int
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// OrderItems snapshots the cart into order lines.
func (c *Cart) OrderItems() []OrderItem {
	items := make([]OrderItem, 0, len(c.lines))
	for _, line := range c.lines {
		items = append(items, OrderItem{
			MenuItemID: line.ID,
			Name:       line.Name,
			Price:      line.Price,
			Quantity:   line.Quantity,
		})
	}
	return items
}
