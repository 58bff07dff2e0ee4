// Package cart accumulates the catalog items a guest has picked before
// checkout. A cart belongs to a single guest session and is never touched
// concurrently, so there is no locking here.
package cart

import "github.com/danuarta/property-console/models"

// Line is one (item type, item id) entry in the cart. Price is snapshotted
// from the catalog item at add time and not re-read afterwards.
type Line struct {
	Type     models.CatalogItemType `json:"type"`
	ID       uint                   `json:"id"`
	Name     string                 `json:"name"`
	Price    float64                `json:"price"`
	Quantity int                    `json:"quantity"`
	Notes    string                 `json:"notes,omitempty"`
}

type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

func (c *Cart) find(t models.CatalogItemType, id uint) int {
	for i, l := range c.lines {
		if l.Type == t && l.ID == id {
			return i
		}
	}
	return -1
}

// Add puts item into the cart, or bumps its quantity if the same
// (type, id) is already present.
func (c *Cart) Add(item models.CatalogItem) {
	if i := c.find(item.Type, item.ID); i >= 0 {
		c.lines[i].Quantity++
		return
	}
	c.lines = append(c.lines, Line{
		Type:     item.Type,
		ID:       item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Quantity: 1,
	})
}

// Remove decrements the matching line, dropping it entirely when its
// quantity reaches zero. Lines never stay in the cart with quantity < 1.
func (c *Cart) Remove(t models.CatalogItemType, id uint) {
	i := c.find(t, id)
	if i < 0 {
		return
	}
	if c.lines[i].Quantity > 1 {
		c.lines[i].Quantity--
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

// SetNotes replaces the notes on the matching line. No-op if the line is
// not in the cart.
func (c *Cart) SetNotes(t models.CatalogItemType, id uint, notes string) {
	if i := c.find(t, id); i >= 0 {
		c.lines[i].Notes = notes
	}
}

// Total is the sum of price x quantity over all lines. It must match the
// total the server persists on the order at submit time.
func (c *Cart) Total() float64 {
	var total float64
	for _, l := range c.lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Clear empties the cart, typically after a successful submit.
func (c *Cart) Clear() {
	c.lines = nil
}
