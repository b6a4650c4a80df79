package cart

import (
	"slices"

	"github.com/sayuryunur/storefront/internal/models"
)

// Action is a named cart mutation. All mutations go through Reduce.
type Action interface {
	Name() string
	apply(lines []models.CartLine) []models.CartLine
}

// AddItem increments an existing line or appends a new selected line with
// quantity 1. Stock is not checked here.
type AddItem struct {
	Product models.Product
}

type RemoveItem struct {
	ID string
}

// RemoveItems drops every line whose id is listed. Unknown ids are ignored.
type RemoveItems struct {
	IDs []string
}

// UpdateQuantity with Quantity <= 0 removes the line.
type UpdateQuantity struct {
	ID       string
	Quantity int
}

type ToggleSelect struct {
	ID string
}

type SetAllSelected struct {
	Selected bool
}

type ClearSelected struct{}

func (AddItem) Name() string        { return "ADD_ITEM" }
func (RemoveItem) Name() string     { return "REMOVE_ITEM" }
func (RemoveItems) Name() string    { return "REMOVE_ITEMS" }
func (UpdateQuantity) Name() string { return "UPDATE_QUANTITY" }
func (ToggleSelect) Name() string   { return "TOGGLE_SELECT" }
func (SetAllSelected) Name() string { return "SET_ALL_SELECTED" }
func (ClearSelected) Name() string  { return "CLEAR_SELECTED" }

// Reduce returns the lines after applying action. The input slice is not modified.
func Reduce(lines []models.CartLine, action Action) []models.CartLine {
	return action.apply(clone(lines))
}

func (a AddItem) apply(lines []models.CartLine) []models.CartLine {
	for i := range lines {
		if lines[i].ID == a.Product.ID {
			lines[i].Quantity++
			return lines
		}
	}

	return append(lines, models.CartLine{
		ID:       a.Product.ID,
		Name:     a.Product.Name,
		Price:    a.Product.Price,
		ImageURL: a.Product.ImageURL,
		Category: a.Product.Category,
		Quantity: 1,
		Selected: true,
	})
}

func (a RemoveItem) apply(lines []models.CartLine) []models.CartLine {
	return filter(lines, func(l models.CartLine) bool { return l.ID != a.ID })
}

func (a RemoveItems) apply(lines []models.CartLine) []models.CartLine {
	return filter(lines, func(l models.CartLine) bool { return !slices.Contains(a.IDs, l.ID) })
}

func (a UpdateQuantity) apply(lines []models.CartLine) []models.CartLine {
	if a.Quantity <= 0 {
		return RemoveItem{ID: a.ID}.apply(lines)
	}

	for i := range lines {
		if lines[i].ID == a.ID {
			lines[i].Quantity = a.Quantity
		}
	}

	return lines
}

func (a ToggleSelect) apply(lines []models.CartLine) []models.CartLine {
	for i := range lines {
		if lines[i].ID == a.ID {
			lines[i].Selected = !lines[i].Selected
		}
	}

	return lines
}

func (a SetAllSelected) apply(lines []models.CartLine) []models.CartLine {
	for i := range lines {
		lines[i].Selected = a.Selected
	}

	return lines
}

func (ClearSelected) apply(lines []models.CartLine) []models.CartLine {
	return filter(lines, func(l models.CartLine) bool { return !l.Selected })
}

// Selected returns the lines that take part in the next checkout.
func Selected(lines []models.CartLine) []models.CartLine {
	return filter(clone(lines), func(l models.CartLine) bool { return l.Selected && l.Quantity > 0 })
}

// Subtotal sums price * quantity over selected lines only.
func Subtotal(lines []models.CartLine) int64 {
	var total int64

	for _, l := range lines {
		if l.Selected {
			total += l.LineTotal()
		}
	}

	return total
}

// Count is the number of units in the cart.
func Count(lines []models.CartLine) int {
	n := 0

	for _, l := range lines {
		n += l.Quantity
	}

	return n
}

func AllSelected(lines []models.CartLine) bool {
	if len(lines) == 0 {
		return false
	}

	for _, l := range lines {
		if !l.Selected {
			return false
		}
	}

	return true
}

func clone(lines []models.CartLine) []models.CartLine {
	out := make([]models.CartLine, len(lines))
	copy(out, lines)

	return out
}

func filter(lines []models.CartLine, keep func(models.CartLine) bool) []models.CartLine {
	out := lines[:0]

	for _, l := range lines {
		if keep(l) {
			out = append(out, l)
		}
	}

	return out
}
