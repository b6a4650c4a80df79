package models

// CartLine is one product in a shopper's cart. Name, price and image are
// copied from the catalog when the line is created and never re-synced.
type CartLine struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	ImageURL string `json:"imageUrl,omitempty"`
	Category string `json:"category,omitempty"`
	Quantity int    `json:"quantity"`
	Selected bool   `json:"selected"`
}

func (l CartLine) LineTotal() int64 {
	return l.Price * int64(l.Quantity)
}

type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type CartResponse struct {
	Items         []CartLine `json:"items"`
	Count         int        `json:"count"`
	SelectedCount int        `json:"selectedCount"`
	Subtotal      int64      `json:"subtotal"`
}

// Adjustment records a quantity correction made because stock ran short.
type Adjustment struct {
	ProductID        string `json:"productId"`
	Name             string `json:"name"`
	PreviousQuantity int    `json:"previousQuantity"`
	NewQuantity      int    `json:"newQuantity"`
	Available        int    `json:"available"`
	Removed          bool   `json:"removed"`
}
