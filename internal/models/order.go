package models

import "time"

type Customer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Order is written once at checkout and never mutated. Status is set at
// creation and has no transitions.
type Order struct {
	ID         int64      `json:"id"`
	Items      []CartLine `json:"items"`
	Subtotal   int64      `json:"subtotal"`
	Shipping   int64      `json:"shipping"`
	Total      int64      `json:"total"`
	DistanceKm float64    `json:"distanceKm"`
	Customer   Customer   `json:"customer"`
	Notes      string     `json:"notes,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type CheckoutRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Address string `json:"address" validate:"required,max=500"`
	Phone   string `json:"phone" validate:"required,max=30,phone"`
	Notes   string `json:"notes,omitempty" validate:"max=500"`
}

type CheckoutResult struct {
	Order       *Order `json:"order"`
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsappUrl"`
}

type OrderHistoryResponse struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}
