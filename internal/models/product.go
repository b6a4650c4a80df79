package models

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// InStock reports whether the product can be added to a cart.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	Price       int64  `json:"price" validate:"gt=0"`
	Stock       int    `json:"stock" validate:"gte=0"`
	Category    string `json:"category" validate:"required,max=100"`
	ImageURL    string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

type UpdateProductRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price       *int64  `json:"price,omitempty" validate:"omitempty,gt=0"`
	Stock       *int    `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Category    *string `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	ImageURL    *string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required,ne=0"`
}

type ProductFilter struct {
	Search   string
	Category string
}

type CatalogSummary struct {
	Total     int `json:"total"`
	Available int `json:"available"`
}

type CategoryStat struct {
	Category   string `json:"category"`
	Count      int    `json:"count"`
	TotalStock int    `json:"totalStock"`
	TotalValue int64  `json:"totalValue"`
}

type CatalogStats struct {
	Categories    []CategoryStat `json:"categories"`
	TotalProducts int            `json:"totalProducts"`
	TotalStock    int            `json:"totalStock"`
	TotalValue    int64          `json:"totalValue"`
	LowStock      int            `json:"lowStock"`
	OutOfStock    int            `json:"outOfStock"`
}
