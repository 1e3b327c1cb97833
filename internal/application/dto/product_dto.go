package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// InitialStock es el único camino para fijar stock fuera del ledger: queda
// registrado como la proyección inicial (stock previo 0 para el libro).
type CreateProductRequest struct {
	Name         string          `json:"name"`
	CategoryID   string          `json:"category_id"`
	ImageURL     string          `json:"image_url,omitempty"`
	Status       string          `json:"status"` // default active
	Price        decimal.Decimal `json:"price"`
	InitialStock int64           `json:"initial_stock"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos nil no se
// modifican. No existe campo de stock: el stock solo cambia vía transacciones.
type UpdateProductRequest struct {
	Name       *string          `json:"name,omitempty"`
	CategoryID *string          `json:"category_id,omitempty"`
	ImageURL   *string          `json:"image_url,omitempty"`
	Status     *string          `json:"status,omitempty"`
	Price      *decimal.Decimal `json:"price,omitempty"`
}

// ProductResponse representación de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	CategoryID    string          `json:"category_id"`
	ImageURL      string          `json:"image_url,omitempty"`
	Status        string          `json:"status"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int64           `json:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
