package dto

import "time"

// CreateTransactionRequest body para POST /api/transactions.
// Para in/out, Quantity es la magnitud del movimiento (> 0).
// Para adjustment, Quantity es el stock objetivo absoluto (>= 0).
type CreateTransactionRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"`   // in, out, adjustment
	Quantity  int64  `json:"quantity"`
	Status    string `json:"status,omitempty"` // pending | completed; default completed
	Notes     string `json:"notes,omitempty"`
}

// TransactionResponse representación de una entrada del libro de stock.
type TransactionResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	ProductName    string    `json:"product_name,omitempty"`
	UserID         string    `json:"user_id"`
	UserName       string    `json:"user_name,omitempty"`
	Type           string    `json:"type"`
	Quantity       int64     `json:"quantity"`
	QuantityBefore int64     `json:"quantity_before"`
	QuantityAfter  int64     `json:"quantity_after"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// TransactionListResponse listado paginado del read model de transacciones.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// RebuildStockResponse resultado de reconstruir el stock de un producto desde el log.
type RebuildStockResponse struct {
	ProductID     string `json:"product_id"`
	PreviousStock int64  `json:"previous_stock"`
	RebuiltStock  int64  `json:"rebuilt_stock"`
}
