package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Product.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product representa un producto del inventario.
// StockQuantity es la proyección del estado actual del libro de stock: solo el
// motor del ledger la muta (nunca el CRUD de productos).
type Product struct {
	ID            string
	Name          string
	CategoryID    string
	ImageURL      string // vacío si no tiene imagen
	Status        string // active, inactive
	Price         decimal.Decimal
	StockQuantity int64 // invariante: >= 0 tras cualquier transacción confirmada
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
