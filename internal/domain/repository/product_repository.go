package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	CategoryID string
	Status     string
	Search     string // texto normalizado (ver pkg/search)
	Limit      int
	Offset     int
}

// ProductStats agregados de productos para el dashboard.
type ProductStats struct {
	Total          int64
	Active         int64
	OutOfStock     int64           // stock_quantity = 0
	LowStock       int64           // 0 < stock_quantity <= umbral
	InventoryValue decimal.Decimal // Σ price × stock_quantity
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate y UpdateStock existen solo para el motor del ledger: el stock
// nunca se modifica por el camino CRUD.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, quantity int64) error
	List(filter ProductFilter) ([]*entity.Product, error)
	Stats(lowStockThreshold int64) (*ProductStats, error)
	Delete(id string) error
}
