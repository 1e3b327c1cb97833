package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// TransactionFilter filtros del listado/reporte de transacciones.
// Los campos en cero/vacío no filtran. Search aplica sobre el nombre del
// producto y las notas (texto normalizado, ver pkg/search).
type TransactionFilter struct {
	DateFrom  *time.Time
	DateTo    *time.Time
	Type      string
	Status    string
	ProductID string
	UserID    string
	Search    string
	Limit     int
	Offset    int
}

// TransactionRow fila del read model de transacciones con producto y usuario
// resueltos (para listados, dashboard y el PDF del reporte).
type TransactionRow struct {
	ID             string
	ProductID      string
	ProductName    string
	UserID         string
	UserName       string
	Type           string
	Quantity       int64
	QuantityBefore int64
	QuantityAfter  int64
	Status         string
	Notes          string
	CreatedAt      time.Time
}

// TransactionStats agregados del libro para el dashboard.
type TransactionStats struct {
	Total        int64
	Today        int64
	ThisMonth    int64
	StockIns     int64
	StockOuts    int64
	Adjustments  int64
	Pending      int64
	Completed    int64
	Cancelled    int64
}

// StockTransactionRepository define el puerto de persistencia del libro de stock (DIP).
// Las operaciones de escritura se invocan dentro de la unidad atómica del ledger
// (misma transacción SQL que el update del producto).
type StockTransactionRepository interface {
	Create(tx *entity.StockTransaction) error
	GetByID(id string) (*entity.StockTransaction, error)
	UpdateStatus(id, status string) error
	Delete(id string) error

	List(filter TransactionFilter) ([]TransactionRow, error)
	Count(filter TransactionFilter) (int64, error)
	ListRecent(limit int) ([]TransactionRow, error)
	ListByProduct(productID string, limit int) ([]TransactionRow, error)
	ListByUser(userID string, limit int) ([]TransactionRow, error)
	Stats() (*TransactionStats, error)

	// SumCompletedDeltas suma quantity_after - quantity_before de las transacciones
	// completadas del producto (reconstrucción del stock desde el log).
	SumCompletedDeltas(productID string) (int64, error)
}
