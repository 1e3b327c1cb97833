package entity

import "time"

// Tipos de transacción de stock (conjunto cerrado).
const (
	TransactionTypeIn         = "in"         // entrada: suma Quantity al stock
	TransactionTypeOut        = "out"        // salida: resta Quantity del stock
	TransactionTypeAdjustment = "adjustment" // ajuste: Quantity es el stock objetivo absoluto
)

// Estados de transacción de stock (conjunto cerrado). cancelled es terminal.
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusCancelled = "cancelled"
)

// StockTransaction es una entrada del libro de stock: un movimiento registrado
// con snapshot del stock antes y después. Una vez creada es un hecho histórico;
// solo cambia su Status (pending → completed, completed → cancelled).
//
// Invariante: para una entrada confirmada, QuantityAfter == QuantityBefore + delta
// según el tipo, y QuantityAfter >= 0.
type StockTransaction struct {
	ID             string
	ProductID      string
	UserID         string
	Type           string
	Quantity       int64 // magnitud solicitada; para adjustment, el objetivo absoluto
	QuantityBefore int64
	QuantityAfter  int64
	Status         string
	Notes          string // vacío si no hay nota
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidTransactionType indica si el tipo pertenece al conjunto cerrado.
func ValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeIn, TransactionTypeOut, TransactionTypeAdjustment:
		return true
	}
	return false
}

// Delta devuelve el cambio de stock que produce la transacción según su tipo,
// partiendo del stock previo dado.
func Delta(txType string, quantity, before int64) int64 {
	switch txType {
	case TransactionTypeIn:
		return quantity
	case TransactionTypeOut:
		return -quantity
	case TransactionTypeAdjustment:
		return quantity - before
	}
	return 0
}
