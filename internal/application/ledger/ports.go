package ledger

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la unidad atómica del ledger: el insert de
// la transacción de stock y el update del producto se confirman juntos o
// ninguno. La fila del producto se bloquea (SELECT FOR UPDATE) durante toda la
// unidad, de modo que dos operaciones concurrentes sobre el mismo producto
// serializan y la segunda observa el quantity_after confirmado por la primera.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.StockTransactionRepository,
		productRepo repository.ProductRepository,
	) error) error
}
