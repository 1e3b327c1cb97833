package reporting

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TransactionsPDFGenerator renderiza el reporte tabular de transacciones de
// stock de un rango de fechas. Lo implementa infrastructure/pdf con Maroto.
type TransactionsPDFGenerator interface {
	GenerateTransactionsPDF(ctx context.Context, from, to time.Time, rows []repository.TransactionRow) ([]byte, error)
}
