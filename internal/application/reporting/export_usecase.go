package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ExportUseCase genera el PDF del reporte de transacciones de stock.
type ExportUseCase struct {
	txRepo repository.StockTransactionRepository
	pdfGen TransactionsPDFGenerator
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(txRepo repository.StockTransactionRepository, pdfGen TransactionsPDFGenerator) *ExportUseCase {
	return &ExportUseCase{txRepo: txRepo, pdfGen: pdfGen}
}

// maxExportRows límite de filas por reporte, suficiente para un mes de operación.
const maxExportRows = 5000

// ExportTransactionsPDF genera el PDF de transacciones dentro de [from, to].
// Fechas en cero usan el mes en curso. Devuelve los bytes del documento y el
// nombre de archivo sugerido (stock-transactions-<from>-to-<to>.pdf).
func (uc *ExportUseCase) ExportTransactionsPDF(ctx context.Context, from, to time.Time) ([]byte, string, error) {
	if from.IsZero() || to.IsZero() {
		now := time.Now()
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		to = from.AddDate(0, 1, 0).Add(-time.Second)
	} else {
		// El límite superior es inclusivo hasta fin de día.
		to = time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, to.Location())
	}

	rows, err := uc.txRepo.List(repository.TransactionFilter{
		DateFrom: &from,
		DateTo:   &to,
		Limit:    maxExportRows,
	})
	if err != nil {
		return nil, "", err
	}

	pdf, err := uc.pdfGen.GenerateTransactionsPDF(ctx, from, to, rows)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("stock-transactions-%s-to-%s.pdf",
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	return pdf, filename, nil
}
