package reporting_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/reporting"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// stubTxRepo devuelve filas fijas y registra el filtro recibido en List.
// Solo List se usa en la exportación; el resto del puerto no aplica aquí.
type stubTxRepo struct {
	rows       []repository.TransactionRow
	lastFilter repository.TransactionFilter
}

func (s *stubTxRepo) List(f repository.TransactionFilter) ([]repository.TransactionRow, error) {
	s.lastFilter = f
	return s.rows, nil
}

func (s *stubTxRepo) Create(*entity.StockTransaction) error                  { return nil }
func (s *stubTxRepo) GetByID(string) (*entity.StockTransaction, error)       { return nil, nil }
func (s *stubTxRepo) UpdateStatus(string, string) error                      { return nil }
func (s *stubTxRepo) Delete(string) error                                    { return nil }
func (s *stubTxRepo) Count(repository.TransactionFilter) (int64, error)      { return 0, nil }
func (s *stubTxRepo) ListRecent(int) ([]repository.TransactionRow, error)    { return nil, nil }
func (s *stubTxRepo) ListByProduct(string, int) ([]repository.TransactionRow, error) {
	return nil, nil
}
func (s *stubTxRepo) ListByUser(string, int) ([]repository.TransactionRow, error) { return nil, nil }
func (s *stubTxRepo) Stats() (*repository.TransactionStats, error)                { return nil, nil }
func (s *stubTxRepo) SumCompletedDeltas(string) (int64, error)                    { return 0, nil }

type stubPDFGen struct {
	rowsSeen int
}

func (g *stubPDFGen) GenerateTransactionsPDF(_ context.Context, _, _ time.Time, rows []repository.TransactionRow) ([]byte, error) {
	g.rowsSeen = len(rows)
	return []byte("%PDF-1.4 stub"), nil
}

func TestExportTransactionsPDF_RangoExplicito(t *testing.T) {
	repo := &stubTxRepo{rows: []repository.TransactionRow{
		{ID: "t1", ProductName: "Café", Type: entity.TransactionTypeIn, Quantity: 5},
		{ID: "t2", ProductName: "Azúcar", Type: entity.TransactionTypeOut, Quantity: 2},
	}}
	gen := &stubPDFGen{}
	uc := reporting.NewExportUseCase(repo, gen)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	pdf, filename, err := uc.ExportTransactionsPDF(context.Background(), from, to)
	require.NoError(t, err)

	assert.NotEmpty(t, pdf)
	assert.Equal(t, "stock-transactions-2026-03-01-to-2026-03-15.pdf", filename)
	assert.Equal(t, 2, gen.rowsSeen)

	require.NotNil(t, repo.lastFilter.DateFrom)
	require.NotNil(t, repo.lastFilter.DateTo)
	assert.Equal(t, from, *repo.lastFilter.DateFrom)
	// El límite superior cubre el día completo.
	assert.Equal(t, 23, repo.lastFilter.DateTo.Hour())
	assert.Equal(t, 15, repo.lastFilter.DateTo.Day())
}

func TestExportTransactionsPDF_SinFechasUsaMesEnCurso(t *testing.T) {
	repo := &stubTxRepo{}
	uc := reporting.NewExportUseCase(repo, &stubPDFGen{})

	_, filename, err := uc.ExportTransactionsPDF(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)

	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	require.NotNil(t, repo.lastFilter.DateFrom)
	assert.Equal(t, firstOfMonth, *repo.lastFilter.DateFrom)
	assert.Contains(t, filename, firstOfMonth.Format("2006-01-02"))
}
