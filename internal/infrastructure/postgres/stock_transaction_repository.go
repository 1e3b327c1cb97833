package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo implementación del puerto del libro de stock sobre
// PostgreSQL (usable con pool o tx).
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

// Create persiste una entrada del libro de stock.
func (r *StockTransactionRepo) Create(tx *entity.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions (id, product_id, user_id, type, quantity, quantity_before, quantity_after, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	notes := (*string)(nil)
	if tx.Notes != "" {
		notes = &tx.Notes
	}
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.ProductID, tx.UserID, tx.Type,
		tx.Quantity, tx.QuantityBefore, tx.QuantityAfter,
		tx.Status, notes, tx.CreatedAt, tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID.
func (r *StockTransactionRepo) GetByID(id string) (*entity.StockTransaction, error) {
	query := `
		SELECT id, product_id, user_id, type, quantity, quantity_before, quantity_after, status, notes, created_at, updated_at
		FROM stock_transactions WHERE id = $1`
	var t entity.StockTransaction
	var notes *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.ProductID, &t.UserID, &t.Type,
		&t.Quantity, &t.QuantityBefore, &t.QuantityAfter,
		&t.Status, &notes, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock transaction: %w", err)
	}
	if notes != nil {
		t.Notes = *notes
	}
	return &t, nil
}

// UpdateStatus cambia el estado de una entrada (pending/completed/cancelled).
func (r *StockTransactionRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE stock_transactions SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update transaction status: %w", err)
	}
	return nil
}

// Delete elimina una entrada por ID (acción administrativa; la reversa la hace el ledger).
func (r *StockTransactionRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock transaction: %w", err)
	}
	return nil
}

const rowColumns = `
	t.id, t.product_id, p.name, t.user_id, u.name, t.type,
	t.quantity, t.quantity_before, t.quantity_after, t.status, t.notes, t.created_at`

const rowFrom = `
	FROM stock_transactions t
	JOIN products p ON p.id = t.product_id
	JOIN users    u ON u.id = t.user_id`

// buildFilter arma el WHERE del filtro y sus argumentos, empezando en $1.
// Search espera el término ya normalizado (pkg/search).
func buildFilter(f repository.TransactionFilter) (string, []any) {
	where := ` WHERE 1=1`
	args := []any{}
	pos := 1
	add := func(cond string, arg any) {
		where += fmt.Sprintf(cond, pos)
		args = append(args, arg)
		pos++
	}
	if f.DateFrom != nil {
		add(" AND t.created_at >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		add(" AND t.created_at <= $%d", *f.DateTo)
	}
	if f.Type != "" {
		add(" AND t.type = $%d", f.Type)
	}
	if f.Status != "" {
		add(" AND t.status = $%d", f.Status)
	}
	if f.ProductID != "" {
		add(" AND t.product_id = $%d", f.ProductID)
	}
	if f.UserID != "" {
		add(" AND t.user_id = $%d", f.UserID)
	}
	if f.Search != "" {
		// El mismo placeholder aplica a nombre de producto y notas.
		where += fmt.Sprintf(
			" AND (unaccent(lower(p.name)) LIKE '%%' || $%d || '%%'"+
				" OR unaccent(lower(COALESCE(t.notes, ''))) LIKE '%%' || $%d || '%%')",
			pos, pos)
		args = append(args, f.Search)
		pos++
	}
	return where, args
}

// List devuelve el read model filtrado, más reciente primero.
func (r *StockTransactionRepo) List(filter repository.TransactionFilter) ([]repository.TransactionRow, error) {
	where, args := buildFilter(filter)
	query := `SELECT` + rowColumns + rowFrom + where +
		fmt.Sprintf(" ORDER BY t.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)
	return r.queryRows(query, args)
}

// Count cuenta las filas que matchean el filtro (para paginación).
func (r *StockTransactionRepo) Count(filter repository.TransactionFilter) (int64, error) {
	where, args := buildFilter(filter)
	query := `SELECT COUNT(*)` + rowFrom + where
	var total int64
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count stock transactions: %w", err)
	}
	return total, nil
}

// ListRecent devuelve las últimas N entradas.
func (r *StockTransactionRepo) ListRecent(limit int) ([]repository.TransactionRow, error) {
	query := `SELECT` + rowColumns + rowFrom + ` ORDER BY t.created_at DESC LIMIT $1`
	return r.queryRows(query, []any{limit})
}

// ListByProduct devuelve las últimas N entradas de un producto.
func (r *StockTransactionRepo) ListByProduct(productID string, limit int) ([]repository.TransactionRow, error) {
	query := `SELECT` + rowColumns + rowFrom + ` WHERE t.product_id = $1 ORDER BY t.created_at DESC LIMIT $2`
	return r.queryRows(query, []any{productID, limit})
}

// ListByUser devuelve las últimas N entradas registradas por un usuario.
func (r *StockTransactionRepo) ListByUser(userID string, limit int) ([]repository.TransactionRow, error) {
	query := `SELECT` + rowColumns + rowFrom + ` WHERE t.user_id = $1 ORDER BY t.created_at DESC LIMIT $2`
	return r.queryRows(query, []any{userID, limit})
}

func (r *StockTransactionRepo) queryRows(query string, args []any) ([]repository.TransactionRow, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	defer rows.Close()
	var list []repository.TransactionRow
	for rows.Next() {
		var row repository.TransactionRow
		var notes *string
		if err := rows.Scan(
			&row.ID, &row.ProductID, &row.ProductName, &row.UserID, &row.UserName, &row.Type,
			&row.Quantity, &row.QuantityBefore, &row.QuantityAfter, &row.Status, &notes, &row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		if notes != nil {
			row.Notes = *notes
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// Stats devuelve los conteos del libro en una sola consulta con FILTER.
func (r *StockTransactionRepo) Stats() (*repository.TransactionStats, error) {
	const query = `
	SELECT
	    COUNT(*)                                                                          AS total,
	    COUNT(*) FILTER (WHERE created_at::date = CURRENT_DATE)                           AS today,
	    COUNT(*) FILTER (WHERE date_trunc('month', created_at) = date_trunc('month', now())) AS this_month,
	    COUNT(*) FILTER (WHERE type = 'in')                                               AS stock_ins,
	    COUNT(*) FILTER (WHERE type = 'out')                                              AS stock_outs,
	    COUNT(*) FILTER (WHERE type = 'adjustment')                                       AS adjustments,
	    COUNT(*) FILTER (WHERE status = 'pending')                                        AS pending,
	    COUNT(*) FILTER (WHERE status = 'completed')                                      AS completed,
	    COUNT(*) FILTER (WHERE status = 'cancelled')                                      AS cancelled
	FROM stock_transactions`
	var s repository.TransactionStats
	err := r.q.QueryRow(context.Background(), query).Scan(
		&s.Total, &s.Today, &s.ThisMonth,
		&s.StockIns, &s.StockOuts, &s.Adjustments,
		&s.Pending, &s.Completed, &s.Cancelled,
	)
	if err != nil {
		return nil, fmt.Errorf("transaction stats: %w", err)
	}
	return &s, nil
}

// SumCompletedDeltas suma quantity_after - quantity_before de las transacciones
// completadas del producto (reconstrucción de la proyección de stock).
func (r *StockTransactionRepo) SumCompletedDeltas(productID string) (int64, error) {
	const query = `
		SELECT COALESCE(SUM(quantity_after - quantity_before), 0)
		FROM stock_transactions
		WHERE product_id = $1 AND status = 'completed'`
	var sum int64
	if err := r.q.QueryRow(context.Background(), query, productID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum completed deltas: %w", err)
	}
	return sum, nil
}
