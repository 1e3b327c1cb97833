package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, category_id, image_url, status, price, stock_quantity, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. El stock inicia en 0 (la entrada inicial va por el ledger).
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, category_id, image_url, status, price, stock_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	imageURL := (*string)(nil)
	if product.ImageURL != "" {
		imageURL = &product.ImageURL
	}
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.CategoryID, imageURL, product.Status,
		product.Price, product.StockQuantity, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE).
// Solo debe llamarse dentro de la unidad atómica del ledger.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *ProductRepo) scanOne(query string, arg any) (*entity.Product, error) {
	var p entity.Product
	var imageURL *string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Name, &p.CategoryID, &imageURL, &p.Status,
		&p.Price, &p.StockQuantity, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if imageURL != nil {
		p.ImageURL = *imageURL
	}
	return &p, nil
}

// Update actualiza un producto existente. No toca stock_quantity (se maneja vía ledger).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, category_id = $3, image_url = $4, status = $5, price = $6, updated_at = $7
		WHERE id = $1`
	imageURL := (*string)(nil)
	if product.ImageURL != "" {
		imageURL = &product.ImageURL
	}
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.CategoryID, imageURL, product.Status,
		product.Price, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock escribe la nueva proyección de stock (solo desde el motor del ledger).
func (r *ProductRepo) UpdateStock(productID string, quantity int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock_quantity = $2, updated_at = now() WHERE id = $1`,
		productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// List lista productos con filtros opcionales y paginación.
// Search espera el término ya normalizado (pkg/search); el match es por
// unaccent(lower(name)) para tolerar tildes y mayúsculas.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.CategoryID != "" {
		query += fmt.Sprintf(" AND category_id = $%d", pos)
		args = append(args, filter.CategoryID)
		pos++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND unaccent(lower(name)) LIKE '%%' || $%d || '%%'", pos)
		args = append(args, filter.Search)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		var imageURL *string
		if err := rows.Scan(&p.ID, &p.Name, &p.CategoryID, &imageURL, &p.Status,
			&p.Price, &p.StockQuantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if imageURL != nil {
			p.ImageURL = *imageURL
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Stats devuelve los agregados de productos para el dashboard.
// InventoryValue usa el codec NUMERIC -> shopspring/decimal registrado en el pool.
func (r *ProductRepo) Stats(lowStockThreshold int64) (*repository.ProductStats, error) {
	const query = `
	SELECT
	    COUNT(*)                                                             AS total,
	    COUNT(*) FILTER (WHERE status = 'active')                            AS active,
	    COUNT(*) FILTER (WHERE stock_quantity = 0)                           AS out_of_stock,
	    COUNT(*) FILTER (WHERE stock_quantity > 0 AND stock_quantity <= $1)  AS low_stock,
	    COALESCE(SUM(price * stock_quantity), 0)                             AS inventory_value
	FROM products`
	var s repository.ProductStats
	err := r.q.QueryRow(context.Background(), query, lowStockThreshold).Scan(
		&s.Total, &s.Active, &s.OutOfStock, &s.LowStock, &s.InventoryValue,
	)
	if err != nil {
		return nil, fmt.Errorf("product stats: %w", err)
	}
	return &s, nil
}

// Delete elimina un producto por ID (las transacciones asociadas caen en cascada).
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
