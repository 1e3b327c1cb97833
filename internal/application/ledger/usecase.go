package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/search"
)

// LedgerUseCase es el motor del libro de stock: registra transacciones
// (in/out/adjustment) con snapshot antes/después, cancela con reversa sobre el
// stock vivo y reconstruye la proyección desde el log. Toda mutación corre
// dentro de TxRunner con la fila del producto bloqueada.
type LedgerUseCase struct {
	txRunner    TxRunner
	txRepo      repository.StockTransactionRepository
	productRepo repository.ProductRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	txRepo repository.StockTransactionRepository,
	productRepo repository.ProductRepository,
) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, txRepo: txRepo, productRepo: productRepo}
}

// CreateTransactionInput entrada para registrar una transacción de stock.
// Para in/out, Quantity es la magnitud del movimiento (> 0).
// Para adjustment, Quantity es el stock objetivo absoluto (>= 0); el delta se
// calcula internamente como objetivo − stock actual.
type CreateTransactionInput struct {
	ProductID string
	UserID    string
	Type      string
	Quantity  int64
	Status    string // pending | completed; vacío = completed
	Notes     string
}

// CreateTransaction registra una transacción y actualiza el stock del producto.
// Unidad atómica: lee el stock con la fila bloqueada, calcula el delta según el
// tipo, rechaza salidas que dejarían stock negativo, inserta la entrada del
// libro y escribe la nueva proyección. Ambas escrituras o ninguna.
func (uc *LedgerUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*dto.TransactionResponse, error) {
	switch input.Type {
	case entity.TransactionTypeIn, entity.TransactionTypeOut:
		if input.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	case entity.TransactionTypeAdjustment:
		// El objetivo es un nivel absoluto: negativo es error de entrada.
		if input.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}
	status := input.Status
	if status == "" {
		status = entity.TransactionStatusCompleted
	}
	if status != entity.TransactionStatusPending && status != entity.TransactionStatusCompleted {
		return nil, domain.ErrInvalidInput
	}
	if input.ProductID == "" || input.UserID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	created := &entity.StockTransaction{
		ID:        uuid.New().String(),
		ProductID: input.ProductID,
		UserID:    input.UserID,
		Type:      input.Type,
		Status:    status,
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.txRunner.Run(ctx, func(
		txRepo repository.StockTransactionRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		before := product.StockQuantity
		after := before + entity.Delta(input.Type, input.Quantity, before)
		if input.Type == entity.TransactionTypeOut && after < 0 {
			return domain.ErrInsufficientStock
		}

		created.Quantity = abs(input.Quantity)
		created.QuantityBefore = before
		created.QuantityAfter = after

		if err := txRepo.Create(created); err != nil {
			return err
		}
		return productRepo.UpdateStock(input.ProductID, after)
	})
	if err != nil {
		return nil, err
	}
	return toTransactionResponse(created), nil
}

// CompleteTransaction pasa una transacción pending a completed. El stock ya fue
// aplicado al crearla, así que solo cambia el estado.
func (uc *LedgerUseCase) CompleteTransaction(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		txRepo repository.StockTransactionRepository,
		_ repository.ProductRepository,
	) error {
		tx, err := txRepo.GetByID(id)
		if err != nil {
			return err
		}
		if tx == nil {
			return domain.ErrNotFound
		}
		if tx.Status != entity.TransactionStatusPending {
			return domain.ErrConflict
		}
		return txRepo.UpdateStatus(id, entity.TransactionStatusCompleted)
	})
}

// CancelTransaction cancela una transacción completed y revierte su efecto.
// La reversa se aplica sobre el stock vivo (pueden haber ocurrido otras
// transacciones desde entonces), no sobre el snapshot quantity_after:
// in resta la cantidad original, out la devuelve, adjustment restaura el
// quantity_before registrado. Si la reversa dejaría stock negativo, se rechaza
// sin efecto.
func (uc *LedgerUseCase) CancelTransaction(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		txRepo repository.StockTransactionRepository,
		productRepo repository.ProductRepository,
	) error {
		tx, err := txRepo.GetByID(id)
		if err != nil {
			return err
		}
		if tx == nil {
			return domain.ErrNotFound
		}
		if tx.Status != entity.TransactionStatusCompleted {
			// Solo transacciones completadas pueden cancelarse.
			return domain.ErrConflict
		}

		product, err := productRepo.GetForUpdate(tx.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		reverted := product.StockQuantity + reversalDelta(tx, product.StockQuantity)
		if reverted < 0 {
			return domain.ErrNegativeReversal
		}
		if err := txRepo.UpdateStatus(id, entity.TransactionStatusCancelled); err != nil {
			return err
		}
		return productRepo.UpdateStock(tx.ProductID, reverted)
	})
}

// DeleteTransaction elimina una entrada del libro (acción administrativa).
// Una transacción completed se revierte primero igual que en CancelTransaction;
// pending y cancelled se eliminan sin tocar el stock.
func (uc *LedgerUseCase) DeleteTransaction(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		txRepo repository.StockTransactionRepository,
		productRepo repository.ProductRepository,
	) error {
		tx, err := txRepo.GetByID(id)
		if err != nil {
			return err
		}
		if tx == nil {
			return domain.ErrNotFound
		}
		if tx.Status == entity.TransactionStatusCompleted {
			product, err := productRepo.GetForUpdate(tx.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			reverted := product.StockQuantity + reversalDelta(tx, product.StockQuantity)
			if reverted < 0 {
				return domain.ErrNegativeReversal
			}
			if err := productRepo.UpdateStock(tx.ProductID, reverted); err != nil {
				return err
			}
		}
		return txRepo.Delete(id)
	})
}

// RebuildStock reconstruye la proyección stock_quantity de un producto desde el
// log: suma de (quantity_after − quantity_before) de sus transacciones
// completadas. Operación de recuperación; corre con la fila bloqueada.
func (uc *LedgerUseCase) RebuildStock(ctx context.Context, productID string) (*dto.RebuildStockResponse, error) {
	var out dto.RebuildStockResponse
	err := uc.txRunner.Run(ctx, func(
		txRepo repository.StockTransactionRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		sum, err := txRepo.SumCompletedDeltas(productID)
		if err != nil {
			return err
		}
		out = dto.RebuildStockResponse{
			ProductID:     productID,
			PreviousStock: product.StockQuantity,
			RebuiltStock:  sum,
		}
		if sum == product.StockQuantity {
			return nil
		}
		return productRepo.UpdateStock(productID, sum)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetStatistics devuelve los conteos del libro (total, hoy, mes, por tipo y estado).
func (uc *LedgerUseCase) GetStatistics(ctx context.Context) (*dto.TransactionStatsDTO, error) {
	stats, err := uc.txRepo.Stats()
	if err != nil {
		return nil, err
	}
	return &dto.TransactionStatsDTO{
		Total:       stats.Total,
		Today:       stats.Today,
		ThisMonth:   stats.ThisMonth,
		StockIns:    stats.StockIns,
		StockOuts:   stats.StockOuts,
		Adjustments: stats.Adjustments,
		Pending:     stats.Pending,
		Completed:   stats.Completed,
		Cancelled:   stats.Cancelled,
	}, nil
}

// GetRecentTransactions devuelve las últimas N entradas con producto y usuario resueltos.
func (uc *LedgerUseCase) GetRecentTransactions(ctx context.Context, limit int) ([]dto.TransactionResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := uc.txRepo.ListRecent(limit)
	if err != nil {
		return nil, err
	}
	return toTransactionResponses(rows), nil
}

// GetTransactionsByProduct devuelve las últimas N entradas de un producto.
func (uc *LedgerUseCase) GetTransactionsByProduct(ctx context.Context, productID string, limit int) ([]dto.TransactionResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := uc.txRepo.ListByProduct(productID, limit)
	if err != nil {
		return nil, err
	}
	return toTransactionResponses(rows), nil
}

// GetTransactionsByUser devuelve las últimas N entradas registradas por un usuario.
func (uc *LedgerUseCase) GetTransactionsByUser(ctx context.Context, userID string, limit int) ([]dto.TransactionResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := uc.txRepo.ListByUser(userID, limit)
	if err != nil {
		return nil, err
	}
	return toTransactionResponses(rows), nil
}

// ListTransactions devuelve el read model filtrado y paginado con el total.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, filter repository.TransactionFilter) (*dto.TransactionListResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	filter.Search = search.Normalize(filter.Search)
	rows, err := uc.txRepo.List(filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.txRepo.Count(filter)
	if err != nil {
		return nil, err
	}
	return &dto.TransactionListResponse{
		Items: toTransactionResponses(rows),
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	}, nil
}

// reversalDelta calcula el delta que deshace una transacción sobre el stock
// vivo currentStock.
func reversalDelta(tx *entity.StockTransaction, currentStock int64) int64 {
	switch tx.Type {
	case entity.TransactionTypeIn:
		return -tx.Quantity
	case entity.TransactionTypeOut:
		return tx.Quantity
	case entity.TransactionTypeAdjustment:
		return tx.QuantityBefore - currentStock
	}
	return 0
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func toTransactionResponse(tx *entity.StockTransaction) *dto.TransactionResponse {
	if tx == nil {
		return nil
	}
	return &dto.TransactionResponse{
		ID:             tx.ID,
		ProductID:      tx.ProductID,
		UserID:         tx.UserID,
		Type:           tx.Type,
		Quantity:       tx.Quantity,
		QuantityBefore: tx.QuantityBefore,
		QuantityAfter:  tx.QuantityAfter,
		Status:         tx.Status,
		Notes:          tx.Notes,
		CreatedAt:      tx.CreatedAt,
	}
}

func toTransactionResponses(rows []repository.TransactionRow) []dto.TransactionResponse {
	items := make([]dto.TransactionResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.TransactionResponse{
			ID:             r.ID,
			ProductID:      r.ProductID,
			ProductName:    r.ProductName,
			UserID:         r.UserID,
			UserName:       r.UserName,
			Type:           r.Type,
			Quantity:       r.Quantity,
			QuantityBefore: r.QuantityBefore,
			QuantityAfter:  r.QuantityAfter,
			Status:         r.Status,
			Notes:          r.Notes,
			CreatedAt:      r.CreatedAt,
		})
	}
	return items
}
