package reporting

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// DashboardUseCase arma la vista del dashboard: agregados de productos,
// estadísticas del libro y últimas transacciones. Solo lecturas.
type DashboardUseCase struct {
	productRepo       repository.ProductRepository
	ledgerUC          *ledger.LedgerUseCase
	lowStockThreshold int64
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(productRepo repository.ProductRepository, ledgerUC *ledger.LedgerUseCase, lowStockThreshold int64) *DashboardUseCase {
	if lowStockThreshold <= 0 {
		lowStockThreshold = 10
	}
	return &DashboardUseCase{
		productRepo:       productRepo,
		ledgerUC:          ledgerUC,
		lowStockThreshold: lowStockThreshold,
	}
}

// GetDashboard devuelve los agregados del dashboard.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	productStats, err := uc.productRepo.Stats(uc.lowStockThreshold)
	if err != nil {
		return nil, err
	}
	txStats, err := uc.ledgerUC.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := uc.ledgerUC.GetRecentTransactions(ctx, 10)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		Products: dto.ProductStatsDTO{
			Total:          productStats.Total,
			Active:         productStats.Active,
			OutOfStock:     productStats.OutOfStock,
			LowStock:       productStats.LowStock,
			InventoryValue: productStats.InventoryValue,
		},
		Transactions: *txStats,
		Recent:       recent,
	}, nil
}
