package dto

import "github.com/shopspring/decimal"

// TransactionStatsDTO conteos del libro de stock.
type TransactionStatsDTO struct {
	Total       int64 `json:"total_transactions"`
	Today       int64 `json:"transactions_today"`
	ThisMonth   int64 `json:"transactions_this_month"`
	StockIns    int64 `json:"stock_ins"`
	StockOuts   int64 `json:"stock_outs"`
	Adjustments int64 `json:"adjustments"`
	Pending     int64 `json:"pending_transactions"`
	Completed   int64 `json:"completed_transactions"`
	Cancelled   int64 `json:"cancelled_transactions"`
}

// ProductStatsDTO agregados de productos.
type ProductStatsDTO struct {
	Total          int64           `json:"total_products"`
	Active         int64           `json:"active_products"`
	OutOfStock     int64           `json:"out_of_stock"`
	LowStock       int64           `json:"low_stock"`
	InventoryValue decimal.Decimal `json:"inventory_value"` // Σ price × stock
}

// DashboardResponse respuesta de GET /api/dashboard.
type DashboardResponse struct {
	Products     ProductStatsDTO       `json:"products"`
	Transactions TransactionStatsDTO   `json:"transactions"`
	Recent       []TransactionResponse `json:"recent_transactions"`
}
