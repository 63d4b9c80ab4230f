package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryResponse respuesta de GET /api/dashboard.
// Todo se recalcula en cada llamada a partir de las colecciones actuales.
type DashboardSummaryResponse struct {
	// Inventario (valorizado a costo)
	TotalStockValue decimal.Decimal       `json:"total_stock_value"`
	TotalStockUnits int                   `json:"total_stock_units"`
	StockItems      int                   `json:"stock_items"`
	VendorTotals    []VendorTotalResponse `json:"vendor_totals"`
	RecentStock     []StockItemResponse   `json:"recent_stock"` // los 5 ingresos más recientes

	// Caja
	TotalAccountBalance decimal.Decimal `json:"total_account_balance"`
	TotalReceivables    decimal.Decimal `json:"total_receivables"`
	TotalExpenses       decimal.Decimal `json:"total_expenses"`
	CashPosition        decimal.Decimal `json:"cash_position"` // cuentas + por cobrar - gastos

	Sales       SalesTotalsResponse `json:"sales"`
	GeneratedAt time.Time           `json:"generated_at"`
}
