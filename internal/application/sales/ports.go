package sales

import (
	"context"

	"github.com/jhoicas/phonestock-api/internal/domain/entity"
	"github.com/jhoicas/phonestock-api/internal/domain/report"
	"github.com/jhoicas/phonestock-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción del store con repositorios atados a ella.
// Commit si fn devuelve nil, Rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(scope repository.TxScope) error) error
}

// StockLocker serializa lectura-verificación-escritura por ítem de stock.
// Lock devuelve domain.ErrLockNotObtained (envuelto) si no logra el candado a tiempo.
type StockLocker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}

// ReceiptGenerator genera el comprobante PDF de una venta.
type ReceiptGenerator interface {
	SaleReceipt(ctx context.Context, sale *entity.Sale) ([]byte, error)
}

// WorkbookBuilder genera la planilla de ventas (xlsx) con su fila de totales.
type WorkbookBuilder interface {
	SalesWorkbook(ctx context.Context, sales []*entity.Sale, totals report.SalesTotals) ([]byte, error)
}

// LockKey clave del candado de un ítem de stock.
func LockKey(stockItemID string) string {
	return "phones_stock:" + stockItemID
}
