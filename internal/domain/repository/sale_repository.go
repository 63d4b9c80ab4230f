package repository

import (
	"context"
	"time"

	"github.com/jhoicas/phonestock-api/internal/domain/entity"
)

// SaleFilter filtros del listado de ventas (estado de pago, proveedor, rango de fechas, ítem).
// From y To son inclusivos sobre sale_date.
type SaleFilter struct {
	PaymentStatus *entity.PaymentStatus
	Vendor        *entity.Vendor
	From          *time.Time
	To            *time.Time
	StockItemID   *string
}

// Matches indica si la venta cumple el filtro.
func (f SaleFilter) Matches(s *entity.Sale) bool {
	if f.PaymentStatus != nil && s.PaymentStatus != *f.PaymentStatus {
		return false
	}
	if f.Vendor != nil && (s.Vendor == nil || *s.Vendor != *f.Vendor) {
		return false
	}
	if f.From != nil && s.SaleDate.Before(*f.From) {
		return false
	}
	if f.To != nil && s.SaleDate.After(*f.To) {
		return false
	}
	if f.StockItemID != nil && s.LinkedStockID() != *f.StockItemID {
		return false
	}
	return true
}

// SaleRepository define el puerto de persistencia para sales.
// GetByID y GetForUpdate devuelven (nil, nil) si la venta no existe.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	// List ordena por sale_date descendente.
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	Delete(ctx context.Context, id string) error
}
