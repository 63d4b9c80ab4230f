package repository

import (
	"context"

	"github.com/jhoicas/phonestock-api/internal/domain/entity"
)

// StockFilter filtros opcionales para listar inventario.
type StockFilter struct {
	Vendor      *entity.Vendor
	InStockOnly bool // solo ítems con Quantity > 0
}

// Matches indica si el ítem cumple el filtro.
func (f StockFilter) Matches(s *entity.StockItem) bool {
	if f.Vendor != nil && (s.Vendor == nil || *s.Vendor != *f.Vendor) {
		return false
	}
	if f.InStockOnly && s.Quantity <= 0 {
		return false
	}
	return true
}

// StockItemRepository define el puerto de persistencia para phones_stock (usable con pool o tx).
// GetByID y GetForUpdate devuelven (nil, nil) si el ítem no existe.
type StockItemRepository interface {
	Create(ctx context.Context, item *entity.StockItem) error
	GetByID(ctx context.Context, id string) (*entity.StockItem, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error)
	// List ordena por created_at descendente.
	List(ctx context.Context, filter StockFilter) ([]*entity.StockItem, error)
	// Update reescribe todos los campos; domain.ErrNotFound si no existe.
	Update(ctx context.Context, item *entity.StockItem) error
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	// Delete elimina la fila; domain.ErrNotFound si no existe. Las ventas conservan su stock_item_id.
	Delete(ctx context.Context, id string) error
}
