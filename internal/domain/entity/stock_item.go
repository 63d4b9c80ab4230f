package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem representa un lote de teléfonos en inventario (tabla phones_stock).
// Quantity nunca es negativa; cuando una venta la deja en 0 la fila se elimina (agotado).
type StockItem struct {
	ID           string
	Name         string
	Quantity     int
	CostPrice    decimal.Decimal // precio de compra unitario
	SalePrice    decimal.Decimal // precio de venta sugerido; 0 = desconocido
	Vendor       *Vendor
	PurchaseDate *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Value valorización del ítem a costo: Quantity * CostPrice.
func (s *StockItem) Value() decimal.Decimal {
	return s.CostPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// Clone copia profunda (los punteros opcionales no se comparten).
func (s *StockItem) Clone() *StockItem {
	if s == nil {
		return nil
	}
	c := *s
	if s.Vendor != nil {
		v := *s.Vendor
		c.Vendor = &v
	}
	if s.PurchaseDate != nil {
		d := *s.PurchaseDate
		c.PurchaseDate = &d
	}
	return &c
}
