package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venta de uno o varios equipos de un mismo ítem de stock (tabla sales).
//
// StockItemID es una referencia débil: el ítem puede desaparecer (agotado o borrado) y la venta
// conserva ItemName, UnitCost y Vendor copiados al crearla, sin depender de un join.
type Sale struct {
	ID            string
	StockItemID   *string
	ItemName      string
	Quantity      int
	UnitCost      decimal.Decimal
	UnitPrice     decimal.Decimal
	ExtraExpenses decimal.Decimal
	Profit        decimal.Decimal // siempre recalculado, ver sales.Profit
	CustomerName  *string
	Vendor        *Vendor
	SaleDate      time.Time
	PaymentStatus PaymentStatus
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Revenue ingreso bruto: UnitPrice * Quantity.
func (s *Sale) Revenue() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// Cost costo de lo vendido: UnitCost * Quantity.
func (s *Sale) Cost() decimal.Decimal {
	return s.UnitCost.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// LinkedStockID devuelve el id del ítem enlazado o "" si no hay.
func (s *Sale) LinkedStockID() string {
	if s.StockItemID == nil {
		return ""
	}
	return *s.StockItemID
}

// Clone copia profunda.
func (s *Sale) Clone() *Sale {
	if s == nil {
		return nil
	}
	c := *s
	c.StockItemID = cloneString(s.StockItemID)
	c.CustomerName = cloneString(s.CustomerName)
	c.Notes = cloneString(s.Notes)
	if s.Vendor != nil {
		v := *s.Vendor
		c.Vendor = &v
	}
	return &c
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
