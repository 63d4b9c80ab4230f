// Package report agrega totales a partir de colecciones ya leídas del store.
// Funciones puras: sin caché, se recalculan en cada lectura.
//
// Decisión de valorización: el inventario se valoriza a COSTO (Quantity * CostPrice).
// SalePrice puede ser 0 (desconocido) tras recrear un ítem, por lo que no sirve como base.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/phonestock-api/internal/domain/entity"
)

// SalesTotals agregados de un conjunto de ventas.
type SalesTotals struct {
	Count         int
	Units         int
	Revenue       decimal.Decimal // Σ unit_price * quantity
	Cost          decimal.Decimal // Σ unit_cost * quantity
	ExtraExpenses decimal.Decimal
	Profit        decimal.Decimal // Σ profit persistido
}

// VendorTotal unidades y valor a costo de un proveedor.
type VendorTotal struct {
	Vendor entity.Vendor
	Units  int
	Value  decimal.Decimal
}

// TotalStockValue Σ quantity * cost_price.
func TotalStockValue(items []*entity.StockItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Value())
	}
	return total
}

// TotalStockUnits Σ quantity.
func TotalStockUnits(items []*entity.StockItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// VendorTotals agrupa el inventario por proveedor; los ítems sin proveedor se omiten.
// Orden: el de entity.Vendors.
func VendorTotals(items []*entity.StockItem) []VendorTotal {
	byVendor := make(map[entity.Vendor]*VendorTotal)
	for _, it := range items {
		if it.Vendor == nil {
			continue
		}
		vt, ok := byVendor[*it.Vendor]
		if !ok {
			vt = &VendorTotal{Vendor: *it.Vendor, Value: decimal.Zero}
			byVendor[*it.Vendor] = vt
		}
		vt.Units += it.Quantity
		vt.Value = vt.Value.Add(it.Value())
	}
	out := make([]VendorTotal, 0, len(byVendor))
	for _, vt := range byVendor {
		out = append(out, *vt)
	}
	sort.Slice(out, func(i, j int) bool { return vendorRank(out[i].Vendor) < vendorRank(out[j].Vendor) })
	return out
}

func vendorRank(v entity.Vendor) int {
	for i, known := range entity.Vendors {
		if v == known {
			return i
		}
	}
	return len(entity.Vendors)
}

// SumLedger Σ amount de los asientos del tipo indicado.
func SumLedger(entries []*entity.LedgerEntry, kind entity.LedgerKind) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.Kind == kind {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// TotalAccountBalance Σ saldos de cuentas.
func TotalAccountBalance(entries []*entity.LedgerEntry) decimal.Decimal {
	return SumLedger(entries, entity.LedgerAccount)
}

// TotalReceivables Σ saldos por cobrar.
func TotalReceivables(entries []*entity.LedgerEntry) decimal.Decimal {
	return SumLedger(entries, entity.LedgerReceivable)
}

// TotalExpenses Σ gastos.
func TotalExpenses(entries []*entity.LedgerEntry) decimal.Decimal {
	return SumLedger(entries, entity.LedgerExpense)
}

// CashPosition dinero disponible = cuentas + por cobrar - gastos.
func CashPosition(accounts, receivables, expenses decimal.Decimal) decimal.Decimal {
	return accounts.Add(receivables).Sub(expenses)
}

// Sales agrega ingresos, costo, gastos extra y ganancia.
func Sales(sales []*entity.Sale) SalesTotals {
	t := SalesTotals{
		Revenue:       decimal.Zero,
		Cost:          decimal.Zero,
		ExtraExpenses: decimal.Zero,
		Profit:        decimal.Zero,
	}
	for _, s := range sales {
		t.Count++
		t.Units += s.Quantity
		t.Revenue = t.Revenue.Add(s.Revenue())
		t.Cost = t.Cost.Add(s.Cost())
		t.ExtraExpenses = t.ExtraExpenses.Add(s.ExtraExpenses)
		t.Profit = t.Profit.Add(s.Profit)
	}
	return t
}
