package sales

import "github.com/shopspring/decimal"

// Profit implementa la ganancia de una venta (servicio de dominio).
// Ganancia = (PrecioUnitario - CostoUnitario) * Cantidad - GastosExtra
func Profit(unitPrice, unitCost decimal.Decimal, quantity int, extraExpenses decimal.Decimal) decimal.Decimal {
	return unitPrice.Sub(unitCost).Mul(decimal.NewFromInt(int64(quantity))).Sub(extraExpenses)
}

// RemainingStock cantidad que queda en el ítem tras aplicar delta unidades vendidas
// (delta negativo devuelve unidades). ok=false si el resultado sería negativo.
func RemainingStock(available, delta int) (remaining int, ok bool) {
	remaining = available - delta
	return remaining, remaining >= 0
}
