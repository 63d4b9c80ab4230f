package report_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/phonestock-api/internal/domain/entity"
	"github.com/jhoicas/phonestock-api/internal/domain/report"
	"github.com/jhoicas/phonestock-api/internal/domain/sales"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func vendor(v entity.Vendor) *entity.Vendor { return &v }

func TestTotalStockValue_ACosto(t *testing.T) {
	items := []*entity.StockItem{
		{Quantity: 5, CostPrice: d("100"), SalePrice: d("150")},
		{Quantity: 2, CostPrice: d("49.99"), SalePrice: d("0")},
	}
	assert.True(t, d("599.98").Equal(report.TotalStockValue(items)))
	assert.Equal(t, 7, report.TotalStockUnits(items))
	assert.True(t, decimal.Zero.Equal(report.TotalStockValue(nil)))
}

func TestVendorTotals(t *testing.T) {
	items := []*entity.StockItem{
		{Quantity: 2, CostPrice: d("10"), Vendor: vendor(entity.VendorWebsite)},
		{Quantity: 1, CostPrice: d("30"), Vendor: vendor(entity.VendorSandeep)},
		{Quantity: 3, CostPrice: d("5"), Vendor: vendor(entity.VendorWebsite)},
		{Quantity: 9, CostPrice: d("1")},
	}

	got := report.VendorTotals(items)
	require.Len(t, got, 2)
	assert.Equal(t, entity.VendorSandeep, got[0].Vendor)
	assert.Equal(t, 1, got[0].Units)
	assert.Equal(t, entity.VendorWebsite, got[1].Vendor)
	assert.Equal(t, 5, got[1].Units)
	assert.True(t, d("35").Equal(got[1].Value))
}

func TestCashPosition(t *testing.T) {
	entries := []*entity.LedgerEntry{
		{Kind: entity.LedgerAccount, Amount: d("1000")},
		{Kind: entity.LedgerAccount, Amount: d("250.50")},
		{Kind: entity.LedgerReceivable, Amount: d("300")},
		{Kind: entity.LedgerExpense, Amount: d("120.25")},
	}
	accounts := report.TotalAccountBalance(entries)
	receivables := report.TotalReceivables(entries)
	expenses := report.TotalExpenses(entries)

	assert.True(t, d("1250.50").Equal(accounts))
	assert.True(t, d("300").Equal(receivables))
	assert.True(t, d("120.25").Equal(expenses))
	assert.True(t, d("1430.25").Equal(report.CashPosition(accounts, receivables, expenses)))
}

func TestSales_ProfitEsSumaExacta(t *testing.T) {
	var list []*entity.Sale
	want := decimal.Zero
	for i := 1; i <= 50; i++ {
		s := &entity.Sale{
			Quantity:      i%3 + 1,
			UnitCost:      d("99.99"),
			UnitPrice:     d("120.10"),
			ExtraExpenses: d("0.07"),
		}
		s.Profit = sales.Profit(s.UnitPrice, s.UnitCost, s.Quantity, s.ExtraExpenses)
		want = want.Add(s.Profit)
		list = append(list, s)
	}

	got := report.Sales(list)
	assert.Equal(t, 50, got.Count)
	assert.True(t, want.Equal(got.Profit), "Σ profit debe ser exacta: %s vs %s", want, got.Profit)
	assert.True(t, got.Revenue.Sub(got.Cost).Sub(got.ExtraExpenses).Equal(got.Profit))
}
