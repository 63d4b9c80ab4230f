package excel_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/phonestock-api/internal/domain/entity"
	"github.com/jhoicas/phonestock-api/internal/domain/report"
	"github.com/jhoicas/phonestock-api/internal/infrastructure/excel"
)

func TestSalesWorkbook_FilasYTotales(t *testing.T) {
	customer := "Ravi"
	list := []*entity.Sale{
		{ItemName: "iPhone 13", Quantity: 2, UnitCost: decimal.NewFromInt(500), UnitPrice: decimal.NewFromInt(650),
			Profit: decimal.NewFromInt(300), CustomerName: &customer, PaymentStatus: entity.PaymentPaid,
			SaleDate: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)},
		{ItemName: "Pixel 7", Quantity: 1, UnitCost: decimal.NewFromInt(300), UnitPrice: decimal.NewFromInt(380),
			ExtraExpenses: decimal.NewFromInt(10), Profit: decimal.NewFromInt(70), PaymentStatus: entity.PaymentPending,
			SaleDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	}

	out, err := excel.NewWorkbookBuilder().SalesWorkbook(context.Background(), list, report.Sales(list))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Ventas")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Equipo", rows[0][1])
	assert.Equal(t, "iPhone 13", rows[1][1])
	assert.Equal(t, "Ravi", rows[1][7])
	assert.Equal(t, "TOTAL", rows[3][0])
	assert.Equal(t, "3", rows[3][2])
	assert.Equal(t, "370", rows[3][6])
}
