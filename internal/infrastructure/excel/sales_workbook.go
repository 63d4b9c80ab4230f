// Package excel exporta el listado de ventas a xlsx con excelize.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/phonestock-api/internal/domain/entity"
	"github.com/jhoicas/phonestock-api/internal/domain/report"
)

const salesSheet = "Ventas"

var salesHeadings = []string{
	"Fecha", "Equipo", "Cantidad", "Costo unit.", "Precio unit.", "Gastos extra", "Ganancia",
	"Cliente", "Vendedor", "Estado de pago", "Notas",
}

// WorkbookBuilder implementa sales.WorkbookBuilder.
type WorkbookBuilder struct{}

// NewWorkbookBuilder construye el exportador.
func NewWorkbookBuilder() *WorkbookBuilder { return &WorkbookBuilder{} }

// SalesWorkbook una fila por venta y una fila final de totales.
func (b *WorkbookBuilder) SalesWorkbook(_ context.Context, sales []*entity.Sale, totals report.SalesTotals) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", salesSheet); err != nil {
		return nil, fmt.Errorf("excel: hoja: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	if err := setRow(f, 1, toValues(salesHeadings)); err != nil {
		return nil, err
	}
	for i, s := range sales {
		if err := setRow(f, i+2, saleValues(s)); err != nil {
			return nil, err
		}
	}
	totalRow := len(sales) + 2
	if err := setRow(f, totalRow, []interface{}{
		"TOTAL", "", totals.Units, "", totals.Revenue.InexactFloat64(), totals.ExtraExpenses.InexactFloat64(), totals.Profit.InexactFloat64(),
	}); err != nil {
		return nil, err
	}

	last, _ := excelize.CoordinatesToCellName(len(salesHeadings), 1)
	if err := f.SetCellStyle(salesSheet, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("excel: estilo encabezado: %w", err)
	}
	totalLast, _ := excelize.CoordinatesToCellName(len(salesHeadings), totalRow)
	if err := f.SetCellStyle(salesSheet, fmt.Sprintf("A%d", totalRow), totalLast, bold); err != nil {
		return nil, fmt.Errorf("excel: estilo totales: %w", err)
	}
	_ = f.SetColWidth(salesSheet, "B", "B", 28)
	_ = f.SetColWidth(salesSheet, "H", "K", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func saleValues(s *entity.Sale) []interface{} {
	vendor := ""
	if s.Vendor != nil {
		vendor = string(*s.Vendor)
	}
	return []interface{}{
		s.SaleDate.Format("2006-01-02"),
		s.ItemName,
		s.Quantity,
		s.UnitCost.InexactFloat64(),
		s.UnitPrice.InexactFloat64(),
		s.ExtraExpenses.InexactFloat64(),
		s.Profit.InexactFloat64(),
		deref(s.CustomerName),
		vendor,
		string(s.PaymentStatus),
		deref(s.Notes),
	}
}

func setRow(f *excelize.File, rowNo int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(salesSheet, cell, &values); err != nil {
		return fmt.Errorf("excel: fila %d: %w", rowNo, err)
	}
	return nil
}

func toValues(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
