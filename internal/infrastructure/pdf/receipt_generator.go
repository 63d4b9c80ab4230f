// Package pdf genera el comprobante de venta con Maroto v2.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────────┐
//	│  Tienda                  │  N° venta + Fecha   │
//	│  ───────────────────────────────────────────  │
//	│  Cliente / Vendedor / Estado de pago           │
//	│  ───────────────────────────────────────────  │
//	│  Cant │ Equipo │ P.Unit │ Subtotal             │
//	│  Gastos adicionales / TOTAL                    │
//	│  Notas                                         │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/phonestock-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReceiptGenerator implementa sales.ReceiptGenerator.
type ReceiptGenerator struct {
	shopName string
}

// NewReceiptGenerator shopName encabeza el comprobante.
func NewReceiptGenerator(shopName string) *ReceiptGenerator {
	return &ReceiptGenerator{shopName: shopName}
}

// SaleReceipt genera el PDF y devuelve sus bytes. No incluye costo ni ganancia.
func (g *ReceiptGenerator) SaleReceipt(_ context.Context, sale *entity.Sale) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de venta", true).
		WithAuthor(g.shopName, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(g.headerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow(), itemRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(sale)...)
	if sale.Notes != nil && *sale.Notes != "" {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("Notas: "+*sale.Notes, props.Text{Size: 8, Top: 4, Color: colorGray}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ReceiptGenerator) headerRow(sale *entity.Sale) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.shopName, props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1}),
			text.New("COMPROBANTE DE VENTA", props.Text{Size: 7, Top: 8, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("N° "+shortID(sale.ID), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1}),
			text.New("Fecha: "+sale.SaleDate.Format("02/01/2006"), props.Text{Size: 8, Align: align.Right, Top: 8, Color: colorGray}),
		),
	)
}

func partiesRow(sale *entity.Sale) core.Row {
	vendor := "-"
	if sale.Vendor != nil {
		vendor = string(*sale.Vendor)
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Cliente: %s   |   Vendedor: %s   |   Pago: %s",
				strOr(sale.CustomerName, "-"), vendor, paymentLabel(sale.PaymentStatus),
			), props.Text{Size: 8, Top: 3}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	right := h
	right.Align = align.Right
	return row.New(7).Add(
		col.New(2).Add(text.New("Cant", h)),
		col.New(5).Add(text.New("Equipo", h)),
		col.New(2).Add(text.New("P. Unit", right)),
		col.New(3).Add(text.New("Subtotal", right)),
	)
}

func itemRow(sale *entity.Sale) core.Row {
	right := props.Text{Size: 8, Align: align.Right, Top: 1}
	return row.New(8).Add(
		col.New(2).Add(text.New(fmt.Sprintf("%d", sale.Quantity), props.Text{Size: 8, Top: 1})),
		col.New(5).Add(text.New(sale.ItemName, props.Text{Size: 8, Top: 1})),
		col.New(2).Add(text.New(formatMoney(sale.UnitPrice), right)),
		col.New(3).Add(text.New(formatMoney(sale.Revenue()), right)),
	)
}

func totalsRows(sale *entity.Sale) []core.Row {
	label := props.Text{Size: 8, Align: align.Right, Top: 1}
	total := props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1, Color: colorPrimary}
	var rows []core.Row
	if !sale.ExtraExpenses.IsZero() {
		rows = append(rows, row.New(6).Add(
			col.New(9).Add(text.New("Gastos adicionales", label)),
			col.New(3).Add(text.New(formatMoney(sale.ExtraExpenses), label)),
		))
	}
	rows = append(rows, row.New(8).Add(
		col.New(9).Add(text.New("TOTAL", total)),
		col.New(3).Add(text.New(formatMoney(sale.Revenue()), total)),
	))
	return rows
}

func paymentLabel(p entity.PaymentStatus) string {
	switch p {
	case entity.PaymentPaid:
		return "Pagado"
	case entity.PaymentPending:
		return "Pendiente"
	case entity.PaymentPartial:
		return "Parcial"
	}
	return string(p)
}

func strOr(s *string, fallback string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return fallback
	}
	return *s
}

func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}

// formatMoney 1234567.5 -> "1,234,567.50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
