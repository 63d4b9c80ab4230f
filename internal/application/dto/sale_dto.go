package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/phonestock-api/internal/domain"
	"github.com/jhoicas/phonestock-api/internal/domain/entity"
	"github.com/jhoicas/phonestock-api/internal/domain/repository"
	"github.com/jhoicas/phonestock-api/internal/domain/report"
)

// CreateSaleRequest body para POST /api/sales.
// Con stock_item_id, item_name / unit_cost / vendor se copian del ítem si no vienen.
// Profit se acepta por compatibilidad pero se ignora: siempre se recalcula.
type CreateSaleRequest struct {
	StockItemID   *string              `json:"stock_item_id,omitempty" validate:"omitempty,min=1,max=64"`
	ItemName      string               `json:"item_name" validate:"required_without=StockItemID,max=200"`
	Quantity      int                  `json:"quantity" validate:"min=1"`
	UnitCost      *decimal.Decimal     `json:"unit_cost,omitempty" validate:"required_without=StockItemID,omitempty,gte=0,money"`
	UnitPrice     decimal.Decimal      `json:"unit_price" validate:"gte=0,money"`
	ExtraExpenses decimal.Decimal      `json:"extra_expenses" validate:"gte=0,money"`
	CustomerName  *string              `json:"customer_name,omitempty" validate:"omitempty,max=200"`
	Vendor        *entity.Vendor       `json:"vendor,omitempty" validate:"omitempty,vendor"`
	SaleDate      *Date                `json:"sale_date,omitempty"`
	PaymentStatus entity.PaymentStatus `json:"payment_status" validate:"omitempty,payment_status"`
	Notes         *string              `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Profit        *decimal.Decimal     `json:"profit,omitempty"`
}

// UpdateSaleRequest body para PUT /api/sales/:id. Solo se aplican los campos presentes.
type UpdateSaleRequest struct {
	ItemName      *string               `json:"item_name,omitempty" validate:"omitempty,min=1,max=200"`
	Quantity      *int                  `json:"quantity,omitempty" validate:"omitempty,min=1"`
	UnitCost      *decimal.Decimal      `json:"unit_cost,omitempty" validate:"omitempty,gte=0,money"`
	UnitPrice     *decimal.Decimal      `json:"unit_price,omitempty" validate:"omitempty,gte=0,money"`
	ExtraExpenses *decimal.Decimal      `json:"extra_expenses,omitempty" validate:"omitempty,gte=0,money"`
	CustomerName  *string               `json:"customer_name,omitempty" validate:"omitempty,max=200"`
	Vendor        *entity.Vendor        `json:"vendor,omitempty" validate:"omitempty,vendor"`
	SaleDate      *Date                 `json:"sale_date,omitempty"`
	PaymentStatus *entity.PaymentStatus `json:"payment_status,omitempty" validate:"omitempty,payment_status"`
	Notes         *string               `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Profit        *decimal.Decimal      `json:"profit,omitempty"`
}

// TouchesProfit indica si cambia algún campo del que depende la ganancia.
func (r UpdateSaleRequest) TouchesProfit() bool {
	return r.Quantity != nil || r.UnitCost != nil || r.UnitPrice != nil || r.ExtraExpenses != nil
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID            string               `json:"id"`
	StockItemID   *string              `json:"stock_item_id"`
	ItemName      string               `json:"item_name"`
	Quantity      int                  `json:"quantity"`
	UnitCost      decimal.Decimal      `json:"unit_cost"`
	UnitPrice     decimal.Decimal      `json:"unit_price"`
	ExtraExpenses decimal.Decimal      `json:"extra_expenses"`
	Profit        decimal.Decimal      `json:"profit"`
	CustomerName  *string              `json:"customer_name"`
	Vendor        *entity.Vendor       `json:"vendor"`
	SaleDate      Date                 `json:"sale_date"`
	PaymentStatus entity.PaymentStatus `json:"payment_status"`
	Notes         *string              `json:"notes"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// SaleResultResponse resultado de crear/editar/eliminar una venta con su efecto en stock.
type SaleResultResponse struct {
	Sale          SaleResponse     `json:"sale"`
	StockEffect   string           `json:"stock_effect"`
	StockQuantity *int             `json:"stock_quantity,omitempty"`
	Warning       *WarningResponse `json:"warning,omitempty"`
}

// SalesTotalsResponse totales de un listado de ventas.
type SalesTotalsResponse struct {
	Count         int             `json:"count"`
	Units         int             `json:"units"`
	Revenue       decimal.Decimal `json:"revenue"`
	Cost          decimal.Decimal `json:"cost"`
	ExtraExpenses decimal.Decimal `json:"extra_expenses"`
	Profit        decimal.Decimal `json:"profit"`
}

// SaleListResponse listado filtrado con sus totales.
type SaleListResponse struct {
	Items  []SaleResponse      `json:"items"`
	Totals SalesTotalsResponse `json:"totals"`
}

// SaleListQuery filtros de GET /api/sales y /api/sales/export.
// from / to son fechas "2006-01-02" inclusivas.
type SaleListQuery struct {
	PaymentStatus string `query:"payment_status"`
	Vendor        string `query:"vendor"`
	From          string `query:"from"`
	To            string `query:"to"`
	StockItemID   string `query:"stock_item_id"`
}

// ToFilter valida y convierte la query en filtro de repositorio.
func (q SaleListQuery) ToFilter() (repository.SaleFilter, error) {
	var f repository.SaleFilter
	fields := map[string]string{}
	if q.PaymentStatus != "" && q.PaymentStatus != "all" {
		ps := entity.PaymentStatus(q.PaymentStatus)
		if ps.Valid() {
			f.PaymentStatus = &ps
		} else {
			fields["payment_status"] = "payment_status"
		}
	}
	if q.Vendor != "" && q.Vendor != "all" {
		v := entity.Vendor(q.Vendor)
		if v.Valid() {
			f.Vendor = &v
		} else {
			fields["vendor"] = "vendor"
		}
	}
	if q.From != "" {
		t, err := ParseDate(q.From)
		if err != nil {
			fields["from"] = "date"
		} else {
			f.From = &t
		}
	}
	if q.To != "" {
		t, err := ParseDate(q.To)
		if err != nil {
			fields["to"] = "date"
		} else {
			if len(q.To) == len(DateLayout) {
				t = t.Add(24*time.Hour - time.Nanosecond)
			}
			f.To = &t
		}
	}
	if q.StockItemID != "" {
		id := q.StockItemID
		f.StockItemID = &id
	}
	if len(fields) > 0 {
		return f, &domain.ValidationError{Fields: fields}
	}
	return f, nil
}

// NewSaleResponse mapea la entidad a su salida.
func NewSaleResponse(s *entity.Sale) SaleResponse {
	return SaleResponse{
		ID:            s.ID,
		StockItemID:   s.StockItemID,
		ItemName:      s.ItemName,
		Quantity:      s.Quantity,
		UnitCost:      s.UnitCost,
		UnitPrice:     s.UnitPrice,
		ExtraExpenses: s.ExtraExpenses,
		Profit:        s.Profit,
		CustomerName:  s.CustomerName,
		Vendor:        s.Vendor,
		SaleDate:      NewDate(s.SaleDate),
		PaymentStatus: s.PaymentStatus,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// NewSalesTotals mapea los totales del reporte.
func NewSalesTotals(t report.SalesTotals) SalesTotalsResponse {
	return SalesTotalsResponse{
		Count:         t.Count,
		Units:         t.Units,
		Revenue:       t.Revenue,
		Cost:          t.Cost,
		ExtraExpenses: t.ExtraExpenses,
		Profit:        t.Profit,
	}
}
