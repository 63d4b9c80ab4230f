package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/phonestock-api/internal/domain"
	"github.com/jhoicas/phonestock-api/internal/domain/entity"
	"github.com/jhoicas/phonestock-api/internal/domain/repository"
	"github.com/jhoicas/phonestock-api/internal/domain/report"
)

// CreateStockRequest body para POST /api/stock (ingreso de equipos).
// SalePrice es opcional: si no viene queda en 0 y se completa después.
type CreateStockRequest struct {
	Name         string           `json:"name" validate:"required,max=200"`
	Quantity     int              `json:"quantity" validate:"gte=0"`
	CostPrice    decimal.Decimal  `json:"cost_price" validate:"gte=0,money"`
	SalePrice    *decimal.Decimal `json:"sale_price,omitempty" validate:"omitempty,gte=0,money"`
	Vendor       *entity.Vendor   `json:"vendor,omitempty" validate:"omitempty,vendor"`
	PurchaseDate *Date            `json:"purchase_date,omitempty"`
}

// UpdateStockRequest body para PUT /api/stock/:id (campos parciales).
type UpdateStockRequest struct {
	Name         *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Quantity     *int             `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	CostPrice    *decimal.Decimal `json:"cost_price,omitempty" validate:"omitempty,gte=0,money"`
	SalePrice    *decimal.Decimal `json:"sale_price,omitempty" validate:"omitempty,gte=0,money"`
	Vendor       *entity.Vendor   `json:"vendor,omitempty" validate:"omitempty,vendor"`
	PurchaseDate *Date            `json:"purchase_date,omitempty"`
}

// StockItemResponse salida de un ítem de stock.
type StockItemResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	Value        decimal.Decimal `json:"value"` // quantity * cost_price
	Vendor       *entity.Vendor  `json:"vendor"`
	PurchaseDate *Date           `json:"purchase_date"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// StockListResponse listado con totales del inventario listado.
type StockListResponse struct {
	Items      []StockItemResponse `json:"items"`
	TotalUnits int                 `json:"total_units"`
	TotalValue decimal.Decimal     `json:"total_value"`
}

// VendorTotalResponse unidades y valor a costo por proveedor.
type VendorTotalResponse struct {
	Vendor entity.Vendor   `json:"vendor"`
	Units  int             `json:"units"`
	Value  decimal.Decimal `json:"value"`
}

// StockListQuery filtros de GET /api/stock.
type StockListQuery struct {
	Vendor  string `query:"vendor"`
	InStock bool   `query:"in_stock"`
}

// ToFilter valida y convierte la query en filtro de repositorio.
func (q StockListQuery) ToFilter() (repository.StockFilter, error) {
	f := repository.StockFilter{InStockOnly: q.InStock}
	if q.Vendor != "" {
		v := entity.Vendor(q.Vendor)
		if !v.Valid() {
			return f, domain.NewValidationError("vendor", "vendor")
		}
		f.Vendor = &v
	}
	return f, nil
}

// NewStockItemResponse mapea la entidad a su salida.
func NewStockItemResponse(s *entity.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:           s.ID,
		Name:         s.Name,
		Quantity:     s.Quantity,
		CostPrice:    s.CostPrice,
		SalePrice:    s.SalePrice,
		Value:        s.Value(),
		Vendor:       s.Vendor,
		PurchaseDate: datePtr(s.PurchaseDate),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// NewVendorTotals mapea los totales por proveedor.
func NewVendorTotals(in []report.VendorTotal) []VendorTotalResponse {
	out := make([]VendorTotalResponse, 0, len(in))
	for _, vt := range in {
		out = append(out, VendorTotalResponse{Vendor: vt.Vendor, Units: vt.Units, Value: vt.Value})
	}
	return out
}
