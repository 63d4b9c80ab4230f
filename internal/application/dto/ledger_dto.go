package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/phonestock-api/internal/domain/entity"
)

// LedgerEntryRequest body para crear una cuenta, saldo por cobrar o gasto.
// Label es account_name, customer_name o expense_name según la ruta.
type LedgerEntryRequest struct {
	Label  string          `json:"label" validate:"required,max=200"`
	Amount decimal.Decimal `json:"amount" validate:"gte=0,money"`
}

// UpdateLedgerEntryRequest edición parcial.
type UpdateLedgerEntryRequest struct {
	Label  *string          `json:"label,omitempty" validate:"omitempty,min=1,max=200"`
	Amount *decimal.Decimal `json:"amount,omitempty" validate:"omitempty,gte=0,money"`
}

// LedgerEntryResponse salida de un asiento.
type LedgerEntryResponse struct {
	ID        string            `json:"id"`
	Kind      entity.LedgerKind `json:"kind"`
	Label     string            `json:"label"`
	Amount    decimal.Decimal   `json:"amount"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// LedgerListResponse listado de un tipo con su suma.
type LedgerListResponse struct {
	Kind  entity.LedgerKind     `json:"kind"`
	Items []LedgerEntryResponse `json:"items"`
	Total decimal.Decimal       `json:"total"`
}

// NewLedgerEntryResponse mapea la entidad a su salida.
func NewLedgerEntryResponse(e *entity.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:        e.ID,
		Kind:      e.Kind,
		Label:     e.Label,
		Amount:    e.Amount,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
