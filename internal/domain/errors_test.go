package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/phonestock-api/internal/domain"
)

func TestTypedErrors_IsSentinel(t *testing.T) {
	cause := errors.New("conexión perdida")
	cases := []struct {
		name   string
		err    error
		target error
	}{
		{"validación", domain.NewValidationError("quantity", "min"), domain.ErrInvalidInput},
		{"no encontrado", &domain.NotFoundError{Entity: "venta", ID: "s-1"}, domain.ErrNotFound},
		{"stock insuficiente", &domain.InsufficientStockError{Available: 3, Required: 5}, domain.ErrInsufficientStock},
		{"compensación", &domain.CompensationError{SaleID: "s-1", Op: "delete", Err: cause}, domain.ErrCompensation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("capa superior: %w", tc.err)
			assert.ErrorIs(t, wrapped, tc.target)
		})
	}
}

func TestCompensationError_UnwrapCausa(t *testing.T) {
	cause := errors.New("conexión perdida")
	err := &domain.CompensationError{SaleID: "s-1", StockItemID: "p-1", Op: "decrement", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "s-1")
	assert.Contains(t, err.Error(), "decrement")
}

func TestInsufficientStockError_Mensaje(t *testing.T) {
	var target *domain.InsufficientStockError
	err := fmt.Errorf("crear venta: %w", &domain.InsufficientStockError{StockItemID: "p-1", Available: 3, Required: 5})

	assert.True(t, errors.As(err, &target))
	assert.Equal(t, 3, target.Available)
	assert.Equal(t, 5, target.Required)
	assert.Equal(t, "stock insuficiente: disponible 3, requerido 5", target.Error())
}

func TestValidationError_MensajeOrdenado(t *testing.T) {
	err := &domain.ValidationError{Fields: map[string]string{"unit_price": "gte", "quantity": "min"}}
	assert.Equal(t, "entrada inválida: quantity=min, unit_price=gte", err.Error())
}

func TestCompensationError_MensajeSegunAccion(t *testing.T) {
	cause := errors.New("conexión perdida")
	cases := map[string]string{
		"created": "venta s-1 registrada",
		"updated": "venta s-1 actualizada",
		"deleted": "venta s-1 eliminada",
	}
	for action, want := range cases {
		err := &domain.CompensationError{SaleID: "s-1", SaleAction: action, StockItemID: "p-1", Op: "increment", Err: cause}
		assert.Contains(t, err.Error(), want, action)
	}
}
