package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrCompensation      = errors.New("ajuste de stock fallido")
	ErrLockNotObtained   = errors.New("ítem de stock ocupado por otra operación")
)

// ValidationError entrada rechazada antes de tocar el store. Fields: campo -> regla incumplida.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError construye el error con un único campo.
func NewValidationError(field, rule string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: rule}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+e.Fields[k])
	}
	return "entrada inválida: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NotFoundError referencia a una venta, ítem de stock o asiento inexistente.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s no encontrado", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InsufficientStockError la cantidad pedida supera la disponible.
type InsufficientStockError struct {
	StockItemID string
	Available   int
	Required    int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d, requerido %d", e.Available, e.Required)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// CompensationError la venta quedó persistida pero el ajuste de stock dependiente falló.
// No es fatal: el registro de la venta manda y el inventario puede quedar desfasado.
type CompensationError struct {
	SaleID      string
	SaleAction  string // created, updated, deleted
	StockItemID string
	Op          string // decrement, delete, increment, recreate
	Err         error
}

func (e *CompensationError) Error() string {
	return fmt.Sprintf("venta %s %s pero el ajuste de stock %s (%s) falló: %v", e.SaleID, saleOutcome(e.SaleAction), e.StockItemID, e.Op, e.Err)
}

func saleOutcome(action string) string {
	switch action {
	case "updated":
		return "actualizada"
	case "deleted":
		return "eliminada"
	}
	return "registrada"
}

func (e *CompensationError) Is(target error) bool { return target == ErrCompensation }

func (e *CompensationError) Unwrap() error { return e.Err }
