package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/phonestock-api/internal/domain"
	"github.com/jhoicas/phonestock-api/internal/domain/entity"
	"github.com/jhoicas/phonestock-api/pkg/validator"
)

// MoneyScale decimales de los montos (columnas NUMERIC(14,2)).
const MoneyScale = 2

// NewValidator validador con las reglas de negocio `vendor`, `payment_status` y `money`.
func NewValidator() *validator.Validator {
	v := validator.New()
	// Las reglas se registran con tags fijos; un error aquí es un bug de arranque.
	if err := v.RegisterStringRule("vendor", func(s string) bool { return entity.Vendor(s).Valid() }); err != nil {
		panic(err)
	}
	if err := v.RegisterStringRule("payment_status", func(s string) bool { return entity.PaymentStatus(s).Valid() }); err != nil {
		panic(err)
	}
	if err := v.RegisterDecimalRule("money", func(d decimal.Decimal) bool { return d.Equal(d.Round(MoneyScale)) }); err != nil {
		panic(err)
	}
	return v
}

// Validate devuelve *domain.ValidationError si s incumple sus tags.
func Validate(v *validator.Validator, s interface{}) error {
	if fields := v.Struct(s); len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
