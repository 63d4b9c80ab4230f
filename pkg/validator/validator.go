// Package validator envuelve go-playground/validator con las reglas propias de la API:
// montos decimal.Decimal comparables con gte/gt y reglas de cadena registrables (proveedor, estado).
package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator valida structs con tags `validate`. Seguro para uso concurrente tras la configuración.
type Validator struct {
	v *validator.Validate
}

// New crea el validador. Los nombres de campo reportados son los del tag json.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	return &Validator{v: v}
}

// decimalValue expone el monto como float64 para que gte/gt/lte funcionen sobre decimal.Decimal.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// RegisterStringRule registra una regla `tag` que acepta el valor si ok devuelve true.
// Aplica a campos de tipo string o tipos basados en string (p.ej. entity.Vendor).
func (val *Validator) RegisterStringRule(tag string, ok func(string) bool) error {
	return val.v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		return ok(fl.Field().String())
	})
}

// RegisterDecimalRule registra una regla `tag` sobre montos decimal.Decimal (o *decimal.Decimal).
// La regla recibe el valor exacto del campo, no su conversión a float64.
func (val *Validator) RegisterDecimalRule(tag string, ok func(decimal.Decimal) bool) error {
	return val.v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		d, found := exactDecimal(fl)
		if !found {
			return false
		}
		return ok(d)
	})
}

// exactDecimal recupera el decimal original desde el struct padre: el campo ya llega
// convertido por decimalValue.
func exactDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	parent := fl.Parent()
	for parent.Kind() == reflect.Ptr && !parent.IsNil() {
		parent = parent.Elem()
	}
	if parent.Kind() == reflect.Struct {
		f := parent.FieldByName(fl.StructFieldName())
		for f.IsValid() && f.Kind() == reflect.Ptr {
			if f.IsNil() {
				return decimal.Decimal{}, false
			}
			f = f.Elem()
		}
		if f.IsValid() && f.CanInterface() {
			if d, ok := f.Interface().(decimal.Decimal); ok {
				return d, true
			}
		}
	}
	if fl.Field().Kind() == reflect.Float64 {
		return decimal.NewFromFloat(fl.Field().Float()), true
	}
	return decimal.Decimal{}, false
}

// Struct valida s y devuelve los campos inválidos (campo -> regla). nil si es válido.
func (val *Validator) Struct(s interface{}) map[string]string {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
