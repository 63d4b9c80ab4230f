package dto

import (
	"strings"
	"time"
)

// DateLayout formato de fechas de calendario (sale_date, purchase_date, filtros).
const DateLayout = "2006-01-02"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// WarningResponse aviso no fatal adjunto a una respuesta exitosa (p.ej. stock desfasado).
type WarningResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Date fecha de calendario en JSON. Acepta "2006-01-02" o RFC3339; serializa como "2006-01-02".
type Date struct {
	time.Time
}

// NewDate normaliza t a medianoche UTC.
func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// UnmarshalJSON implementa json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// MarshalJSON implementa json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// ParseDate interpreta "2006-01-02" o RFC3339.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func datePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	d := NewDate(*t)
	return &d
}
