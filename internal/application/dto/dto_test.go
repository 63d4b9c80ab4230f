package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/phonestock-api/internal/application/dto"
	"github.com/jhoicas/phonestock-api/internal/domain"
	"github.com/jhoicas/phonestock-api/internal/domain/entity"
)

func TestDate_AceptaFechaYRFC3339(t *testing.T) {
	var body struct {
		A dto.Date  `json:"a"`
		B dto.Date  `json:"b"`
		C *dto.Date `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"2024-05-01","b":"2024-05-02T10:00:00Z","c":null}`), &body))

	assert.Equal(t, "2024-05-01", body.A.Format(dto.DateLayout))
	assert.Equal(t, "2024-05-02", body.B.Format(dto.DateLayout))
	assert.Nil(t, body.C)

	out, err := json.Marshal(dto.NewDate(time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, `"2024-05-01"`, string(out))
}

func TestSaleListQuery_ToFilter(t *testing.T) {
	f, err := dto.SaleListQuery{PaymentStatus: "pending", Vendor: "Website", From: "2024-05-01", To: "2024-05-31"}.ToFilter()
	require.NoError(t, err)

	require.NotNil(t, f.PaymentStatus)
	assert.Equal(t, entity.PaymentPending, *f.PaymentStatus)
	require.NotNil(t, f.Vendor)
	assert.Equal(t, entity.VendorWebsite, *f.Vendor)
	require.NotNil(t, f.To)
	assert.True(t, f.Matches(&entity.Sale{
		PaymentStatus: entity.PaymentPending,
		Vendor:        f.Vendor,
		SaleDate:      time.Date(2024, 5, 31, 18, 0, 0, 0, time.UTC),
	}), "to es inclusivo durante todo el día")
}

func TestSaleListQuery_AllNoFiltra(t *testing.T) {
	f, err := dto.SaleListQuery{PaymentStatus: "all", Vendor: "all"}.ToFilter()
	require.NoError(t, err)
	assert.Nil(t, f.PaymentStatus)
	assert.Nil(t, f.Vendor)
}

func TestSaleListQuery_Invalida(t *testing.T) {
	_, err := dto.SaleListQuery{PaymentStatus: "refunded", Vendor: "Acme", From: "ayer"}.ToFilter()

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"payment_status": "payment_status", "vendor": "vendor", "from": "date"}, verr.Fields)
}

func TestValidate_CreateSaleRequest(t *testing.T) {
	v := dto.NewValidator()
	acme := entity.Vendor("Acme")

	err := dto.Validate(v, dto.CreateSaleRequest{Quantity: 0, Vendor: &acme, PaymentStatus: "refunded"})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "required_without", verr.Fields["item_name"])
	assert.Equal(t, "min", verr.Fields["quantity"])
	assert.Equal(t, "vendor", verr.Fields["vendor"])
	assert.Equal(t, "payment_status", verr.Fields["payment_status"])
}

func TestValidate_ConStockNoExigeNombreNiCosto(t *testing.T) {
	v := dto.NewValidator()
	id := "p-1"
	assert.NoError(t, dto.Validate(v, dto.CreateSaleRequest{StockItemID: &id, Quantity: 1}))
}
