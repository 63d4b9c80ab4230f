package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/phonestock-api/internal/application/dto"
	"github.com/jhoicas/phonestock-api/internal/application/events"
	"github.com/jhoicas/phonestock-api/internal/application/usecase"
	"github.com/jhoicas/phonestock-api/internal/domain"
	"github.com/jhoicas/phonestock-api/internal/domain/entity"
	"github.com/jhoicas/phonestock-api/internal/infrastructure/memory"
	"github.com/jhoicas/phonestock-api/pkg/logger"
)

func newStockUseCase() (*usecase.StockUseCase, *events.Bus) {
	store := memory.NewStore()
	bus := events.NewBus()
	return usecase.NewStockUseCase(store.StockItems(), memory.NewLocker(time.Second), bus, dto.NewValidator(), logger.Nop()), bus
}

func TestStock_CreateSinPrecioDeVenta(t *testing.T) {
	uc, _ := newStockUseCase()
	anees := entity.VendorAnees

	out, err := uc.Create(context.Background(), dto.CreateStockRequest{
		Name:      "Samsung A54",
		Quantity:  4,
		CostPrice: decimal.NewFromInt(250),
		Vendor:    &anees,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.True(t, out.SalePrice.IsZero())
	assert.True(t, out.Value.Equal(decimal.NewFromInt(1000)))
}

func TestStock_ValidacionYNoEncontrado(t *testing.T) {
	uc, _ := newStockUseCase()
	ctx := context.Background()
	acme := entity.Vendor("Acme")

	_, err := uc.Create(ctx, dto.CreateStockRequest{Name: "", Quantity: -1, CostPrice: decimal.NewFromInt(-5), Vendor: &acme})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 4)

	_, err = uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Update(ctx, "nope", dto.UpdateStockRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "nope"), domain.ErrNotFound)
}

func TestStock_UpdateListYTotales(t *testing.T) {
	uc, bus := newStockUseCase()
	ctx := context.Background()
	web := entity.VendorWebsite
	created, err := uc.Create(ctx, dto.CreateStockRequest{Name: "Pixel 8", Quantity: 2, CostPrice: decimal.NewFromInt(400), Vendor: &web})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateStockRequest{Name: "Pixel 6", Quantity: 0, CostPrice: decimal.NewFromInt(100)})
	require.NoError(t, err)

	ch, cancel := bus.Subscribe(1)
	defer cancel()
	price := decimal.NewFromInt(520)
	qty := 3
	updated, err := uc.Update(ctx, created.ID, dto.UpdateStockRequest{SalePrice: &price, Quantity: &qty})
	require.NoError(t, err)
	assert.True(t, updated.SalePrice.Equal(price))
	change := <-ch
	assert.Equal(t, []string{events.CollectionStock}, change.Collections)

	list, err := uc.List(ctx, dto.StockListQuery{InStock: true})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 3, list.TotalUnits)
	assert.True(t, list.TotalValue.Equal(decimal.NewFromInt(1200)))

	totals, err := uc.VendorTotals(ctx)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, entity.VendorWebsite, totals[0].Vendor)

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedger_CRUD(t *testing.T) {
	uc := usecase.NewLedgerUseCase(memory.NewStore().Ledger(), events.NewBus(), dto.NewValidator(), logger.Nop())
	ctx := context.Background()

	a, err := uc.Create(ctx, entity.LedgerExpense, dto.LedgerEntryRequest{Label: "Envío", Amount: decimal.NewFromInt(30)})
	require.NoError(t, err)
	_, err = uc.Create(ctx, entity.LedgerExpense, dto.LedgerEntryRequest{Label: "Local", Amount: decimal.NewFromInt(70)})
	require.NoError(t, err)

	list, err := uc.List(ctx, entity.LedgerExpense)
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.True(t, list.Total.Equal(decimal.NewFromInt(100)))

	amount := decimal.NewFromInt(45)
	up, err := uc.Update(ctx, entity.LedgerExpense, a.ID, dto.UpdateLedgerEntryRequest{Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, "Envío", up.Label)
	assert.True(t, up.Amount.Equal(amount))

	require.NoError(t, uc.Delete(ctx, entity.LedgerExpense, a.ID))
	_, err = uc.GetByID(ctx, entity.LedgerExpense, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedger_Validacion(t *testing.T) {
	uc := usecase.NewLedgerUseCase(memory.NewStore().Ledger(), nil, dto.NewValidator(), logger.Nop())
	ctx := context.Background()

	_, err := uc.Create(ctx, entity.LedgerKind("loan"), dto.LedgerEntryRequest{Label: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, entity.LedgerAccount, dto.LedgerEntryRequest{Label: "", Amount: decimal.NewFromInt(-1)})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"label": "required", "amount": "gte"}, verr.Fields)
}

func TestMontos_StockYLedgerRechazanFraccionesDeCentavo(t *testing.T) {
	ctx := context.Background()
	stock, _ := newStockUseCase()
	var verr *domain.ValidationError

	_, err := stock.Create(ctx, dto.CreateStockRequest{Name: "Pixel 8", Quantity: 1, CostPrice: decimal.RequireFromString("199.999")})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"cost_price": "money"}, verr.Fields)

	item, err := stock.Create(ctx, dto.CreateStockRequest{Name: "Pixel 8", Quantity: 1, CostPrice: decimal.RequireFromString("199.90")})
	require.NoError(t, err)
	price := decimal.RequireFromString("249.995")
	_, err = stock.Update(ctx, item.ID, dto.UpdateStockRequest{SalePrice: &price})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "money", verr.Fields["sale_price"])

	ledger := usecase.NewLedgerUseCase(memory.NewStore().Ledger(), nil, dto.NewValidator(), logger.Nop())
	_, err = ledger.Create(ctx, entity.LedgerReceivable, dto.LedgerEntryRequest{Label: "Cliente", Amount: decimal.RequireFromString("10.015")})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"amount": "money"}, verr.Fields)
}
