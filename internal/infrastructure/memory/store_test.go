package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/phonestock-api/internal/domain"
	"github.com/jhoicas/phonestock-api/internal/domain/entity"
	"github.com/jhoicas/phonestock-api/internal/domain/repository"
	"github.com/jhoicas/phonestock-api/internal/infrastructure/memory"
)

func item(id string, qty int, created time.Time) *entity.StockItem {
	return &entity.StockItem{ID: id, Name: "iPhone 13", Quantity: qty, CostPrice: decimal.NewFromInt(500), CreatedAt: created, UpdatedAt: created}
}

func TestRun_RollbackDescartaEscrituras(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	boom := errors.New("boom")

	err := s.Run(ctx, func(scope repository.TxScope) error {
		require.NoError(t, scope.StockItems().Create(ctx, item("p-1", 3, time.Now())))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.StockItems().GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSavepoint_FalloSoloDeshaceSuAlcance(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.StockItems().Create(ctx, item("p-1", 3, time.Now())))

	err := s.Run(ctx, func(scope repository.TxScope) error {
		require.NoError(t, scope.Sales().Create(ctx, &entity.Sale{ID: "s-1", Quantity: 1, SaleDate: time.Now()}))
		spErr := scope.Savepoint(ctx, func(sp repository.TxScope) error {
			require.NoError(t, sp.StockItems().UpdateQuantity(ctx, "p-1", 2))
			return errors.New("falla")
		})
		assert.Error(t, spErr)
		return nil
	})
	require.NoError(t, err)

	sale, _ := s.Sales().GetByID(ctx, "s-1")
	assert.NotNil(t, sale, "la venta se confirma")
	it, _ := s.StockItems().GetByID(ctx, "p-1")
	assert.Equal(t, 3, it.Quantity, "el ajuste del savepoint se deshace")
}

func TestFailStockWrites(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.StockItems().Create(ctx, item("p-1", 3, time.Now())))

	fault := errors.New("disco lleno")
	s.FailStockWrites(fault)
	assert.ErrorIs(t, s.StockItems().UpdateQuantity(ctx, "p-1", 1), fault)
	assert.ErrorIs(t, s.StockItems().Delete(ctx, "p-1"), fault)

	s.FailStockWrites(nil)
	assert.NoError(t, s.StockItems().UpdateQuantity(ctx, "p-1", 1))
}

func TestStockList_OrdenYFiltro(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	web := entity.VendorWebsite
	old := item("p-old", 2, base)
	old.Vendor = &web
	require.NoError(t, s.StockItems().Create(ctx, old))
	require.NoError(t, s.StockItems().Create(ctx, item("p-new", 0, base.Add(time.Hour))))

	all, err := s.StockItems().List(ctx, repository.StockFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "p-new", all[0].ID)

	inStock, err := s.StockItems().List(ctx, repository.StockFilter{InStockOnly: true})
	require.NoError(t, err)
	require.Len(t, inStock, 1)
	assert.Equal(t, "p-old", inStock[0].ID)

	byVendor, err := s.StockItems().List(ctx, repository.StockFilter{Vendor: &web})
	require.NoError(t, err)
	assert.Len(t, byVendor, 1)
}

func TestStock_DevuelveCopias(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.StockItems().Create(ctx, item("p-1", 3, time.Now())))

	got, _ := s.StockItems().GetByID(ctx, "p-1")
	got.Quantity = 99

	again, _ := s.StockItems().GetByID(ctx, "p-1")
	assert.Equal(t, 3, again.Quantity)
}

func TestLedger_CRUDPorTipo(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Ledger()
	e := &entity.LedgerEntry{ID: "a-1", Kind: entity.LedgerAccount, Label: "Banco", Amount: decimal.NewFromInt(100)}
	require.NoError(t, repo.Create(ctx, e))

	other, err := repo.GetByID(ctx, entity.LedgerExpense, "a-1")
	require.NoError(t, err)
	assert.Nil(t, other, "cada tipo vive en su propia colección")

	e.Amount = decimal.NewFromInt(150)
	require.NoError(t, repo.Update(ctx, e))
	list, err := repo.List(ctx, entity.LedgerAccount)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Amount.Equal(decimal.NewFromInt(150)))

	require.NoError(t, repo.Delete(ctx, entity.LedgerAccount, "a-1"))
	assert.ErrorIs(t, repo.Delete(ctx, entity.LedgerAccount, "a-1"), domain.ErrNotFound)
}
