package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/phonestock-api/internal/domain/repository"
)

// Store reúne los repositorios sobre el pool y abre transacciones.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore construye el store con el pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// StockItems repositorio de phones_stock fuera de transacción.
func (s *Store) StockItems() repository.StockItemRepository { return NewStockItemRepository(s.pool) }

// Sales repositorio de sales fuera de transacción.
func (s *Store) Sales() repository.SaleRepository { return NewSaleRepository(s.pool) }

// Ledger repositorio de account_balances, balances_to_receive y expenses.
func (s *Store) Ledger() repository.LedgerRepository { return NewLedgerRepository(s.pool) }

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (s *Store) Run(ctx context.Context, fn func(scope repository.TxScope) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&txScope{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type txScope struct {
	tx pgx.Tx
}

var _ repository.TxScope = (*txScope)(nil)

func (t *txScope) StockItems() repository.StockItemRepository { return NewStockItemRepository(t.tx) }
func (t *txScope) Sales() repository.SaleRepository           { return NewSaleRepository(t.tx) }

// Savepoint usa una tx anidada de pgx (SAVEPOINT / ROLLBACK TO SAVEPOINT).
func (t *txScope) Savepoint(ctx context.Context, fn func(scope repository.TxScope) error) error {
	sp, err := t.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("savepoint: %w", err)
	}
	if err := fn(&txScope{tx: sp}); err != nil {
		_ = sp.Rollback(ctx)
		return err
	}
	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("release savepoint: %w", err)
	}
	return nil
}
