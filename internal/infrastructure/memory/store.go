// Package memory implementa los repositorios sobre mapas en memoria (STORE_DRIVER=memory y tests).
// Las transacciones trabajan sobre una copia del estado que se publica al confirmar.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/phonestock-api/internal/domain/entity"
	"github.com/jhoicas/phonestock-api/internal/domain/repository"
)

type state struct {
	stock  map[string]*entity.StockItem
	sales  map[string]*entity.Sale
	ledger map[entity.LedgerKind]map[string]*entity.LedgerEntry
}

func newState() *state {
	st := &state{
		stock:  make(map[string]*entity.StockItem),
		sales:  make(map[string]*entity.Sale),
		ledger: make(map[entity.LedgerKind]map[string]*entity.LedgerEntry, len(entity.LedgerKinds)),
	}
	for _, k := range entity.LedgerKinds {
		st.ledger[k] = make(map[string]*entity.LedgerEntry)
	}
	return st
}

// clone copia los mapas; las entidades son inmutables dentro del store (se reemplazan, no se mutan).
func (st *state) clone() *state {
	c := &state{
		stock:  make(map[string]*entity.StockItem, len(st.stock)),
		sales:  make(map[string]*entity.Sale, len(st.sales)),
		ledger: make(map[entity.LedgerKind]map[string]*entity.LedgerEntry, len(st.ledger)),
	}
	for id, it := range st.stock {
		c.stock[id] = it
	}
	for id, s := range st.sales {
		c.sales[id] = s
	}
	for k, m := range st.ledger {
		cm := make(map[string]*entity.LedgerEntry, len(m))
		for id, e := range m {
			cm[id] = e
		}
		c.ledger[k] = cm
	}
	return c
}

// view acceso al estado: directo al store (con su mutex) o a la copia de una transacción.
type view interface {
	read(fn func(st *state) error) error
	write(fn func(st *state) error) error
	stockFault() error
}

// Store estado compartido. Mientras una transacción está abierta las demás operaciones esperan.
type Store struct {
	mu sync.RWMutex
	st *state

	faultMu    sync.Mutex
	stockError error
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// FailStockWrites hace que toda escritura sobre phones_stock devuelva err (nil la desactiva).
// Permite simular un ajuste de stock fallido tras guardar la venta.
func (s *Store) FailStockWrites(err error) {
	s.faultMu.Lock()
	s.stockError = err
	s.faultMu.Unlock()
}

func (s *Store) stockFault() error {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	return s.stockError
}

func (s *Store) read(fn func(st *state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

func (s *Store) write(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// StockItems repositorio de phones_stock fuera de transacción.
func (s *Store) StockItems() repository.StockItemRepository { return &stockRepo{v: s} }

// Sales repositorio de sales fuera de transacción.
func (s *Store) Sales() repository.SaleRepository { return &saleRepo{v: s} }

// Ledger repositorio de cuentas, saldos por cobrar y gastos.
func (s *Store) Ledger() repository.LedgerRepository { return &ledgerRepo{v: s} }

// Run ejecuta fn sobre una copia del estado y la publica si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(scope repository.TxScope) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	scope := &txScope{store: s, st: s.st.clone()}
	if err := fn(scope); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = scope.st
	return nil
}

type txScope struct {
	store *Store
	st    *state
}

var _ repository.TxScope = (*txScope)(nil)

func (t *txScope) read(fn func(st *state) error) error  { return fn(t.st) }
func (t *txScope) write(fn func(st *state) error) error { return fn(t.st) }
func (t *txScope) stockFault() error                    { return t.store.stockFault() }

func (t *txScope) StockItems() repository.StockItemRepository { return &stockRepo{v: t} }
func (t *txScope) Sales() repository.SaleRepository           { return &saleRepo{v: t} }

// Savepoint trabaja sobre otra copia; solo se incorpora al alcance si fn termina bien.
func (t *txScope) Savepoint(ctx context.Context, fn func(scope repository.TxScope) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	child := &txScope{store: t.store, st: t.st.clone()}
	if err := fn(child); err != nil {
		return err
	}
	t.st = child.st
	return nil
}
