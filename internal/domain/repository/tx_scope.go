package repository

import "context"

// TxScope repositorios atados a una transacción abierta.
type TxScope interface {
	StockItems() StockItemRepository
	Sales() SaleRepository
	// Savepoint ejecuta fn en un sub-alcance: si fn falla solo se deshacen sus escrituras
	// y la transacción exterior sigue viva.
	Savepoint(ctx context.Context, fn func(scope TxScope) error) error
}
