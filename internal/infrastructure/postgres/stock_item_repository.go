package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/phonestock-api/internal/domain"
	"github.com/jhoicas/phonestock-api/internal/domain/entity"
	"github.com/jhoicas/phonestock-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementación de StockItemRepository sobre phones_stock (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockColumns = `id, name, quantity, cost_price, sale_price, vendor, purchase_date, created_at, updated_at`

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var (
		it     entity.StockItem
		vendor *string
	)
	if err := row.Scan(&it.ID, &it.Name, &it.Quantity, &it.CostPrice, &it.SalePrice, &vendor, &it.PurchaseDate, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	it.Vendor = vendorFrom(vendor)
	return &it, nil
}

// Create inserta el ítem. Acepta un id existente (recreación tras agotarse).
func (r *StockItemRepo) Create(ctx context.Context, it *entity.StockItem) error {
	query := `
		INSERT INTO phones_stock (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.Name, it.Quantity, it.CostPrice, it.SalePrice, vendorArg(it.Vendor), it.PurchaseDate, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock item: %w", createErr(err))
	}
	return nil
}

func (r *StockItemRepo) get(ctx context.Context, query, id string) (*entity.StockItem, error) {
	it, err := scanStockItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return it, nil
}

// GetByID obtiene un ítem; (nil, nil) si no existe.
func (r *StockItemRepo) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	it, err := r.get(ctx, `SELECT `+stockColumns+` FROM phones_stock WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return it, nil
}

// GetForUpdate obtiene el ítem y bloquea la fila (SELECT FOR UPDATE).
func (r *StockItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	it, err := r.get(ctx, `SELECT `+stockColumns+` FROM phones_stock WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		return nil, fmt.Errorf("get stock item for update: %w", err)
	}
	return it, nil
}

// List lista el inventario filtrado, más recientes primero.
func (r *StockItemRepo) List(ctx context.Context, filter repository.StockFilter) ([]*entity.StockItem, error) {
	var (
		where []string
		args  []any
	)
	if filter.Vendor != nil {
		args = append(args, string(*filter.Vendor))
		where = append(where, fmt.Sprintf("vendor = $%d", len(args)))
	}
	if filter.InStockOnly {
		where = append(where, "quantity > 0")
	}
	query := `SELECT ` + stockColumns + ` FROM phones_stock`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	out := []*entity.StockItem{}
	for rows.Next() {
		it, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Update reescribe el ítem completo.
func (r *StockItemRepo) Update(ctx context.Context, it *entity.StockItem) error {
	query := `
		UPDATE phones_stock
		SET name = $2, quantity = $3, cost_price = $4, sale_price = $5, vendor = $6, purchase_date = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, it.ID, it.Name, it.Quantity, it.CostPrice, it.SalePrice, vendorArg(it.Vendor), it.PurchaseDate, it.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "ítem de stock", ID: it.ID}
	}
	return nil
}

// UpdateQuantity fija la cantidad del ítem.
func (r *StockItemRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	tag, err := r.q.Exec(ctx, `UPDATE phones_stock SET quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("update stock quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "ítem de stock", ID: id}
	}
	return nil
}

// Delete elimina el ítem. sales.stock_item_id no tiene FK: las ventas quedan intactas.
func (r *StockItemRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM phones_stock WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "ítem de stock", ID: id}
	}
	return nil
}
