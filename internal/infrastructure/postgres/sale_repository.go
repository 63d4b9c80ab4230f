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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre la tabla sales.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, stock_item_id, item_name, quantity, unit_cost, unit_price, extra_expenses, profit,
	customer_name, vendor, sale_date, payment_status, notes, created_at, updated_at`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var (
		s       entity.Sale
		vendor  *string
		payment string
	)
	err := row.Scan(
		&s.ID, &s.StockItemID, &s.ItemName, &s.Quantity, &s.UnitCost, &s.UnitPrice, &s.ExtraExpenses, &s.Profit,
		&s.CustomerName, &vendor, &s.SaleDate, &payment, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Vendor = vendorFrom(vendor)
	s.PaymentStatus = entity.PaymentStatus(payment)
	return &s, nil
}

// Create inserta la venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.StockItemID, s.ItemName, s.Quantity, s.UnitCost, s.UnitPrice, s.ExtraExpenses, s.Profit,
		s.CustomerName, vendorArg(s.Vendor), s.SaleDate, string(s.PaymentStatus), s.Notes, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create sale: %w", createErr(err))
	}
	return nil
}

func (r *SaleRepo) get(ctx context.Context, query, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

// GetByID obtiene una venta; (nil, nil) si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := r.get(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene la venta y bloquea la fila.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := r.get(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		return nil, fmt.Errorf("get sale for update: %w", err)
	}
	return s, nil
}

// List lista ventas filtradas por estado de pago, proveedor, rango de fechas e ítem.
func (r *SaleRepo) List(ctx context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if filter.PaymentStatus != nil {
		add("payment_status = $%d", string(*filter.PaymentStatus))
	}
	if filter.Vendor != nil {
		add("vendor = $%d", string(*filter.Vendor))
	}
	if filter.From != nil {
		add("sale_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("sale_date <= $%d", *filter.To)
	}
	if filter.StockItemID != nil {
		add("stock_item_id = $%d", *filter.StockItemID)
	}
	query := `SELECT ` + saleColumns + ` FROM sales`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY sale_date DESC, created_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	out := []*entity.Sale{}
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update reescribe los campos editables. stock_item_id y created_at no cambian.
func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	query := `
		UPDATE sales
		SET item_name = $2, quantity = $3, unit_cost = $4, unit_price = $5, extra_expenses = $6, profit = $7,
		    customer_name = $8, vendor = $9, sale_date = $10, payment_status = $11, notes = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.ItemName, s.Quantity, s.UnitCost, s.UnitPrice, s.ExtraExpenses, s.Profit,
		s.CustomerName, vendorArg(s.Vendor), s.SaleDate, string(s.PaymentStatus), s.Notes, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "venta", ID: s.ID}
	}
	return nil
}

// Delete elimina la venta.
func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "venta", ID: id}
	}
	return nil
}
