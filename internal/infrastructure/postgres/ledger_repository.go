package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/phonestock-api/internal/domain"
	"github.com/jhoicas/phonestock-api/internal/domain/entity"
	"github.com/jhoicas/phonestock-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// ledgerTable columnas propias de cada tabla de asientos.
type ledgerTable struct {
	name   string
	label  string
	amount string
}

var ledgerTables = map[entity.LedgerKind]ledgerTable{
	entity.LedgerAccount:    {name: "account_balances", label: "account_name", amount: "balance"},
	entity.LedgerReceivable: {name: "balances_to_receive", label: "customer_name", amount: "amount"},
	entity.LedgerExpense:    {name: "expenses", label: "expense_name", amount: "amount"},
}

// LedgerRepo cuentas, saldos por cobrar y gastos: misma forma, tabla según kind.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

func tableFor(kind entity.LedgerKind) (ledgerTable, error) {
	t, ok := ledgerTables[kind]
	if !ok {
		return t, fmt.Errorf("%w: tipo de asiento %q", domain.ErrInvalidInput, kind)
	}
	return t, nil
}

func (t ledgerTable) selectSQL() string {
	return fmt.Sprintf(`SELECT id, %s, %s, created_at, updated_at FROM %s`, t.label, t.amount, t.name)
}

func scanLedgerEntry(row pgx.Row, kind entity.LedgerKind) (*entity.LedgerEntry, error) {
	e := entity.LedgerEntry{Kind: kind}
	if err := row.Scan(&e.ID, &e.Label, &e.Amount, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserta el asiento en la tabla de su tipo.
func (r *LedgerRepo) Create(ctx context.Context, e *entity.LedgerEntry) error {
	t, err := tableFor(e.Kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`INSERT INTO %s (id, %s, %s, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`, t.name, t.label, t.amount)
	if _, err := r.q.Exec(ctx, query, e.ID, e.Label, e.Amount, e.CreatedAt, e.UpdatedAt); err != nil {
		return fmt.Errorf("create %s: %w", t.name, createErr(err))
	}
	return nil
}

// GetByID obtiene un asiento; (nil, nil) si no existe.
func (r *LedgerRepo) GetByID(ctx context.Context, kind entity.LedgerKind, id string) (*entity.LedgerEntry, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	e, err := scanLedgerEntry(r.q.QueryRow(ctx, t.selectSQL()+` WHERE id = $1`, id), kind)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", t.name, err)
	}
	return e, nil
}

// List lista los asientos del tipo, más recientes primero.
func (r *LedgerRepo) List(ctx context.Context, kind entity.LedgerKind) ([]*entity.LedgerEntry, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, t.selectSQL()+` ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.name, err)
	}
	defer rows.Close()
	out := []*entity.LedgerEntry{}
	for rows.Next() {
		e, err := scanLedgerEntry(rows, kind)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.name, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Update reescribe etiqueta y monto.
func (r *LedgerRepo) Update(ctx context.Context, e *entity.LedgerEntry) error {
	t, err := tableFor(e.Kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, updated_at = $4 WHERE id = $1`, t.name, t.label, t.amount)
	tag, err := r.q.Exec(ctx, query, e.ID, e.Label, e.Amount, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update %s: %w", t.name, err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: t.name, ID: e.ID}
	}
	return nil
}

// Delete elimina el asiento.
func (r *LedgerRepo) Delete(ctx context.Context, kind entity.LedgerKind, id string) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, t.name), id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", t.name, err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: t.name, ID: id}
	}
	return nil
}
