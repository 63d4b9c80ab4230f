package repository

import (
	"context"

	"github.com/jhoicas/phonestock-api/internal/domain/entity"
)

// LedgerRepository CRUD de cuentas, saldos por cobrar y gastos. El kind selecciona la colección.
type LedgerRepository interface {
	Create(ctx context.Context, entry *entity.LedgerEntry) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, kind entity.LedgerKind, id string) (*entity.LedgerEntry, error)
	List(ctx context.Context, kind entity.LedgerKind) ([]*entity.LedgerEntry, error)
	Update(ctx context.Context, entry *entity.LedgerEntry) error
	Delete(ctx context.Context, kind entity.LedgerKind, id string) error
}
