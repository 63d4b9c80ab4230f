package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/phonestock-api/internal/domain"
	"github.com/jhoicas/phonestock-api/internal/domain/entity"
)

// Querier lo que los repositorios necesitan de pgx; lo cumplen *pgxpool.Pool y pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// createErr traduce la violación de unicidad a domain.ErrDuplicate.
func createErr(err error) error {
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return err
}

func vendorArg(v *entity.Vendor) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func vendorFrom(s *string) *entity.Vendor {
	if s == nil || *s == "" {
		return nil
	}
	v := entity.Vendor(*s)
	return &v
}
