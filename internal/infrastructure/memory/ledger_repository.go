package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/phonestock-api/internal/domain"
	"github.com/jhoicas/phonestock-api/internal/domain/entity"
	"github.com/jhoicas/phonestock-api/internal/domain/repository"
)

type ledgerRepo struct {
	v view
}

var _ repository.LedgerRepository = (*ledgerRepo)(nil)

func collection(st *state, kind entity.LedgerKind) (map[string]*entity.LedgerEntry, error) {
	m, ok := st.ledger[kind]
	if !ok {
		return nil, fmt.Errorf("%w: tipo de asiento %q", domain.ErrInvalidInput, kind)
	}
	return m, nil
}

func (r *ledgerRepo) Create(_ context.Context, e *entity.LedgerEntry) error {
	return r.v.write(func(st *state) error {
		m, err := collection(st, e.Kind)
		if err != nil {
			return err
		}
		if _, ok := m[e.ID]; ok {
			return domain.ErrDuplicate
		}
		c := *e
		m[e.ID] = &c
		return nil
	})
}

func (r *ledgerRepo) GetByID(_ context.Context, kind entity.LedgerKind, id string) (*entity.LedgerEntry, error) {
	var out *entity.LedgerEntry
	err := r.v.read(func(st *state) error {
		m, err := collection(st, kind)
		if err != nil {
			return err
		}
		if e, ok := m[id]; ok {
			c := *e
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *ledgerRepo) List(_ context.Context, kind entity.LedgerKind) ([]*entity.LedgerEntry, error) {
	out := []*entity.LedgerEntry{}
	err := r.v.read(func(st *state) error {
		m, err := collection(st, kind)
		if err != nil {
			return err
		}
		for _, e := range m {
			c := *e
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, err
}

func (r *ledgerRepo) Update(_ context.Context, e *entity.LedgerEntry) error {
	return r.v.write(func(st *state) error {
		m, err := collection(st, e.Kind)
		if err != nil {
			return err
		}
		if _, ok := m[e.ID]; !ok {
			return &domain.NotFoundError{Entity: e.Kind.Collection(), ID: e.ID}
		}
		c := *e
		m[e.ID] = &c
		return nil
	})
}

func (r *ledgerRepo) Delete(_ context.Context, kind entity.LedgerKind, id string) error {
	return r.v.write(func(st *state) error {
		m, err := collection(st, kind)
		if err != nil {
			return err
		}
		if _, ok := m[id]; !ok {
			return &domain.NotFoundError{Entity: kind.Collection(), ID: id}
		}
		delete(m, id)
		return nil
	})
}
