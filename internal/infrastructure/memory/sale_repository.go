package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/phonestock-api/internal/domain"
	"github.com/jhoicas/phonestock-api/internal/domain/entity"
	"github.com/jhoicas/phonestock-api/internal/domain/repository"
)

type saleRepo struct {
	v view
}

var _ repository.SaleRepository = (*saleRepo)(nil)

func (r *saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.sales[sale.ID]; ok {
			return domain.ErrDuplicate
		}
		st.sales[sale.ID] = sale.Clone()
		return nil
	})
}

func (r *saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.v.read(func(st *state) error {
		out = st.sales[id].Clone()
		return nil
	})
	return out, err
}

func (r *saleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *saleRepo) List(_ context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	out := []*entity.Sale{}
	err := r.v.read(func(st *state) error {
		for _, s := range st.sales {
			if filter.Matches(s) {
				out = append(out, s.Clone())
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].SaleDate.Equal(out[j].SaleDate) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].SaleDate.After(out[j].SaleDate)
	})
	return out, err
}

func (r *saleRepo) Update(_ context.Context, sale *entity.Sale) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.sales[sale.ID]; !ok {
			return &domain.NotFoundError{Entity: "venta", ID: sale.ID}
		}
		st.sales[sale.ID] = sale.Clone()
		return nil
	})
}

func (r *saleRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.sales[id]; !ok {
			return &domain.NotFoundError{Entity: "venta", ID: id}
		}
		delete(st.sales, id)
		return nil
	})
}
