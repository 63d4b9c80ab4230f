package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/phonestock-api/internal/domain"
	"github.com/jhoicas/phonestock-api/internal/domain/entity"
	"github.com/jhoicas/phonestock-api/internal/domain/repository"
)

type stockRepo struct {
	v view
}

var _ repository.StockItemRepository = (*stockRepo)(nil)

func (r *stockRepo) Create(_ context.Context, item *entity.StockItem) error {
	if err := r.v.stockFault(); err != nil {
		return err
	}
	return r.v.write(func(st *state) error {
		if _, ok := st.stock[item.ID]; ok {
			return domain.ErrDuplicate
		}
		st.stock[item.ID] = item.Clone()
		return nil
	})
}

func (r *stockRepo) GetByID(_ context.Context, id string) (*entity.StockItem, error) {
	var out *entity.StockItem
	err := r.v.read(func(st *state) error {
		out = st.stock[id].Clone()
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: la transacción ya tiene el store en exclusiva.
func (r *stockRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	return r.GetByID(ctx, id)
}

func (r *stockRepo) List(_ context.Context, filter repository.StockFilter) ([]*entity.StockItem, error) {
	out := []*entity.StockItem{}
	err := r.v.read(func(st *state) error {
		for _, it := range st.stock {
			if filter.Matches(it) {
				out = append(out, it.Clone())
			}
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

func (r *stockRepo) Update(_ context.Context, item *entity.StockItem) error {
	if err := r.v.stockFault(); err != nil {
		return err
	}
	return r.v.write(func(st *state) error {
		if _, ok := st.stock[item.ID]; !ok {
			return &domain.NotFoundError{Entity: "ítem de stock", ID: item.ID}
		}
		st.stock[item.ID] = item.Clone()
		return nil
	})
}

func (r *stockRepo) UpdateQuantity(_ context.Context, id string, quantity int) error {
	if err := r.v.stockFault(); err != nil {
		return err
	}
	return r.v.write(func(st *state) error {
		cur, ok := st.stock[id]
		if !ok {
			return &domain.NotFoundError{Entity: "ítem de stock", ID: id}
		}
		next := cur.Clone()
		next.Quantity = quantity
		next.UpdatedAt = time.Now().UTC()
		st.stock[id] = next
		return nil
	})
}

func (r *stockRepo) Delete(_ context.Context, id string) error {
	if err := r.v.stockFault(); err != nil {
		return err
	}
	return r.v.write(func(st *state) error {
		if _, ok := st.stock[id]; !ok {
			return &domain.NotFoundError{Entity: "ítem de stock", ID: id}
		}
		delete(st.stock, id)
		return nil
	})
}
