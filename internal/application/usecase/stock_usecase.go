package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/phonestock-api/internal/application/dto"
	"github.com/jhoicas/phonestock-api/internal/application/events"
	"github.com/jhoicas/phonestock-api/internal/application/sales"
	"github.com/jhoicas/phonestock-api/internal/domain"
	"github.com/jhoicas/phonestock-api/internal/domain/entity"
	"github.com/jhoicas/phonestock-api/internal/domain/report"
	"github.com/jhoicas/phonestock-api/internal/domain/repository"
	"github.com/jhoicas/phonestock-api/pkg/logger"
	"github.com/jhoicas/phonestock-api/pkg/validator"
)

// StockUseCase CRUD del inventario de teléfonos. Las ventas ajustan cantidades vía sales.Workflow;
// aquí se registran ingresos y correcciones manuales.
type StockUseCase struct {
	repo   repository.StockItemRepository
	locker sales.StockLocker
	pub    events.Publisher
	v      *validator.Validator
	log    *logger.Logger
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(repo repository.StockItemRepository, locker sales.StockLocker, pub events.Publisher, v *validator.Validator, log *logger.Logger) *StockUseCase {
	return &StockUseCase{repo: repo, locker: locker, pub: pub, v: v, log: log.Named("stock")}
}

// Create registra un ingreso de equipos. SalePrice queda en 0 si no se informa.
func (uc *StockUseCase) Create(ctx context.Context, in dto.CreateStockRequest) (*dto.StockItemResponse, error) {
	if err := dto.Validate(uc.v, in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	item := &entity.StockItem{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Quantity:  in.Quantity,
		CostPrice: in.CostPrice,
		SalePrice: decimal.Zero,
		Vendor:    in.Vendor,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.SalePrice != nil {
		item.SalePrice = *in.SalePrice
	}
	if in.PurchaseDate != nil && !in.PurchaseDate.IsZero() {
		d := in.PurchaseDate.Time
		item.PurchaseDate = &d
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("crear ítem de stock: %w", err)
	}
	events.Notify(ctx, uc.pub, uc.log, events.ActionCreated, item.ID, events.CollectionStock)
	out := dto.NewStockItemResponse(item)
	return &out, nil
}

// GetByID devuelve el ítem o *domain.NotFoundError.
func (uc *StockUseCase) GetByID(ctx context.Context, id string) (*dto.StockItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener ítem de stock: %w", err)
	}
	if item == nil {
		return nil, &domain.NotFoundError{Entity: "ítem de stock", ID: id}
	}
	out := dto.NewStockItemResponse(item)
	return &out, nil
}

// List lista el inventario (más recientes primero) con unidades y valor a costo.
func (uc *StockUseCase) List(ctx context.Context, q dto.StockListQuery) (*dto.StockListResponse, error) {
	filter, err := q.ToFilter()
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listar stock: %w", err)
	}
	items := make([]dto.StockItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, dto.NewStockItemResponse(it))
	}
	return &dto.StockListResponse{
		Items:      items,
		TotalUnits: report.TotalStockUnits(list),
		TotalValue: report.TotalStockValue(list),
	}, nil
}

// VendorTotals unidades y valor a costo por proveedor.
func (uc *StockUseCase) VendorTotals(ctx context.Context) ([]dto.VendorTotalResponse, error) {
	list, err := uc.repo.List(ctx, repository.StockFilter{})
	if err != nil {
		return nil, fmt.Errorf("totales por proveedor: %w", err)
	}
	return dto.NewVendorTotals(report.VendorTotals(list)), nil
}

// Update corrige un ítem. Toma el mismo candado que las ventas para no pisar un ajuste en curso.
func (uc *StockUseCase) Update(ctx context.Context, id string, in dto.UpdateStockRequest) (*dto.StockItemResponse, error) {
	if err := dto.Validate(uc.v, in); err != nil {
		return nil, err
	}
	release, err := uc.locker.Lock(ctx, sales.LockKey(id))
	if err != nil {
		return nil, err
	}
	defer release()

	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("editar ítem de stock: %w", err)
	}
	if item == nil {
		return nil, &domain.NotFoundError{Entity: "ítem de stock", ID: id}
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	}
	if in.CostPrice != nil {
		item.CostPrice = *in.CostPrice
	}
	if in.SalePrice != nil {
		item.SalePrice = *in.SalePrice
	}
	if in.Vendor != nil {
		item.Vendor = in.Vendor
	}
	if in.PurchaseDate != nil && !in.PurchaseDate.IsZero() {
		d := in.PurchaseDate.Time
		item.PurchaseDate = &d
	}
	item.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("editar ítem de stock: %w", err)
	}
	events.Notify(ctx, uc.pub, uc.log, events.ActionUpdated, id, events.CollectionStock)
	out := dto.NewStockItemResponse(item)
	return &out, nil
}

// Delete elimina el ítem. Las ventas que lo referencian conservan su stock_item_id.
func (uc *StockUseCase) Delete(ctx context.Context, id string) error {
	release, err := uc.locker.Lock(ctx, sales.LockKey(id))
	if err != nil {
		return err
	}
	defer release()

	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar ítem de stock: %w", err)
	}
	events.Notify(ctx, uc.pub, uc.log, events.ActionDeleted, id, events.CollectionStock)
	return nil
}
