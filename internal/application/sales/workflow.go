package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/phonestock-api/internal/application/dto"
	"github.com/jhoicas/phonestock-api/internal/application/events"
	"github.com/jhoicas/phonestock-api/internal/domain"
	"github.com/jhoicas/phonestock-api/internal/domain/entity"
	"github.com/jhoicas/phonestock-api/internal/domain/report"
	"github.com/jhoicas/phonestock-api/internal/domain/repository"
	domainsales "github.com/jhoicas/phonestock-api/internal/domain/sales"
	"github.com/jhoicas/phonestock-api/pkg/logger"
	"github.com/jhoicas/phonestock-api/pkg/validator"
)

// StockEffect efecto de una operación de venta sobre el inventario.
type StockEffect string

const (
	EffectNone        StockEffect = "none"
	EffectDecremented StockEffect = "decremented"
	EffectSoldOut     StockEffect = "sold_out" // el ítem llegó a 0 y se eliminó
	EffectIncremented StockEffect = "incremented"
	EffectRecreated   StockEffect = "recreated" // el ítem no existía y se volvió a crear
)

// Result venta persistida y su efecto en stock.
// Warning != nil indica que la venta quedó guardada pero el ajuste de stock falló.
type Result struct {
	Sale          *entity.Sale
	StockEffect   StockEffect
	StockQuantity *int
	Warning       *domain.CompensationError
}

// Response mapea el resultado a su salida HTTP.
func (r *Result) Response() dto.SaleResultResponse {
	out := dto.SaleResultResponse{
		Sale:          dto.NewSaleResponse(r.Sale),
		StockEffect:   string(r.StockEffect),
		StockQuantity: r.StockQuantity,
	}
	if r.Warning != nil {
		out.Warning = &dto.WarningResponse{Code: "STOCK_ADJUSTMENT_FAILED", Message: r.Warning.Error()}
	}
	return out
}

// Workflow mantiene ventas e inventario consistentes: cada alta, edición o baja de una venta
// enlazada ajusta el ítem de stock bajo candado y en la misma transacción.
type Workflow struct {
	tx     TxRunner
	sales  repository.SaleRepository
	locker StockLocker
	pub    events.Publisher
	v      *validator.Validator
	log    *logger.Logger
	now    func() time.Time
}

// NewWorkflow construye el motor de ventas. sales es el repositorio fuera de transacción (lecturas).
func NewWorkflow(tx TxRunner, sales repository.SaleRepository, locker StockLocker, pub events.Publisher, v *validator.Validator, log *logger.Logger) *Workflow {
	return &Workflow{
		tx:     tx,
		sales:  sales,
		locker: locker,
		pub:    pub,
		v:      v,
		log:    log.Named("sales"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// stockPlan ajuste de stock decidido antes de escribir.
type stockPlan struct {
	effect    StockEffect
	itemID    string
	remaining int               // cantidad final del ítem
	recreate  *entity.StockItem // ítem a recrear (EffectRecreated)
}

func (p stockPlan) op() string {
	switch p.effect {
	case EffectDecremented:
		return "decrement"
	case EffectSoldOut:
		return "delete"
	case EffectIncremented:
		return "increment"
	case EffectRecreated:
		return "recreate"
	}
	return "none"
}

// apply ejecuta el plan con los repositorios del alcance dado.
func (p stockPlan) apply(ctx context.Context, stock repository.StockItemRepository) error {
	switch p.effect {
	case EffectDecremented, EffectIncremented:
		return stock.UpdateQuantity(ctx, p.itemID, p.remaining)
	case EffectSoldOut:
		return stock.Delete(ctx, p.itemID)
	case EffectRecreated:
		return stock.Create(ctx, p.recreate)
	}
	return nil
}

// CreateSale registra una venta. Con stock_item_id descuenta las unidades del ítem y lo elimina
// si queda en 0; sin él solo guarda la venta.
func (w *Workflow) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*Result, error) {
	if err := w.validateCreate(in); err != nil {
		return nil, err
	}

	now := w.now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		ItemName:      in.ItemName,
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		ExtraExpenses: in.ExtraExpenses,
		CustomerName:  in.CustomerName,
		Vendor:        in.Vendor,
		SaleDate:      now,
		PaymentStatus: in.PaymentStatus,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.UnitCost != nil {
		sale.UnitCost = *in.UnitCost
	}
	if in.SaleDate != nil && !in.SaleDate.IsZero() {
		sale.SaleDate = in.SaleDate.Time
	}
	if sale.PaymentStatus == "" {
		sale.PaymentStatus = entity.PaymentPaid
	}

	if in.StockItemID == nil {
		sale.Profit = domainsales.Profit(sale.UnitPrice, sale.UnitCost, sale.Quantity, sale.ExtraExpenses)
		err := w.tx.Run(ctx, func(scope repository.TxScope) error {
			return scope.Sales().Create(ctx, sale)
		})
		if err != nil {
			return nil, fmt.Errorf("crear venta: %w", err)
		}
		w.notify(ctx, events.ActionCreated, sale.ID, EffectNone)
		return &Result{Sale: sale, StockEffect: EffectNone}, nil
	}

	itemID := *in.StockItemID
	sale.StockItemID = &itemID
	release, err := w.locker.Lock(ctx, LockKey(itemID))
	if err != nil {
		return nil, err
	}
	defer release()

	res := &Result{Sale: sale, StockEffect: EffectNone}
	err = w.tx.Run(ctx, func(scope repository.TxScope) error {
		item, err := scope.StockItems().GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return &domain.NotFoundError{Entity: "ítem de stock", ID: itemID}
		}
		remaining, ok := domainsales.RemainingStock(item.Quantity, sale.Quantity)
		if !ok {
			return &domain.InsufficientStockError{StockItemID: itemID, Available: item.Quantity, Required: sale.Quantity}
		}

		// Instantánea del ítem al momento de la venta.
		if sale.ItemName == "" {
			sale.ItemName = item.Name
		}
		if in.UnitCost == nil {
			sale.UnitCost = item.CostPrice
		}
		if sale.Vendor == nil && item.Vendor != nil {
			v := *item.Vendor
			sale.Vendor = &v
		}
		sale.Profit = domainsales.Profit(sale.UnitPrice, sale.UnitCost, sale.Quantity, sale.ExtraExpenses)

		if err := scope.Sales().Create(ctx, sale); err != nil {
			return err
		}

		plan := stockPlan{effect: EffectDecremented, itemID: itemID, remaining: remaining}
		if remaining == 0 {
			plan.effect = EffectSoldOut
		}
		w.adjust(ctx, scope, events.ActionCreated, sale.ID, plan, res)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("crear venta: %w", err)
	}
	w.report(res)
	w.notify(ctx, events.ActionCreated, sale.ID, res.StockEffect)
	return res, nil
}

// UpdateSale aplica los campos presentes en in. Si cambia la cantidad de una venta enlazada,
// el ítem de stock absorbe la diferencia (más vendidos descuentan, menos devuelven).
func (w *Workflow) UpdateSale(ctx context.Context, id string, in dto.UpdateSaleRequest) (*Result, error) {
	if err := dto.Validate(w.v, in); err != nil {
		return nil, err
	}

	current, err := w.sales.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("editar venta: %w", err)
	}
	if current == nil {
		return nil, &domain.NotFoundError{Entity: "venta", ID: id}
	}
	itemID := current.LinkedStockID()
	if itemID != "" {
		release, err := w.locker.Lock(ctx, LockKey(itemID))
		if err != nil {
			return nil, err
		}
		defer release()
	}

	var res *Result
	err = w.tx.Run(ctx, func(scope repository.TxScope) error {
		sale, err := scope.Sales().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return &domain.NotFoundError{Entity: "venta", ID: id}
		}
		res = &Result{Sale: sale, StockEffect: EffectNone}

		delta := 0
		if in.Quantity != nil {
			delta = *in.Quantity - sale.Quantity
		}
		mergeSale(sale, in)

		plan := stockPlan{effect: EffectNone}
		if linked := sale.LinkedStockID(); linked != "" && delta != 0 {
			item, err := scope.StockItems().GetForUpdate(ctx, linked)
			if err != nil {
				return err
			}
			plan, err = planQuantityChange(sale, item, linked, delta)
			if err != nil {
				return err
			}
		}

		if in.TouchesProfit() {
			sale.Profit = domainsales.Profit(sale.UnitPrice, sale.UnitCost, sale.Quantity, sale.ExtraExpenses)
		}
		sale.UpdatedAt = w.now()
		if plan.recreate != nil {
			plan.recreate.CreatedAt = sale.UpdatedAt
			plan.recreate.UpdatedAt = sale.UpdatedAt
		}
		if err := scope.Sales().Update(ctx, sale); err != nil {
			return err
		}

		w.adjust(ctx, scope, events.ActionUpdated, sale.ID, plan, res)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("editar venta: %w", err)
	}
	w.report(res)
	w.notify(ctx, events.ActionUpdated, id, res.StockEffect)
	return res, nil
}

// planQuantityChange decide el ajuste para delta unidades adicionales (negativo = devueltas).
func planQuantityChange(sale *entity.Sale, item *entity.StockItem, itemID string, delta int) (stockPlan, error) {
	if item == nil {
		if delta > 0 {
			return stockPlan{}, &domain.InsufficientStockError{StockItemID: itemID, Available: 0, Required: delta}
		}
		return stockPlan{effect: EffectRecreated, itemID: itemID, remaining: -delta, recreate: restoredItem(sale, itemID, -delta)}, nil
	}
	remaining, ok := domainsales.RemainingStock(item.Quantity, delta)
	if !ok {
		return stockPlan{}, &domain.InsufficientStockError{StockItemID: itemID, Available: item.Quantity, Required: delta}
	}
	plan := stockPlan{itemID: itemID, remaining: remaining}
	switch {
	case delta < 0:
		plan.effect = EffectIncremented
	case remaining == 0:
		plan.effect = EffectSoldOut
	default:
		plan.effect = EffectDecremented
	}
	return plan, nil
}

// DeleteSale elimina la venta y devuelve sus unidades al ítem; si el ítem ya no existe lo recrea
// con los datos copiados en la venta y precio de venta 0.
func (w *Workflow) DeleteSale(ctx context.Context, id string) (*Result, error) {
	current, err := w.sales.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("eliminar venta: %w", err)
	}
	if current == nil {
		return nil, &domain.NotFoundError{Entity: "venta", ID: id}
	}
	if itemID := current.LinkedStockID(); itemID != "" {
		release, err := w.locker.Lock(ctx, LockKey(itemID))
		if err != nil {
			return nil, err
		}
		defer release()
	}

	var res *Result
	err = w.tx.Run(ctx, func(scope repository.TxScope) error {
		sale, err := scope.Sales().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return &domain.NotFoundError{Entity: "venta", ID: id}
		}
		res = &Result{Sale: sale, StockEffect: EffectNone}
		if err := scope.Sales().Delete(ctx, id); err != nil {
			return err
		}

		itemID := sale.LinkedStockID()
		if itemID == "" {
			w.log.Warn().Str("sale_id", id).Msg("venta sin stock_item_id: no se restaura inventario")
			return nil
		}
		item, err := scope.StockItems().GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		plan := stockPlan{effect: EffectIncremented, itemID: itemID}
		if item == nil {
			plan = stockPlan{effect: EffectRecreated, itemID: itemID, remaining: sale.Quantity, recreate: restoredItem(sale, itemID, sale.Quantity)}
			plan.recreate.CreatedAt = w.now()
			plan.recreate.UpdatedAt = plan.recreate.CreatedAt
		} else {
			plan.remaining = item.Quantity + sale.Quantity
		}
		w.adjust(ctx, scope, events.ActionDeleted, id, plan, res)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("eliminar venta: %w", err)
	}
	w.report(res)
	w.notify(ctx, events.ActionDeleted, id, res.StockEffect)
	return res, nil
}

// GetSale devuelve la venta o *domain.NotFoundError.
func (w *Workflow) GetSale(ctx context.Context, id string) (*entity.Sale, error) {
	sale, err := w.sales.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener venta: %w", err)
	}
	if sale == nil {
		return nil, &domain.NotFoundError{Entity: "venta", ID: id}
	}
	return sale, nil
}

// ListSales lista las ventas que cumplen q (más recientes primero) junto con sus totales.
func (w *Workflow) ListSales(ctx context.Context, q dto.SaleListQuery) ([]*entity.Sale, report.SalesTotals, error) {
	filter, err := q.ToFilter()
	if err != nil {
		return nil, report.SalesTotals{}, err
	}
	list, err := w.sales.List(ctx, filter)
	if err != nil {
		return nil, report.SalesTotals{}, fmt.Errorf("listar ventas: %w", err)
	}
	return list, report.Sales(list), nil
}

// adjust aplica el plan en un savepoint. Si falla, la venta sigue adelante y el resultado
// lleva el aviso de compensación.
func (w *Workflow) adjust(ctx context.Context, scope repository.TxScope, action, saleID string, plan stockPlan, res *Result) {
	if plan.effect == EffectNone {
		return
	}
	err := scope.Savepoint(ctx, func(sp repository.TxScope) error {
		return plan.apply(ctx, sp.StockItems())
	})
	if err != nil {
		res.Warning = &domain.CompensationError{SaleID: saleID, SaleAction: action, StockItemID: plan.itemID, Op: plan.op(), Err: err}
		return
	}
	res.StockEffect = plan.effect
	if plan.effect != EffectSoldOut {
		q := plan.remaining
		res.StockQuantity = &q
	}
}

func (w *Workflow) report(res *Result) {
	if res.Warning == nil {
		return
	}
	w.log.Warn().Err(res.Warning.Err).
		Str("sale_id", res.Warning.SaleID).
		Str("stock_item_id", res.Warning.StockItemID).
		Str("sale_action", res.Warning.SaleAction).
		Str("op", res.Warning.Op).
		Msg("venta aplicada; inventario posiblemente desfasado")
}

func (w *Workflow) notify(ctx context.Context, action, id string, effect StockEffect) {
	collections := []string{events.CollectionSales}
	if effect != EffectNone {
		collections = append(collections, events.CollectionStock)
	}
	events.Notify(ctx, w.pub, w.log, action, id, collections...)
}

func (w *Workflow) validateCreate(in dto.CreateSaleRequest) error {
	err := dto.Validate(w.v, in)
	if in.StockItemID != nil || in.UnitCost != nil {
		return err
	}
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		if err != nil {
			return err
		}
		verr = &domain.ValidationError{Fields: map[string]string{}}
	}
	verr.Fields["unit_cost"] = "required_without"
	return verr
}

// restoredItem ítem recreado a partir de los datos copiados en la venta.
func restoredItem(sale *entity.Sale, id string, quantity int) *entity.StockItem {
	item := &entity.StockItem{
		ID:        id,
		Name:      sale.ItemName,
		Quantity:  quantity,
		CostPrice: sale.UnitCost,
		SalePrice: decimal.Zero,
	}
	if sale.Vendor != nil {
		v := *sale.Vendor
		item.Vendor = &v
	}
	return item
}

func mergeSale(sale *entity.Sale, in dto.UpdateSaleRequest) {
	if in.ItemName != nil {
		sale.ItemName = *in.ItemName
	}
	if in.Quantity != nil {
		sale.Quantity = *in.Quantity
	}
	if in.UnitCost != nil {
		sale.UnitCost = *in.UnitCost
	}
	if in.UnitPrice != nil {
		sale.UnitPrice = *in.UnitPrice
	}
	if in.ExtraExpenses != nil {
		sale.ExtraExpenses = *in.ExtraExpenses
	}
	if in.CustomerName != nil {
		sale.CustomerName = in.CustomerName
	}
	if in.Vendor != nil {
		sale.Vendor = in.Vendor
	}
	if in.SaleDate != nil && !in.SaleDate.IsZero() {
		sale.SaleDate = in.SaleDate.Time
	}
	if in.PaymentStatus != nil {
		sale.PaymentStatus = *in.PaymentStatus
	}
	if in.Notes != nil {
		sale.Notes = in.Notes
	}
}
