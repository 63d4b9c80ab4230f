// Package analytics arma el resumen del dashboard a partir de las colecciones actuales.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/phonestock-api/internal/application/dto"
	"github.com/jhoicas/phonestock-api/internal/domain/entity"
	"github.com/jhoicas/phonestock-api/internal/domain/report"
	"github.com/jhoicas/phonestock-api/internal/domain/repository"
)

const dashboardRecentStock = 5 // ingresos recientes en el widget del dashboard

// DashboardUseCase recalcula el resumen en cada llamada; no hay caché.
type DashboardUseCase struct {
	stock  repository.StockItemRepository
	sales  repository.SaleRepository
	ledger repository.LedgerRepository
	now    func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(stock repository.StockItemRepository, sales repository.SaleRepository, ledger repository.LedgerRepository) *DashboardUseCase {
	return &DashboardUseCase{stock: stock, sales: sales, ledger: ledger, now: func() time.Time { return time.Now().UTC() }}
}

// GetSummary lee inventario, ventas y los tres tipos de asiento en paralelo y agrega.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryResponse, error) {
	type stockResult struct {
		items []*entity.StockItem
		err   error
	}
	type salesResult struct {
		sales []*entity.Sale
		err   error
	}
	type ledgerResult struct {
		kind    entity.LedgerKind
		entries []*entity.LedgerEntry
		err     error
	}

	stockCh := make(chan stockResult, 1)
	salesCh := make(chan salesResult, 1)
	ledgerCh := make(chan ledgerResult, len(entity.LedgerKinds))

	go func() {
		items, err := uc.stock.List(ctx, repository.StockFilter{})
		stockCh <- stockResult{items, err}
	}()
	go func() {
		list, err := uc.sales.List(ctx, repository.SaleFilter{})
		salesCh <- salesResult{list, err}
	}()
	for _, kind := range entity.LedgerKinds {
		go func(kind entity.LedgerKind) {
			entries, err := uc.ledger.List(ctx, kind)
			ledgerCh <- ledgerResult{kind, entries, err}
		}(kind)
	}

	stock := <-stockCh
	sales := <-salesCh
	var entries []*entity.LedgerEntry
	var ledgerErr error
	for range entity.LedgerKinds {
		r := <-ledgerCh
		if r.err != nil && ledgerErr == nil {
			ledgerErr = fmt.Errorf("dashboard: %s: %w", r.kind.Collection(), r.err)
		}
		entries = append(entries, r.entries...)
	}

	if stock.err != nil {
		return nil, fmt.Errorf("dashboard: inventario: %w", stock.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas: %w", sales.err)
	}
	if ledgerErr != nil {
		return nil, ledgerErr
	}

	accounts := report.TotalAccountBalance(entries)
	receivables := report.TotalReceivables(entries)
	expenses := report.TotalExpenses(entries)

	// List ya viene ordenado por created_at descendente.
	recent := make([]dto.StockItemResponse, 0, dashboardRecentStock)
	for i, it := range stock.items {
		if i == dashboardRecentStock {
			break
		}
		recent = append(recent, dto.NewStockItemResponse(it))
	}

	return &dto.DashboardSummaryResponse{
		TotalStockValue:     report.TotalStockValue(stock.items),
		TotalStockUnits:     report.TotalStockUnits(stock.items),
		StockItems:          len(stock.items),
		VendorTotals:        dto.NewVendorTotals(report.VendorTotals(stock.items)),
		RecentStock:         recent,
		TotalAccountBalance: accounts,
		TotalReceivables:    receivables,
		TotalExpenses:       expenses,
		CashPosition:        report.CashPosition(accounts, receivables, expenses),
		Sales:               dto.NewSalesTotals(report.Sales(sales.sales)),
		GeneratedAt:         uc.now(),
	}, nil
}
