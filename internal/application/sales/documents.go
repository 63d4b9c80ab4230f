package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/phonestock-api/internal/application/dto"
	"github.com/jhoicas/phonestock-api/internal/domain"
	"github.com/jhoicas/phonestock-api/internal/domain/report"
	"github.com/jhoicas/phonestock-api/internal/domain/repository"
)

// DocumentsUseCase comprobante PDF de una venta y exportación xlsx del listado.
type DocumentsUseCase struct {
	sales    repository.SaleRepository
	receipts ReceiptGenerator
	workbook WorkbookBuilder
}

// NewDocumentsUseCase construye el caso de uso.
func NewDocumentsUseCase(sales repository.SaleRepository, receipts ReceiptGenerator, workbook WorkbookBuilder) *DocumentsUseCase {
	return &DocumentsUseCase{sales: sales, receipts: receipts, workbook: workbook}
}

// Receipt genera el PDF del comprobante de la venta id.
func (uc *DocumentsUseCase) Receipt(ctx context.Context, id string) ([]byte, error) {
	sale, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("comprobante: %w", err)
	}
	if sale == nil {
		return nil, &domain.NotFoundError{Entity: "venta", ID: id}
	}
	pdf, err := uc.receipts.SaleReceipt(ctx, sale)
	if err != nil {
		return nil, fmt.Errorf("comprobante: %w", err)
	}
	return pdf, nil
}

// Export genera la planilla de las ventas que cumplen q.
func (uc *DocumentsUseCase) Export(ctx context.Context, q dto.SaleListQuery) ([]byte, error) {
	filter, err := q.ToFilter()
	if err != nil {
		return nil, err
	}
	list, err := uc.sales.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("exportar ventas: %w", err)
	}
	out, err := uc.workbook.SalesWorkbook(ctx, list, report.Sales(list))
	if err != nil {
		return nil, fmt.Errorf("exportar ventas: %w", err)
	}
	return out, nil
}
