package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/phonestock-api/internal/application/dto"
	"github.com/jhoicas/phonestock-api/internal/application/events"
	"github.com/jhoicas/phonestock-api/internal/domain"
	"github.com/jhoicas/phonestock-api/internal/domain/entity"
	"github.com/jhoicas/phonestock-api/internal/domain/report"
	"github.com/jhoicas/phonestock-api/internal/domain/repository"
	"github.com/jhoicas/phonestock-api/pkg/logger"
	"github.com/jhoicas/phonestock-api/pkg/validator"
)

// LedgerUseCase CRUD de cuentas, saldos por cobrar y gastos.
type LedgerUseCase struct {
	repo repository.LedgerRepository
	pub  events.Publisher
	v    *validator.Validator
	log  *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(repo repository.LedgerRepository, pub events.Publisher, v *validator.Validator, log *logger.Logger) *LedgerUseCase {
	return &LedgerUseCase{repo: repo, pub: pub, v: v, log: log.Named("ledger")}
}

func checkKind(kind entity.LedgerKind) error {
	if !kind.Valid() {
		return domain.NewValidationError("kind", "oneof")
	}
	return nil
}

// Create registra un asiento del tipo indicado.
func (uc *LedgerUseCase) Create(ctx context.Context, kind entity.LedgerKind, in dto.LedgerEntryRequest) (*dto.LedgerEntryResponse, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	if err := dto.Validate(uc.v, in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	e := &entity.LedgerEntry{
		ID:        uuid.New().String(),
		Kind:      kind,
		Label:     in.Label,
		Amount:    in.Amount,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("crear %s: %w", kind.Collection(), err)
	}
	events.Notify(ctx, uc.pub, uc.log, events.ActionCreated, e.ID, kind.Collection())
	out := dto.NewLedgerEntryResponse(e)
	return &out, nil
}

// GetByID devuelve el asiento o *domain.NotFoundError.
func (uc *LedgerUseCase) GetByID(ctx context.Context, kind entity.LedgerKind, id string) (*dto.LedgerEntryResponse, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	e, err := uc.repo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, fmt.Errorf("obtener %s: %w", kind.Collection(), err)
	}
	if e == nil {
		return nil, &domain.NotFoundError{Entity: kind.Collection(), ID: id}
	}
	out := dto.NewLedgerEntryResponse(e)
	return &out, nil
}

// List lista los asientos del tipo y su suma.
func (uc *LedgerUseCase) List(ctx context.Context, kind entity.LedgerKind) (*dto.LedgerListResponse, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("listar %s: %w", kind.Collection(), err)
	}
	items := make([]dto.LedgerEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, dto.NewLedgerEntryResponse(e))
	}
	return &dto.LedgerListResponse{Kind: kind, Items: items, Total: report.SumLedger(list, kind)}, nil
}

// Update aplica los campos presentes.
func (uc *LedgerUseCase) Update(ctx context.Context, kind entity.LedgerKind, id string, in dto.UpdateLedgerEntryRequest) (*dto.LedgerEntryResponse, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	if err := dto.Validate(uc.v, in); err != nil {
		return nil, err
	}
	e, err := uc.repo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, fmt.Errorf("editar %s: %w", kind.Collection(), err)
	}
	if e == nil {
		return nil, &domain.NotFoundError{Entity: kind.Collection(), ID: id}
	}
	if in.Label != nil {
		e.Label = *in.Label
	}
	if in.Amount != nil {
		e.Amount = *in.Amount
	}
	e.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("editar %s: %w", kind.Collection(), err)
	}
	events.Notify(ctx, uc.pub, uc.log, events.ActionUpdated, id, kind.Collection())
	out := dto.NewLedgerEntryResponse(e)
	return &out, nil
}

// Delete elimina el asiento.
func (uc *LedgerUseCase) Delete(ctx context.Context, kind entity.LedgerKind, id string) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, kind, id); err != nil {
		return fmt.Errorf("eliminar %s: %w", kind.Collection(), err)
	}
	events.Notify(ctx, uc.pub, uc.log, events.ActionDeleted, id, kind.Collection())
	return nil
}
