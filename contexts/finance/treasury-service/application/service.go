package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"vecindario/contexts/finance/treasury-service/domain/entities"
	domainerrors "vecindario/contexts/finance/treasury-service/domain/errors"
	"vecindario/contexts/finance/treasury-service/ports"
)

// CreateMovimientoInput carries one new ledger entry.
type CreateMovimientoInput struct {
	Description string
	Amount      float64
	Type        entities.MovimientoType
	Category    string
	Date        time.Time
}

type Service struct {
	Movimientos ports.MovimientoRepository
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func (s Service) CreateMovimiento(ctx context.Context, input CreateMovimientoInput, createdBy string) (entities.Movimiento, error) {
	if strings.TrimSpace(input.Description) == "" {
		return entities.Movimiento{}, domainerrors.ErrDescriptionRequired
	}
	if input.Amount <= 0 {
		return entities.Movimiento{}, domainerrors.ErrInvalidMonto
	}
	if !input.Type.IsValid() {
		return entities.Movimiento{}, domainerrors.ErrInvalidTipo
	}

	movimientoID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Movimiento{}, err
	}
	now := s.now()
	date := input.Date.UTC()
	if date.IsZero() {
		date = now
	}

	movimiento := entities.Movimiento{
		MovimientoID: movimientoID,
		Description:  strings.TrimSpace(input.Description),
		Amount:       input.Amount,
		Type:         input.Type,
		Category:     strings.TrimSpace(input.Category),
		Date:         date,
		CreatedBy:    strings.TrimSpace(createdBy),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Movimientos.CreateMovimiento(ctx, movimiento); err != nil {
		return entities.Movimiento{}, err
	}

	s.logger().Info("movimiento recorded",
		"event", "treasury_movimiento_created",
		"module", "finance/treasury-service",
		"layer", "application",
		"movimiento_id", movimientoID,
		"type", string(movimiento.Type),
		"amount", movimiento.Amount,
	)
	return movimiento, nil
}

func (s Service) GetMovimiento(ctx context.Context, movimientoID string) (entities.Movimiento, error) {
	if strings.TrimSpace(movimientoID) == "" {
		return entities.Movimiento{}, domainerrors.ErrInvalidInput
	}
	return s.Movimientos.GetMovimiento(ctx, strings.TrimSpace(movimientoID))
}

func (s Service) ListMovimientos(ctx context.Context, filter ports.MovimientoFilter) ([]entities.Movimiento, int, error) {
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, 0, domainerrors.ErrInvalidTipo
	}
	return s.Movimientos.ListMovimientos(ctx, filter)
}

func (s Service) Resumen(ctx context.Context) (entities.ResumenTesoreria, error) {
	return s.Movimientos.Resumen(ctx)
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
