package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "vecindario/contexts/finance/billing-cycle/application"
	"vecindario/contexts/finance/billing-cycle/domain/entities"
	domainerrors "vecindario/contexts/finance/billing-cycle/domain/errors"
	"vecindario/contexts/finance/billing-cycle/ports"
)

// CreatePeriodoCommand opens one monthly billing cycle.
type CreatePeriodoCommand struct {
	Year             int
	Month            int
	MontoBase        float64
	FechaVencimiento time.Time
	Descripcion      string
}

// BillingUseCase orchestrates period creation and payment application.
type BillingUseCase struct {
	Periodos ports.PeriodoRepository
	Gastos   ports.GastoRepository
	Roster   ports.CommunityRoster
	Outbox   ports.OutboxWriter
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

// CreatePeriodo creates the period and fans out one charge per parcela in a
// single atomic write. A roster failure aborts the whole creation.
func (uc BillingUseCase) CreatePeriodo(ctx context.Context, cmd CreatePeriodoCommand) (entities.PeriodoGasto, error) {
	logger := application.ResolveLogger(uc.Logger)

	if cmd.Month < 1 || cmd.Month > 12 || cmd.Year < 2000 || cmd.Year > 2200 {
		return entities.PeriodoGasto{}, domainerrors.ErrInvalidInput
	}
	if cmd.MontoBase <= 0 || cmd.FechaVencimiento.IsZero() {
		return entities.PeriodoGasto{}, domainerrors.ErrInvalidInput
	}

	parcelas, err := uc.Roster.ListParcelas(ctx)
	if err != nil {
		logger.Error("periodo creation aborted, roster unavailable",
			"event", "billing_periodo_roster_failed",
			"module", "finance/billing-cycle",
			"layer", "application",
			"year", cmd.Year,
			"month", cmd.Month,
			"error", err.Error(),
		)
		return entities.PeriodoGasto{}, err
	}

	periodoID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.PeriodoGasto{}, err
	}
	now := uc.now()

	periodo := entities.PeriodoGasto{
		PeriodoID:        periodoID,
		Year:             cmd.Year,
		Month:            cmd.Month,
		MontoBase:        cmd.MontoBase,
		FechaVencimiento: cmd.FechaVencimiento.UTC(),
		Descripcion:      strings.TrimSpace(cmd.Descripcion),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	gastos := make([]entities.GastoComun, 0, len(parcelas))
	for _, parcela := range parcelas {
		gastoID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return entities.PeriodoGasto{}, err
		}
		monto := cmd.MontoBase
		if parcela.MontoOverride != nil && *parcela.MontoOverride > 0 {
			monto = *parcela.MontoOverride
		}
		gastos = append(gastos, entities.GastoComun{
			GastoID:          gastoID,
			PeriodoID:        periodoID,
			ParcelaID:        parcela.ParcelaID,
			Monto:            monto,
			MontoPagado:      0,
			Status:           entities.GastoStatusPending,
			FechaVencimiento: periodo.FechaVencimiento,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}

	if err := uc.Periodos.CreatePeriodoWithGastos(ctx, periodo, gastos); err != nil {
		return entities.PeriodoGasto{}, err
	}
	if err := uc.appendPeriodoOutbox(ctx, periodo, len(gastos)); err != nil {
		return entities.PeriodoGasto{}, err
	}

	logger.Info("periodo created with charge fan-out",
		"event", "billing_periodo_created",
		"module", "finance/billing-cycle",
		"layer", "application",
		"periodo_id", periodoID,
		"year", cmd.Year,
		"month", cmd.Month,
		"parcelas", len(gastos),
	)
	return periodo, nil
}

func (uc BillingUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
