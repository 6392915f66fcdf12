package commands

import (
	"context"
	"strings"

	application "vecindario/contexts/finance/billing-cycle/application"
	"vecindario/contexts/finance/billing-cycle/domain/entities"
	domainerrors "vecindario/contexts/finance/billing-cycle/domain/errors"
)

// RegisterPagoCommand applies one cumulative payment to a charge.
type RegisterPagoCommand struct {
	GastoID        string
	MontoPagado    float64
	MetodoPago     string
	ReferenciaPago string
}

// RegisterPago adds the payment to the charge, capping the accumulated amount
// at the amount due. The repository serializes concurrent applications on the
// same charge, so two partial payments can never lose an update.
func (uc BillingUseCase) RegisterPago(ctx context.Context, cmd RegisterPagoCommand) (entities.GastoComun, error) {
	logger := application.ResolveLogger(uc.Logger)

	if cmd.MontoPagado <= 0 {
		return entities.GastoComun{}, domainerrors.ErrInvalidMonto
	}

	now := uc.now()
	updated, err := uc.Gastos.UpdateGastoSerialized(ctx, strings.TrimSpace(cmd.GastoID), func(gasto entities.GastoComun) (entities.GastoComun, error) {
		switch gasto.Status {
		case entities.GastoStatusCancelled:
			return entities.GastoComun{}, domainerrors.ErrInvalidState
		case entities.GastoStatusPaid:
			return entities.GastoComun{}, domainerrors.ErrInvalidState
		}

		gasto.MontoPagado += cmd.MontoPagado
		if gasto.MontoPagado > gasto.Monto {
			// Overpayment is capped at the amount due, not rejected.
			gasto.MontoPagado = gasto.Monto
		}
		if gasto.MontoPagado >= gasto.Monto {
			gasto.Status = entities.GastoStatusPaid
		}
		gasto.FechaPago = &now
		gasto.MetodoPago = strings.TrimSpace(cmd.MetodoPago)
		gasto.ReferenciaPago = strings.TrimSpace(cmd.ReferenciaPago)
		gasto.UpdatedAt = now
		return gasto, nil
	})
	if err != nil {
		return entities.GastoComun{}, err
	}

	if updated.Status == entities.GastoStatusPaid {
		if err := uc.appendPagoOutbox(ctx, updated); err != nil {
			return entities.GastoComun{}, err
		}
	}

	logger.Info("pago registered",
		"event", "billing_pago_registered",
		"module", "finance/billing-cycle",
		"layer", "application",
		"gasto_id", updated.GastoID,
		"monto", cmd.MontoPagado,
		"status", string(updated.Status),
	)
	return updated, nil
}

// CancelGasto is the administrative override: a pending charge is taken out
// of collection entirely.
func (uc BillingUseCase) CancelGasto(ctx context.Context, gastoID string) (entities.GastoComun, error) {
	logger := application.ResolveLogger(uc.Logger)

	now := uc.now()
	updated, err := uc.Gastos.UpdateGastoSerialized(ctx, strings.TrimSpace(gastoID), func(gasto entities.GastoComun) (entities.GastoComun, error) {
		if gasto.Status != entities.GastoStatusPending {
			return entities.GastoComun{}, domainerrors.ErrInvalidState
		}
		gasto.Status = entities.GastoStatusCancelled
		gasto.UpdatedAt = now
		return gasto, nil
	})
	if err != nil {
		return entities.GastoComun{}, err
	}

	logger.Info("gasto cancelled",
		"event", "billing_gasto_cancelled",
		"module", "finance/billing-cycle",
		"layer", "application",
		"gasto_id", updated.GastoID,
	)
	return updated, nil
}
