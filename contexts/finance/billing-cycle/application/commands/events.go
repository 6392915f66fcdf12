package commands

import (
	"context"
	"encoding/json"
	"time"

	"vecindario/contexts/finance/billing-cycle/domain/entities"
	"vecindario/internal/shared/events"
	"vecindario/internal/shared/outbox"
)

// PeriodoCreatedPayload announces a new billing cycle to the notification
// fan-out.
type PeriodoCreatedPayload struct {
	PeriodoID        string    `json:"periodo_id"`
	Year             int       `json:"year"`
	Month            int       `json:"month"`
	MontoBase        float64   `json:"monto_base"`
	FechaVencimiento time.Time `json:"fecha_vencimiento"`
	TotalParcelas    int       `json:"total_parcelas"`
}

// PagoRegistradoPayload announces that a charge reached paid.
type PagoRegistradoPayload struct {
	GastoID   string  `json:"gasto_id"`
	PeriodoID string  `json:"periodo_id"`
	ParcelaID string  `json:"parcela_id"`
	Monto     float64 `json:"monto"`
}

func (uc BillingUseCase) appendPeriodoOutbox(ctx context.Context, periodo entities.PeriodoGasto, totalParcelas int) error {
	return uc.appendOutbox(ctx, events.TypePeriodoCreated, "periodo_gasto", periodo.PeriodoID, PeriodoCreatedPayload{
		PeriodoID:        periodo.PeriodoID,
		Year:             periodo.Year,
		Month:            periodo.Month,
		MontoBase:        periodo.MontoBase,
		FechaVencimiento: periodo.FechaVencimiento,
		TotalParcelas:    totalParcelas,
	})
}

func (uc BillingUseCase) appendPagoOutbox(ctx context.Context, gasto entities.GastoComun) error {
	return uc.appendOutbox(ctx, events.TypeGastoPagado, "gasto_comun", gasto.GastoID, PagoRegistradoPayload{
		GastoID:   gasto.GastoID,
		PeriodoID: gasto.PeriodoID,
		ParcelaID: gasto.ParcelaID,
		Monto:     gasto.MontoPagado,
	})
}

func (uc BillingUseCase) appendOutbox(ctx context.Context, eventType string, entityType string, entityID string, payload any) error {
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope := events.Envelope{
		EventID:        eventID,
		EventType:      eventType,
		SourceService:  "finance/billing-cycle",
		OccurredAtUTC:  uc.now(),
		EntityType:     entityType,
		EntityID:       entityID,
		PayloadVersion: 1,
		Payload:        payload,
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, outbox.Message{
		ID:        eventID,
		EventType: eventType,
		Payload:   body,
		Status:    outbox.StatusPending,
		CreatedAt: uc.now(),
	})
}
