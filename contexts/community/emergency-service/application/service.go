package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"vecindario/contexts/community/emergency-service/domain/entities"
	domainerrors "vecindario/contexts/community/emergency-service/domain/errors"
	"vecindario/contexts/community/emergency-service/ports"
	"vecindario/internal/shared/events"
	"vecindario/internal/shared/outbox"
)

// RaiseAlertaInput carries a new emergency alert.
type RaiseAlertaInput struct {
	Title       string
	Description string
	Severity    entities.AlertaSeverity
}

// AlertaPayload is the emergencia.alerta event body.
type AlertaPayload struct {
	AlertaID string `json:"alerta_id"`
	Title    string `json:"title"`
	Severity string `json:"severity"`
}

type Service struct {
	Alertas ports.AlertaRepository
	Outbox  ports.OutboxWriter
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

// Raise creates an active alert and records the alert event for downstream
// notification fan-out.
func (s Service) Raise(ctx context.Context, input RaiseAlertaInput, createdBy string) (entities.Alerta, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return entities.Alerta{}, domainerrors.ErrInvalidInput
	}
	if !input.Severity.IsValid() {
		return entities.Alerta{}, domainerrors.ErrInvalidSeverity
	}

	alertaID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Alerta{}, err
	}
	now := s.now()

	alerta := entities.Alerta{
		AlertaID:    alertaID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Severity:    input.Severity,
		Status:      entities.AlertaStatusActive,
		CreatedBy:   strings.TrimSpace(createdBy),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Alertas.CreateAlerta(ctx, alerta); err != nil {
		return entities.Alerta{}, err
	}
	if err := s.appendAlertaOutbox(ctx, alerta); err != nil {
		return entities.Alerta{}, err
	}

	s.logger().Info("emergency alert raised",
		"event", "emergencies_alert_raised",
		"module", "community/emergency-service",
		"layer", "application",
		"alerta_id", alertaID,
		"severity", string(alerta.Severity),
	)
	return alerta, nil
}

// Resolve transitions an active alert to resolved. Resolving twice fails.
func (s Service) Resolve(ctx context.Context, alertaID string, resolvedBy string) (entities.Alerta, error) {
	alerta, err := s.Alertas.GetAlerta(ctx, strings.TrimSpace(alertaID))
	if err != nil {
		return entities.Alerta{}, err
	}
	if alerta.Status == entities.AlertaStatusResolved {
		return entities.Alerta{}, domainerrors.ErrAlreadyResolved
	}

	now := s.now()
	alerta.Status = entities.AlertaStatusResolved
	alerta.ResolvedBy = strings.TrimSpace(resolvedBy)
	alerta.ResolvedAt = &now
	alerta.UpdatedAt = now
	if err := s.Alertas.UpdateAlerta(ctx, alerta); err != nil {
		return entities.Alerta{}, err
	}

	s.logger().Info("emergency alert resolved",
		"event", "emergencies_alert_resolved",
		"module", "community/emergency-service",
		"layer", "application",
		"alerta_id", alerta.AlertaID,
	)
	return alerta, nil
}

func (s Service) Get(ctx context.Context, alertaID string) (entities.Alerta, error) {
	if strings.TrimSpace(alertaID) == "" {
		return entities.Alerta{}, domainerrors.ErrInvalidInput
	}
	return s.Alertas.GetAlerta(ctx, strings.TrimSpace(alertaID))
}

func (s Service) List(ctx context.Context, activeOnly bool) ([]entities.Alerta, error) {
	return s.Alertas.ListAlertas(ctx, activeOnly)
}

func (s Service) appendAlertaOutbox(ctx context.Context, alerta entities.Alerta) error {
	if s.Outbox == nil {
		return nil
	}
	eventID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope := events.Envelope{
		EventID:        eventID,
		EventType:      events.TypeEmergenciaAlerta,
		SourceService:  "community/emergency-service",
		OccurredAtUTC:  s.now(),
		EntityType:     "alerta",
		EntityID:       alerta.AlertaID,
		PayloadVersion: 1,
		Payload: AlertaPayload{
			AlertaID: alerta.AlertaID,
			Title:    alerta.Title,
			Severity: string(alerta.Severity),
		},
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	return s.Outbox.AppendOutbox(ctx, outbox.Message{
		ID:        eventID,
		EventType: events.TypeEmergenciaAlerta,
		Payload:   body,
		Status:    outbox.StatusPending,
		CreatedAt: s.now(),
	})
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
