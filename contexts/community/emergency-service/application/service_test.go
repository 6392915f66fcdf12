package application

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"vecindario/contexts/community/emergency-service/adapters/memory"
	"vecindario/contexts/community/emergency-service/domain/entities"
	domainerrors "vecindario/contexts/community/emergency-service/domain/errors"
	"vecindario/internal/shared/events"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2026, 8, 2, 22, 30, 0, 0, time.UTC)

func newService(store *memory.Store) Service {
	return Service{
		Alertas: store,
		Outbox:  store,
		Clock:   fixedClock{now: testNow},
		IDGen:   memory.UUIDGenerator{},
	}
}

func TestRaiseCreatesActiveAlertWithOutboxEvent(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	ctx := context.Background()

	alerta, err := service.Raise(ctx, RaiseAlertaInput{
		Title:       "Fuga de gas",
		Description: "Olor a gas en el pasillo del piso 3",
		Severity:    entities.SeverityCritica,
	}, "vecino_7")
	if err != nil {
		t.Fatalf("raise failed: %v", err)
	}
	if alerta.Status != entities.AlertaStatusActive {
		t.Fatalf("expected active alert, got %s", alerta.Status)
	}

	pending, err := store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list outbox failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected one alert event, got %d", len(pending))
	}
	var envelope events.Envelope
	if err := json.Unmarshal(pending[0].Payload, &envelope); err != nil {
		t.Fatalf("decode envelope failed: %v", err)
	}
	if envelope.EventType != events.TypeEmergenciaAlerta || envelope.EntityID != alerta.AlertaID {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
}

func TestRaiseValidation(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	ctx := context.Background()

	_, err := service.Raise(ctx, RaiseAlertaInput{Title: " ", Description: "d", Severity: entities.SeverityAlta}, "u1")
	if err != domainerrors.ErrInvalidInput {
		t.Fatalf("expected invalid input for blank title, got %v", err)
	}
	_, err = service.Raise(ctx, RaiseAlertaInput{Title: "t", Description: "d", Severity: "extrema"}, "u1")
	if err != domainerrors.ErrInvalidSeverity {
		t.Fatalf("expected invalid severity, got %v", err)
	}
}

func TestResolveOnlyOnce(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	ctx := context.Background()

	alerta, err := service.Raise(ctx, RaiseAlertaInput{
		Title:       "Corte electrico",
		Description: "Sin luz en torre B",
		Severity:    entities.SeverityMedia,
	}, "vecino_2")
	if err != nil {
		t.Fatalf("raise failed: %v", err)
	}

	resolved, err := service.Resolve(ctx, alerta.AlertaID, "directiva_1")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.Status != entities.AlertaStatusResolved || resolved.ResolvedBy != "directiva_1" || resolved.ResolvedAt == nil {
		t.Fatalf("unexpected resolved alert: %+v", resolved)
	}

	if _, err := service.Resolve(ctx, alerta.AlertaID, "directiva_1"); err != domainerrors.ErrAlreadyResolved {
		t.Fatalf("expected already resolved, got %v", err)
	}
}

func TestListActiveOnly(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	ctx := context.Background()

	first, err := service.Raise(ctx, RaiseAlertaInput{Title: "Fuga de agua", Description: "Subterraneo", Severity: entities.SeverityBaja}, "u1")
	if err != nil {
		t.Fatalf("raise failed: %v", err)
	}
	if _, err := service.Raise(ctx, RaiseAlertaInput{Title: "Incendio", Description: "Quincho", Severity: entities.SeverityCritica}, "u2"); err != nil {
		t.Fatalf("raise failed: %v", err)
	}
	if _, err := service.Resolve(ctx, first.AlertaID, "directiva_1"); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	all, err := service.List(ctx, false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(all))
	}

	active, err := service.List(ctx, true)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(active) != 1 || active[0].Title != "Incendio" {
		t.Fatalf("expected only the active alert, got %d", len(active))
	}
}
