package ports

import (
	"context"
	"time"

	"vecindario/contexts/community/emergency-service/domain/entities"
	"vecindario/internal/shared/outbox"
)

// AlertaRepository persists emergency alerts.
type AlertaRepository interface {
	CreateAlerta(ctx context.Context, alerta entities.Alerta) error
	GetAlerta(ctx context.Context, alertaID string) (entities.Alerta, error)
	UpdateAlerta(ctx context.Context, alerta entities.Alerta) error
	// ListAlertas returns alerts newest first; activeOnly filters out
	// resolved ones.
	ListAlertas(ctx context.Context, activeOnly bool) ([]entities.Alerta, error)
}

// OutboxWriter appends an event row alongside the state change.
type OutboxWriter interface {
	AppendOutbox(ctx context.Context, message outbox.Message) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
