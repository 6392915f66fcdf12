package ports

import (
	"context"
	"time"

	"vecindario/contexts/finance/billing-cycle/domain/entities"
	"vecindario/internal/shared/outbox"
)

// PeriodoRepository persists billing periods and their charge fan-out.
type PeriodoRepository interface {
	// CreatePeriodoWithGastos persists the period and every generated charge
	// atomically. A (year, month) collision returns ErrPeriodoExists; the
	// (periodo, parcela) uniqueness makes retried creations idempotent.
	CreatePeriodoWithGastos(ctx context.Context, periodo entities.PeriodoGasto, gastos []entities.GastoComun) error
	GetPeriodo(ctx context.Context, periodoID string) (entities.PeriodoGasto, error)
	ListPeriodos(ctx context.Context, filter PeriodoFilter) ([]entities.PeriodoGasto, int, error)
}

// PeriodoFilter narrows period list reads. Zero values mean "no filter".
type PeriodoFilter struct {
	Year    int
	Page    int
	PerPage int
}

// GastoRepository persists charges. UpdateGastoSerialized must serialize
// concurrent mutations of the same charge (row lock or equivalent) so partial
// payments never lose updates.
type GastoRepository interface {
	GetGasto(ctx context.Context, gastoID string) (entities.GastoComun, error)
	UpdateGastoSerialized(ctx context.Context, gastoID string, mutate func(entities.GastoComun) (entities.GastoComun, error)) (entities.GastoComun, error)
	ListGastosByPeriodo(ctx context.Context, periodoID string) ([]entities.GastoComun, error)
	ListGastosByParcela(ctx context.Context, parcelaID string) ([]entities.GastoComun, error)
}

// ParcelaProjection is the roster view of one billable lot. MontoOverride
// replaces the period base amount for that parcela when set.
type ParcelaProjection struct {
	ParcelaID     string
	Numero        string
	MontoOverride *float64
}

// CommunityRoster enumerates billable parcelas; owned by the identity backend.
type CommunityRoster interface {
	ListParcelas(ctx context.Context) ([]ParcelaProjection, error)
	// FindParcelaByUser resolves the parcela associated with a resident
	// account, for the self-service account statement.
	FindParcelaByUser(ctx context.Context, userID string) (ParcelaProjection, error)
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
