package billingcycle

import (
	"log/slog"

	httpadapter "vecindario/contexts/finance/billing-cycle/adapters/http"
	"vecindario/contexts/finance/billing-cycle/adapters/memory"
	"vecindario/contexts/finance/billing-cycle/application/commands"
	"vecindario/contexts/finance/billing-cycle/application/queries"
	"vecindario/contexts/finance/billing-cycle/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Periodos   ports.PeriodoRepository
	Gastos     ports.GastoRepository
	Roster     ports.CommunityRoster
	Outbox     ports.OutboxWriter
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	PaidWindow int
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	billingUseCase := commands.BillingUseCase{
		Periodos: deps.Periodos,
		Gastos:   deps.Gastos,
		Roster:   deps.Roster,
		Outbox:   deps.Outbox,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}
	billingQueries := queries.BillingQueries{
		Periodos:   deps.Periodos,
		Gastos:     deps.Gastos,
		Roster:     deps.Roster,
		Clock:      deps.Clock,
		PaidWindow: deps.PaidWindow,
	}
	return Module{
		Handler: httpadapter.Handler{
			Billing: billingUseCase,
			Queries: billingQueries,
			Logger:  deps.Logger,
		},
	}
}

// NewInMemoryModule wires the module over the in-memory store for tests and
// local bootstrap without postgres.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Periodos: store,
		Gastos:   store,
		Roster:   store,
		Outbox:   store,
		Clock:    memory.SystemClock{},
		IDGen:    memory.UUIDGenerator{},
		Logger:   logger,
	})
	module.Store = store
	return module
}
