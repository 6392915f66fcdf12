package emergencyservice

import (
	"log/slog"

	httpadapter "vecindario/contexts/community/emergency-service/adapters/http"
	"vecindario/contexts/community/emergency-service/adapters/memory"
	"vecindario/contexts/community/emergency-service/application"
	"vecindario/contexts/community/emergency-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Alertas ports.AlertaRepository
	Outbox  ports.OutboxWriter
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Alertas: deps.Alertas,
		Outbox:  deps.Outbox,
		Clock:   deps.Clock,
		IDGen:   deps.IDGen,
		Logger:  deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
	}
}

// NewInMemoryModule wires the module over the in-memory store for tests and
// local bootstrap without postgres.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Alertas: store,
		Outbox:  store,
		Clock:   memory.SystemClock{},
		IDGen:   memory.UUIDGenerator{},
		Logger:  logger,
	})
	module.Store = store
	return module
}
