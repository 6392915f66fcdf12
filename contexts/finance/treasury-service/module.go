package treasuryservice

import (
	"log/slog"

	httpadapter "vecindario/contexts/finance/treasury-service/adapters/http"
	"vecindario/contexts/finance/treasury-service/adapters/memory"
	"vecindario/contexts/finance/treasury-service/application"
	"vecindario/contexts/finance/treasury-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Movimientos ports.MovimientoRepository
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Movimientos: deps.Movimientos,
		Clock:       deps.Clock,
		IDGen:       deps.IDGen,
		Logger:      deps.Logger,
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
		Movimientos: store,
		Clock:       memory.SystemClock{},
		IDGen:       memory.UUIDGenerator{},
		Logger:      logger,
	})
	module.Store = store
	return module
}
