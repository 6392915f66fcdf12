package votingengine

import (
	"log/slog"

	httpadapter "vecindario/contexts/governance/voting-engine/adapters/http"
	"vecindario/contexts/governance/voting-engine/adapters/memory"
	"vecindario/contexts/governance/voting-engine/application/commands"
	"vecindario/contexts/governance/voting-engine/application/queries"
	"vecindario/contexts/governance/voting-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Votaciones ports.VotacionRepository
	Votos      ports.VoteRepository
	Roster     ports.CommunityRoster
	Outbox     ports.OutboxWriter
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	votacionUseCase := commands.VotacionUseCase{
		Votaciones: deps.Votaciones,
		Votos:      deps.Votos,
		Outbox:     deps.Outbox,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	votacionQueries := queries.VotacionQueries{
		Votaciones: deps.Votaciones,
		Votos:      deps.Votos,
	}
	resultadosUseCase := queries.ResultadosUseCase{
		Votaciones: deps.Votaciones,
		Votos:      deps.Votos,
		Roster:     deps.Roster,
	}
	return Module{
		Handler: httpadapter.Handler{
			Votaciones: votacionUseCase,
			Queries:    votacionQueries,
			Resultados: resultadosUseCase,
			Logger:     deps.Logger,
		},
	}
}

// NewInMemoryModule wires the module over the in-memory store for tests and
// local bootstrap without postgres.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Votaciones: store,
		Votos:      store,
		Roster:     store,
		Outbox:     store,
		Clock:      memory.SystemClock{},
		IDGen:      memory.UUIDGenerator{},
		Logger:     logger,
	})
	module.Store = store
	return module
}
