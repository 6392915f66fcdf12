package httpadapter

import (
	"context"
	"log/slog"

	"vecindario/contexts/governance/voting-engine/application/commands"
	"vecindario/contexts/governance/voting-engine/application/queries"
	httptransport "vecindario/contexts/governance/voting-engine/transport/http"
)

// Handler adapts transport DTOs to use-case calls. HTTP specifics (routing,
// status codes, auth) live in the platform server.
type Handler struct {
	Votaciones commands.VotacionUseCase
	Queries    queries.VotacionQueries
	Resultados queries.ResultadosUseCase
	Logger     *slog.Logger
}

func (h Handler) CreateVotacionHandler(ctx context.Context, userID string, req httptransport.CreateVotacionRequest) (httptransport.VotacionResponse, error) {
	votacion, err := h.Votaciones.Create(ctx, definitionFromRequest(req), userID)
	if err != nil {
		return httptransport.VotacionResponse{}, err
	}
	return votacionResponse(votacion), nil
}

func (h Handler) UpdateVotacionHandler(ctx context.Context, votacionID string, req httptransport.CreateVotacionRequest) (httptransport.VotacionResponse, error) {
	votacion, err := h.Votaciones.Update(ctx, votacionID, definitionFromRequest(req))
	if err != nil {
		return httptransport.VotacionResponse{}, err
	}
	return votacionResponse(votacion), nil
}

func (h Handler) PublishVotacionHandler(ctx context.Context, votacionID string) (httptransport.VotacionResponse, error) {
	votacion, err := h.Votaciones.Publish(ctx, votacionID)
	if err != nil {
		return httptransport.VotacionResponse{}, err
	}
	return votacionResponse(votacion), nil
}

func (h Handler) CloseVotacionHandler(ctx context.Context, votacionID string) (httptransport.VotacionResponse, error) {
	votacion, err := h.Votaciones.Close(ctx, votacionID)
	if err != nil {
		return httptransport.VotacionResponse{}, err
	}
	return votacionResponse(votacion), nil
}

func (h Handler) CancelVotacionHandler(ctx context.Context, votacionID string) (httptransport.VotacionResponse, error) {
	votacion, err := h.Votaciones.Cancel(ctx, votacionID)
	if err != nil {
		return httptransport.VotacionResponse{}, err
	}
	return votacionResponse(votacion), nil
}

func (h Handler) DeleteVotacionHandler(ctx context.Context, votacionID string) error {
	return h.Votaciones.Delete(ctx, votacionID)
}

func (h Handler) GetVotacionHandler(ctx context.Context, votacionID string, userID string) (httptransport.VotacionResponse, error) {
	votacion, hasVoted, err := h.Queries.Get(ctx, votacionID, userID)
	if err != nil {
		return httptransport.VotacionResponse{}, err
	}
	response := votacionResponse(votacion)
	response.HasVoted = hasVoted
	return response, nil
}

func (h Handler) ListVotacionesHandler(ctx context.Context, status string, page int, perPage int) (httptransport.VotacionListResponse, error) {
	votaciones, total, err := h.Queries.List(ctx, listFilter(status, page, perPage))
	if err != nil {
		return httptransport.VotacionListResponse{}, err
	}
	items := make([]httptransport.VotacionResponse, 0, len(votaciones))
	for _, votacion := range votaciones {
		items = append(items, votacionResponse(votacion))
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}
	return httptransport.VotacionListResponse{
		Votaciones: items,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
	}, nil
}

func (h Handler) CastVoteHandler(ctx context.Context, votacionID string, userID string, req httptransport.EmitirVotoRequest) (httptransport.EmitirVotoResponse, error) {
	voto, err := h.Votaciones.CastVote(ctx, commands.CastVoteCommand{
		VotacionID:   votacionID,
		UserID:       userID,
		OpcionID:     req.OpcionID,
		IsAbstention: req.IsAbstention,
	})
	if err != nil {
		return httptransport.EmitirVotoResponse{}, err
	}
	return httptransport.EmitirVotoResponse{
		VotoID:     voto.VotoID,
		VotacionID: voto.VotacionID,
		VotedAt:    voto.VotedAt,
	}, nil
}

func (h Handler) ResultadosHandler(ctx context.Context, votacionID string) (httptransport.ResultadosResponse, error) {
	resultado, err := h.Resultados.Compute(ctx, votacionID)
	if err != nil {
		return httptransport.ResultadosResponse{}, err
	}

	lineas := make([]httptransport.OpcionResultadoResponse, 0, len(resultado.Resultados))
	for _, linea := range resultado.Resultados {
		lineas = append(lineas, httptransport.OpcionResultadoResponse{
			OpcionID:   linea.OpcionID,
			Label:      linea.Label,
			Count:      linea.Count,
			Percentage: linea.Percentage,
		})
	}
	return httptransport.ResultadosResponse{
		Votacion:          votacionResponse(resultado.Votacion),
		TotalVotos:        resultado.TotalVotos,
		TotalAbstenciones: resultado.TotalAbstenciones,
		Resultados:        lineas,
		QuorumAlcanzado:   resultado.QuorumAlcanzado,
		TotalVecinos:      resultado.TotalVecinos,
		Participacion:     resultado.Participacion,
	}, nil
}
