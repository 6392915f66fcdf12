package httpadapter

import (
	"vecindario/contexts/governance/voting-engine/application/commands"
	"vecindario/contexts/governance/voting-engine/domain/entities"
	"vecindario/contexts/governance/voting-engine/ports"
	httptransport "vecindario/contexts/governance/voting-engine/transport/http"
)

func definitionFromRequest(req httptransport.CreateVotacionRequest) commands.DefineVotacionCommand {
	opciones := make([]commands.OpcionInput, 0, len(req.Opciones))
	for _, opcion := range req.Opciones {
		opciones = append(opciones, commands.OpcionInput{
			Label:       opcion.Label,
			Description: opcion.Description,
		})
	}
	return commands.DefineVotacionCommand{
		Title:            req.Title,
		Description:      req.Description,
		RequiresQuorum:   req.RequiresQuorum,
		QuorumPercentage: req.QuorumPercentage,
		AllowAbstention:  req.AllowAbstention,
		Opciones:         opciones,
	}
}

func votacionResponse(votacion entities.Votacion) httptransport.VotacionResponse {
	opciones := make([]httptransport.OpcionResponse, 0, len(votacion.Opciones))
	for _, opcion := range votacion.Opciones {
		opciones = append(opciones, httptransport.OpcionResponse{
			OpcionID:    opcion.OpcionID,
			Label:       opcion.Label,
			Description: opcion.Description,
			OrderIndex:  opcion.OrderIndex,
		})
	}
	return httptransport.VotacionResponse{
		VotacionID:       votacion.VotacionID,
		Title:            votacion.Title,
		Description:      votacion.Description,
		Status:           string(votacion.Status),
		StartDate:        votacion.StartDate,
		EndDate:          votacion.EndDate,
		RequiresQuorum:   votacion.RequiresQuorum,
		QuorumPercentage: votacion.QuorumPercentage,
		AllowAbstention:  votacion.AllowAbstention,
		Opciones:         opciones,
		CreatedAt:        votacion.CreatedAt,
		UpdatedAt:        votacion.UpdatedAt,
	}
}

func listFilter(status string, page int, perPage int) ports.VotacionFilter {
	return ports.VotacionFilter{
		Status:  entities.VotacionStatus(status),
		Page:    page,
		PerPage: perPage,
	}
}
