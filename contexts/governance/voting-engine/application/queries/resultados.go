package queries

import (
	"context"
	"sort"

	"vecindario/contexts/governance/voting-engine/domain/entities"
	"vecindario/contexts/governance/voting-engine/ports"
)

// ResultadosUseCase computes tallies, participation and quorum on demand.
// Nothing is cached; every call aggregates the current vote rows.
type ResultadosUseCase struct {
	Votaciones ports.VotacionRepository
	Votos      ports.VoteRepository
	Roster     ports.CommunityRoster
}

// Compute aggregates all ballots of one votacion. Callable in any lifecycle
// state. Percentages are defined as 0 when their denominator is 0.
func (uc ResultadosUseCase) Compute(ctx context.Context, votacionID string) (entities.Resultado, error) {
	votacion, err := uc.Votaciones.GetVotacion(ctx, votacionID)
	if err != nil {
		return entities.Resultado{}, err
	}

	votos, err := uc.Votos.ListVotos(ctx, votacion.VotacionID)
	if err != nil {
		return entities.Resultado{}, err
	}

	totalVecinos, err := uc.Roster.CountEligibleVoters(ctx)
	if err != nil {
		return entities.Resultado{}, err
	}

	counts := make(map[string]int, len(votacion.Opciones))
	totalVotos := 0
	totalAbstenciones := 0
	for _, voto := range votos {
		if voto.IsAbstention {
			totalAbstenciones++
			continue
		}
		counts[voto.OpcionID]++
		totalVotos++
	}

	resultados := make([]entities.OpcionResultado, 0, len(votacion.Opciones))
	for _, opcion := range votacion.Opciones {
		count := counts[opcion.OpcionID]
		percentage := float64(0)
		if totalVotos > 0 {
			percentage = float64(count) / float64(totalVotos) * 100
		}
		resultados = append(resultados, entities.OpcionResultado{
			OpcionID:   opcion.OpcionID,
			Label:      opcion.Label,
			OrderIndex: opcion.OrderIndex,
			Count:      count,
			Percentage: percentage,
		})
	}
	// Rank by count, ties stay in option order.
	sort.SliceStable(resultados, func(i, j int) bool {
		return resultados[i].Count > resultados[j].Count
	})

	participacion := float64(0)
	if totalVecinos > 0 {
		participacion = float64(totalVotos+totalAbstenciones) / float64(totalVecinos) * 100
	}
	quorumAlcanzado := !votacion.RequiresQuorum || participacion >= float64(votacion.QuorumPercentage)

	return entities.Resultado{
		Votacion:          votacion,
		TotalVotos:        totalVotos,
		TotalAbstenciones: totalAbstenciones,
		Resultados:        resultados,
		TotalVecinos:      totalVecinos,
		Participacion:     participacion,
		QuorumAlcanzado:   quorumAlcanzado,
	}, nil
}
