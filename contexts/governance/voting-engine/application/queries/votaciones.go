package queries

import (
	"context"
	"strings"

	"vecindario/contexts/governance/voting-engine/domain/entities"
	"vecindario/contexts/governance/voting-engine/ports"
)

// VotacionQueries serves the read side of the votacion lifecycle.
type VotacionQueries struct {
	Votaciones ports.VotacionRepository
	Votos      ports.VoteRepository
}

// Get returns one votacion and, when userID is set, whether that user has
// already voted in it.
func (q VotacionQueries) Get(ctx context.Context, votacionID string, userID string) (entities.Votacion, bool, error) {
	votacion, err := q.Votaciones.GetVotacion(ctx, votacionID)
	if err != nil {
		return entities.Votacion{}, false, err
	}
	hasVoted := false
	if strings.TrimSpace(userID) != "" {
		hasVoted, err = q.Votos.HasVoted(ctx, votacion.VotacionID, strings.TrimSpace(userID))
		if err != nil {
			return entities.Votacion{}, false, err
		}
	}
	return votacion, hasVoted, nil
}

// List returns a page of votaciones, active first, newest first within rank.
func (q VotacionQueries) List(ctx context.Context, filter ports.VotacionFilter) ([]entities.Votacion, int, error) {
	return q.Votaciones.ListVotaciones(ctx, filter)
}
