package commands

import (
	"context"
	"strings"

	application "vecindario/contexts/governance/voting-engine/application"
	"vecindario/contexts/governance/voting-engine/domain/entities"
	domainerrors "vecindario/contexts/governance/voting-engine/domain/errors"
)

// CastVoteCommand is the write-model input for ballot collection. OpcionID is
// empty when IsAbstention is set; they are mutually exclusive.
type CastVoteCommand struct {
	VotacionID   string
	UserID       string
	OpcionID     string
	IsAbstention bool
}

// CastVote records exactly one ballot per (votacion, user). Duplicate
// detection is delegated to the repository's atomic uniqueness guarantee; a
// check-then-insert here would race under concurrent attempts.
func (uc VotacionUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (entities.Voto, error) {
	logger := application.ResolveLogger(uc.Logger)

	userID := strings.TrimSpace(cmd.UserID)
	opcionID := strings.TrimSpace(cmd.OpcionID)
	if userID == "" {
		return entities.Voto{}, domainerrors.ErrInvalidInput
	}
	if cmd.IsAbstention && opcionID != "" {
		return entities.Voto{}, domainerrors.ErrInvalidInput
	}
	if !cmd.IsAbstention && opcionID == "" {
		return entities.Voto{}, domainerrors.ErrInvalidInput
	}

	votacion, err := uc.Votaciones.GetVotacion(ctx, cmd.VotacionID)
	if err != nil {
		return entities.Voto{}, err
	}
	if votacion.Status != entities.VotacionStatusActive {
		logger.Warn("vote rejected on inactive votacion",
			"event", "voting_vote_invalid_state",
			"module", "governance/voting-engine",
			"layer", "application",
			"votacion_id", votacion.VotacionID,
			"status", string(votacion.Status),
			"user_id", userID,
		)
		return entities.Voto{}, domainerrors.ErrInvalidState
	}

	if cmd.IsAbstention {
		if !votacion.AllowAbstention {
			return entities.Voto{}, domainerrors.ErrAbstentionNotAllowed
		}
	} else if !votacion.HasOpcion(opcionID) {
		return entities.Voto{}, domainerrors.ErrOpcionNotFound
	}

	votoID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Voto{}, err
	}
	voto := entities.Voto{
		VotoID:       votoID,
		VotacionID:   votacion.VotacionID,
		UserID:       userID,
		OpcionID:     opcionID,
		IsAbstention: cmd.IsAbstention,
		VotedAt:      uc.now(),
	}
	if err := uc.Votos.SaveVoto(ctx, voto); err != nil {
		return entities.Voto{}, err
	}

	logger.Info("vote recorded",
		"event", "voting_vote_recorded",
		"module", "governance/voting-engine",
		"layer", "application",
		"votacion_id", votacion.VotacionID,
		"user_id", userID,
		"is_abstention", cmd.IsAbstention,
	)
	return voto, nil
}
