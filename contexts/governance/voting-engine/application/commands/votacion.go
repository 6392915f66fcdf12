package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "vecindario/contexts/governance/voting-engine/application"
	"vecindario/contexts/governance/voting-engine/domain/entities"
	domainerrors "vecindario/contexts/governance/voting-engine/domain/errors"
	"vecindario/contexts/governance/voting-engine/ports"
)

// OpcionInput is one option definition supplied on create/update.
type OpcionInput struct {
	Label       string
	Description string
}

// DefineVotacionCommand carries the mutable fields of a draft votacion. It is
// shared by create and update; update replaces the option set wholesale.
type DefineVotacionCommand struct {
	Title            string
	Description      string
	RequiresQuorum   bool
	QuorumPercentage int
	AllowAbstention  bool
	Opciones         []OpcionInput
}

// VotacionUseCase orchestrates the election lifecycle:
// draft -> active -> closed|cancelled, with drafts deletable.
type VotacionUseCase struct {
	Votaciones ports.VotacionRepository
	Votos      ports.VoteRepository
	Outbox     ports.OutboxWriter
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc VotacionUseCase) Create(ctx context.Context, cmd DefineVotacionCommand, createdBy string) (entities.Votacion, error) {
	logger := application.ResolveLogger(uc.Logger)

	if err := validateDefinition(cmd); err != nil {
		logger.Warn("votacion create validation failed",
			"event", "voting_votacion_create_validation_failed",
			"module", "governance/voting-engine",
			"layer", "application",
			"title", strings.TrimSpace(cmd.Title),
			"error", err.Error(),
		)
		return entities.Votacion{}, err
	}

	votacionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Votacion{}, err
	}
	now := uc.now()

	votacion := entities.Votacion{
		VotacionID:       votacionID,
		Title:            strings.TrimSpace(cmd.Title),
		Description:      strings.TrimSpace(cmd.Description),
		Status:           entities.VotacionStatusDraft,
		RequiresQuorum:   cmd.RequiresQuorum,
		QuorumPercentage: cmd.QuorumPercentage,
		AllowAbstention:  cmd.AllowAbstention,
		CreatedBy:        strings.TrimSpace(createdBy),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	votacion.Opciones, err = uc.buildOpciones(ctx, votacionID, cmd.Opciones)
	if err != nil {
		return entities.Votacion{}, err
	}

	if err := uc.Votaciones.CreateVotacion(ctx, votacion); err != nil {
		return entities.Votacion{}, err
	}

	logger.Info("votacion created",
		"event", "voting_votacion_created",
		"module", "governance/voting-engine",
		"layer", "application",
		"votacion_id", votacionID,
		"opciones", len(votacion.Opciones),
		"requires_quorum", cmd.RequiresQuorum,
	)
	return votacion, nil
}

func (uc VotacionUseCase) Update(ctx context.Context, votacionID string, cmd DefineVotacionCommand) (entities.Votacion, error) {
	logger := application.ResolveLogger(uc.Logger)

	current, err := uc.Votaciones.GetVotacion(ctx, votacionID)
	if err != nil {
		return entities.Votacion{}, err
	}
	if current.Status != entities.VotacionStatusDraft {
		logger.Warn("votacion update rejected outside draft",
			"event", "voting_votacion_update_invalid_state",
			"module", "governance/voting-engine",
			"layer", "application",
			"votacion_id", votacionID,
			"status", string(current.Status),
		)
		return entities.Votacion{}, domainerrors.ErrInvalidState
	}
	if err := validateDefinition(cmd); err != nil {
		return entities.Votacion{}, err
	}

	current.Title = strings.TrimSpace(cmd.Title)
	current.Description = strings.TrimSpace(cmd.Description)
	current.RequiresQuorum = cmd.RequiresQuorum
	current.QuorumPercentage = cmd.QuorumPercentage
	current.AllowAbstention = cmd.AllowAbstention
	current.UpdatedAt = uc.now()
	current.Opciones, err = uc.buildOpciones(ctx, votacionID, cmd.Opciones)
	if err != nil {
		return entities.Votacion{}, err
	}

	if err := uc.Votaciones.UpdateVotacion(ctx, current); err != nil {
		return entities.Votacion{}, err
	}

	logger.Info("votacion updated",
		"event", "voting_votacion_updated",
		"module", "governance/voting-engine",
		"layer", "application",
		"votacion_id", votacionID,
		"opciones", len(current.Opciones),
	)
	return current, nil
}

// Publish transitions draft -> active and fixes the start date.
func (uc VotacionUseCase) Publish(ctx context.Context, votacionID string) (entities.Votacion, error) {
	logger := application.ResolveLogger(uc.Logger)

	current, err := uc.Votaciones.GetVotacion(ctx, votacionID)
	if err != nil {
		return entities.Votacion{}, err
	}
	if current.Status != entities.VotacionStatusDraft {
		return entities.Votacion{}, domainerrors.ErrInvalidState
	}
	if len(current.Opciones) < 2 {
		return entities.Votacion{}, domainerrors.ErrNotEnoughOpciones
	}

	now := uc.now()
	current.Status = entities.VotacionStatusActive
	current.StartDate = &now
	current.UpdatedAt = now

	if err := uc.Votaciones.UpdateVotacion(ctx, current); err != nil {
		return entities.Votacion{}, err
	}
	if err := uc.appendLifecycleOutbox(ctx, current, eventVotacionPublished); err != nil {
		return entities.Votacion{}, err
	}

	logger.Info("votacion published",
		"event", "voting_votacion_published",
		"module", "governance/voting-engine",
		"layer", "application",
		"votacion_id", votacionID,
	)
	return current, nil
}

// Close transitions active -> closed and fixes the end date.
func (uc VotacionUseCase) Close(ctx context.Context, votacionID string) (entities.Votacion, error) {
	logger := application.ResolveLogger(uc.Logger)

	current, err := uc.Votaciones.GetVotacion(ctx, votacionID)
	if err != nil {
		return entities.Votacion{}, err
	}
	if current.Status != entities.VotacionStatusActive {
		return entities.Votacion{}, domainerrors.ErrInvalidState
	}

	now := uc.now()
	current.Status = entities.VotacionStatusClosed
	current.EndDate = &now
	current.UpdatedAt = now

	if err := uc.Votaciones.UpdateVotacion(ctx, current); err != nil {
		return entities.Votacion{}, err
	}
	if err := uc.appendLifecycleOutbox(ctx, current, eventVotacionClosed); err != nil {
		return entities.Votacion{}, err
	}

	logger.Info("votacion closed",
		"event", "voting_votacion_closed",
		"module", "governance/voting-engine",
		"layer", "application",
		"votacion_id", votacionID,
	)
	return current, nil
}

// Cancel transitions active -> cancelled. Drafts are deleted, not cancelled.
func (uc VotacionUseCase) Cancel(ctx context.Context, votacionID string) (entities.Votacion, error) {
	logger := application.ResolveLogger(uc.Logger)

	current, err := uc.Votaciones.GetVotacion(ctx, votacionID)
	if err != nil {
		return entities.Votacion{}, err
	}
	if current.Status != entities.VotacionStatusActive {
		return entities.Votacion{}, domainerrors.ErrInvalidState
	}

	current.Status = entities.VotacionStatusCancelled
	current.UpdatedAt = uc.now()

	if err := uc.Votaciones.UpdateVotacion(ctx, current); err != nil {
		return entities.Votacion{}, err
	}

	logger.Info("votacion cancelled",
		"event", "voting_votacion_cancelled",
		"module", "governance/voting-engine",
		"layer", "application",
		"votacion_id", votacionID,
	)
	return current, nil
}

// Delete removes a draft votacion entirely.
func (uc VotacionUseCase) Delete(ctx context.Context, votacionID string) error {
	logger := application.ResolveLogger(uc.Logger)

	current, err := uc.Votaciones.GetVotacion(ctx, votacionID)
	if err != nil {
		return err
	}
	if current.Status != entities.VotacionStatusDraft {
		return domainerrors.ErrInvalidState
	}
	if err := uc.Votaciones.DeleteVotacion(ctx, votacionID); err != nil {
		return err
	}

	logger.Info("votacion deleted",
		"event", "voting_votacion_deleted",
		"module", "governance/voting-engine",
		"layer", "application",
		"votacion_id", votacionID,
	)
	return nil
}

func (uc VotacionUseCase) buildOpciones(ctx context.Context, votacionID string, inputs []OpcionInput) ([]entities.Opcion, error) {
	opciones := make([]entities.Opcion, 0, len(inputs))
	for _, input := range inputs {
		label := strings.TrimSpace(input.Label)
		if label == "" {
			continue
		}
		opcionID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return nil, err
		}
		opciones = append(opciones, entities.Opcion{
			OpcionID:    opcionID,
			VotacionID:  votacionID,
			Label:       label,
			Description: strings.TrimSpace(input.Description),
			OrderIndex:  len(opciones),
		})
	}
	return opciones, nil
}

func validateDefinition(cmd DefineVotacionCommand) error {
	if strings.TrimSpace(cmd.Title) == "" {
		return domainerrors.ErrInvalidInput
	}
	labels := 0
	for _, opcion := range cmd.Opciones {
		if strings.TrimSpace(opcion.Label) != "" {
			labels++
		}
	}
	if labels < 2 {
		return domainerrors.ErrNotEnoughOpciones
	}
	if cmd.RequiresQuorum && (cmd.QuorumPercentage < 1 || cmd.QuorumPercentage > 100) {
		return domainerrors.ErrQuorumOutOfRange
	}
	return nil
}

func (uc VotacionUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
