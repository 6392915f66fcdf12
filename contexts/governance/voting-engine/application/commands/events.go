package commands

import (
	"context"
	"encoding/json"
	"time"

	"vecindario/contexts/governance/voting-engine/domain/entities"
	"vecindario/internal/shared/events"
	"vecindario/internal/shared/outbox"
)

const (
	eventVotacionPublished = events.TypeVotacionPublished
	eventVotacionClosed    = events.TypeVotacionClosed
)

// VotacionLifecyclePayload is the event body for publish/close notifications
// consumed by the push-notification fan-out.
type VotacionLifecyclePayload struct {
	VotacionID string     `json:"votacion_id"`
	Title      string     `json:"title"`
	Status     string     `json:"status"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

func (uc VotacionUseCase) appendLifecycleOutbox(ctx context.Context, votacion entities.Votacion, eventType string) error {
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope := events.Envelope{
		EventID:        eventID,
		EventType:      eventType,
		SourceService:  "governance/voting-engine",
		OccurredAtUTC:  uc.now(),
		EntityType:     "votacion",
		EntityID:       votacion.VotacionID,
		PayloadVersion: 1,
		Payload: VotacionLifecyclePayload{
			VotacionID: votacion.VotacionID,
			Title:      votacion.Title,
			Status:     string(votacion.Status),
			StartDate:  votacion.StartDate,
			EndDate:    votacion.EndDate,
		},
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, outbox.Message{
		ID:        eventID,
		EventType: eventType,
		Payload:   payload,
		Status:    outbox.StatusPending,
		CreatedAt: uc.now(),
	})
}
