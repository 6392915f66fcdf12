package outbox

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"vecindario/internal/shared/events"
)

// Message is an outbox row persisted inside the same logical transaction as
// the state change that produced it. The worker relay reads pending rows and
// publishes them to the message bus.
type Message struct {
	ID         string
	EventType  string
	Payload    []byte
	Status     string // pending, published, failed
	RetryCount int
	CreatedAt  time.Time
}

const (
	StatusPending   = "pending"
	StatusPublished = "published"
	StatusFailed    = "failed"
)

// Source is implemented by context stores that persist outbox rows.
type Source interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]Message, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

// Publisher is the message-bus side of the relay.
type Publisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

// Relay publishes persisted outbox records from one source to the event bus.
type Relay struct {
	Name      string
	Source    Source
	Publisher Publisher
	BatchSize int
	Logger    *slog.Logger
}

// RunOnce publishes a bounded batch of pending outbox rows and marks each row
// published only after bus publish succeeds. It stops on the first failure so
// the retry loop can reprocess remaining rows safely.
func (r Relay) RunOnce(ctx context.Context) error {
	logger := r.logger()
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Source.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("outbox list failed",
			"event", "outbox_relay_list_failed",
			"module", "internal/shared/outbox",
			"layer", "worker",
			"source", r.Name,
			"error", err.Error(),
		)
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, row := range pending {
		var event events.Envelope
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			logger.Error("outbox decode failed",
				"event", "outbox_relay_decode_failed",
				"module", "internal/shared/outbox",
				"layer", "worker",
				"source", r.Name,
				"outbox_id", row.ID,
				"error", err.Error(),
			)
			return err
		}
		topic := event.EventType
		if topic == "" {
			topic = row.EventType
		}
		if err := r.Publisher.Publish(ctx, topic, event); err != nil {
			logger.Error("outbox publish failed",
				"event", "outbox_relay_publish_failed",
				"module", "internal/shared/outbox",
				"layer", "worker",
				"source", r.Name,
				"outbox_id", row.ID,
				"topic", topic,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Source.MarkOutboxPublished(ctx, row.ID, now); err != nil {
			logger.Error("outbox mark published failed",
				"event", "outbox_relay_mark_failed",
				"module", "internal/shared/outbox",
				"layer", "worker",
				"source", r.Name,
				"outbox_id", row.ID,
				"error", err.Error(),
			)
			return err
		}
	}

	logger.Info("outbox relay cycle completed",
		"event", "outbox_relay_completed",
		"module", "internal/shared/outbox",
		"layer", "worker",
		"source", r.Name,
		"published", len(pending),
	)
	return nil
}

func (r Relay) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
