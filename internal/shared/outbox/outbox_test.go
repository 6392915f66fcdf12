package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"vecindario/internal/shared/events"
)

type fakeSource struct {
	pending   []Message
	published []string
}

func (s *fakeSource) ListPendingOutbox(_ context.Context, limit int) ([]Message, error) {
	if limit > 0 && len(s.pending) > limit {
		return s.pending[:limit], nil
	}
	return s.pending, nil
}

func (s *fakeSource) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.published = append(s.published, outboxID)
	remaining := s.pending[:0]
	for _, message := range s.pending {
		if message.ID != outboxID {
			remaining = append(remaining, message)
		}
	}
	s.pending = remaining
	return nil
}

type fakePublisher struct {
	topics []string
	failOn string
}

func (p *fakePublisher) Publish(_ context.Context, topic string, _ events.Envelope) error {
	if p.failOn != "" && topic == p.failOn {
		return errors.New("bus unavailable")
	}
	p.topics = append(p.topics, topic)
	return nil
}

func message(t *testing.T, id string, eventType string) Message {
	t.Helper()
	body, err := json.Marshal(events.Envelope{
		EventID:   id,
		EventType: eventType,
	})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	return Message{
		ID:        id,
		EventType: eventType,
		Payload:   body,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

func TestRunOncePublishesAndMarks(t *testing.T) {
	source := &fakeSource{pending: []Message{
		message(t, "m1", events.TypeVotacionPublished),
		message(t, "m2", events.TypeGastoPagado),
	}}
	publisher := &fakePublisher{}
	relay := Relay{Name: "test", Source: source, Publisher: publisher}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once failed: %v", err)
	}
	if len(publisher.topics) != 2 || publisher.topics[0] != events.TypeVotacionPublished {
		t.Fatalf("unexpected topics: %v", publisher.topics)
	}
	if len(source.published) != 2 {
		t.Fatalf("expected both rows marked published, got %v", source.published)
	}
	if len(source.pending) != 0 {
		t.Fatalf("expected no pending rows left, got %d", len(source.pending))
	}
}

func TestRunOnceStopsOnPublishFailure(t *testing.T) {
	source := &fakeSource{pending: []Message{
		message(t, "m1", events.TypeVotacionPublished),
		message(t, "m2", events.TypeGastoPagado),
	}}
	publisher := &fakePublisher{failOn: events.TypeGastoPagado}
	relay := Relay{Name: "test", Source: source, Publisher: publisher}

	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatal("expected publish failure surfaced")
	}
	// The first row was published and marked; the failed one stays pending
	// for the next cycle.
	if len(source.published) != 1 || source.published[0] != "m1" {
		t.Fatalf("unexpected marks: %v", source.published)
	}
	if len(source.pending) != 1 || source.pending[0].ID != "m2" {
		t.Fatalf("expected m2 still pending, got %v", source.pending)
	}
}

func TestRunOnceEmptySourceIsNoop(t *testing.T) {
	source := &fakeSource{}
	publisher := &fakePublisher{}
	relay := Relay{Name: "test", Source: source, Publisher: publisher}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once failed: %v", err)
	}
	if len(publisher.topics) != 0 {
		t.Fatalf("expected no publishes, got %v", publisher.topics)
	}
}
