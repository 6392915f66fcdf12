package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"vecindario/contexts/community/emergency-service/domain/entities"
	domainerrors "vecindario/contexts/community/emergency-service/domain/errors"
	"vecindario/internal/shared/outbox"

	"github.com/google/uuid"
)

// Store is the in-memory adapter used by tests and local bootstrap.
type Store struct {
	mu      sync.RWMutex
	alertas map[string]entities.Alerta
	outbox  map[string]outbox.Message
}

func NewStore() *Store {
	return &Store{
		alertas: make(map[string]entities.Alerta),
		outbox:  make(map[string]outbox.Message),
	}
}

func (s *Store) CreateAlerta(_ context.Context, alerta entities.Alerta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alertas[alerta.AlertaID] = alerta
	return nil
}

func (s *Store) GetAlerta(_ context.Context, alertaID string) (entities.Alerta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	alerta, ok := s.alertas[alertaID]
	if !ok {
		return entities.Alerta{}, domainerrors.ErrAlertaNotFound
	}
	return alerta, nil
}

func (s *Store) UpdateAlerta(_ context.Context, alerta entities.Alerta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.alertas[alerta.AlertaID]; !ok {
		return domainerrors.ErrAlertaNotFound
	}
	s.alertas[alerta.AlertaID] = alerta
	return nil
}

func (s *Store) ListAlertas(_ context.Context, activeOnly bool) ([]entities.Alerta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alertas := make([]entities.Alerta, 0, len(s.alertas))
	for _, alerta := range s.alertas {
		if activeOnly && alerta.Status != entities.AlertaStatusActive {
			continue
		}
		alertas = append(alertas, alerta)
	}
	sort.Slice(alertas, func(i, j int) bool { return alertas[i].CreatedAt.After(alertas[j].CreatedAt) })
	return alertas, nil
}

func (s *Store) AppendOutbox(_ context.Context, message outbox.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outbox[message.ID] = message
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]outbox.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pending := make([]outbox.Message, 0)
	for _, message := range s.outbox {
		if message.Status == outbox.StatusPending {
			pending = append(pending, message)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].CreatedAt.Before(pending[j].CreatedAt) })
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	message, ok := s.outbox[outboxID]
	if !ok {
		return nil
	}
	message.Status = outbox.StatusPublished
	s.outbox[outboxID] = message
	return nil
}

// SystemClock satisfies ports.Clock with wall time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator satisfies ports.IDGenerator with random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
