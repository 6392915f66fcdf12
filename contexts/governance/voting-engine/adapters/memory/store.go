package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"vecindario/contexts/governance/voting-engine/domain/entities"
	domainerrors "vecindario/contexts/governance/voting-engine/domain/errors"
	"vecindario/contexts/governance/voting-engine/ports"
	"vecindario/internal/shared/outbox"

	"github.com/google/uuid"
)

// Store is the in-memory adapter used by tests and local bootstrap. The
// single mutex makes SaveVoto's uniqueness check atomic, mirroring the
// unique index the postgres adapter relies on.
type Store struct {
	mu sync.RWMutex

	votaciones map[string]entities.Votacion
	votos      map[string]entities.Voto
	voterIndex map[string]string // votacionID+"\x00"+userID -> votoID
	outbox     map[string]outbox.Message

	eligibleVoters int
}

func NewStore() *Store {
	return &Store{
		votaciones: make(map[string]entities.Votacion),
		votos:      make(map[string]entities.Voto),
		voterIndex: make(map[string]string),
		outbox:     make(map[string]outbox.Message),
	}
}

// SetEligibleVoters seeds the roster answer used in participation math.
func (s *Store) SetEligibleVoters(count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eligibleVoters = count
}

func (s *Store) CountEligibleVoters(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.eligibleVoters, nil
}

func (s *Store) CreateVotacion(_ context.Context, votacion entities.Votacion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votaciones[votacion.VotacionID] = cloneVotacion(votacion)
	return nil
}

func (s *Store) GetVotacion(_ context.Context, votacionID string) (entities.Votacion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	votacion, ok := s.votaciones[votacionID]
	if !ok {
		return entities.Votacion{}, domainerrors.ErrVotacionNotFound
	}
	return cloneVotacion(votacion), nil
}

func (s *Store) UpdateVotacion(_ context.Context, votacion entities.Votacion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.votaciones[votacion.VotacionID]; !ok {
		return domainerrors.ErrVotacionNotFound
	}
	s.votaciones[votacion.VotacionID] = cloneVotacion(votacion)
	return nil
}

func (s *Store) DeleteVotacion(_ context.Context, votacionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.votaciones[votacionID]; !ok {
		return domainerrors.ErrVotacionNotFound
	}
	delete(s.votaciones, votacionID)
	return nil
}

func (s *Store) ListVotaciones(_ context.Context, filter ports.VotacionFilter) ([]entities.Votacion, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]entities.Votacion, 0, len(s.votaciones))
	for _, votacion := range s.votaciones {
		if filter.Status != "" && votacion.Status != filter.Status {
			continue
		}
		all = append(all, cloneVotacion(votacion))
	}
	sort.Slice(all, func(i, j int) bool {
		if statusRank(all[i].Status) != statusRank(all[j].Status) {
			return statusRank(all[i].Status) < statusRank(all[j].Status)
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	page, perPage := normalizePage(filter.Page, filter.PerPage)
	start := (page - 1) * perPage
	if start >= len(all) {
		return []entities.Votacion{}, total, nil
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (s *Store) SaveVoto(_ context.Context, voto entities.Voto) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := voterKey(voto.VotacionID, voto.UserID)
	if _, exists := s.voterIndex[key]; exists {
		return domainerrors.ErrDuplicateVote
	}
	s.voterIndex[key] = voto.VotoID
	s.votos[voto.VotoID] = voto
	return nil
}

func (s *Store) HasVoted(_ context.Context, votacionID string, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.voterIndex[voterKey(votacionID, userID)]
	return exists, nil
}

func (s *Store) ListVotos(_ context.Context, votacionID string) ([]entities.Voto, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	votos := make([]entities.Voto, 0)
	for _, voto := range s.votos {
		if voto.VotacionID == votacionID {
			votos = append(votos, voto)
		}
	}
	sort.Slice(votos, func(i, j int) bool { return votos[i].VotedAt.Before(votos[j].VotedAt) })
	return votos, nil
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

func voterKey(votacionID string, userID string) string {
	return votacionID + "\x00" + userID
}

func statusRank(status entities.VotacionStatus) int {
	switch status {
	case entities.VotacionStatusActive:
		return 1
	case entities.VotacionStatusDraft:
		return 2
	case entities.VotacionStatusClosed:
		return 3
	default:
		return 4
	}
}

func normalizePage(page int, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}
	return page, perPage
}

func cloneVotacion(votacion entities.Votacion) entities.Votacion {
	clone := votacion
	clone.Opciones = append([]entities.Opcion(nil), votacion.Opciones...)
	return clone
}
