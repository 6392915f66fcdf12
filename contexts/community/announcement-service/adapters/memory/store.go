package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"vecindario/contexts/community/announcement-service/domain/entities"
	domainerrors "vecindario/contexts/community/announcement-service/domain/errors"
	"vecindario/contexts/community/announcement-service/ports"

	"github.com/google/uuid"
)

// Store is the in-memory board used by tests and local bootstrap.
type Store struct {
	mu          sync.RWMutex
	comunicados map[string]entities.Comunicado
}

func NewStore() *Store {
	return &Store{comunicados: make(map[string]entities.Comunicado)}
}

func (s *Store) CreateComunicado(_ context.Context, comunicado entities.Comunicado) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comunicados[comunicado.ComunicadoID] = comunicado
	return nil
}

func (s *Store) GetComunicado(_ context.Context, comunicadoID string) (entities.Comunicado, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comunicado, ok := s.comunicados[comunicadoID]
	if !ok {
		return entities.Comunicado{}, domainerrors.ErrComunicadoNotFound
	}
	return comunicado, nil
}

func (s *Store) UpdateComunicado(_ context.Context, comunicado entities.Comunicado) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comunicados[comunicado.ComunicadoID]; !ok {
		return domainerrors.ErrComunicadoNotFound
	}
	s.comunicados[comunicado.ComunicadoID] = comunicado
	return nil
}

func (s *Store) DeleteComunicado(_ context.Context, comunicadoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comunicados[comunicadoID]; !ok {
		return domainerrors.ErrComunicadoNotFound
	}
	delete(s.comunicados, comunicadoID)
	return nil
}

func (s *Store) ListComunicados(_ context.Context, filter ports.ComunicadoFilter) ([]entities.Comunicado, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]entities.Comunicado, 0, len(s.comunicados))
	for _, comunicado := range s.comunicados {
		if filter.Category != "" && comunicado.Category != filter.Category {
			continue
		}
		all = append(all, comunicado)
	}
	sortBoard(all)

	total := len(all)
	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}
	start := (page - 1) * perPage
	if start >= len(all) {
		return []entities.Comunicado{}, total, nil
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (s *Store) LatestComunicados(_ context.Context, limit int) ([]entities.Comunicado, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]entities.Comunicado, 0, len(s.comunicados))
	for _, comunicado := range s.comunicados {
		all = append(all, comunicado)
	}
	sortBoard(all)
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// SystemClock satisfies ports.Clock with wall time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator satisfies ports.IDGenerator with random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func sortBoard(comunicados []entities.Comunicado) {
	sort.Slice(comunicados, func(i, j int) bool {
		if comunicados[i].Pinned != comunicados[j].Pinned {
			return comunicados[i].Pinned
		}
		return comunicados[i].CreatedAt.After(comunicados[j].CreatedAt)
	})
}
