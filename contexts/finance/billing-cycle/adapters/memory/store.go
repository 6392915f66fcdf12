package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"vecindario/contexts/finance/billing-cycle/domain/entities"
	domainerrors "vecindario/contexts/finance/billing-cycle/domain/errors"
	"vecindario/contexts/finance/billing-cycle/ports"
	"vecindario/internal/shared/outbox"

	"github.com/google/uuid"
)

// Store is the in-memory adapter used by tests and local bootstrap. The
// single mutex serializes UpdateGastoSerialized the same way the postgres
// adapter's row lock does.
type Store struct {
	mu sync.RWMutex

	periodos    map[string]entities.PeriodoGasto
	periodIndex map[string]string // year+"\x00"+month -> periodoID
	gastos      map[string]entities.GastoComun
	outbox      map[string]outbox.Message

	parcelas []ports.ParcelaProjection
	byUser   map[string]string // userID -> parcelaID
}

func NewStore() *Store {
	return &Store{
		periodos:    make(map[string]entities.PeriodoGasto),
		periodIndex: make(map[string]string),
		gastos:      make(map[string]entities.GastoComun),
		outbox:      make(map[string]outbox.Message),
		byUser:      make(map[string]string),
	}
}

// SetParcelas seeds the roster answer used by the period fan-out.
func (s *Store) SetParcelas(parcelas []ports.ParcelaProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parcelas = append([]ports.ParcelaProjection(nil), parcelas...)
}

// LinkUserParcela associates a resident account with a parcela for the
// self-service statement.
func (s *Store) LinkUserParcela(userID string, parcelaID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[userID] = parcelaID
}

func (s *Store) ListParcelas(_ context.Context) ([]ports.ParcelaProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ports.ParcelaProjection(nil), s.parcelas...), nil
}

func (s *Store) FindParcelaByUser(_ context.Context, userID string) (ports.ParcelaProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	parcelaID, ok := s.byUser[userID]
	if !ok {
		return ports.ParcelaProjection{}, domainerrors.ErrParcelaNotFound
	}
	for _, parcela := range s.parcelas {
		if parcela.ParcelaID == parcelaID {
			return parcela, nil
		}
	}
	return ports.ParcelaProjection{}, domainerrors.ErrParcelaNotFound
}

func (s *Store) CreatePeriodoWithGastos(_ context.Context, periodo entities.PeriodoGasto, gastos []entities.GastoComun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := periodKey(periodo.Year, periodo.Month)
	if _, exists := s.periodIndex[key]; exists {
		return domainerrors.ErrPeriodoExists
	}
	s.periodIndex[key] = periodo.PeriodoID
	s.periodos[periodo.PeriodoID] = periodo
	for _, gasto := range gastos {
		s.gastos[gasto.GastoID] = gasto
	}
	return nil
}

func (s *Store) GetPeriodo(_ context.Context, periodoID string) (entities.PeriodoGasto, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	periodo, ok := s.periodos[periodoID]
	if !ok {
		return entities.PeriodoGasto{}, domainerrors.ErrPeriodoNotFound
	}
	return periodo, nil
}

func (s *Store) ListPeriodos(_ context.Context, filter ports.PeriodoFilter) ([]entities.PeriodoGasto, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]entities.PeriodoGasto, 0, len(s.periodos))
	for _, periodo := range s.periodos {
		if filter.Year != 0 && periodo.Year != filter.Year {
			continue
		}
		all = append(all, periodo)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Year != all[j].Year {
			return all[i].Year > all[j].Year
		}
		return all[i].Month > all[j].Month
	})

	total := len(all)
	page, perPage := normalizePage(filter.Page, filter.PerPage)
	start := (page - 1) * perPage
	if start >= len(all) {
		return []entities.PeriodoGasto{}, total, nil
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (s *Store) GetGasto(_ context.Context, gastoID string) (entities.GastoComun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	gasto, ok := s.gastos[gastoID]
	if !ok {
		return entities.GastoComun{}, domainerrors.ErrGastoNotFound
	}
	return gasto, nil
}

func (s *Store) UpdateGastoSerialized(_ context.Context, gastoID string, mutate func(entities.GastoComun) (entities.GastoComun, error)) (entities.GastoComun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gasto, ok := s.gastos[gastoID]
	if !ok {
		return entities.GastoComun{}, domainerrors.ErrGastoNotFound
	}
	updated, err := mutate(gasto)
	if err != nil {
		return entities.GastoComun{}, err
	}
	s.gastos[gastoID] = updated
	return updated, nil
}

func (s *Store) ListGastosByPeriodo(_ context.Context, periodoID string) ([]entities.GastoComun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	gastos := make([]entities.GastoComun, 0)
	for _, gasto := range s.gastos {
		if gasto.PeriodoID == periodoID {
			gastos = append(gastos, gasto)
		}
	}
	sort.Slice(gastos, func(i, j int) bool { return gastos[i].ParcelaID < gastos[j].ParcelaID })
	return gastos, nil
}

func (s *Store) ListGastosByParcela(_ context.Context, parcelaID string) ([]entities.GastoComun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	gastos := make([]entities.GastoComun, 0)
	for _, gasto := range s.gastos {
		if gasto.ParcelaID == parcelaID {
			gastos = append(gastos, gasto)
		}
	}
	sort.Slice(gastos, func(i, j int) bool { return gastos[i].CreatedAt.After(gastos[j].CreatedAt) })
	return gastos, nil
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

func periodKey(year int, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
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
