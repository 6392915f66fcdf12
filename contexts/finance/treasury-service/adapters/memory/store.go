package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"vecindario/contexts/finance/treasury-service/domain/entities"
	domainerrors "vecindario/contexts/finance/treasury-service/domain/errors"
	"vecindario/contexts/finance/treasury-service/ports"

	"github.com/google/uuid"
)

// Store is the in-memory ledger used by tests and local bootstrap.
type Store struct {
	mu          sync.RWMutex
	movimientos map[string]entities.Movimiento
}

func NewStore() *Store {
	return &Store{movimientos: make(map[string]entities.Movimiento)}
}

func (s *Store) CreateMovimiento(_ context.Context, movimiento entities.Movimiento) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movimientos[movimiento.MovimientoID] = movimiento
	return nil
}

func (s *Store) GetMovimiento(_ context.Context, movimientoID string) (entities.Movimiento, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	movimiento, ok := s.movimientos[movimientoID]
	if !ok {
		return entities.Movimiento{}, domainerrors.ErrMovimientoNotFound
	}
	return movimiento, nil
}

func (s *Store) ListMovimientos(_ context.Context, filter ports.MovimientoFilter) ([]entities.Movimiento, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]entities.Movimiento, 0, len(s.movimientos))
	for _, movimiento := range s.movimientos {
		if filter.Type != "" && movimiento.Type != filter.Type {
			continue
		}
		if filter.Year != 0 && movimiento.Date.Year() != filter.Year {
			continue
		}
		if filter.Month != 0 && int(movimiento.Date.Month()) != filter.Month {
			continue
		}
		all = append(all, movimiento)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })

	total := len(all)
	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	start := (page - 1) * perPage
	if start >= len(all) {
		return []entities.Movimiento{}, total, nil
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (s *Store) Resumen(_ context.Context) (entities.ResumenTesoreria, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var resumen entities.ResumenTesoreria
	for _, movimiento := range s.movimientos {
		switch movimiento.Type {
		case entities.MovimientoIngreso:
			resumen.TotalIngresos += movimiento.Amount
		case entities.MovimientoEgreso:
			resumen.TotalEgresos += movimiento.Amount
		}
	}
	resumen.Balance = resumen.TotalIngresos - resumen.TotalEgresos
	return resumen, nil
}

// SystemClock satisfies ports.Clock with wall time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator satisfies ports.IDGenerator with random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
