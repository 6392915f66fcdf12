package ports

import (
	"context"
	"time"

	"vecindario/contexts/finance/treasury-service/domain/entities"
)

// MovimientoFilter narrows ledger reads. Zero values mean "no filter".
type MovimientoFilter struct {
	Type    entities.MovimientoType
	Year    int
	Month   int
	Page    int
	PerPage int
}

// MovimientoRepository persists ledger entries. Resumen folds the whole
// ledger; adapters are free to push the sum into the store.
type MovimientoRepository interface {
	CreateMovimiento(ctx context.Context, movimiento entities.Movimiento) error
	GetMovimiento(ctx context.Context, movimientoID string) (entities.Movimiento, error)
	ListMovimientos(ctx context.Context, filter MovimientoFilter) ([]entities.Movimiento, int, error)
	Resumen(ctx context.Context) (entities.ResumenTesoreria, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
