package ports

import (
	"context"
	"time"

	"vecindario/contexts/community/announcement-service/domain/entities"
)

// ComunicadoFilter narrows board reads. Zero values mean "no filter".
type ComunicadoFilter struct {
	Category entities.ComunicadoCategory
	Page     int
	PerPage  int
}

// ComunicadoRepository persists announcements. Lists order pinned first,
// then newest first.
type ComunicadoRepository interface {
	CreateComunicado(ctx context.Context, comunicado entities.Comunicado) error
	GetComunicado(ctx context.Context, comunicadoID string) (entities.Comunicado, error)
	UpdateComunicado(ctx context.Context, comunicado entities.Comunicado) error
	DeleteComunicado(ctx context.Context, comunicadoID string) error
	ListComunicados(ctx context.Context, filter ComunicadoFilter) ([]entities.Comunicado, int, error)
	LatestComunicados(ctx context.Context, limit int) ([]entities.Comunicado, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
