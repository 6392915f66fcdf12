package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"vecindario/contexts/finance/treasury-service/domain/entities"
	domainerrors "vecindario/contexts/finance/treasury-service/domain/errors"
	"vecindario/contexts/finance/treasury-service/ports"

	"gorm.io/gorm"
)

// Repository is the postgres adapter for the treasury ledger.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) CreateMovimiento(ctx context.Context, movimiento entities.Movimiento) error {
	row := movimientoModelFromEntity(movimiento)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("treasury_repo_create_failed", err, "movimiento_id", movimiento.MovimientoID)
	}
	return nil
}

func (r *Repository) GetMovimiento(ctx context.Context, movimientoID string) (entities.Movimiento, error) {
	var row movimientoModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(movimientoID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Movimiento{}, domainerrors.ErrMovimientoNotFound
		}
		return entities.Movimiento{}, r.logError("treasury_repo_get_failed", err, "movimiento_id", movimientoID)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListMovimientos(ctx context.Context, filter ports.MovimientoFilter) ([]entities.Movimiento, int, error) {
	query := r.db.WithContext(ctx).Model(&movimientoModel{})
	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}
	if filter.Year != 0 {
		query = query.Where("EXTRACT(YEAR FROM date) = ?", filter.Year)
	}
	if filter.Month != 0 {
		query = query.Where("EXTRACT(MONTH FROM date) = ?", filter.Month)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, r.logError("treasury_repo_count_failed", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	var rows []movimientoModel
	err := query.
		Order("date DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, r.logError("treasury_repo_list_failed", err)
	}

	movimientos := make([]entities.Movimiento, 0, len(rows))
	for _, row := range rows {
		movimientos = append(movimientos, row.toEntity())
	}
	return movimientos, int(total), nil
}

// Resumen pushes the ledger fold into the store as two SUM aggregates.
func (r *Repository) Resumen(ctx context.Context) (entities.ResumenTesoreria, error) {
	var resumen entities.ResumenTesoreria
	err := r.db.WithContext(ctx).Model(&movimientoModel{}).
		Where("type = ?", string(entities.MovimientoIngreso)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&resumen.TotalIngresos).
		Error
	if err != nil {
		return entities.ResumenTesoreria{}, r.logError("treasury_repo_resumen_failed", err)
	}
	err = r.db.WithContext(ctx).Model(&movimientoModel{}).
		Where("type = ?", string(entities.MovimientoEgreso)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&resumen.TotalEgresos).
		Error
	if err != nil {
		return entities.ResumenTesoreria{}, r.logError("treasury_repo_resumen_failed", err)
	}
	resumen.Balance = resumen.TotalIngresos - resumen.TotalEgresos
	return resumen, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "finance/treasury-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("treasury repository operation failed", fields...)
	return err
}
