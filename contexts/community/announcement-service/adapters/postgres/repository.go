package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"vecindario/contexts/community/announcement-service/domain/entities"
	domainerrors "vecindario/contexts/community/announcement-service/domain/errors"
	"vecindario/contexts/community/announcement-service/ports"

	"gorm.io/gorm"
)

// Repository is the postgres adapter for the announcement board.
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

func (r *Repository) CreateComunicado(ctx context.Context, comunicado entities.Comunicado) error {
	row := comunicadoModelFromEntity(comunicado)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("announcements_repo_create_failed", err, "comunicado_id", comunicado.ComunicadoID)
	}
	return nil
}

func (r *Repository) GetComunicado(ctx context.Context, comunicadoID string) (entities.Comunicado, error) {
	var row comunicadoModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(comunicadoID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Comunicado{}, domainerrors.ErrComunicadoNotFound
		}
		return entities.Comunicado{}, r.logError("announcements_repo_get_failed", err, "comunicado_id", comunicadoID)
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateComunicado(ctx context.Context, comunicado entities.Comunicado) error {
	row := comunicadoModelFromEntity(comunicado)
	result := r.db.WithContext(ctx).Model(&comunicadoModel{}).Where("id = ?", row.ID).Updates(map[string]any{
		"title":      row.Title,
		"content":    row.Content,
		"category":   row.Category,
		"pinned":     row.Pinned,
		"updated_at": row.UpdatedAt,
	})
	if result.Error != nil {
		return r.logError("announcements_repo_update_failed", result.Error, "comunicado_id", comunicado.ComunicadoID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrComunicadoNotFound
	}
	return nil
}

func (r *Repository) DeleteComunicado(ctx context.Context, comunicadoID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", strings.TrimSpace(comunicadoID)).Delete(&comunicadoModel{})
	if result.Error != nil {
		return r.logError("announcements_repo_delete_failed", result.Error, "comunicado_id", comunicadoID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrComunicadoNotFound
	}
	return nil
}

func (r *Repository) ListComunicados(ctx context.Context, filter ports.ComunicadoFilter) ([]entities.Comunicado, int, error) {
	query := r.db.WithContext(ctx).Model(&comunicadoModel{})
	if filter.Category != "" {
		query = query.Where("category = ?", string(filter.Category))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, r.logError("announcements_repo_count_failed", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	var rows []comunicadoModel
	err := query.
		Order("pinned DESC, created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, r.logError("announcements_repo_list_failed", err)
	}

	comunicados := make([]entities.Comunicado, 0, len(rows))
	for _, row := range rows {
		comunicados = append(comunicados, row.toEntity())
	}
	return comunicados, int(total), nil
}

func (r *Repository) LatestComunicados(ctx context.Context, limit int) ([]entities.Comunicado, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []comunicadoModel
	err := r.db.WithContext(ctx).
		Order("pinned DESC, created_at DESC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("announcements_repo_latest_failed", err)
	}
	comunicados := make([]entities.Comunicado, 0, len(rows))
	for _, row := range rows {
		comunicados = append(comunicados, row.toEntity())
	}
	return comunicados, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "community/announcement-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("announcement repository operation failed", fields...)
	return err
}
