package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"vecindario/contexts/community/emergency-service/domain/entities"
	domainerrors "vecindario/contexts/community/emergency-service/domain/errors"
	"vecindario/internal/shared/outbox"

	"gorm.io/gorm"
)

// Repository is the postgres adapter for emergency alerts.
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

func (r *Repository) CreateAlerta(ctx context.Context, alerta entities.Alerta) error {
	row := alertaModelFromEntity(alerta)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("emergencies_repo_create_failed", err, "alerta_id", alerta.AlertaID)
	}
	return nil
}

func (r *Repository) GetAlerta(ctx context.Context, alertaID string) (entities.Alerta, error) {
	var row alertaModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(alertaID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Alerta{}, domainerrors.ErrAlertaNotFound
		}
		return entities.Alerta{}, r.logError("emergencies_repo_get_failed", err, "alerta_id", alertaID)
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateAlerta(ctx context.Context, alerta entities.Alerta) error {
	row := alertaModelFromEntity(alerta)
	result := r.db.WithContext(ctx).Model(&alertaModel{}).Where("id = ?", row.ID).Updates(map[string]any{
		"status":      row.Status,
		"resolved_by": row.ResolvedBy,
		"resolved_at": row.ResolvedAt,
		"updated_at":  row.UpdatedAt,
	})
	if result.Error != nil {
		return r.logError("emergencies_repo_update_failed", result.Error, "alerta_id", alerta.AlertaID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAlertaNotFound
	}
	return nil
}

func (r *Repository) ListAlertas(ctx context.Context, activeOnly bool) ([]entities.Alerta, error) {
	query := r.db.WithContext(ctx).Model(&alertaModel{})
	if activeOnly {
		query = query.Where("status = ?", string(entities.AlertaStatusActive))
	}
	var rows []alertaModel
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, r.logError("emergencies_repo_list_failed", err)
	}
	alertas := make([]entities.Alerta, 0, len(rows))
	for _, row := range rows {
		alertas = append(alertas, row.toEntity())
	}
	return alertas, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, message outbox.Message) error {
	row := outboxModelFromMessage(message)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("emergencies_repo_append_outbox_failed", err, "outbox_id", message.ID)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outbox.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("emergencies_repo_list_outbox_failed", err)
	}
	messages := make([]outbox.Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, row.toMessage())
	}
	return messages, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	err := r.db.WithContext(ctx).Model(&outboxModel{}).
		Where("id = ?", outboxID).
		Updates(map[string]any{
			"status":       outbox.StatusPublished,
			"published_at": publishedAt.UTC(),
		}).
		Error
	if err != nil {
		return r.logError("emergencies_repo_mark_outbox_failed", err, "outbox_id", outboxID)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "community/emergency-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("emergency repository operation failed", fields...)
	return err
}
