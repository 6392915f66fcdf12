package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"vecindario/contexts/governance/voting-engine/domain/entities"
	domainerrors "vecindario/contexts/governance/voting-engine/domain/errors"
	"vecindario/contexts/governance/voting-engine/ports"
	"vecindario/internal/shared/outbox"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository is the postgres adapter for the voting engine. Ballot
// uniqueness relies on the unique index over (votacion_id, user_id); the
// insert maps its violation to ErrDuplicateVote so concurrent double votes
// resolve to exactly one success.
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

func (r *Repository) CreateVotacion(ctx context.Context, votacion entities.Votacion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := votacionModelFromEntity(votacion)
		if err := tx.Create(&row).Error; err != nil {
			return r.logError("voting_repo_create_votacion_failed", err, "votacion_id", votacion.VotacionID)
		}
		for _, opcion := range votacion.Opciones {
			opcionRow := opcionModelFromEntity(opcion)
			if err := tx.Create(&opcionRow).Error; err != nil {
				return r.logError("voting_repo_create_opcion_failed", err, "votacion_id", votacion.VotacionID)
			}
		}
		return nil
	})
}

func (r *Repository) GetVotacion(ctx context.Context, votacionID string) (entities.Votacion, error) {
	var row votacionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(votacionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Votacion{}, domainerrors.ErrVotacionNotFound
		}
		return entities.Votacion{}, r.logError("voting_repo_get_votacion_failed", err, "votacion_id", votacionID)
	}

	var opcionRows []opcionModel
	err = r.db.WithContext(ctx).
		Where("votacion_id = ?", row.ID).
		Order("order_index ASC").
		Find(&opcionRows).
		Error
	if err != nil {
		return entities.Votacion{}, r.logError("voting_repo_list_opciones_failed", err, "votacion_id", votacionID)
	}

	votacion := row.toEntity()
	votacion.Opciones = make([]entities.Opcion, 0, len(opcionRows))
	for _, opcionRow := range opcionRows {
		votacion.Opciones = append(votacion.Opciones, opcionRow.toEntity())
	}
	return votacion, nil
}

// UpdateVotacion rewrites the votacion row and replaces its option set. The
// option rewrite only ever runs for drafts, which hold no votes yet.
func (r *Repository) UpdateVotacion(ctx context.Context, votacion entities.Votacion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := votacionModelFromEntity(votacion)
		result := tx.Model(&votacionModel{}).Where("id = ?", row.ID).Updates(map[string]any{
			"title":             row.Title,
			"description":       row.Description,
			"status":            row.Status,
			"start_date":        row.StartDate,
			"end_date":          row.EndDate,
			"requires_quorum":   row.RequiresQuorum,
			"quorum_percentage": row.QuorumPercentage,
			"allow_abstention":  row.AllowAbstention,
			"updated_at":        row.UpdatedAt,
		})
		if result.Error != nil {
			return r.logError("voting_repo_update_votacion_failed", result.Error, "votacion_id", votacion.VotacionID)
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrVotacionNotFound
		}

		if votacion.Status == entities.VotacionStatusDraft {
			if err := tx.Where("votacion_id = ?", row.ID).Delete(&opcionModel{}).Error; err != nil {
				return r.logError("voting_repo_replace_opciones_failed", err, "votacion_id", votacion.VotacionID)
			}
			for _, opcion := range votacion.Opciones {
				opcionRow := opcionModelFromEntity(opcion)
				if err := tx.Create(&opcionRow).Error; err != nil {
					return r.logError("voting_repo_replace_opciones_failed", err, "votacion_id", votacion.VotacionID)
				}
			}
		}
		return nil
	})
}

func (r *Repository) DeleteVotacion(ctx context.Context, votacionID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("votacion_id = ?", strings.TrimSpace(votacionID)).Delete(&opcionModel{}).Error; err != nil {
			return r.logError("voting_repo_delete_opciones_failed", err, "votacion_id", votacionID)
		}
		result := tx.Where("id = ?", strings.TrimSpace(votacionID)).Delete(&votacionModel{})
		if result.Error != nil {
			return r.logError("voting_repo_delete_votacion_failed", result.Error, "votacion_id", votacionID)
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrVotacionNotFound
		}
		return nil
	})
}

func (r *Repository) ListVotaciones(ctx context.Context, filter ports.VotacionFilter) ([]entities.Votacion, int, error) {
	query := r.db.WithContext(ctx).Model(&votacionModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, r.logError("voting_repo_count_votaciones_failed", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	var rows []votacionModel
	err := query.
		Order("CASE status WHEN 'active' THEN 1 WHEN 'draft' THEN 2 WHEN 'closed' THEN 3 ELSE 4 END, created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, r.logError("voting_repo_list_votaciones_failed", err)
	}

	votaciones := make([]entities.Votacion, 0, len(rows))
	for _, row := range rows {
		votaciones = append(votaciones, row.toEntity())
	}
	return votaciones, int(total), nil
}

func (r *Repository) SaveVoto(ctx context.Context, voto entities.Voto) error {
	row := votoModelFromEntity(voto)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateVote
		}
		return r.logError("voting_repo_save_voto_failed", err,
			"votacion_id", voto.VotacionID,
			"user_id", voto.UserID,
		)
	}
	return nil
}

func (r *Repository) HasVoted(ctx context.Context, votacionID string, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&votoModel{}).
		Where("votacion_id = ?", strings.TrimSpace(votacionID)).
		Where("user_id = ?", strings.TrimSpace(userID)).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("voting_repo_has_voted_failed", err, "votacion_id", votacionID)
	}
	return count > 0, nil
}

func (r *Repository) ListVotos(ctx context.Context, votacionID string) ([]entities.Voto, error) {
	var rows []votoModel
	err := r.db.WithContext(ctx).
		Where("votacion_id = ?", strings.TrimSpace(votacionID)).
		Order("voted_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("voting_repo_list_votos_failed", err, "votacion_id", votacionID)
	}
	votos := make([]entities.Voto, 0, len(rows))
	for _, row := range rows {
		votos = append(votos, row.toEntity())
	}
	return votos, nil
}

// CountEligibleVoters counts accounts with community roles, matching the
// membership rule the identity backend applies.
func (r *Repository) CountEligibleVoters(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("users").
		Where("role IN ?", []string{"vecino", "directiva"}).
		Count(&count).
		Error
	if err != nil {
		return 0, r.logError("voting_repo_count_eligible_failed", err)
	}
	return int(count), nil
}

func (r *Repository) AppendOutbox(ctx context.Context, message outbox.Message) error {
	row := outboxModelFromMessage(message)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("voting_repo_append_outbox_failed", err, "outbox_id", message.ID)
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
		return nil, r.logError("voting_repo_list_outbox_failed", err)
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
		return r.logError("voting_repo_mark_outbox_failed", err, "outbox_id", outboxID)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "governance/voting-engine",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("voting repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
