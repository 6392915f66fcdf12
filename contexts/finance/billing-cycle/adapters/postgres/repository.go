package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"vecindario/contexts/finance/billing-cycle/domain/entities"
	domainerrors "vecindario/contexts/finance/billing-cycle/domain/errors"
	"vecindario/contexts/finance/billing-cycle/ports"
	"vecindario/internal/shared/outbox"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the postgres adapter for the billing cycle. Period
// uniqueness per (year, month) and charge uniqueness per (periodo, parcela)
// both live in unique indexes; UpdateGastoSerialized takes a row lock so
// concurrent payments against one charge apply one at a time.
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

func (r *Repository) CreatePeriodoWithGastos(ctx context.Context, periodo entities.PeriodoGasto, gastos []entities.GastoComun) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := periodoModelFromEntity(periodo)
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrPeriodoExists
			}
			return r.logError("billing_repo_create_periodo_failed", err, "periodo_id", periodo.PeriodoID)
		}
		for _, gasto := range gastos {
			gastoRow := gastoModelFromEntity(gasto)
			if err := tx.Create(&gastoRow).Error; err != nil {
				return r.logError("billing_repo_create_gasto_failed", err,
					"periodo_id", periodo.PeriodoID,
					"parcela_id", gasto.ParcelaID,
				)
			}
		}
		return nil
	})
}

func (r *Repository) GetPeriodo(ctx context.Context, periodoID string) (entities.PeriodoGasto, error) {
	var row periodoModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(periodoID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.PeriodoGasto{}, domainerrors.ErrPeriodoNotFound
		}
		return entities.PeriodoGasto{}, r.logError("billing_repo_get_periodo_failed", err, "periodo_id", periodoID)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListPeriodos(ctx context.Context, filter ports.PeriodoFilter) ([]entities.PeriodoGasto, int, error) {
	query := r.db.WithContext(ctx).Model(&periodoModel{})
	if filter.Year != 0 {
		query = query.Where("year = ?", filter.Year)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, r.logError("billing_repo_count_periodos_failed", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	var rows []periodoModel
	err := query.
		Order("year DESC, month DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, r.logError("billing_repo_list_periodos_failed", err)
	}

	periodos := make([]entities.PeriodoGasto, 0, len(rows))
	for _, row := range rows {
		periodos = append(periodos, row.toEntity())
	}
	return periodos, int(total), nil
}

func (r *Repository) GetGasto(ctx context.Context, gastoID string) (entities.GastoComun, error) {
	var row gastoModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(gastoID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.GastoComun{}, domainerrors.ErrGastoNotFound
		}
		return entities.GastoComun{}, r.logError("billing_repo_get_gasto_failed", err, "gasto_id", gastoID)
	}
	return row.toEntity(), nil
}

// UpdateGastoSerialized reads the charge under FOR UPDATE, applies the
// mutation and writes the result in the same transaction. Two concurrent
// payments against one charge therefore both land, in some order, with
// neither overwriting the other.
func (r *Repository) UpdateGastoSerialized(ctx context.Context, gastoID string, mutate func(entities.GastoComun) (entities.GastoComun, error)) (entities.GastoComun, error) {
	var updated entities.GastoComun
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row gastoModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", strings.TrimSpace(gastoID)).
			First(&row).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrGastoNotFound
			}
			return r.logError("billing_repo_lock_gasto_failed", err, "gasto_id", gastoID)
		}

		next, err := mutate(row.toEntity())
		if err != nil {
			return err
		}

		nextRow := gastoModelFromEntity(next)
		err = tx.Model(&gastoModel{}).Where("id = ?", row.ID).Updates(map[string]any{
			"monto_pagado":    nextRow.MontoPagado,
			"status":          nextRow.Status,
			"fecha_pago":      nextRow.FechaPago,
			"metodo_pago":     nextRow.MetodoPago,
			"referencia_pago": nextRow.ReferenciaPago,
			"updated_at":      nextRow.UpdatedAt,
		}).Error
		if err != nil {
			return r.logError("billing_repo_update_gasto_failed", err, "gasto_id", gastoID)
		}
		updated = next
		return nil
	})
	if err != nil {
		return entities.GastoComun{}, err
	}
	return updated, nil
}

func (r *Repository) ListGastosByPeriodo(ctx context.Context, periodoID string) ([]entities.GastoComun, error) {
	var rows []gastoModel
	err := r.db.WithContext(ctx).
		Where("periodo_id = ?", strings.TrimSpace(periodoID)).
		Order("parcela_id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("billing_repo_list_gastos_periodo_failed", err, "periodo_id", periodoID)
	}
	gastos := make([]entities.GastoComun, 0, len(rows))
	for _, row := range rows {
		gastos = append(gastos, row.toEntity())
	}
	return gastos, nil
}

func (r *Repository) ListGastosByParcela(ctx context.Context, parcelaID string) ([]entities.GastoComun, error) {
	var rows []gastoModel
	err := r.db.WithContext(ctx).
		Where("parcela_id = ?", strings.TrimSpace(parcelaID)).
		Order("created_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("billing_repo_list_gastos_parcela_failed", err, "parcela_id", parcelaID)
	}
	gastos := make([]entities.GastoComun, 0, len(rows))
	for _, row := range rows {
		gastos = append(gastos, row.toEntity())
	}
	return gastos, nil
}

// ListParcelas projects billable lots from the identity tables.
func (r *Repository) ListParcelas(ctx context.Context) ([]ports.ParcelaProjection, error) {
	type parcelaRow struct {
		ID            string   `gorm:"column:id"`
		Numero        string   `gorm:"column:numero"`
		MontoOverride *float64 `gorm:"column:monto_override"`
	}
	var rows []parcelaRow
	err := r.db.WithContext(ctx).Table("parcelas").
		Where("active = ?", true).
		Order("numero ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("billing_repo_list_parcelas_failed", err)
	}
	parcelas := make([]ports.ParcelaProjection, 0, len(rows))
	for _, row := range rows {
		parcelas = append(parcelas, ports.ParcelaProjection{
			ParcelaID:     row.ID,
			Numero:        row.Numero,
			MontoOverride: row.MontoOverride,
		})
	}
	return parcelas, nil
}

func (r *Repository) FindParcelaByUser(ctx context.Context, userID string) (ports.ParcelaProjection, error) {
	type parcelaRow struct {
		ID            string   `gorm:"column:id"`
		Numero        string   `gorm:"column:numero"`
		MontoOverride *float64 `gorm:"column:monto_override"`
	}
	var row parcelaRow
	err := r.db.WithContext(ctx).Table("parcelas").
		Where("user_id = ?", strings.TrimSpace(userID)).
		Where("active = ?", true).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ParcelaProjection{}, domainerrors.ErrParcelaNotFound
		}
		return ports.ParcelaProjection{}, r.logError("billing_repo_find_parcela_failed", err, "user_id", userID)
	}
	return ports.ParcelaProjection{
		ParcelaID:     row.ID,
		Numero:        row.Numero,
		MontoOverride: row.MontoOverride,
	}, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, message outbox.Message) error {
	row := outboxModelFromMessage(message)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("billing_repo_append_outbox_failed", err, "outbox_id", message.ID)
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
		return nil, r.logError("billing_repo_list_outbox_failed", err)
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
		return r.logError("billing_repo_mark_outbox_failed", err, "outbox_id", outboxID)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "finance/billing-cycle",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("billing repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
