package postgresadapter

import (
	"strings"
	"time"

	"vecindario/contexts/community/emergency-service/domain/entities"
	"vecindario/internal/shared/outbox"
)

type alertaModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	Title       string     `gorm:"column:title"`
	Description string     `gorm:"column:description"`
	Severity    string     `gorm:"column:severity"`
	Status      string     `gorm:"column:status"`
	CreatedBy   string     `gorm:"column:created_by"`
	ResolvedBy  string     `gorm:"column:resolved_by"`
	ResolvedAt  *time.Time `gorm:"column:resolved_at"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (alertaModel) TableName() string {
	return "emergencias"
}

func alertaModelFromEntity(alerta entities.Alerta) alertaModel {
	return alertaModel{
		ID:          strings.TrimSpace(alerta.AlertaID),
		Title:       alerta.Title,
		Description: alerta.Description,
		Severity:    string(alerta.Severity),
		Status:      string(alerta.Status),
		CreatedBy:   strings.TrimSpace(alerta.CreatedBy),
		ResolvedBy:  strings.TrimSpace(alerta.ResolvedBy),
		ResolvedAt:  alerta.ResolvedAt,
		CreatedAt:   alerta.CreatedAt.UTC(),
		UpdatedAt:   alerta.UpdatedAt.UTC(),
	}
}

func (m alertaModel) toEntity() entities.Alerta {
	return entities.Alerta{
		AlertaID:    m.ID,
		Title:       m.Title,
		Description: m.Description,
		Severity:    entities.AlertaSeverity(m.Severity),
		Status:      entities.AlertaStatus(m.Status),
		CreatedBy:   m.CreatedBy,
		ResolvedBy:  m.ResolvedBy,
		ResolvedAt:  m.ResolvedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type outboxModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status"`
	RetryCount  int        `gorm:"column:retry_count"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "emergency_outbox"
}

func outboxModelFromMessage(message outbox.Message) outboxModel {
	createdAt := message.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return outboxModel{
		ID:         message.ID,
		EventType:  message.EventType,
		Payload:    message.Payload,
		Status:     message.Status,
		RetryCount: message.RetryCount,
		CreatedAt:  createdAt,
	}
}

func (m outboxModel) toMessage() outbox.Message {
	return outbox.Message{
		ID:         m.ID,
		EventType:  m.EventType,
		Payload:    m.Payload,
		Status:     m.Status,
		RetryCount: m.RetryCount,
		CreatedAt:  m.CreatedAt,
	}
}
