package postgresadapter

import (
	"strings"
	"time"

	"vecindario/contexts/governance/voting-engine/domain/entities"
	"vecindario/internal/shared/outbox"
)

type votacionModel struct {
	ID               string     `gorm:"column:id;primaryKey"`
	Title            string     `gorm:"column:title"`
	Description      string     `gorm:"column:description"`
	Status           string     `gorm:"column:status"`
	StartDate        *time.Time `gorm:"column:start_date"`
	EndDate          *time.Time `gorm:"column:end_date"`
	RequiresQuorum   bool       `gorm:"column:requires_quorum"`
	QuorumPercentage int        `gorm:"column:quorum_percentage"`
	AllowAbstention  bool       `gorm:"column:allow_abstention"`
	CreatedBy        string     `gorm:"column:created_by"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (votacionModel) TableName() string {
	return "votaciones"
}

func votacionModelFromEntity(votacion entities.Votacion) votacionModel {
	return votacionModel{
		ID:               strings.TrimSpace(votacion.VotacionID),
		Title:            votacion.Title,
		Description:      votacion.Description,
		Status:           string(votacion.Status),
		StartDate:        votacion.StartDate,
		EndDate:          votacion.EndDate,
		RequiresQuorum:   votacion.RequiresQuorum,
		QuorumPercentage: votacion.QuorumPercentage,
		AllowAbstention:  votacion.AllowAbstention,
		CreatedBy:        strings.TrimSpace(votacion.CreatedBy),
		CreatedAt:        votacion.CreatedAt.UTC(),
		UpdatedAt:        votacion.UpdatedAt.UTC(),
	}
}

func (m votacionModel) toEntity() entities.Votacion {
	return entities.Votacion{
		VotacionID:       m.ID,
		Title:            m.Title,
		Description:      m.Description,
		Status:           entities.VotacionStatus(m.Status),
		StartDate:        m.StartDate,
		EndDate:          m.EndDate,
		RequiresQuorum:   m.RequiresQuorum,
		QuorumPercentage: m.QuorumPercentage,
		AllowAbstention:  m.AllowAbstention,
		CreatedBy:        m.CreatedBy,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

type opcionModel struct {
	ID          string `gorm:"column:id;primaryKey"`
	VotacionID  string `gorm:"column:votacion_id"`
	Label       string `gorm:"column:label"`
	Description string `gorm:"column:description"`
	OrderIndex  int    `gorm:"column:order_index"`
}

func (opcionModel) TableName() string {
	return "votacion_opciones"
}

func opcionModelFromEntity(opcion entities.Opcion) opcionModel {
	return opcionModel{
		ID:          strings.TrimSpace(opcion.OpcionID),
		VotacionID:  strings.TrimSpace(opcion.VotacionID),
		Label:       opcion.Label,
		Description: opcion.Description,
		OrderIndex:  opcion.OrderIndex,
	}
}

func (m opcionModel) toEntity() entities.Opcion {
	return entities.Opcion{
		OpcionID:    m.ID,
		VotacionID:  m.VotacionID,
		Label:       m.Label,
		Description: m.Description,
		OrderIndex:  m.OrderIndex,
	}
}

type votoModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	VotacionID   string    `gorm:"column:votacion_id;uniqueIndex:idx_votos_votacion_user"`
	UserID       string    `gorm:"column:user_id;uniqueIndex:idx_votos_votacion_user"`
	OpcionID     *string   `gorm:"column:opcion_id"`
	IsAbstention bool      `gorm:"column:is_abstention"`
	VotedAt      time.Time `gorm:"column:voted_at"`
}

func (votoModel) TableName() string {
	return "votos"
}

func votoModelFromEntity(voto entities.Voto) votoModel {
	row := votoModel{
		ID:           strings.TrimSpace(voto.VotoID),
		VotacionID:   strings.TrimSpace(voto.VotacionID),
		UserID:       strings.TrimSpace(voto.UserID),
		IsAbstention: voto.IsAbstention,
		VotedAt:      voto.VotedAt.UTC(),
	}
	if strings.TrimSpace(voto.OpcionID) != "" {
		opcionID := strings.TrimSpace(voto.OpcionID)
		row.OpcionID = &opcionID
	}
	return row
}

func (m votoModel) toEntity() entities.Voto {
	voto := entities.Voto{
		VotoID:       m.ID,
		VotacionID:   m.VotacionID,
		UserID:       m.UserID,
		IsAbstention: m.IsAbstention,
		VotedAt:      m.VotedAt,
	}
	if m.OpcionID != nil {
		voto.OpcionID = *m.OpcionID
	}
	return voto
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
	return "voting_outbox"
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
