package postgresadapter

import (
	"strings"
	"time"

	"vecindario/contexts/community/announcement-service/domain/entities"
)

type comunicadoModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Title     string    `gorm:"column:title"`
	Content   string    `gorm:"column:content"`
	Category  string    `gorm:"column:category"`
	Pinned    bool      `gorm:"column:pinned"`
	AuthorID  string    `gorm:"column:author_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (comunicadoModel) TableName() string {
	return "comunicados"
}

func comunicadoModelFromEntity(comunicado entities.Comunicado) comunicadoModel {
	return comunicadoModel{
		ID:        strings.TrimSpace(comunicado.ComunicadoID),
		Title:     comunicado.Title,
		Content:   comunicado.Content,
		Category:  string(comunicado.Category),
		Pinned:    comunicado.Pinned,
		AuthorID:  strings.TrimSpace(comunicado.AuthorID),
		CreatedAt: comunicado.CreatedAt.UTC(),
		UpdatedAt: comunicado.UpdatedAt.UTC(),
	}
}

func (m comunicadoModel) toEntity() entities.Comunicado {
	return entities.Comunicado{
		ComunicadoID: m.ID,
		Title:        m.Title,
		Content:      m.Content,
		Category:     entities.ComunicadoCategory(m.Category),
		Pinned:       m.Pinned,
		AuthorID:     m.AuthorID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
