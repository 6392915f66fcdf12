package postgresadapter

import (
	"strings"
	"time"

	"vecindario/contexts/finance/treasury-service/domain/entities"
)

type movimientoModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Description string    `gorm:"column:description"`
	Amount      float64   `gorm:"column:amount"`
	Type        string    `gorm:"column:type"`
	Category    string    `gorm:"column:category"`
	Date        time.Time `gorm:"column:date"`
	CreatedBy   string    `gorm:"column:created_by"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (movimientoModel) TableName() string {
	return "movimientos_tesoreria"
}

func movimientoModelFromEntity(movimiento entities.Movimiento) movimientoModel {
	return movimientoModel{
		ID:          strings.TrimSpace(movimiento.MovimientoID),
		Description: movimiento.Description,
		Amount:      movimiento.Amount,
		Type:        string(movimiento.Type),
		Category:    movimiento.Category,
		Date:        movimiento.Date.UTC(),
		CreatedBy:   strings.TrimSpace(movimiento.CreatedBy),
		CreatedAt:   movimiento.CreatedAt.UTC(),
		UpdatedAt:   movimiento.UpdatedAt.UTC(),
	}
}

func (m movimientoModel) toEntity() entities.Movimiento {
	return entities.Movimiento{
		MovimientoID: m.ID,
		Description:  m.Description,
		Amount:       m.Amount,
		Type:         entities.MovimientoType(m.Type),
		Category:     m.Category,
		Date:         m.Date,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
