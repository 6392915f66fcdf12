package postgresadapter

import (
	"strings"
	"time"

	"vecindario/contexts/finance/billing-cycle/domain/entities"
	"vecindario/internal/shared/outbox"
)

type periodoModel struct {
	ID               string    `gorm:"column:id;primaryKey"`
	Year             int       `gorm:"column:year;uniqueIndex:idx_periodos_year_month"`
	Month            int       `gorm:"column:month;uniqueIndex:idx_periodos_year_month"`
	MontoBase        float64   `gorm:"column:monto_base"`
	FechaVencimiento time.Time `gorm:"column:fecha_vencimiento"`
	Descripcion      string    `gorm:"column:descripcion"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (periodoModel) TableName() string {
	return "periodos_gasto"
}

func periodoModelFromEntity(periodo entities.PeriodoGasto) periodoModel {
	return periodoModel{
		ID:               strings.TrimSpace(periodo.PeriodoID),
		Year:             periodo.Year,
		Month:            periodo.Month,
		MontoBase:        periodo.MontoBase,
		FechaVencimiento: periodo.FechaVencimiento.UTC(),
		Descripcion:      periodo.Descripcion,
		CreatedAt:        periodo.CreatedAt.UTC(),
		UpdatedAt:        periodo.UpdatedAt.UTC(),
	}
}

func (m periodoModel) toEntity() entities.PeriodoGasto {
	return entities.PeriodoGasto{
		PeriodoID:        m.ID,
		Year:             m.Year,
		Month:            m.Month,
		MontoBase:        m.MontoBase,
		FechaVencimiento: m.FechaVencimiento,
		Descripcion:      m.Descripcion,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

type gastoModel struct {
	ID               string     `gorm:"column:id;primaryKey"`
	PeriodoID        string     `gorm:"column:periodo_id;uniqueIndex:idx_gastos_periodo_parcela"`
	ParcelaID        string     `gorm:"column:parcela_id;uniqueIndex:idx_gastos_periodo_parcela"`
	Monto            float64    `gorm:"column:monto"`
	MontoPagado      float64    `gorm:"column:monto_pagado"`
	Status           string     `gorm:"column:status"`
	FechaVencimiento time.Time  `gorm:"column:fecha_vencimiento"`
	FechaPago        *time.Time `gorm:"column:fecha_pago"`
	MetodoPago       string     `gorm:"column:metodo_pago"`
	ReferenciaPago   string     `gorm:"column:referencia_pago"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (gastoModel) TableName() string {
	return "gastos_comunes"
}

func gastoModelFromEntity(gasto entities.GastoComun) gastoModel {
	return gastoModel{
		ID:               strings.TrimSpace(gasto.GastoID),
		PeriodoID:        strings.TrimSpace(gasto.PeriodoID),
		ParcelaID:        strings.TrimSpace(gasto.ParcelaID),
		Monto:            gasto.Monto,
		MontoPagado:      gasto.MontoPagado,
		Status:           string(gasto.Status),
		FechaVencimiento: gasto.FechaVencimiento.UTC(),
		FechaPago:        gasto.FechaPago,
		MetodoPago:       gasto.MetodoPago,
		ReferenciaPago:   gasto.ReferenciaPago,
		CreatedAt:        gasto.CreatedAt.UTC(),
		UpdatedAt:        gasto.UpdatedAt.UTC(),
	}
}

func (m gastoModel) toEntity() entities.GastoComun {
	return entities.GastoComun{
		GastoID:          m.ID,
		PeriodoID:        m.PeriodoID,
		ParcelaID:        m.ParcelaID,
		Monto:            m.Monto,
		MontoPagado:      m.MontoPagado,
		Status:           entities.GastoStatus(m.Status),
		FechaVencimiento: m.FechaVencimiento,
		FechaPago:        m.FechaPago,
		MetodoPago:       m.MetodoPago,
		ReferenciaPago:   m.ReferenciaPago,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
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
	return "billing_outbox"
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
