package entities

import "time"

type AlertaSeverity string

const (
	SeverityBaja    AlertaSeverity = "baja"
	SeverityMedia   AlertaSeverity = "media"
	SeverityAlta    AlertaSeverity = "alta"
	SeverityCritica AlertaSeverity = "critica"
)

func (s AlertaSeverity) IsValid() bool {
	switch s {
	case SeverityBaja, SeverityMedia, SeverityAlta, SeverityCritica:
		return true
	}
	return false
}

type AlertaStatus string

const (
	AlertaStatusActive   AlertaStatus = "active"
	AlertaStatusResolved AlertaStatus = "resolved"
)

// Alerta is one emergency notice. Only active alerts can be resolved;
// resolution is terminal.
type Alerta struct {
	AlertaID    string
	Title       string
	Description string
	Severity    AlertaSeverity
	Status      AlertaStatus
	CreatedBy   string
	ResolvedBy  string
	ResolvedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
