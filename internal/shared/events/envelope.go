package events

import "time"

// Envelope is the shared event shape used across Vecindario contexts.
// Align fields with contracts/gen/events/v1 before changing anything here.
type Envelope struct {
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	SourceService  string    `json:"source_service"`
	OccurredAtUTC  time.Time `json:"occurred_at_utc"`
	CorrelationID  string    `json:"correlation_id"`
	EntityType     string    `json:"entity_type"`
	EntityID       string    `json:"entity_id"`
	PayloadVersion int       `json:"payload_version"`
	Payload        any       `json:"payload"`
}

// Event types emitted by the contexts. Topic name equals event type.
const (
	TypeVotacionPublished = "votacion.published"
	TypeVotacionClosed    = "votacion.closed"
	TypePeriodoCreated    = "gastos.periodo.created"
	TypeGastoPagado       = "gastos.pago.registrado"
	TypeEmergenciaAlerta  = "emergencia.alerta"
)
