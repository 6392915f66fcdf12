package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RaiseAlertaRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Severity    string `json:"severity" validate:"required,oneof=baja media alta critica"`
}

type AlertaResponse struct {
	AlertaID    string     `json:"alerta_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Severity    string     `json:"severity"`
	Status      string     `json:"status"`
	CreatedBy   string     `json:"created_by,omitempty"`
	ResolvedBy  string     `json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type AlertaListResponse struct {
	Alertas []AlertaResponse `json:"alertas"`
	Total   int              `json:"total"`
}
