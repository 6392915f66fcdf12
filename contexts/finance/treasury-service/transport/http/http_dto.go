package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateMovimientoRequest struct {
	Description string  `json:"description" validate:"required,max=500"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Type        string  `json:"type" validate:"required,oneof=ingreso egreso"`
	Category    string  `json:"category" validate:"omitempty,max=100"`
	Date        string  `json:"date" validate:"omitempty"` // YYYY-MM-DD, defaults to today
}

type MovimientoResponse struct {
	MovimientoID string    `json:"movimiento_id"`
	Description  string    `json:"description"`
	Amount       float64   `json:"amount"`
	Type         string    `json:"type"`
	Category     string    `json:"category,omitempty"`
	Date         time.Time `json:"date"`
	CreatedBy    string    `json:"created_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type MovimientoListResponse struct {
	Movimientos []MovimientoResponse `json:"movimientos"`
	Total       int                  `json:"total"`
	Page        int                  `json:"page"`
	PerPage     int                  `json:"per_page"`
}

type ResumenTesoreriaResponse struct {
	TotalIngresos float64 `json:"total_ingresos"`
	TotalEgresos  float64 `json:"total_egresos"`
	Balance       float64 `json:"balance"`
}
