package http

import "time"

// ErrorResponse is the wire shape for domain failures.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreatePeriodoRequest struct {
	Year             int     `json:"year" validate:"required,min=2000,max=2200"`
	Month            int     `json:"month" validate:"required,min=1,max=12"`
	MontoBase        float64 `json:"monto_base" validate:"required,gt=0"`
	FechaVencimiento string  `json:"fecha_vencimiento" validate:"required"` // YYYY-MM-DD
	Descripcion      string  `json:"descripcion" validate:"omitempty,max=500"`
}

type PeriodoResponse struct {
	PeriodoID        string    `json:"periodo_id"`
	Year             int       `json:"year"`
	Month            int       `json:"month"`
	MontoBase        float64   `json:"monto_base"`
	FechaVencimiento string    `json:"fecha_vencimiento"`
	Descripcion      string    `json:"descripcion,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type PeriodoListResponse struct {
	Periodos []PeriodoResponse `json:"periodos"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PerPage  int               `json:"per_page"`
}

type RegistrarPagoRequest struct {
	MontoPagado    float64 `json:"monto_pagado" validate:"required,gt=0"`
	MetodoPago     string  `json:"metodo_pago" validate:"omitempty,max=50"`
	ReferenciaPago string  `json:"referencia_pago" validate:"omitempty,max=100"`
}

type GastoResponse struct {
	GastoID          string     `json:"gasto_id"`
	PeriodoID        string     `json:"periodo_id"`
	ParcelaID        string     `json:"parcela_id"`
	Monto            float64    `json:"monto"`
	MontoPagado      float64    `json:"monto_pagado"`
	Saldo            float64    `json:"saldo"`
	Status           string     `json:"status"`
	FechaVencimiento string     `json:"fecha_vencimiento"`
	FechaPago        *time.Time `json:"fecha_pago,omitempty"`
	MetodoPago       string     `json:"metodo_pago,omitempty"`
	ReferenciaPago   string     `json:"referencia_pago,omitempty"`
}

type ResumenResponse struct {
	Periodo           PeriodoResponse `json:"periodo"`
	TotalParcelas     int             `json:"total_parcelas"`
	TotalPagados      int             `json:"total_pagados"`
	TotalPendientes   int             `json:"total_pendientes"`
	TotalVencidos     int             `json:"total_vencidos"`
	MontoTotal        float64         `json:"monto_total"`
	MontoRecaudado    float64         `json:"monto_recaudado"`
	MontoPendiente    float64         `json:"monto_pendiente"`
	PorcentajeRecaudo float64         `json:"porcentaje_recaudo"`
}

type EstadoCuentaResponse struct {
	ParcelaID        string          `json:"parcela_id"`
	GastosPendientes []GastoResponse `json:"gastos_pendientes"`
	GastosPagados    []GastoResponse `json:"gastos_pagados"`
	TotalPendiente   float64         `json:"total_pendiente"`
	TotalPagado      float64         `json:"total_pagado"`
}
