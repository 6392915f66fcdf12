package entities

import "time"

type GastoStatus string

const (
	GastoStatusPending   GastoStatus = "pending"
	GastoStatusPaid      GastoStatus = "paid"
	GastoStatusOverdue   GastoStatus = "overdue"
	GastoStatusCancelled GastoStatus = "cancelled"
)

// PeriodoGasto is one monthly billing cycle, unique per (year, month).
// Immutable once its charges are generated; charges snapshot the base amount.
type PeriodoGasto struct {
	PeriodoID        string
	Year             int
	Month            int
	MontoBase        float64
	FechaVencimiento time.Time
	Descripcion      string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// GastoComun is one parcela's charge for one period. Persisted status is only
// pending, paid or cancelled; overdue exists solely through EffectiveStatus.
type GastoComun struct {
	GastoID          string
	PeriodoID        string
	ParcelaID        string
	Monto            float64
	MontoPagado      float64
	Status           GastoStatus
	FechaVencimiento time.Time
	FechaPago        *time.Time
	MetodoPago       string
	ReferenciaPago   string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// EffectiveStatus derives the externally visible status at the given instant.
// A pending charge past its due date reads as overdue without any stored
// transition, so the status can never go stale.
func (g GastoComun) EffectiveStatus(now time.Time) GastoStatus {
	if g.Status == GastoStatusPending && now.After(g.FechaVencimiento) {
		return GastoStatusOverdue
	}
	return g.Status
}

// Saldo is the amount still owed on this charge.
func (g GastoComun) Saldo() float64 {
	saldo := g.Monto - g.MontoPagado
	if saldo < 0 {
		return 0
	}
	return saldo
}

// ResumenPeriodo is the aggregate view of one period's collection state.
type ResumenPeriodo struct {
	Periodo           PeriodoGasto
	TotalParcelas     int
	TotalPagados      int
	TotalPendientes   int
	TotalVencidos     int
	MontoTotal        float64
	MontoRecaudado    float64
	MontoPendiente    float64
	PorcentajeRecaudo float64
}

// EstadoCuenta is the resident-facing statement for one parcela.
type EstadoCuenta struct {
	ParcelaID        string
	GastosPendientes []GastoComun
	GastosPagados    []GastoComun
	TotalPendiente   float64
	TotalPagado      float64
}
