package entities

import "time"

type MovimientoType string

const (
	MovimientoIngreso MovimientoType = "ingreso"
	MovimientoEgreso  MovimientoType = "egreso"
)

func (t MovimientoType) IsValid() bool {
	return t == MovimientoIngreso || t == MovimientoEgreso
}

// Movimiento is one ledger entry. Entries are append-only; corrections are
// made with a compensating entry of the opposite type.
type Movimiento struct {
	MovimientoID string
	Description  string
	Amount       float64
	Type         MovimientoType
	Category     string
	Date         time.Time
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ResumenTesoreria is the ledger fold: balance = ingresos - egresos.
type ResumenTesoreria struct {
	TotalIngresos float64
	TotalEgresos  float64
	Balance       float64
}
