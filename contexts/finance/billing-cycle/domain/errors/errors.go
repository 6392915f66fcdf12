package errors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid billing input")
	ErrPeriodoNotFound = errors.New("periodo not found")
	ErrPeriodoExists   = errors.New("periodo already exists for this year and month")
	ErrGastoNotFound   = errors.New("gasto comun not found")
	ErrParcelaNotFound = errors.New("parcela not found")
	ErrInvalidState    = errors.New("operation not allowed in current charge state")
	ErrInvalidMonto    = errors.New("payment amount must be positive")
)
