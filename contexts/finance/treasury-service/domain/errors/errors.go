package errors

import "errors"

var (
	ErrInvalidInput        = errors.New("treasury: invalid input")
	ErrMovimientoNotFound  = errors.New("treasury: movimiento not found")
	ErrInvalidTipo         = errors.New("treasury: invalid movimiento type")
	ErrInvalidMonto        = errors.New("treasury: amount must be positive")
	ErrDescriptionRequired = errors.New("treasury: description required")
)
