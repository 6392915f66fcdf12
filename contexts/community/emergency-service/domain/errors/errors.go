package errors

import "errors"

var (
	ErrInvalidInput    = errors.New("emergencies: invalid input")
	ErrAlertaNotFound  = errors.New("emergencies: alerta not found")
	ErrInvalidSeverity = errors.New("emergencies: invalid severity")
	ErrAlreadyResolved = errors.New("emergencies: alerta already resolved")
)
