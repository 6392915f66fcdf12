package errors

import "errors"

var (
	ErrInvalidInput       = errors.New("announcements: invalid input")
	ErrComunicadoNotFound = errors.New("announcements: comunicado not found")
	ErrInvalidCategory    = errors.New("announcements: invalid category")
)
