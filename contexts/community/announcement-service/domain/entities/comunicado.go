package entities

import "time"

type ComunicadoCategory string

const (
	CategoryGeneral    ComunicadoCategory = "general"
	CategoryMantencion ComunicadoCategory = "mantencion"
	CategoryReunion    ComunicadoCategory = "reunion"
	CategoryUrgente    ComunicadoCategory = "urgente"
)

func (c ComunicadoCategory) IsValid() bool {
	switch c {
	case CategoryGeneral, CategoryMantencion, CategoryReunion, CategoryUrgente:
		return true
	}
	return false
}

// Comunicado is one board announcement.
type Comunicado struct {
	ComunicadoID string
	Title        string
	Content      string
	Category     ComunicadoCategory
	Pinned       bool
	AuthorID     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
