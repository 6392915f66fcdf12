package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ComunicadoRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category" validate:"required,oneof=general mantencion reunion urgente"`
	Pinned   bool   `json:"pinned"`
}

type ComunicadoResponse struct {
	ComunicadoID string    `json:"comunicado_id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Category     string    `json:"category"`
	Pinned       bool      `json:"pinned"`
	AuthorID     string    `json:"author_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ComunicadoListResponse struct {
	Comunicados []ComunicadoResponse `json:"comunicados"`
	Total       int                  `json:"total"`
	Page        int                  `json:"page"`
	PerPage     int                  `json:"per_page"`
}
