package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type OpcionRequest struct {
	Label       string `json:"label" validate:"required"`
	Description string `json:"description,omitempty"`
	OrderIndex  int    `json:"order_index"`
}

type CreateVotacionRequest struct {
	Title            string          `json:"title" validate:"required"`
	Description      string          `json:"description,omitempty"`
	RequiresQuorum   bool            `json:"requires_quorum"`
	QuorumPercentage int             `json:"quorum_percentage" validate:"omitempty,min=1,max=100"`
	AllowAbstention  bool            `json:"allow_abstention"`
	Opciones         []OpcionRequest `json:"opciones" validate:"required,min=2,dive"`
}

type OpcionResponse struct {
	OpcionID    string `json:"opcion_id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	OrderIndex  int    `json:"order_index"`
}

type VotacionResponse struct {
	VotacionID       string           `json:"votacion_id"`
	Title            string           `json:"title"`
	Description      string           `json:"description,omitempty"`
	Status           string           `json:"status"`
	StartDate        *time.Time       `json:"start_date,omitempty"`
	EndDate          *time.Time       `json:"end_date,omitempty"`
	RequiresQuorum   bool             `json:"requires_quorum"`
	QuorumPercentage int              `json:"quorum_percentage"`
	AllowAbstention  bool             `json:"allow_abstention"`
	Opciones         []OpcionResponse `json:"opciones,omitempty"`
	HasVoted         bool             `json:"has_voted,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

type VotacionListResponse struct {
	Votaciones []VotacionResponse `json:"votaciones"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PerPage    int                `json:"per_page"`
}

type EmitirVotoRequest struct {
	OpcionID     string `json:"opcion_id,omitempty"`
	IsAbstention bool   `json:"is_abstention"`
}

type EmitirVotoResponse struct {
	VotoID     string    `json:"voto_id"`
	VotacionID string    `json:"votacion_id"`
	VotedAt    time.Time `json:"voted_at"`
}

type OpcionResultadoResponse struct {
	OpcionID   string  `json:"opcion_id"`
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type ResultadosResponse struct {
	Votacion          VotacionResponse          `json:"votacion"`
	TotalVotos        int                       `json:"total_votos"`
	TotalAbstenciones int                       `json:"total_abstenciones"`
	Resultados        []OpcionResultadoResponse `json:"resultados"`
	QuorumAlcanzado   bool                      `json:"quorum_alcanzado"`
	TotalVecinos      int                       `json:"total_vecinos"`
	Participacion     float64                   `json:"participacion"`
}
