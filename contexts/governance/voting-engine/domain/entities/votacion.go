package entities

import "time"

type VotacionStatus string

const (
	VotacionStatusDraft     VotacionStatus = "draft"
	VotacionStatusActive    VotacionStatus = "active"
	VotacionStatusClosed    VotacionStatus = "closed"
	VotacionStatusCancelled VotacionStatus = "cancelled"
)

func (s VotacionStatus) IsValid() bool {
	switch s {
	case VotacionStatusDraft, VotacionStatusActive, VotacionStatusClosed, VotacionStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the status accepts no further transitions.
func (s VotacionStatus) IsTerminal() bool {
	return s == VotacionStatusClosed || s == VotacionStatusCancelled
}

// Votacion is a community election. Options are immutable once the votacion
// leaves draft.
type Votacion struct {
	VotacionID       string
	Title            string
	Description      string
	Status           VotacionStatus
	StartDate        *time.Time
	EndDate          *time.Time
	RequiresQuorum   bool
	QuorumPercentage int
	AllowAbstention  bool
	Opciones         []Opcion
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Opcion is one selectable answer, ordered by OrderIndex.
type Opcion struct {
	OpcionID    string
	VotacionID  string
	Label       string
	Description string
	OrderIndex  int
}

// HasOpcion reports whether the given option belongs to this votacion.
func (v Votacion) HasOpcion(opcionID string) bool {
	for _, o := range v.Opciones {
		if o.OpcionID == opcionID {
			return true
		}
	}
	return false
}

// Voto is a single immutable ballot. Exactly one of OpcionID and IsAbstention
// carries the choice.
type Voto struct {
	VotoID       string
	VotacionID   string
	UserID       string
	OpcionID     string
	IsAbstention bool
	VotedAt      time.Time
}

// OpcionResultado is a per-option tally line.
type OpcionResultado struct {
	OpcionID   string
	Label      string
	OrderIndex int
	Count      int
	Percentage float64
}

// Resultado is the on-demand aggregation over all votos of one votacion.
// TotalVotos counts option ballots only; abstentions count toward
// participation but toward no option.
type Resultado struct {
	Votacion          Votacion
	TotalVotos        int
	TotalAbstenciones int
	Resultados        []OpcionResultado
	TotalVecinos      int
	Participacion     float64
	QuorumAlcanzado   bool
}
