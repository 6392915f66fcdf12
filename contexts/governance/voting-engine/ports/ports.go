package ports

import (
	"context"
	"time"

	"vecindario/contexts/governance/voting-engine/domain/entities"
	"vecindario/internal/shared/outbox"
)

// VotacionRepository persists elections and their option sets.
type VotacionRepository interface {
	CreateVotacion(ctx context.Context, votacion entities.Votacion) error
	GetVotacion(ctx context.Context, votacionID string) (entities.Votacion, error)
	// UpdateVotacion replaces the stored row and, while the votacion is in
	// draft, its option set wholesale.
	UpdateVotacion(ctx context.Context, votacion entities.Votacion) error
	DeleteVotacion(ctx context.Context, votacionID string) error
	ListVotaciones(ctx context.Context, filter VotacionFilter) ([]entities.Votacion, int, error)
}

// VotacionFilter narrows list reads. Zero values mean "no filter".
type VotacionFilter struct {
	Status  entities.VotacionStatus
	Page    int
	PerPage int
}

// VoteRepository persists ballots. SaveVoto must enforce the
// (votacion, user) uniqueness atomically: two concurrent attempts by the same
// voter yield one success and one ErrDuplicateVote.
type VoteRepository interface {
	SaveVoto(ctx context.Context, voto entities.Voto) error
	HasVoted(ctx context.Context, votacionID string, userID string) (bool, error)
	ListVotos(ctx context.Context, votacionID string) ([]entities.Voto, error)
}

// CommunityRoster answers membership questions owned by the identity backend.
type CommunityRoster interface {
	// CountEligibleVoters returns the number of accounts entitled to vote
	// (roles vecino and directiva with an associated parcela).
	CountEligibleVoters(ctx context.Context) (int, error)
}

// OutboxWriter appends an event row inside the same logical transaction as
// the state change.
type OutboxWriter interface {
	AppendOutbox(ctx context.Context, message outbox.Message) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
