package errors

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid votacion input")
	ErrVotacionNotFound     = errors.New("votacion not found")
	ErrOpcionNotFound       = errors.New("opcion does not belong to this votacion")
	ErrInvalidState         = errors.New("operation not allowed in current votacion state")
	ErrDuplicateVote        = errors.New("user has already voted in this votacion")
	ErrAbstentionNotAllowed = errors.New("abstention is not allowed in this votacion")
	ErrNotEnoughOpciones    = errors.New("votacion requires at least 2 opciones")
	ErrQuorumOutOfRange     = errors.New("quorum percentage must be between 1 and 100")
)
