package commands

import (
	"context"
	"testing"

	"vecindario/contexts/governance/voting-engine/adapters/memory"
	domainerrors "vecindario/contexts/governance/voting-engine/domain/errors"
)

func publishVotacion(t *testing.T, uc VotacionUseCase, cmd DefineVotacionCommand) string {
	t.Helper()
	votacion, err := uc.Create(context.Background(), cmd, "directiva_1")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := uc.Publish(context.Background(), votacion.VotacionID); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	return votacion.VotacionID
}

func TestCastVoteRecordsOneBallotPerUser(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	ctx := context.Background()

	votacionID := publishVotacion(t, uc, defineCmd())
	votacion, err := store.GetVotacion(ctx, votacionID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	opcionID := votacion.Opciones[0].OpcionID

	if _, err := uc.CastVote(ctx, CastVoteCommand{VotacionID: votacionID, UserID: "vecino_1", OpcionID: opcionID}); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}
	_, err = uc.CastVote(ctx, CastVoteCommand{VotacionID: votacionID, UserID: "vecino_1", OpcionID: opcionID})
	if err != domainerrors.ErrDuplicateVote {
		t.Fatalf("expected duplicate vote, got %v", err)
	}

	votos, err := store.ListVotos(ctx, votacionID)
	if err != nil {
		t.Fatalf("list votos failed: %v", err)
	}
	if len(votos) != 1 {
		t.Fatalf("expected exactly one recorded ballot, got %d", len(votos))
	}
}

func TestCastVoteRequiresActiveVotacion(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	ctx := context.Background()

	draft, err := uc.Create(ctx, defineCmd(), "directiva_1")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	_, err = uc.CastVote(ctx, CastVoteCommand{VotacionID: draft.VotacionID, UserID: "vecino_1", OpcionID: draft.Opciones[0].OpcionID})
	if err != domainerrors.ErrInvalidState {
		t.Fatalf("expected invalid state voting on a draft, got %v", err)
	}
}

func TestCastVoteUnknownOption(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	ctx := context.Background()

	votacionID := publishVotacion(t, uc, defineCmd())
	_, err := uc.CastVote(ctx, CastVoteCommand{VotacionID: votacionID, UserID: "vecino_1", OpcionID: "nope"})
	if err != domainerrors.ErrOpcionNotFound {
		t.Fatalf("expected opcion not found, got %v", err)
	}
}

func TestCastVoteAbstentionRules(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	ctx := context.Background()

	strictID := publishVotacion(t, uc, defineCmd())
	_, err := uc.CastVote(ctx, CastVoteCommand{VotacionID: strictID, UserID: "vecino_1", IsAbstention: true})
	if err != domainerrors.ErrAbstentionNotAllowed {
		t.Fatalf("expected abstention rejected, got %v", err)
	}

	cmd := defineCmd()
	cmd.AllowAbstention = true
	openID := publishVotacion(t, uc, cmd)
	voto, err := uc.CastVote(ctx, CastVoteCommand{VotacionID: openID, UserID: "vecino_1", IsAbstention: true})
	if err != nil {
		t.Fatalf("abstention failed: %v", err)
	}
	if !voto.IsAbstention || voto.OpcionID != "" {
		t.Fatalf("expected abstention ballot without option, got %+v", voto)
	}
}

func TestCastVoteInputValidation(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	ctx := context.Background()

	votacionID := publishVotacion(t, uc, defineCmd())

	if _, err := uc.CastVote(ctx, CastVoteCommand{VotacionID: votacionID, UserID: "  ", OpcionID: "x"}); err != domainerrors.ErrInvalidInput {
		t.Fatalf("expected invalid input for blank user, got %v", err)
	}
	if _, err := uc.CastVote(ctx, CastVoteCommand{VotacionID: votacionID, UserID: "vecino_1"}); err != domainerrors.ErrInvalidInput {
		t.Fatalf("expected invalid input without option or abstention, got %v", err)
	}
	if _, err := uc.CastVote(ctx, CastVoteCommand{VotacionID: votacionID, UserID: "vecino_1", OpcionID: "x", IsAbstention: true}); err != domainerrors.ErrInvalidInput {
		t.Fatalf("expected invalid input for option plus abstention, got %v", err)
	}
}
