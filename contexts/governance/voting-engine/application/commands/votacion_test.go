package commands

import (
	"context"
	"testing"
	"time"

	"vecindario/contexts/governance/voting-engine/adapters/memory"
	"vecindario/contexts/governance/voting-engine/domain/entities"
	domainerrors "vecindario/contexts/governance/voting-engine/domain/errors"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func newUseCase(store *memory.Store) VotacionUseCase {
	return VotacionUseCase{
		Votaciones: store,
		Votos:      store,
		Outbox:     store,
		Clock:      fixedClock{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)},
		IDGen:      memory.UUIDGenerator{},
	}
}

func defineCmd() DefineVotacionCommand {
	return DefineVotacionCommand{
		Title:       "Pintura de fachada",
		Description: "Eleccion de color",
		Opciones: []OpcionInput{
			{Label: "Blanco"},
			{Label: "Gris"},
			{Label: "Beige"},
		},
	}
}

func TestCreateVotacionStartsAsDraft(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)

	votacion, err := uc.Create(context.Background(), defineCmd(), "directiva_1")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if votacion.Status != entities.VotacionStatusDraft {
		t.Fatalf("expected draft status, got %s", votacion.Status)
	}
	if len(votacion.Opciones) != 3 {
		t.Fatalf("expected 3 opciones, got %d", len(votacion.Opciones))
	}
	for i, opcion := range votacion.Opciones {
		if opcion.OrderIndex != i {
			t.Fatalf("expected order index %d, got %d", i, opcion.OrderIndex)
		}
	}
	if votacion.StartDate != nil || votacion.EndDate != nil {
		t.Fatal("draft must not carry start or end dates")
	}
}

func TestCreateVotacionSkipsBlankOptionLabels(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)

	cmd := defineCmd()
	cmd.Opciones = []OpcionInput{{Label: "Blanco"}, {Label: "   "}, {Label: "Gris"}}
	votacion, err := uc.Create(context.Background(), cmd, "directiva_1")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(votacion.Opciones) != 2 {
		t.Fatalf("expected blank labels to be dropped, got %d opciones", len(votacion.Opciones))
	}
}

func TestCreateVotacionValidation(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	ctx := context.Background()

	cmd := defineCmd()
	cmd.Title = "   "
	if _, err := uc.Create(ctx, cmd, "directiva_1"); err != domainerrors.ErrInvalidInput {
		t.Fatalf("expected invalid input for blank title, got %v", err)
	}

	cmd = defineCmd()
	cmd.Opciones = []OpcionInput{{Label: "Unica"}}
	if _, err := uc.Create(ctx, cmd, "directiva_1"); err != domainerrors.ErrNotEnoughOpciones {
		t.Fatalf("expected not enough opciones, got %v", err)
	}

	cmd = defineCmd()
	cmd.RequiresQuorum = true
	cmd.QuorumPercentage = 150
	if _, err := uc.Create(ctx, cmd, "directiva_1"); err != domainerrors.ErrQuorumOutOfRange {
		t.Fatalf("expected quorum out of range, got %v", err)
	}
}

func TestUpdateRejectedOutsideDraft(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	ctx := context.Background()

	votacion, err := uc.Create(ctx, defineCmd(), "directiva_1")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := uc.Publish(ctx, votacion.VotacionID); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if _, err := uc.Update(ctx, votacion.VotacionID, defineCmd()); err != domainerrors.ErrInvalidState {
		t.Fatalf("expected invalid state on update after publish, got %v", err)
	}
}

func TestUpdateReplacesOptionSet(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	ctx := context.Background()

	votacion, err := uc.Create(ctx, defineCmd(), "directiva_1")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	cmd := defineCmd()
	cmd.Opciones = []OpcionInput{{Label: "Si"}, {Label: "No"}}
	updated, err := uc.Update(ctx, votacion.VotacionID, cmd)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(updated.Opciones) != 2 {
		t.Fatalf("expected option set replaced, got %d", len(updated.Opciones))
	}
	if updated.Opciones[0].Label != "Si" || updated.Opciones[1].Label != "No" {
		t.Fatalf("unexpected labels after update: %+v", updated.Opciones)
	}
}

func TestPublishAndCloseLifecycle(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	ctx := context.Background()

	votacion, err := uc.Create(ctx, defineCmd(), "directiva_1")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	published, err := uc.Publish(ctx, votacion.VotacionID)
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if published.Status != entities.VotacionStatusActive {
		t.Fatalf("expected active after publish, got %s", published.Status)
	}
	if published.StartDate == nil {
		t.Fatal("publish must set the start date")
	}

	closed, err := uc.Close(ctx, votacion.VotacionID)
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if closed.Status != entities.VotacionStatusClosed {
		t.Fatalf("expected closed status, got %s", closed.Status)
	}
	if closed.EndDate == nil {
		t.Fatal("close must set the end date")
	}

	pending, err := store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list outbox failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected publish and close outbox rows, got %d", len(pending))
	}
}

func TestCancelRequiresActiveVotacion(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	ctx := context.Background()

	votacion, err := uc.Create(ctx, defineCmd(), "directiva_1")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := uc.Cancel(ctx, votacion.VotacionID); err != domainerrors.ErrInvalidState {
		t.Fatalf("expected invalid state cancelling a draft, got %v", err)
	}
	if _, err := uc.Publish(ctx, votacion.VotacionID); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	cancelled, err := uc.Cancel(ctx, votacion.VotacionID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != entities.VotacionStatusCancelled {
		t.Fatalf("expected cancelled status, got %s", cancelled.Status)
	}
}

func TestDeleteOnlyRemovesDrafts(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	ctx := context.Background()

	votacion, err := uc.Create(ctx, defineCmd(), "directiva_1")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := uc.Publish(ctx, votacion.VotacionID); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if err := uc.Delete(ctx, votacion.VotacionID); err != domainerrors.ErrInvalidState {
		t.Fatalf("expected invalid state deleting an active votacion, got %v", err)
	}

	draft, err := uc.Create(ctx, defineCmd(), "directiva_1")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := uc.Delete(ctx, draft.VotacionID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.GetVotacion(ctx, draft.VotacionID); err != domainerrors.ErrVotacionNotFound {
		t.Fatalf("expected votacion gone after delete, got %v", err)
	}
}
