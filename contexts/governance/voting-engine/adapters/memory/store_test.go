package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"vecindario/contexts/governance/voting-engine/domain/entities"
	domainerrors "vecindario/contexts/governance/voting-engine/domain/errors"
	"vecindario/contexts/governance/voting-engine/ports"
)

func TestSaveVotoIsAtomicUnderConcurrency(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	const attempts = 20
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.SaveVoto(ctx, entities.Voto{
				VotoID:     "voto-" + string(rune('a'+i)),
				VotacionID: "vot-1",
				UserID:     "vecino_1",
				OpcionID:   "op-1",
				VotedAt:    time.Now().UTC(),
			})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		switch err {
		case nil:
			successes++
		case domainerrors.ErrDuplicateVote:
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly one accepted ballot, got %d", successes)
	}
}

func TestListVotacionesOrdersActiveFirst(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	seed := []entities.Votacion{
		{VotacionID: "v-closed", Status: entities.VotacionStatusClosed, CreatedAt: base.Add(3 * time.Hour)},
		{VotacionID: "v-draft", Status: entities.VotacionStatusDraft, CreatedAt: base.Add(2 * time.Hour)},
		{VotacionID: "v-active-old", Status: entities.VotacionStatusActive, CreatedAt: base},
		{VotacionID: "v-active-new", Status: entities.VotacionStatusActive, CreatedAt: base.Add(time.Hour)},
	}
	for _, votacion := range seed {
		if err := store.CreateVotacion(ctx, votacion); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	listed, total, err := store.ListVotaciones(ctx, ports.VotacionFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 4 {
		t.Fatalf("expected 4 votaciones, got %d", total)
	}
	order := []string{"v-active-new", "v-active-old", "v-draft", "v-closed"}
	for i, want := range order {
		if listed[i].VotacionID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, listed[i].VotacionID)
		}
	}
}

func TestListVotacionesFiltersAndPaginates(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		err := store.CreateVotacion(ctx, entities.Votacion{
			VotacionID: "v-" + string(rune('a'+i)),
			Status:     entities.VotacionStatusClosed,
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	listed, total, err := store.ListVotaciones(ctx, ports.VotacionFilter{Status: entities.VotacionStatusClosed, Page: 2, PerPage: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 5 || len(listed) != 2 {
		t.Fatalf("expected page of 2 from 5, got %d of %d", len(listed), total)
	}
}

func TestStoreCloneIsolation(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	votacion := entities.Votacion{
		VotacionID: "v-1",
		Status:     entities.VotacionStatusDraft,
		Opciones:   []entities.Opcion{{OpcionID: "op-1", Label: "Si"}},
	}
	if err := store.CreateVotacion(ctx, votacion); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	loaded, err := store.GetVotacion(ctx, "v-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	loaded.Opciones[0].Label = "mutated"

	again, err := store.GetVotacion(ctx, "v-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if again.Opciones[0].Label != "Si" {
		t.Fatal("stored votacion must not be mutable through returned slices")
	}
}
