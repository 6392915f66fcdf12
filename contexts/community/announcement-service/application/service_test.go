package application

import (
	"context"
	"testing"
	"time"

	"vecindario/contexts/community/announcement-service/adapters/memory"
	"vecindario/contexts/community/announcement-service/domain/entities"
	domainerrors "vecindario/contexts/community/announcement-service/domain/errors"
	"vecindario/contexts/community/announcement-service/ports"
)

// stepClock advances one minute per call so creation order is reflected in
// CreatedAt.
type stepClock struct {
	now *time.Time
}

func (c stepClock) Now() time.Time {
	*c.now = c.now.Add(time.Minute)
	return *c.now
}

func newService(store *memory.Store) Service {
	start := time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)
	return Service{
		Comunicados: store,
		Clock:       stepClock{now: &start},
		IDGen:       memory.UUIDGenerator{},
	}
}

func comunicado(title string, category entities.ComunicadoCategory, pinned bool) ComunicadoInput {
	return ComunicadoInput{Title: title, Content: "contenido de " + title, Category: category, Pinned: pinned}
}

func TestCreateComunicadoValidation(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	ctx := context.Background()

	_, err := service.Create(ctx, ComunicadoInput{Title: " ", Content: "x", Category: entities.CategoryGeneral}, "d1")
	if err != domainerrors.ErrInvalidInput {
		t.Fatalf("expected invalid input for blank title, got %v", err)
	}
	_, err = service.Create(ctx, ComunicadoInput{Title: "t", Content: " ", Category: entities.CategoryGeneral}, "d1")
	if err != domainerrors.ErrInvalidInput {
		t.Fatalf("expected invalid input for blank content, got %v", err)
	}
	_, err = service.Create(ctx, ComunicadoInput{Title: "t", Content: "c", Category: "otra"}, "d1")
	if err != domainerrors.ErrInvalidCategory {
		t.Fatalf("expected invalid category, got %v", err)
	}
}

func TestListOrdersPinnedFirst(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	ctx := context.Background()

	seed := []ComunicadoInput{
		comunicado("Corte de agua", entities.CategoryMantencion, false),
		comunicado("Reglamento interno", entities.CategoryGeneral, true),
		comunicado("Asamblea anual", entities.CategoryReunion, false),
	}
	for _, input := range seed {
		if _, err := service.Create(ctx, input, "d1"); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	listed, total, err := service.List(ctx, ports.ComunicadoFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected 3 comunicados, got %d", total)
	}
	if !listed[0].Pinned || listed[0].Title != "Reglamento interno" {
		t.Fatalf("expected pinned comunicado first, got %q", listed[0].Title)
	}
	// Unpinned follow newest first.
	if listed[1].Title != "Asamblea anual" || listed[2].Title != "Corte de agua" {
		t.Fatalf("unexpected order: %q, %q", listed[1].Title, listed[2].Title)
	}
}

func TestListFiltersByCategory(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	ctx := context.Background()

	if _, err := service.Create(ctx, comunicado("Corte de agua", entities.CategoryMantencion, false), "d1"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := service.Create(ctx, comunicado("Asamblea anual", entities.CategoryReunion, false), "d1"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	listed, total, err := service.List(ctx, ports.ComunicadoFilter{Category: entities.CategoryReunion})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || listed[0].Title != "Asamblea anual" {
		t.Fatalf("unexpected filtered result: total=%d", total)
	}

	if _, _, err := service.List(ctx, ports.ComunicadoFilter{Category: "otra"}); err != domainerrors.ErrInvalidCategory {
		t.Fatalf("expected invalid category filter, got %v", err)
	}
}

func TestLatestClampsLimit(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		if _, err := service.Create(ctx, comunicado("Aviso", entities.CategoryGeneral, false), "d1"); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	latest, err := service.Latest(ctx, 0)
	if err != nil {
		t.Fatalf("latest failed: %v", err)
	}
	if len(latest) != 5 {
		t.Fatalf("expected default window of 5, got %d", len(latest))
	}

	latest, err = service.Latest(ctx, 3)
	if err != nil {
		t.Fatalf("latest failed: %v", err)
	}
	if len(latest) != 3 {
		t.Fatalf("expected 3 comunicados, got %d", len(latest))
	}
}

func TestUpdateAndDelete(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	ctx := context.Background()

	created, err := service.Create(ctx, comunicado("Corte de agua", entities.CategoryMantencion, false), "d1")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	input := comunicado("Corte de agua reprogramado", entities.CategoryUrgente, true)
	updated, err := service.Update(ctx, created.ComunicadoID, input)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "Corte de agua reprogramado" || !updated.Pinned {
		t.Fatalf("unexpected updated comunicado: %+v", updated)
	}

	if err := service.Delete(ctx, created.ComunicadoID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := service.Get(ctx, created.ComunicadoID); err != domainerrors.ErrComunicadoNotFound {
		t.Fatalf("expected comunicado gone, got %v", err)
	}
}
