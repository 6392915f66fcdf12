package queries

import (
	"context"
	"testing"
	"time"

	"vecindario/contexts/governance/voting-engine/adapters/memory"
	"vecindario/contexts/governance/voting-engine/domain/entities"
)

func seedVotacion(t *testing.T, store *memory.Store, requiresQuorum bool, quorum int) entities.Votacion {
	t.Helper()
	votacion := entities.Votacion{
		VotacionID:       "vot-1",
		Title:            "Cambio de conserje",
		Status:           entities.VotacionStatusActive,
		RequiresQuorum:   requiresQuorum,
		QuorumPercentage: quorum,
		AllowAbstention:  true,
		Opciones: []entities.Opcion{
			{OpcionID: "op-a", VotacionID: "vot-1", Label: "Aprobar", OrderIndex: 0},
			{OpcionID: "op-b", VotacionID: "vot-1", Label: "Rechazar", OrderIndex: 1},
			{OpcionID: "op-c", VotacionID: "vot-1", Label: "Postergar", OrderIndex: 2},
		},
	}
	if err := store.CreateVotacion(context.Background(), votacion); err != nil {
		t.Fatalf("seed votacion failed: %v", err)
	}
	return votacion
}

func seedVoto(t *testing.T, store *memory.Store, votoID, userID, opcionID string, abstention bool) {
	t.Helper()
	err := store.SaveVoto(context.Background(), entities.Voto{
		VotoID:       votoID,
		VotacionID:   "vot-1",
		UserID:       userID,
		OpcionID:     opcionID,
		IsAbstention: abstention,
		VotedAt:      time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed voto failed: %v", err)
	}
}

func TestComputeTalliesParticipationAndRanking(t *testing.T) {
	store := memory.NewStore()
	store.SetEligibleVoters(10)
	seedVotacion(t, store, false, 0)

	seedVoto(t, store, "v1", "u1", "op-a", false)
	seedVoto(t, store, "v2", "u2", "op-a", false)
	seedVoto(t, store, "v3", "u3", "op-b", false)
	seedVoto(t, store, "v4", "u4", "op-b", false)
	seedVoto(t, store, "v5", "u5", "op-c", false)
	seedVoto(t, store, "v6", "u6", "", true)

	uc := ResultadosUseCase{Votaciones: store, Votos: store, Roster: store}
	resultado, err := uc.Compute(context.Background(), "vot-1")
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}

	if resultado.TotalVotos != 5 {
		t.Fatalf("expected 5 option votes, got %d", resultado.TotalVotos)
	}
	if resultado.TotalAbstenciones != 1 {
		t.Fatalf("expected 1 abstention, got %d", resultado.TotalAbstenciones)
	}
	if resultado.Participacion != 60 {
		t.Fatalf("expected 60%% participation, got %v", resultado.Participacion)
	}

	// op-a and op-b tie on count; the tie keeps option order.
	if resultado.Resultados[0].OpcionID != "op-a" || resultado.Resultados[1].OpcionID != "op-b" {
		t.Fatalf("expected stable tie order op-a, op-b, got %s, %s",
			resultado.Resultados[0].OpcionID, resultado.Resultados[1].OpcionID)
	}
	if resultado.Resultados[0].Percentage != 40 {
		t.Fatalf("expected 40%% for op-a, got %v", resultado.Resultados[0].Percentage)
	}
	if resultado.Resultados[2].OpcionID != "op-c" || resultado.Resultados[2].Percentage != 20 {
		t.Fatalf("expected op-c at 20%%, got %+v", resultado.Resultados[2])
	}
}

func TestComputeQuorum(t *testing.T) {
	store := memory.NewStore()
	store.SetEligibleVoters(10)
	seedVotacion(t, store, true, 50)

	seedVoto(t, store, "v1", "u1", "op-a", false)
	seedVoto(t, store, "v2", "u2", "", true)

	uc := ResultadosUseCase{Votaciones: store, Votos: store, Roster: store}
	resultado, err := uc.Compute(context.Background(), "vot-1")
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	if resultado.QuorumAlcanzado {
		t.Fatalf("expected quorum not reached at %v%% participation", resultado.Participacion)
	}

	seedVoto(t, store, "v3", "u3", "op-b", false)
	seedVoto(t, store, "v4", "u4", "op-b", false)
	seedVoto(t, store, "v5", "u5", "op-c", false)

	resultado, err = uc.Compute(context.Background(), "vot-1")
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	if !resultado.QuorumAlcanzado {
		t.Fatalf("expected quorum reached at %v%% participation", resultado.Participacion)
	}
}

func TestComputeZeroDenominators(t *testing.T) {
	store := memory.NewStore()
	seedVotacion(t, store, true, 1)

	uc := ResultadosUseCase{Votaciones: store, Votos: store, Roster: store}
	resultado, err := uc.Compute(context.Background(), "vot-1")
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	if resultado.Participacion != 0 {
		t.Fatalf("expected 0 participation with empty roster, got %v", resultado.Participacion)
	}
	for _, opcion := range resultado.Resultados {
		if opcion.Percentage != 0 {
			t.Fatalf("expected 0%% with no votes, got %v for %s", opcion.Percentage, opcion.OpcionID)
		}
	}
	if resultado.QuorumAlcanzado {
		t.Fatal("expected quorum not reached with zero participation")
	}
}

func TestGetReportsHasVoted(t *testing.T) {
	store := memory.NewStore()
	seedVotacion(t, store, false, 0)
	seedVoto(t, store, "v1", "u1", "op-a", false)

	q := VotacionQueries{Votaciones: store, Votos: store}
	_, hasVoted, err := q.Get(context.Background(), "vot-1", "u1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !hasVoted {
		t.Fatal("expected has_voted true for u1")
	}
	_, hasVoted, err = q.Get(context.Background(), "vot-1", "u2")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if hasVoted {
		t.Fatal("expected has_voted false for u2")
	}
}
