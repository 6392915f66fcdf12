package queries

import (
	"context"
	"testing"
	"time"

	"vecindario/contexts/finance/billing-cycle/adapters/memory"
	"vecindario/contexts/finance/billing-cycle/domain/entities"
	domainerrors "vecindario/contexts/finance/billing-cycle/domain/errors"
	"vecindario/contexts/finance/billing-cycle/ports"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func seedPeriodo(t *testing.T, store *memory.Store, gastos []entities.GastoComun) entities.PeriodoGasto {
	t.Helper()
	periodo := entities.PeriodoGasto{
		PeriodoID:        "per-1",
		Year:             2026,
		Month:            4,
		MontoBase:        50000,
		FechaVencimiento: time.Date(2026, 4, 25, 0, 0, 0, 0, time.UTC),
	}
	if err := store.CreatePeriodoWithGastos(context.Background(), periodo, gastos); err != nil {
		t.Fatalf("seed periodo failed: %v", err)
	}
	return periodo
}

func gasto(id, parcelaID string, monto, pagado float64, status entities.GastoStatus, due time.Time, createdAt time.Time) entities.GastoComun {
	return entities.GastoComun{
		GastoID:          id,
		PeriodoID:        "per-1",
		ParcelaID:        parcelaID,
		Monto:            monto,
		MontoPagado:      pagado,
		Status:           status,
		FechaVencimiento: due,
		CreatedAt:        createdAt,
	}
}

func TestResumenFoldsChargesWithDerivedOverdue(t *testing.T) {
	store := memory.NewStore()
	due := time.Date(2026, 4, 25, 0, 0, 0, 0, time.UTC) // before testNow
	seedPeriodo(t, store, []entities.GastoComun{
		gasto("g1", "parc-1", 50000, 50000, entities.GastoStatusPaid, due, testNow),
		gasto("g2", "parc-2", 50000, 20000, entities.GastoStatusPending, due, testNow),
		gasto("g3", "parc-3", 50000, 0, entities.GastoStatusPending, due.AddDate(0, 1, 0), testNow),
	})

	q := BillingQueries{Periodos: store, Gastos: store, Roster: store, Clock: fixedClock{now: testNow}}
	resumen, err := q.Resumen(context.Background(), "per-1")
	if err != nil {
		t.Fatalf("resumen failed: %v", err)
	}

	if resumen.TotalParcelas != 3 || resumen.TotalPagados != 1 || resumen.TotalPendientes != 1 || resumen.TotalVencidos != 1 {
		t.Fatalf("unexpected fold: %+v", resumen)
	}
	if resumen.MontoTotal != 150000 || resumen.MontoRecaudado != 70000 || resumen.MontoPendiente != 80000 {
		t.Fatalf("unexpected montos: %+v", resumen)
	}
	want := 70000.0 / 150000.0 * 100
	if resumen.PorcentajeRecaudo != want {
		t.Fatalf("expected recaudo %v, got %v", want, resumen.PorcentajeRecaudo)
	}
}

func TestResumenEmptyPeriodo(t *testing.T) {
	store := memory.NewStore()
	seedPeriodo(t, store, nil)

	q := BillingQueries{Periodos: store, Gastos: store, Roster: store, Clock: fixedClock{now: testNow}}
	resumen, err := q.Resumen(context.Background(), "per-1")
	if err != nil {
		t.Fatalf("resumen failed: %v", err)
	}
	if resumen.PorcentajeRecaudo != 0 || resumen.MontoTotal != 0 {
		t.Fatalf("expected zero summary, got %+v", resumen)
	}
}

func TestEstadoCuentaPartitionsAndWindowsPaid(t *testing.T) {
	store := memory.NewStore()
	due := time.Date(2026, 4, 25, 0, 0, 0, 0, time.UTC)
	seedPeriodo(t, store, []entities.GastoComun{
		gasto("g1", "parc-1", 50000, 10000, entities.GastoStatusPending, due, testNow.AddDate(0, -1, 0)),
		gasto("g2", "parc-1", 50000, 50000, entities.GastoStatusPaid, due, testNow.AddDate(0, -2, 0)),
		gasto("g3", "parc-1", 48000, 48000, entities.GastoStatusPaid, due, testNow.AddDate(0, -3, 0)),
		gasto("g4", "parc-1", 47000, 47000, entities.GastoStatusPaid, due, testNow.AddDate(0, -4, 0)),
		gasto("g5", "parc-2", 50000, 0, entities.GastoStatusPending, due, testNow),
	})

	q := BillingQueries{Periodos: store, Gastos: store, Roster: store, Clock: fixedClock{now: testNow}, PaidWindow: 2}
	cuenta, err := q.EstadoCuenta(context.Background(), "parc-1")
	if err != nil {
		t.Fatalf("estado cuenta failed: %v", err)
	}

	if len(cuenta.GastosPendientes) != 1 {
		t.Fatalf("expected one owed charge, got %d", len(cuenta.GastosPendientes))
	}
	if cuenta.TotalPendiente != 40000 {
		t.Fatalf("expected owed saldo 40000, got %v", cuenta.TotalPendiente)
	}
	if len(cuenta.GastosPagados) != 2 {
		t.Fatalf("expected paid window of 2, got %d", len(cuenta.GastosPagados))
	}
	// Newest paid first; the oldest falls out of the window.
	if cuenta.GastosPagados[0].GastoID != "g2" || cuenta.GastosPagados[1].GastoID != "g3" {
		t.Fatalf("unexpected paid window order: %s, %s", cuenta.GastosPagados[0].GastoID, cuenta.GastosPagados[1].GastoID)
	}
	if cuenta.TotalPagado != 98000 {
		t.Fatalf("expected windowed paid total 98000, got %v", cuenta.TotalPagado)
	}
}

func TestEstadoCuentaByUser(t *testing.T) {
	store := memory.NewStore()
	store.SetParcelas([]ports.ParcelaProjection{{ParcelaID: "parc-1", Numero: "1"}})
	store.LinkUserParcela("vecino_1", "parc-1")

	due := time.Date(2026, 4, 25, 0, 0, 0, 0, time.UTC)
	seedPeriodo(t, store, []entities.GastoComun{
		gasto("g1", "parc-1", 50000, 0, entities.GastoStatusPending, due, testNow),
	})

	q := BillingQueries{Periodos: store, Gastos: store, Roster: store, Clock: fixedClock{now: testNow}}
	cuenta, err := q.EstadoCuentaByUser(context.Background(), "vecino_1")
	if err != nil {
		t.Fatalf("estado cuenta by user failed: %v", err)
	}
	if cuenta.ParcelaID != "parc-1" || len(cuenta.GastosPendientes) != 1 {
		t.Fatalf("unexpected statement: %+v", cuenta)
	}

	if _, err := q.EstadoCuentaByUser(context.Background(), "desconocido"); err != domainerrors.ErrParcelaNotFound {
		t.Fatalf("expected parcela not found, got %v", err)
	}
}
