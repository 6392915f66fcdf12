package application

import (
	"context"
	"testing"
	"time"

	"vecindario/contexts/finance/treasury-service/adapters/memory"
	"vecindario/contexts/finance/treasury-service/domain/entities"
	domainerrors "vecindario/contexts/finance/treasury-service/domain/errors"
	"vecindario/contexts/finance/treasury-service/ports"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)

func newService(store *memory.Store) Service {
	return Service{
		Movimientos: store,
		Clock:       fixedClock{now: testNow},
		IDGen:       memory.UUIDGenerator{},
	}
}

func TestCreateMovimientoDefaultsDateToNow(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)

	movimiento, err := service.CreateMovimiento(context.Background(), CreateMovimientoInput{
		Description: "Cuota extraordinaria",
		Amount:      120000,
		Type:        entities.MovimientoIngreso,
		Category:    "cuotas",
	}, "directiva_1")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !movimiento.Date.Equal(testNow) {
		t.Fatalf("expected date defaulted to now, got %v", movimiento.Date)
	}
	if movimiento.CreatedBy != "directiva_1" {
		t.Fatalf("expected created_by recorded, got %q", movimiento.CreatedBy)
	}
}

func TestCreateMovimientoValidation(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	ctx := context.Background()

	_, err := service.CreateMovimiento(ctx, CreateMovimientoInput{Description: "  ", Amount: 100, Type: entities.MovimientoIngreso}, "d1")
	if err != domainerrors.ErrDescriptionRequired {
		t.Fatalf("expected description required, got %v", err)
	}
	_, err = service.CreateMovimiento(ctx, CreateMovimientoInput{Description: "Gasto", Amount: 0, Type: entities.MovimientoEgreso}, "d1")
	if err != domainerrors.ErrInvalidMonto {
		t.Fatalf("expected invalid monto, got %v", err)
	}
	_, err = service.CreateMovimiento(ctx, CreateMovimientoInput{Description: "Gasto", Amount: 100, Type: "otro"}, "d1")
	if err != domainerrors.ErrInvalidTipo {
		t.Fatalf("expected invalid tipo, got %v", err)
	}
}

func TestResumenBalancesIngresosAgainstEgresos(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	ctx := context.Background()

	entries := []CreateMovimientoInput{
		{Description: "Cuotas marzo", Amount: 500000, Type: entities.MovimientoIngreso},
		{Description: "Cuotas abril", Amount: 450000, Type: entities.MovimientoIngreso},
		{Description: "Mantencion ascensor", Amount: 300000, Type: entities.MovimientoEgreso},
	}
	for _, entry := range entries {
		if _, err := service.CreateMovimiento(ctx, entry, "d1"); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	resumen, err := service.Resumen(ctx)
	if err != nil {
		t.Fatalf("resumen failed: %v", err)
	}
	if resumen.TotalIngresos != 950000 || resumen.TotalEgresos != 300000 {
		t.Fatalf("unexpected totals: %+v", resumen)
	}
	if resumen.Balance != 650000 {
		t.Fatalf("expected balance 650000, got %v", resumen.Balance)
	}
}

func TestListMovimientosFilters(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	ctx := context.Background()

	march := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC)
	seed := []CreateMovimientoInput{
		{Description: "Cuotas marzo", Amount: 100, Type: entities.MovimientoIngreso, Date: march},
		{Description: "Jardineria", Amount: 50, Type: entities.MovimientoEgreso, Date: march},
		{Description: "Cuotas abril", Amount: 100, Type: entities.MovimientoIngreso, Date: april},
	}
	for _, entry := range seed {
		if _, err := service.CreateMovimiento(ctx, entry, "d1"); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	movimientos, total, err := service.ListMovimientos(ctx, ports.MovimientoFilter{Type: entities.MovimientoIngreso})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(movimientos) != 2 {
		t.Fatalf("expected 2 ingresos, got %d", total)
	}
	// Newest first.
	if !movimientos[0].Date.After(movimientos[1].Date) {
		t.Fatal("expected date descending order")
	}

	movimientos, total, err = service.ListMovimientos(ctx, ports.MovimientoFilter{Year: 2026, Month: 3})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 march entries, got %d", total)
	}
	for _, movimiento := range movimientos {
		if movimiento.Date.Month() != time.March {
			t.Fatalf("unexpected month in filtered list: %v", movimiento.Date)
		}
	}

	if _, _, err := service.ListMovimientos(ctx, ports.MovimientoFilter{Type: "otro"}); err != domainerrors.ErrInvalidTipo {
		t.Fatalf("expected invalid tipo filter, got %v", err)
	}
}

func TestGetMovimientoNotFound(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)

	if _, err := service.GetMovimiento(context.Background(), "missing"); err != domainerrors.ErrMovimientoNotFound {
		t.Fatalf("expected movimiento not found, got %v", err)
	}
	if _, err := service.GetMovimiento(context.Background(), "  "); err != domainerrors.ErrInvalidInput {
		t.Fatalf("expected invalid input for blank id, got %v", err)
	}
}
