package queries

import (
	"context"
	"sort"
	"strings"
	"time"

	"vecindario/contexts/finance/billing-cycle/domain/entities"
	"vecindario/contexts/finance/billing-cycle/ports"
)

// BillingQueries serves the read side of the billing cycle: period summaries,
// charge lookups and the resident account statement. Every call aggregates
// current rows; nothing is cached.
type BillingQueries struct {
	Periodos ports.PeriodoRepository
	Gastos   ports.GastoRepository
	Roster   ports.CommunityRoster
	Clock    ports.Clock

	// PaidWindow caps how many paid charges the statement returns, newest
	// first. Zero means the default of 12.
	PaidWindow int
}

func (q BillingQueries) GetPeriodo(ctx context.Context, periodoID string) (entities.PeriodoGasto, error) {
	return q.Periodos.GetPeriodo(ctx, periodoID)
}

func (q BillingQueries) ListPeriodos(ctx context.Context, filter ports.PeriodoFilter) ([]entities.PeriodoGasto, int, error) {
	return q.Periodos.ListPeriodos(ctx, filter)
}

func (q BillingQueries) GetGasto(ctx context.Context, gastoID string) (entities.GastoComun, error) {
	return q.Gastos.GetGasto(ctx, gastoID)
}

func (q BillingQueries) ListGastosByPeriodo(ctx context.Context, periodoID string) ([]entities.GastoComun, error) {
	return q.Gastos.ListGastosByPeriodo(ctx, periodoID)
}

// Resumen folds one period's charges into the collection summary. Overdue is
// derived from the due date at the moment of the call.
func (q BillingQueries) Resumen(ctx context.Context, periodoID string) (entities.ResumenPeriodo, error) {
	periodo, err := q.Periodos.GetPeriodo(ctx, periodoID)
	if err != nil {
		return entities.ResumenPeriodo{}, err
	}
	gastos, err := q.Gastos.ListGastosByPeriodo(ctx, periodo.PeriodoID)
	if err != nil {
		return entities.ResumenPeriodo{}, err
	}

	now := q.now()
	resumen := entities.ResumenPeriodo{Periodo: periodo, TotalParcelas: len(gastos)}
	for _, gasto := range gastos {
		resumen.MontoTotal += gasto.Monto
		resumen.MontoRecaudado += gasto.MontoPagado
		switch gasto.EffectiveStatus(now) {
		case entities.GastoStatusPaid:
			resumen.TotalPagados++
		case entities.GastoStatusPending:
			resumen.TotalPendientes++
		case entities.GastoStatusOverdue:
			resumen.TotalVencidos++
		}
	}
	resumen.MontoPendiente = resumen.MontoTotal - resumen.MontoRecaudado
	if resumen.MontoTotal > 0 {
		resumen.PorcentajeRecaudo = resumen.MontoRecaudado / resumen.MontoTotal * 100
	}
	return resumen, nil
}

// EstadoCuenta partitions one parcela's charges into owed (pending and
// overdue) and a bounded window of paid ones.
func (q BillingQueries) EstadoCuenta(ctx context.Context, parcelaID string) (entities.EstadoCuenta, error) {
	gastos, err := q.Gastos.ListGastosByParcela(ctx, strings.TrimSpace(parcelaID))
	if err != nil {
		return entities.EstadoCuenta{}, err
	}

	now := q.now()
	cuenta := entities.EstadoCuenta{ParcelaID: strings.TrimSpace(parcelaID)}
	for _, gasto := range gastos {
		switch gasto.EffectiveStatus(now) {
		case entities.GastoStatusPending, entities.GastoStatusOverdue:
			cuenta.GastosPendientes = append(cuenta.GastosPendientes, gasto)
			cuenta.TotalPendiente += gasto.Saldo()
		case entities.GastoStatusPaid:
			cuenta.GastosPagados = append(cuenta.GastosPagados, gasto)
		}
	}

	sort.Slice(cuenta.GastosPagados, func(i, j int) bool {
		return cuenta.GastosPagados[i].CreatedAt.After(cuenta.GastosPagados[j].CreatedAt)
	})
	window := q.PaidWindow
	if window <= 0 {
		window = 12
	}
	if len(cuenta.GastosPagados) > window {
		cuenta.GastosPagados = cuenta.GastosPagados[:window]
	}
	for _, gasto := range cuenta.GastosPagados {
		cuenta.TotalPagado += gasto.MontoPagado
	}

	sort.Slice(cuenta.GastosPendientes, func(i, j int) bool {
		return cuenta.GastosPendientes[i].CreatedAt.After(cuenta.GastosPendientes[j].CreatedAt)
	})
	return cuenta, nil
}

// EstadoCuentaByUser resolves the caller's parcela first, then builds the
// statement.
func (q BillingQueries) EstadoCuentaByUser(ctx context.Context, userID string) (entities.EstadoCuenta, error) {
	parcela, err := q.Roster.FindParcelaByUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		return entities.EstadoCuenta{}, err
	}
	return q.EstadoCuenta(ctx, parcela.ParcelaID)
}

func (q BillingQueries) now() time.Time {
	if q.Clock != nil {
		return q.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
