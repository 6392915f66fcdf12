package httpadapter

import (
	"time"

	"vecindario/contexts/finance/billing-cycle/domain/entities"
	httptransport "vecindario/contexts/finance/billing-cycle/transport/http"
)

func periodoResponse(periodo entities.PeriodoGasto) httptransport.PeriodoResponse {
	return httptransport.PeriodoResponse{
		PeriodoID:        periodo.PeriodoID,
		Year:             periodo.Year,
		Month:            periodo.Month,
		MontoBase:        periodo.MontoBase,
		FechaVencimiento: periodo.FechaVencimiento.Format("2006-01-02"),
		Descripcion:      periodo.Descripcion,
		CreatedAt:        periodo.CreatedAt,
		UpdatedAt:        periodo.UpdatedAt,
	}
}

// gastoResponse renders the charge with its derived status at the given
// instant, never the stored one.
func gastoResponse(gasto entities.GastoComun, now time.Time) httptransport.GastoResponse {
	return httptransport.GastoResponse{
		GastoID:          gasto.GastoID,
		PeriodoID:        gasto.PeriodoID,
		ParcelaID:        gasto.ParcelaID,
		Monto:            gasto.Monto,
		MontoPagado:      gasto.MontoPagado,
		Saldo:            gasto.Saldo(),
		Status:           string(gasto.EffectiveStatus(now)),
		FechaVencimiento: gasto.FechaVencimiento.Format("2006-01-02"),
		FechaPago:        gasto.FechaPago,
		MetodoPago:       gasto.MetodoPago,
		ReferenciaPago:   gasto.ReferenciaPago,
	}
}

func estadoCuentaResponse(cuenta entities.EstadoCuenta, now time.Time) httptransport.EstadoCuentaResponse {
	pendientes := make([]httptransport.GastoResponse, 0, len(cuenta.GastosPendientes))
	for _, gasto := range cuenta.GastosPendientes {
		pendientes = append(pendientes, gastoResponse(gasto, now))
	}
	pagados := make([]httptransport.GastoResponse, 0, len(cuenta.GastosPagados))
	for _, gasto := range cuenta.GastosPagados {
		pagados = append(pagados, gastoResponse(gasto, now))
	}
	return httptransport.EstadoCuentaResponse{
		ParcelaID:        cuenta.ParcelaID,
		GastosPendientes: pendientes,
		GastosPagados:    pagados,
		TotalPendiente:   cuenta.TotalPendiente,
		TotalPagado:      cuenta.TotalPagado,
	}
}
