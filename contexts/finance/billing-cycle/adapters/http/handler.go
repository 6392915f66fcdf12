package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"vecindario/contexts/finance/billing-cycle/application/commands"
	"vecindario/contexts/finance/billing-cycle/application/queries"
	domainerrors "vecindario/contexts/finance/billing-cycle/domain/errors"
	"vecindario/contexts/finance/billing-cycle/ports"
	httptransport "vecindario/contexts/finance/billing-cycle/transport/http"
)

// Handler adapts transport DTOs to use-case calls. HTTP specifics (routing,
// status codes, auth) live in the platform server.
type Handler struct {
	Billing commands.BillingUseCase
	Queries queries.BillingQueries
	Logger  *slog.Logger
}

func (h Handler) CreatePeriodoHandler(ctx context.Context, req httptransport.CreatePeriodoRequest) (httptransport.PeriodoResponse, error) {
	fecha, err := time.Parse("2006-01-02", req.FechaVencimiento)
	if err != nil {
		return httptransport.PeriodoResponse{}, domainerrors.ErrInvalidInput
	}
	periodo, err := h.Billing.CreatePeriodo(ctx, commands.CreatePeriodoCommand{
		Year:             req.Year,
		Month:            req.Month,
		MontoBase:        req.MontoBase,
		FechaVencimiento: fecha,
		Descripcion:      req.Descripcion,
	})
	if err != nil {
		return httptransport.PeriodoResponse{}, err
	}
	return periodoResponse(periodo), nil
}

func (h Handler) GetPeriodoHandler(ctx context.Context, periodoID string) (httptransport.PeriodoResponse, error) {
	periodo, err := h.Queries.GetPeriodo(ctx, periodoID)
	if err != nil {
		return httptransport.PeriodoResponse{}, err
	}
	return periodoResponse(periodo), nil
}

func (h Handler) ListPeriodosHandler(ctx context.Context, year int, page int, perPage int) (httptransport.PeriodoListResponse, error) {
	periodos, total, err := h.Queries.ListPeriodos(ctx, ports.PeriodoFilter{Year: year, Page: page, PerPage: perPage})
	if err != nil {
		return httptransport.PeriodoListResponse{}, err
	}
	items := make([]httptransport.PeriodoResponse, 0, len(periodos))
	for _, periodo := range periodos {
		items = append(items, periodoResponse(periodo))
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}
	return httptransport.PeriodoListResponse{
		Periodos: items,
		Total:    total,
		Page:     page,
		PerPage:  perPage,
	}, nil
}

func (h Handler) ListGastosHandler(ctx context.Context, periodoID string) ([]httptransport.GastoResponse, error) {
	gastos, err := h.Queries.ListGastosByPeriodo(ctx, periodoID)
	if err != nil {
		return nil, err
	}
	now := h.now()
	items := make([]httptransport.GastoResponse, 0, len(gastos))
	for _, gasto := range gastos {
		items = append(items, gastoResponse(gasto, now))
	}
	return items, nil
}

func (h Handler) GetGastoHandler(ctx context.Context, gastoID string) (httptransport.GastoResponse, error) {
	gasto, err := h.Queries.GetGasto(ctx, gastoID)
	if err != nil {
		return httptransport.GastoResponse{}, err
	}
	return gastoResponse(gasto, h.now()), nil
}

func (h Handler) RegistrarPagoHandler(ctx context.Context, gastoID string, req httptransport.RegistrarPagoRequest) (httptransport.GastoResponse, error) {
	gasto, err := h.Billing.RegisterPago(ctx, commands.RegisterPagoCommand{
		GastoID:        gastoID,
		MontoPagado:    req.MontoPagado,
		MetodoPago:     req.MetodoPago,
		ReferenciaPago: req.ReferenciaPago,
	})
	if err != nil {
		return httptransport.GastoResponse{}, err
	}
	return gastoResponse(gasto, h.now()), nil
}

func (h Handler) CancelGastoHandler(ctx context.Context, gastoID string) (httptransport.GastoResponse, error) {
	gasto, err := h.Billing.CancelGasto(ctx, gastoID)
	if err != nil {
		return httptransport.GastoResponse{}, err
	}
	return gastoResponse(gasto, h.now()), nil
}

func (h Handler) ResumenHandler(ctx context.Context, periodoID string) (httptransport.ResumenResponse, error) {
	resumen, err := h.Queries.Resumen(ctx, periodoID)
	if err != nil {
		return httptransport.ResumenResponse{}, err
	}
	return httptransport.ResumenResponse{
		Periodo:           periodoResponse(resumen.Periodo),
		TotalParcelas:     resumen.TotalParcelas,
		TotalPagados:      resumen.TotalPagados,
		TotalPendientes:   resumen.TotalPendientes,
		TotalVencidos:     resumen.TotalVencidos,
		MontoTotal:        resumen.MontoTotal,
		MontoRecaudado:    resumen.MontoRecaudado,
		MontoPendiente:    resumen.MontoPendiente,
		PorcentajeRecaudo: resumen.PorcentajeRecaudo,
	}, nil
}

func (h Handler) EstadoCuentaHandler(ctx context.Context, parcelaID string) (httptransport.EstadoCuentaResponse, error) {
	cuenta, err := h.Queries.EstadoCuenta(ctx, parcelaID)
	if err != nil {
		return httptransport.EstadoCuentaResponse{}, err
	}
	return estadoCuentaResponse(cuenta, h.now()), nil
}

// MiEstadoCuentaHandler serves the resident's own statement, resolved from
// the authenticated user.
func (h Handler) MiEstadoCuentaHandler(ctx context.Context, userID string) (httptransport.EstadoCuentaResponse, error) {
	cuenta, err := h.Queries.EstadoCuentaByUser(ctx, userID)
	if err != nil {
		return httptransport.EstadoCuentaResponse{}, err
	}
	return estadoCuentaResponse(cuenta, h.now()), nil
}

func (h Handler) now() time.Time {
	if h.Queries.Clock != nil {
		return h.Queries.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
