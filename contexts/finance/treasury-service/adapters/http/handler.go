package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"vecindario/contexts/finance/treasury-service/application"
	"vecindario/contexts/finance/treasury-service/domain/entities"
	domainerrors "vecindario/contexts/finance/treasury-service/domain/errors"
	"vecindario/contexts/finance/treasury-service/ports"
	httptransport "vecindario/contexts/finance/treasury-service/transport/http"
)

// Handler adapts transport DTOs to service calls.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateMovimientoHandler(ctx context.Context, userID string, req httptransport.CreateMovimientoRequest) (httptransport.MovimientoResponse, error) {
	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return httptransport.MovimientoResponse{}, domainerrors.ErrInvalidInput
		}
		date = parsed
	}
	movimiento, err := h.Service.CreateMovimiento(ctx, application.CreateMovimientoInput{
		Description: req.Description,
		Amount:      req.Amount,
		Type:        entities.MovimientoType(req.Type),
		Category:    req.Category,
		Date:        date,
	}, userID)
	if err != nil {
		return httptransport.MovimientoResponse{}, err
	}
	return movimientoResponse(movimiento), nil
}

func (h Handler) GetMovimientoHandler(ctx context.Context, movimientoID string) (httptransport.MovimientoResponse, error) {
	movimiento, err := h.Service.GetMovimiento(ctx, movimientoID)
	if err != nil {
		return httptransport.MovimientoResponse{}, err
	}
	return movimientoResponse(movimiento), nil
}

func (h Handler) ListMovimientosHandler(ctx context.Context, tipo string, year int, month int, page int, perPage int) (httptransport.MovimientoListResponse, error) {
	movimientos, total, err := h.Service.ListMovimientos(ctx, ports.MovimientoFilter{
		Type:    entities.MovimientoType(tipo),
		Year:    year,
		Month:   month,
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		return httptransport.MovimientoListResponse{}, err
	}
	items := make([]httptransport.MovimientoResponse, 0, len(movimientos))
	for _, movimiento := range movimientos {
		items = append(items, movimientoResponse(movimiento))
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return httptransport.MovimientoListResponse{
		Movimientos: items,
		Total:       total,
		Page:        page,
		PerPage:     perPage,
	}, nil
}

func (h Handler) ResumenHandler(ctx context.Context) (httptransport.ResumenTesoreriaResponse, error) {
	resumen, err := h.Service.Resumen(ctx)
	if err != nil {
		return httptransport.ResumenTesoreriaResponse{}, err
	}
	return httptransport.ResumenTesoreriaResponse{
		TotalIngresos: resumen.TotalIngresos,
		TotalEgresos:  resumen.TotalEgresos,
		Balance:       resumen.Balance,
	}, nil
}

func movimientoResponse(movimiento entities.Movimiento) httptransport.MovimientoResponse {
	return httptransport.MovimientoResponse{
		MovimientoID: movimiento.MovimientoID,
		Description:  movimiento.Description,
		Amount:       movimiento.Amount,
		Type:         string(movimiento.Type),
		Category:     movimiento.Category,
		Date:         movimiento.Date,
		CreatedBy:    movimiento.CreatedBy,
		CreatedAt:    movimiento.CreatedAt,
	}
}
