package httpadapter

import (
	"context"
	"log/slog"

	"vecindario/contexts/community/emergency-service/application"
	"vecindario/contexts/community/emergency-service/domain/entities"
	httptransport "vecindario/contexts/community/emergency-service/transport/http"
)

// Handler adapts transport DTOs to service calls.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) RaiseAlertaHandler(ctx context.Context, userID string, req httptransport.RaiseAlertaRequest) (httptransport.AlertaResponse, error) {
	alerta, err := h.Service.Raise(ctx, application.RaiseAlertaInput{
		Title:       req.Title,
		Description: req.Description,
		Severity:    entities.AlertaSeverity(req.Severity),
	}, userID)
	if err != nil {
		return httptransport.AlertaResponse{}, err
	}
	return alertaResponse(alerta), nil
}

func (h Handler) ResolveAlertaHandler(ctx context.Context, alertaID string, userID string) (httptransport.AlertaResponse, error) {
	alerta, err := h.Service.Resolve(ctx, alertaID, userID)
	if err != nil {
		return httptransport.AlertaResponse{}, err
	}
	return alertaResponse(alerta), nil
}

func (h Handler) GetAlertaHandler(ctx context.Context, alertaID string) (httptransport.AlertaResponse, error) {
	alerta, err := h.Service.Get(ctx, alertaID)
	if err != nil {
		return httptransport.AlertaResponse{}, err
	}
	return alertaResponse(alerta), nil
}

func (h Handler) ListAlertasHandler(ctx context.Context, activeOnly bool) (httptransport.AlertaListResponse, error) {
	alertas, err := h.Service.List(ctx, activeOnly)
	if err != nil {
		return httptransport.AlertaListResponse{}, err
	}
	items := make([]httptransport.AlertaResponse, 0, len(alertas))
	for _, alerta := range alertas {
		items = append(items, alertaResponse(alerta))
	}
	return httptransport.AlertaListResponse{Alertas: items, Total: len(items)}, nil
}

func alertaResponse(alerta entities.Alerta) httptransport.AlertaResponse {
	return httptransport.AlertaResponse{
		AlertaID:    alerta.AlertaID,
		Title:       alerta.Title,
		Description: alerta.Description,
		Severity:    string(alerta.Severity),
		Status:      string(alerta.Status),
		CreatedBy:   alerta.CreatedBy,
		ResolvedBy:  alerta.ResolvedBy,
		ResolvedAt:  alerta.ResolvedAt,
		CreatedAt:   alerta.CreatedAt,
		UpdatedAt:   alerta.UpdatedAt,
	}
}
