package httpadapter

import (
	"context"
	"log/slog"

	"vecindario/contexts/community/announcement-service/application"
	"vecindario/contexts/community/announcement-service/domain/entities"
	"vecindario/contexts/community/announcement-service/ports"
	httptransport "vecindario/contexts/community/announcement-service/transport/http"
)

// Handler adapts transport DTOs to service calls.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateComunicadoHandler(ctx context.Context, authorID string, req httptransport.ComunicadoRequest) (httptransport.ComunicadoResponse, error) {
	comunicado, err := h.Service.Create(ctx, inputFromRequest(req), authorID)
	if err != nil {
		return httptransport.ComunicadoResponse{}, err
	}
	return comunicadoResponse(comunicado), nil
}

func (h Handler) UpdateComunicadoHandler(ctx context.Context, comunicadoID string, req httptransport.ComunicadoRequest) (httptransport.ComunicadoResponse, error) {
	comunicado, err := h.Service.Update(ctx, comunicadoID, inputFromRequest(req))
	if err != nil {
		return httptransport.ComunicadoResponse{}, err
	}
	return comunicadoResponse(comunicado), nil
}

func (h Handler) DeleteComunicadoHandler(ctx context.Context, comunicadoID string) error {
	return h.Service.Delete(ctx, comunicadoID)
}

func (h Handler) GetComunicadoHandler(ctx context.Context, comunicadoID string) (httptransport.ComunicadoResponse, error) {
	comunicado, err := h.Service.Get(ctx, comunicadoID)
	if err != nil {
		return httptransport.ComunicadoResponse{}, err
	}
	return comunicadoResponse(comunicado), nil
}

func (h Handler) ListComunicadosHandler(ctx context.Context, category string, page int, perPage int) (httptransport.ComunicadoListResponse, error) {
	comunicados, total, err := h.Service.List(ctx, ports.ComunicadoFilter{
		Category: entities.ComunicadoCategory(category),
		Page:     page,
		PerPage:  perPage,
	})
	if err != nil {
		return httptransport.ComunicadoListResponse{}, err
	}
	items := make([]httptransport.ComunicadoResponse, 0, len(comunicados))
	for _, comunicado := range comunicados {
		items = append(items, comunicadoResponse(comunicado))
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}
	return httptransport.ComunicadoListResponse{
		Comunicados: items,
		Total:       total,
		Page:        page,
		PerPage:     perPage,
	}, nil
}

func (h Handler) LatestComunicadosHandler(ctx context.Context, limit int) ([]httptransport.ComunicadoResponse, error) {
	comunicados, err := h.Service.Latest(ctx, limit)
	if err != nil {
		return nil, err
	}
	items := make([]httptransport.ComunicadoResponse, 0, len(comunicados))
	for _, comunicado := range comunicados {
		items = append(items, comunicadoResponse(comunicado))
	}
	return items, nil
}

func inputFromRequest(req httptransport.ComunicadoRequest) application.ComunicadoInput {
	return application.ComunicadoInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: entities.ComunicadoCategory(req.Category),
		Pinned:   req.Pinned,
	}
}

func comunicadoResponse(comunicado entities.Comunicado) httptransport.ComunicadoResponse {
	return httptransport.ComunicadoResponse{
		ComunicadoID: comunicado.ComunicadoID,
		Title:        comunicado.Title,
		Content:      comunicado.Content,
		Category:     string(comunicado.Category),
		Pinned:       comunicado.Pinned,
		AuthorID:     comunicado.AuthorID,
		CreatedAt:    comunicado.CreatedAt,
		UpdatedAt:    comunicado.UpdatedAt,
	}
}
