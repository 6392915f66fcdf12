package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	announcementerrors "vecindario/contexts/community/announcement-service/domain/errors"
	announcementhttp "vecindario/contexts/community/announcement-service/transport/http"
)

func (s *Server) registerAnnouncementRoutes() {
	s.mux.HandleFunc("GET /api/v1/comunicados", s.authenticated(s.handleListComunicados))
	s.mux.HandleFunc("GET /api/v1/comunicados/latest", s.authenticated(s.handleLatestComunicados))
	s.mux.HandleFunc("GET /api/v1/comunicados/{id}", s.authenticated(s.handleGetComunicado))
	s.mux.HandleFunc("POST /api/v1/comunicados", s.directivaOnly(s.handleCreateComunicado))
	s.mux.HandleFunc("PUT /api/v1/comunicados/{id}", s.directivaOnly(s.handleUpdateComunicado))
	s.mux.HandleFunc("DELETE /api/v1/comunicados/{id}", s.directivaOnly(s.handleDeleteComunicado))
}

func (s *Server) handleCreateComunicado(w http.ResponseWriter, r *http.Request, claims *Claims) {
	var req announcementhttp.ComunicadoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAnnouncementError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeAnnouncementError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	resp, err := s.announcements.Handler.CreateComunicadoHandler(r.Context(), claims.Subject, req)
	if err != nil {
		writeAnnouncementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateComunicado(w http.ResponseWriter, r *http.Request, _ *Claims) {
	var req announcementhttp.ComunicadoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAnnouncementError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeAnnouncementError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	resp, err := s.announcements.Handler.UpdateComunicadoHandler(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeAnnouncementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteComunicado(w http.ResponseWriter, r *http.Request, _ *Claims) {
	if err := s.announcements.Handler.DeleteComunicadoHandler(r.Context(), r.PathValue("id")); err != nil {
		writeAnnouncementDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetComunicado(w http.ResponseWriter, r *http.Request, _ *Claims) {
	resp, err := s.announcements.Handler.GetComunicadoHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		writeAnnouncementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListComunicados(w http.ResponseWriter, r *http.Request, _ *Claims) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	perPage, _ := strconv.Atoi(query.Get("per_page"))
	resp, err := s.announcements.Handler.ListComunicadosHandler(r.Context(), query.Get("category"), page, perPage)
	if err != nil {
		writeAnnouncementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLatestComunicados(w http.ResponseWriter, r *http.Request, _ *Claims) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	resp, err := s.announcements.Handler.LatestComunicadosHandler(r.Context(), limit)
	if err != nil {
		writeAnnouncementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeAnnouncementDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, announcementerrors.ErrComunicadoNotFound):
		writeAnnouncementError(w, http.StatusNotFound, "comunicado_not_found", err.Error())
	case errors.Is(err, announcementerrors.ErrInvalidInput),
		errors.Is(err, announcementerrors.ErrInvalidCategory):
		writeAnnouncementError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeAnnouncementError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeAnnouncementError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, announcementhttp.ErrorResponse{Code: code, Message: message})
}
