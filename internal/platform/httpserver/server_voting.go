package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	votingerrors "vecindario/contexts/governance/voting-engine/domain/errors"
	votinghttp "vecindario/contexts/governance/voting-engine/transport/http"
)

func (s *Server) registerVotingRoutes() {
	s.mux.HandleFunc("POST /api/v1/votaciones", s.directivaOnly(s.handleCreateVotacion))
	s.mux.HandleFunc("GET /api/v1/votaciones", s.authenticated(s.handleListVotaciones))
	s.mux.HandleFunc("GET /api/v1/votaciones/{id}", s.authenticated(s.handleGetVotacion))
	s.mux.HandleFunc("PUT /api/v1/votaciones/{id}", s.directivaOnly(s.handleUpdateVotacion))
	s.mux.HandleFunc("DELETE /api/v1/votaciones/{id}", s.directivaOnly(s.handleDeleteVotacion))
	s.mux.HandleFunc("POST /api/v1/votaciones/{id}/publish", s.directivaOnly(s.handlePublishVotacion))
	s.mux.HandleFunc("POST /api/v1/votaciones/{id}/close", s.directivaOnly(s.handleCloseVotacion))
	s.mux.HandleFunc("POST /api/v1/votaciones/{id}/cancel", s.directivaOnly(s.handleCancelVotacion))
	s.mux.HandleFunc("POST /api/v1/votaciones/{id}/votar", s.authenticated(s.handleCastVote))
	s.mux.HandleFunc("GET /api/v1/votaciones/{id}/resultados", s.authenticated(s.handleResultados))
}

func (s *Server) handleCreateVotacion(w http.ResponseWriter, r *http.Request, claims *Claims) {
	var req votinghttp.CreateVotacionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVotingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeVotingError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	resp, err := s.voting.Handler.CreateVotacionHandler(r.Context(), claims.Subject, req)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateVotacion(w http.ResponseWriter, r *http.Request, _ *Claims) {
	var req votinghttp.CreateVotacionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVotingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeVotingError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	resp, err := s.voting.Handler.UpdateVotacionHandler(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteVotacion(w http.ResponseWriter, r *http.Request, _ *Claims) {
	if err := s.voting.Handler.DeleteVotacionHandler(r.Context(), r.PathValue("id")); err != nil {
		writeVotingDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePublishVotacion(w http.ResponseWriter, r *http.Request, _ *Claims) {
	resp, err := s.voting.Handler.PublishVotacionHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCloseVotacion(w http.ResponseWriter, r *http.Request, _ *Claims) {
	resp, err := s.voting.Handler.CloseVotacionHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCancelVotacion(w http.ResponseWriter, r *http.Request, _ *Claims) {
	resp, err := s.voting.Handler.CancelVotacionHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetVotacion(w http.ResponseWriter, r *http.Request, claims *Claims) {
	resp, err := s.voting.Handler.GetVotacionHandler(r.Context(), r.PathValue("id"), claims.Subject)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListVotaciones(w http.ResponseWriter, r *http.Request, _ *Claims) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	perPage, _ := strconv.Atoi(query.Get("per_page"))
	resp, err := s.voting.Handler.ListVotacionesHandler(r.Context(), query.Get("status"), page, perPage)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request, claims *Claims) {
	var req votinghttp.EmitirVotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVotingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.voting.Handler.CastVoteHandler(r.Context(), r.PathValue("id"), claims.Subject, req)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleResultados(w http.ResponseWriter, r *http.Request, _ *Claims) {
	resp, err := s.voting.Handler.ResultadosHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeVotingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, votingerrors.ErrVotacionNotFound):
		writeVotingError(w, http.StatusNotFound, "votacion_not_found", err.Error())
	case errors.Is(err, votingerrors.ErrOpcionNotFound):
		writeVotingError(w, http.StatusNotFound, "opcion_not_found", err.Error())
	case errors.Is(err, votingerrors.ErrDuplicateVote):
		writeVotingError(w, http.StatusConflict, "duplicate_vote", err.Error())
	case errors.Is(err, votingerrors.ErrInvalidState):
		writeVotingError(w, http.StatusUnprocessableEntity, "invalid_state", err.Error())
	case errors.Is(err, votingerrors.ErrAbstentionNotAllowed):
		writeVotingError(w, http.StatusUnprocessableEntity, "abstention_not_allowed", err.Error())
	case errors.Is(err, votingerrors.ErrInvalidInput),
		errors.Is(err, votingerrors.ErrNotEnoughOpciones),
		errors.Is(err, votingerrors.ErrQuorumOutOfRange):
		writeVotingError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeVotingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeVotingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, votinghttp.ErrorResponse{Code: code, Message: message})
}
