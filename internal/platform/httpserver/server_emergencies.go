package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	emergencyerrors "vecindario/contexts/community/emergency-service/domain/errors"
	emergencyhttp "vecindario/contexts/community/emergency-service/transport/http"
)

func (s *Server) registerEmergencyRoutes() {
	s.mux.HandleFunc("GET /api/v1/emergencias", s.authenticated(s.handleListAlertas))
	s.mux.HandleFunc("GET /api/v1/emergencias/{id}", s.authenticated(s.handleGetAlerta))
	s.mux.HandleFunc("POST /api/v1/emergencias", s.directivaOnly(s.handleRaiseAlerta))
	s.mux.HandleFunc("POST /api/v1/emergencias/{id}/resolve", s.directivaOnly(s.handleResolveAlerta))
}

func (s *Server) handleRaiseAlerta(w http.ResponseWriter, r *http.Request, claims *Claims) {
	var req emergencyhttp.RaiseAlertaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEmergencyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeEmergencyError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	resp, err := s.emergencies.Handler.RaiseAlertaHandler(r.Context(), claims.Subject, req)
	if err != nil {
		writeEmergencyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleResolveAlerta(w http.ResponseWriter, r *http.Request, claims *Claims) {
	resp, err := s.emergencies.Handler.ResolveAlertaHandler(r.Context(), r.PathValue("id"), claims.Subject)
	if err != nil {
		writeEmergencyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetAlerta(w http.ResponseWriter, r *http.Request, _ *Claims) {
	resp, err := s.emergencies.Handler.GetAlertaHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		writeEmergencyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAlertas(w http.ResponseWriter, r *http.Request, _ *Claims) {
	activeOnly := r.URL.Query().Get("active") == "true"
	resp, err := s.emergencies.Handler.ListAlertasHandler(r.Context(), activeOnly)
	if err != nil {
		writeEmergencyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeEmergencyDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, emergencyerrors.ErrAlertaNotFound):
		writeEmergencyError(w, http.StatusNotFound, "alerta_not_found", err.Error())
	case errors.Is(err, emergencyerrors.ErrAlreadyResolved):
		writeEmergencyError(w, http.StatusConflict, "already_resolved", err.Error())
	case errors.Is(err, emergencyerrors.ErrInvalidInput),
		errors.Is(err, emergencyerrors.ErrInvalidSeverity):
		writeEmergencyError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeEmergencyError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeEmergencyError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, emergencyhttp.ErrorResponse{Code: code, Message: message})
}
