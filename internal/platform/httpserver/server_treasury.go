package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	treasuryerrors "vecindario/contexts/finance/treasury-service/domain/errors"
	treasuryhttp "vecindario/contexts/finance/treasury-service/transport/http"
)

func (s *Server) registerTreasuryRoutes() {
	s.mux.HandleFunc("POST /api/v1/tesoreria", s.directivaOnly(s.handleCreateMovimiento))
	s.mux.HandleFunc("GET /api/v1/tesoreria", s.authenticated(s.handleListMovimientos))
	s.mux.HandleFunc("GET /api/v1/tesoreria/resumen", s.authenticated(s.handleResumenTesoreria))
	s.mux.HandleFunc("GET /api/v1/tesoreria/{id}", s.authenticated(s.handleGetMovimiento))
}

func (s *Server) handleCreateMovimiento(w http.ResponseWriter, r *http.Request, claims *Claims) {
	var req treasuryhttp.CreateMovimientoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTreasuryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeTreasuryError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	resp, err := s.treasury.Handler.CreateMovimientoHandler(r.Context(), claims.Subject, req)
	if err != nil {
		writeTreasuryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListMovimientos(w http.ResponseWriter, r *http.Request, _ *Claims) {
	query := r.URL.Query()
	year, _ := strconv.Atoi(query.Get("year"))
	month, _ := strconv.Atoi(query.Get("month"))
	page, _ := strconv.Atoi(query.Get("page"))
	perPage, _ := strconv.Atoi(query.Get("per_page"))
	resp, err := s.treasury.Handler.ListMovimientosHandler(r.Context(), query.Get("type"), year, month, page, perPage)
	if err != nil {
		writeTreasuryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResumenTesoreria(w http.ResponseWriter, r *http.Request, _ *Claims) {
	resp, err := s.treasury.Handler.ResumenHandler(r.Context())
	if err != nil {
		writeTreasuryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetMovimiento(w http.ResponseWriter, r *http.Request, _ *Claims) {
	resp, err := s.treasury.Handler.GetMovimientoHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		writeTreasuryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeTreasuryDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, treasuryerrors.ErrMovimientoNotFound):
		writeTreasuryError(w, http.StatusNotFound, "movimiento_not_found", err.Error())
	case errors.Is(err, treasuryerrors.ErrInvalidInput),
		errors.Is(err, treasuryerrors.ErrInvalidTipo),
		errors.Is(err, treasuryerrors.ErrInvalidMonto),
		errors.Is(err, treasuryerrors.ErrDescriptionRequired):
		writeTreasuryError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeTreasuryError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeTreasuryError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, treasuryhttp.ErrorResponse{Code: code, Message: message})
}
