package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	billingerrors "vecindario/contexts/finance/billing-cycle/domain/errors"
	billinghttp "vecindario/contexts/finance/billing-cycle/transport/http"
)

func (s *Server) registerBillingRoutes() {
	s.mux.HandleFunc("POST /api/v1/gastos/periodos", s.directivaOnly(s.handleCreatePeriodo))
	s.mux.HandleFunc("GET /api/v1/gastos/periodos", s.authenticated(s.handleListPeriodos))
	s.mux.HandleFunc("GET /api/v1/gastos/periodos/{id}", s.authenticated(s.handleGetPeriodo))
	s.mux.HandleFunc("GET /api/v1/gastos/periodos/{id}/resumen", s.directivaOnly(s.handleResumenPeriodo))
	s.mux.HandleFunc("GET /api/v1/gastos/periodos/{id}/gastos", s.directivaOnly(s.handleListGastos))
	s.mux.HandleFunc("GET /api/v1/gastos/{id}", s.authenticated(s.handleGetGasto))
	s.mux.HandleFunc("POST /api/v1/gastos/{id}/pago", s.directivaOnly(s.handleRegistrarPago))
	s.mux.HandleFunc("POST /api/v1/gastos/{id}/cancelar", s.directivaOnly(s.handleCancelGasto))
	s.mux.HandleFunc("GET /api/v1/gastos/mi-cuenta", s.authenticated(s.handleMiEstadoCuenta))
	s.mux.HandleFunc("GET /api/v1/gastos/parcelas/{id}/cuenta", s.directivaOnly(s.handleEstadoCuenta))
}

func (s *Server) handleCreatePeriodo(w http.ResponseWriter, r *http.Request, _ *Claims) {
	var req billinghttp.CreatePeriodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBillingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeBillingError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	resp, err := s.billing.Handler.CreatePeriodoHandler(r.Context(), req)
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListPeriodos(w http.ResponseWriter, r *http.Request, _ *Claims) {
	query := r.URL.Query()
	year, _ := strconv.Atoi(query.Get("year"))
	page, _ := strconv.Atoi(query.Get("page"))
	perPage, _ := strconv.Atoi(query.Get("per_page"))
	resp, err := s.billing.Handler.ListPeriodosHandler(r.Context(), year, page, perPage)
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPeriodo(w http.ResponseWriter, r *http.Request, _ *Claims) {
	resp, err := s.billing.Handler.GetPeriodoHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResumenPeriodo(w http.ResponseWriter, r *http.Request, _ *Claims) {
	resp, err := s.billing.Handler.ResumenHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListGastos(w http.ResponseWriter, r *http.Request, _ *Claims) {
	resp, err := s.billing.Handler.ListGastosHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetGasto(w http.ResponseWriter, r *http.Request, _ *Claims) {
	resp, err := s.billing.Handler.GetGastoHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegistrarPago(w http.ResponseWriter, r *http.Request, _ *Claims) {
	var req billinghttp.RegistrarPagoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBillingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeBillingError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	resp, err := s.billing.Handler.RegistrarPagoHandler(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCancelGasto(w http.ResponseWriter, r *http.Request, _ *Claims) {
	resp, err := s.billing.Handler.CancelGastoHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMiEstadoCuenta(w http.ResponseWriter, r *http.Request, claims *Claims) {
	resp, err := s.billing.Handler.MiEstadoCuentaHandler(r.Context(), claims.Subject)
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEstadoCuenta(w http.ResponseWriter, r *http.Request, _ *Claims) {
	resp, err := s.billing.Handler.EstadoCuentaHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeBillingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, billingerrors.ErrPeriodoNotFound):
		writeBillingError(w, http.StatusNotFound, "periodo_not_found", err.Error())
	case errors.Is(err, billingerrors.ErrGastoNotFound):
		writeBillingError(w, http.StatusNotFound, "gasto_not_found", err.Error())
	case errors.Is(err, billingerrors.ErrParcelaNotFound):
		writeBillingError(w, http.StatusNotFound, "parcela_not_found", err.Error())
	case errors.Is(err, billingerrors.ErrPeriodoExists):
		writeBillingError(w, http.StatusConflict, "periodo_exists", err.Error())
	case errors.Is(err, billingerrors.ErrInvalidState):
		writeBillingError(w, http.StatusUnprocessableEntity, "invalid_state", err.Error())
	case errors.Is(err, billingerrors.ErrInvalidInput),
		errors.Is(err, billingerrors.ErrInvalidMonto):
		writeBillingError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeBillingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeBillingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, billinghttp.ErrorResponse{Code: code, Message: message})
}
