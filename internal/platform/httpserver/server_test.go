package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	announcementservice "vecindario/contexts/community/announcement-service"
	emergencyservice "vecindario/contexts/community/emergency-service"
	billingcycle "vecindario/contexts/finance/billing-cycle"
	billingports "vecindario/contexts/finance/billing-cycle/ports"
	treasuryservice "vecindario/contexts/finance/treasury-service"
	votingengine "vecindario/contexts/governance/voting-engine"
)

var testSecret = []byte("test-secret")

type testServer struct {
	server  *Server
	voting  votingengine.Module
	billing billingcycle.Module
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	voting := votingengine.NewInMemoryModule(nil)
	billing := billingcycle.NewInMemoryModule(nil)
	server := New(Dependencies{
		Voting:        voting,
		Billing:       billing,
		Treasury:      treasuryservice.NewInMemoryModule(nil),
		Announcements: announcementservice.NewInMemoryModule(nil),
		Emergencies:   emergencyservice.NewInMemoryModule(nil),
		JWTSecret:     string(testSecret),
	})
	return testServer{server: server, voting: voting, billing: billing}
}

func token(t *testing.T, userID string, role string) string {
	t.Helper()
	signed, err := IssueToken(testSecret, userID, role, time.Hour)
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}
	return signed
}

func (ts testServer) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body failed: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(into); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/votaciones", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/votaciones", "not-a-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a bad token, got %d", rec.Code)
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/votaciones", token(t, "vecino_1", RoleVecino), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with a valid token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDirectivaRoleEnforced(t *testing.T) {
	ts := newTestServer(t)
	body := map[string]any{
		"title":    "Pintura de fachada",
		"opciones": []map[string]string{{"label": "Blanco"}, {"label": "Gris"}},
	}

	rec := ts.do(t, http.MethodPost, "/api/v1/votaciones", token(t, "vecino_1", RoleVecino), body)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for vecino, got %d", rec.Code)
	}

	rec = ts.do(t, http.MethodPost, "/api/v1/votaciones", token(t, "directiva_1", RoleDirectiva), body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for directiva, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestVotacionLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	directiva := token(t, "directiva_1", RoleDirectiva)

	rec := ts.do(t, http.MethodPost, "/api/v1/votaciones", directiva, map[string]any{
		"title":    "Cambio de conserje",
		"opciones": []map[string]string{{"label": "Aprobar"}, {"label": "Rechazar"}},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	var created struct {
		VotacionID string `json:"votacion_id"`
		Status     string `json:"status"`
		Opciones   []struct {
			OpcionID string `json:"opcion_id"`
		} `json:"opciones"`
	}
	decode(t, rec, &created)
	if created.Status != "draft" {
		t.Fatalf("expected draft, got %s", created.Status)
	}

	rec = ts.do(t, http.MethodPost, "/api/v1/votaciones/"+created.VotacionID+"/publish", directiva, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("publish failed: %d %s", rec.Code, rec.Body.String())
	}

	vecino := token(t, "vecino_1", RoleVecino)
	voteBody := map[string]any{"opcion_id": created.Opciones[0].OpcionID}
	rec = ts.do(t, http.MethodPost, "/api/v1/votaciones/"+created.VotacionID+"/votar", vecino, voteBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("vote failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodPost, "/api/v1/votaciones/"+created.VotacionID+"/votar", vecino, voteBody)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for a duplicate vote, got %d", rec.Code)
	}

	ts.voting.Store.SetEligibleVoters(10)
	rec = ts.do(t, http.MethodGet, "/api/v1/votaciones/"+created.VotacionID+"/resultados", vecino, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("resultados failed: %d %s", rec.Code, rec.Body.String())
	}
	var resultados struct {
		TotalVotos    int     `json:"total_votos"`
		Participacion float64 `json:"participacion"`
	}
	decode(t, rec, &resultados)
	if resultados.TotalVotos != 1 || resultados.Participacion != 10 {
		t.Fatalf("unexpected resultados: %+v", resultados)
	}
}

func TestBillingStatementOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	ts.billing.Store.SetParcelas([]billingports.ParcelaProjection{
		{ParcelaID: "parc-1", Numero: "1"},
		{ParcelaID: "parc-2", Numero: "2"},
	})
	ts.billing.Store.LinkUserParcela("vecino_1", "parc-1")
	directiva := token(t, "directiva_1", RoleDirectiva)

	rec := ts.do(t, http.MethodPost, "/api/v1/gastos/periodos", directiva, map[string]any{
		"year":              2026,
		"month":             8,
		"monto_base":        50000,
		"fecha_vencimiento": "2026-08-25",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create periodo failed: %d %s", rec.Code, rec.Body.String())
	}
	var periodo struct {
		PeriodoID string `json:"periodo_id"`
	}
	decode(t, rec, &periodo)

	rec = ts.do(t, http.MethodPost, "/api/v1/gastos/periodos", directiva, map[string]any{
		"year":              2026,
		"month":             8,
		"monto_base":        50000,
		"fecha_vencimiento": "2026-08-25",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for a duplicate period, got %d", rec.Code)
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/gastos/periodos/"+periodo.PeriodoID+"/gastos", directiva, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list gastos failed: %d %s", rec.Code, rec.Body.String())
	}
	var gastos []struct {
		GastoID   string `json:"gasto_id"`
		ParcelaID string `json:"parcela_id"`
	}
	decode(t, rec, &gastos)
	if len(gastos) != 2 {
		t.Fatalf("expected 2 charges, got %d", len(gastos))
	}

	gastoID := ""
	for _, gasto := range gastos {
		if gasto.ParcelaID == "parc-1" {
			gastoID = gasto.GastoID
		}
	}
	rec = ts.do(t, http.MethodPost, "/api/v1/gastos/"+gastoID+"/pago", directiva, map[string]any{
		"monto_pagado": 20000,
		"metodo_pago":  "transferencia",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("pago failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/gastos/mi-cuenta", token(t, "vecino_1", RoleVecino), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("mi-cuenta failed: %d %s", rec.Code, rec.Body.String())
	}
	var cuenta struct {
		ParcelaID        string `json:"parcela_id"`
		GastosPendientes []struct {
			Saldo float64 `json:"saldo"`
		} `json:"gastos_pendientes"`
		TotalPendiente float64 `json:"total_pendiente"`
	}
	decode(t, rec, &cuenta)
	if cuenta.ParcelaID != "parc-1" || cuenta.TotalPendiente != 30000 {
		t.Fatalf("unexpected statement: %+v", cuenta)
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/gastos/mi-cuenta", token(t, "vecino_9", RoleVecino), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a user without parcela, got %d", rec.Code)
	}
}

func TestTreasuryOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	directiva := token(t, "directiva_1", RoleDirectiva)

	rec := ts.do(t, http.MethodPost, "/api/v1/tesoreria", directiva, map[string]any{
		"description": "Cuotas agosto",
		"amount":      500000,
		"type":        "ingreso",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create movimiento failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = ts.do(t, http.MethodPost, "/api/v1/tesoreria", directiva, map[string]any{
		"description": "Mantencion ascensor",
		"amount":      200000,
		"type":        "egreso",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create movimiento failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/tesoreria/resumen", token(t, "vecino_1", RoleVecino), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("resumen failed: %d %s", rec.Code, rec.Body.String())
	}
	var resumen struct {
		TotalIngresos float64 `json:"total_ingresos"`
		TotalEgresos  float64 `json:"total_egresos"`
		Balance       float64 `json:"balance"`
	}
	decode(t, rec, &resumen)
	if resumen.Balance != 300000 {
		t.Fatalf("expected balance 300000, got %v", resumen.Balance)
	}
}

func TestEmergenciasOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	directiva := token(t, "directiva_1", RoleDirectiva)

	rec := ts.do(t, http.MethodPost, "/api/v1/emergencias", directiva, map[string]any{
		"title":       "Fuga de gas",
		"description": "Olor a gas en el pasillo",
		"severity":    "critica",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("raise failed: %d %s", rec.Code, rec.Body.String())
	}
	var alerta struct {
		AlertaID string `json:"alerta_id"`
	}
	decode(t, rec, &alerta)

	rec = ts.do(t, http.MethodPost, "/api/v1/emergencias/"+alerta.AlertaID+"/resolve", directiva, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("resolve failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = ts.do(t, http.MethodPost, "/api/v1/emergencias/"+alerta.AlertaID+"/resolve", directiva, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 resolving twice, got %d", rec.Code)
	}
}

func TestComunicadosOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	directiva := token(t, "directiva_1", RoleDirectiva)

	rec := ts.do(t, http.MethodPost, "/api/v1/comunicados", directiva, map[string]any{
		"title":    "Asamblea anual",
		"content":  "Se convoca a asamblea ordinaria",
		"category": "reunion",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create comunicado failed: %d %s", rec.Code, rec.Body.String())
	}
	var comunicado struct {
		ComunicadoID string `json:"comunicado_id"`
	}
	decode(t, rec, &comunicado)

	rec = ts.do(t, http.MethodPost, "/api/v1/comunicados", directiva, map[string]any{
		"title":    "Aviso",
		"content":  "Contenido",
		"category": "invalida",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid category, got %d", rec.Code)
	}

	rec = ts.do(t, http.MethodDelete, "/api/v1/comunicados/"+comunicado.ComunicadoID, directiva, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete failed: %d", rec.Code)
	}
	rec = ts.do(t, http.MethodGet, "/api/v1/comunicados/"+comunicado.ComunicadoID, directiva, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}
