package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	announcementservice "vecindario/contexts/community/announcement-service"
	emergencyservice "vecindario/contexts/community/emergency-service"
	billingcycle "vecindario/contexts/finance/billing-cycle"
	treasuryservice "vecindario/contexts/finance/treasury-service"
	votingengine "vecindario/contexts/governance/voting-engine"
	"vecindario/internal/platform/metrics"

	"github.com/go-playground/validator/v10"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "vecindario/internal/platform/httpserver/docs"
)

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	validate *validator.Validate
	secret   []byte
	metrics  *metrics.Metrics

	voting        votingengine.Module
	billing       billingcycle.Module
	treasury      treasuryservice.Module
	announcements announcementservice.Module
	emergencies   emergencyservice.Module
}

type Dependencies struct {
	Voting        votingengine.Module
	Billing       billingcycle.Module
	Treasury      treasuryservice.Module
	Announcements announcementservice.Module
	Emergencies   emergencyservice.Module
	JWTSecret     string
	Metrics       *metrics.Metrics
	Logger        *slog.Logger
	Addr          string
}

func New(deps Dependencies) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	addr := deps.Addr
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		validate:      validator.New(),
		secret:        []byte(deps.JWTSecret),
		metrics:       deps.Metrics,
		voting:        deps.Voting,
		billing:       deps.Billing,
		treasury:      deps.Treasury,
		announcements: deps.Announcements,
		emergencies:   deps.Emergencies,
	}
	s.registerRoutes()
	return s
}

// Handler returns the full middleware chain for tests and Start.
func (s *Server) Handler() http.Handler {
	if s.metrics != nil {
		return s.metrics.Middleware(s.mux)
	}
	return s.mux
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.Handler())
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics.Handler())
	}
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.registerVotingRoutes()
	s.registerBillingRoutes()
	s.registerTreasuryRoutes()
	s.registerAnnouncementRoutes()
	s.registerEmergencyRoutes()
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
